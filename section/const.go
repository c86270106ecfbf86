package section

// EmptySectionMagic is found in place of the page-size field of a list head
// whose non-hierarchical section holds no data. On disk it reads "01.0".
const EmptySectionMagic int32 = 0x302e3130

// sizes of the fixed layouts in the index file and in position buffers
const (
	Int32Size          = 4               // every index integer is a 4-byte little-endian int32
	IndexVersionSize   = 5               // length of the version tag opening the index file
	TableEntrySize     = Int32Size       // one list-head pointer per record number
	NonHierRootOffset  = Int32Size       // nonhier_root = hier_root + 4
	HierPageHeaderSize = 2 * Int32Size   // entry count + next page position
	HierEntrySize      = 4 * Int32Size   // image index, position, length, file index
	NonHierPageSize    = 7 * Int32Size   // prologue (4 fields) + position, length, file index
	PositionRecordSize = 1 + 2*Int32Size // flag byte + x + y
	NonHierPageCount   = 1               // a non-hierarchical page holds a single record
)
