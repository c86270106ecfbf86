package section

import (
	"github.com/arloliu/mirax/endian"
	"github.com/arloliu/mirax/errs"
)

var engine = endian.GetLittleEndianEngine()

// IndexHeader is the variable-size prologue of an index file.
//
// The slide ID is not self-delimiting: its length is taken from SLIDE_ID in
// Slidedat.ini, so the header can only be parsed once the configuration is known.
type IndexHeader struct {
	// Version is the 5-byte version tag, e.g. "01.02".
	Version string
	// SlideID repeats the GENERAL/SLIDE_ID value of the configuration.
	SlideID string
}

// Size returns the encoded size of the header in bytes.
func (h IndexHeader) Size() int {
	return IndexVersionSize + len(h.SlideID)
}

// HierRoot returns the position of the hierarchical root pointer.
func (h IndexHeader) HierRoot() int64 {
	return int64(h.Size())
}

// NonHierRoot returns the position of the non-hierarchical root pointer.
func (h IndexHeader) NonHierRoot() int64 {
	return h.HierRoot() + NonHierRootOffset
}

// Bytes serializes the header. The version is written as-is and must be IndexVersionSize bytes long.
func (h IndexHeader) Bytes() []byte {
	b := make([]byte, 0, h.Size())
	b = append(b, h.Version...)
	b = append(b, h.SlideID...)

	return b
}

// ParseIndexHeader parses the header of an index file whose slide ID is idLen bytes long.
//
// Returns:
//   - IndexHeader: parsed header
//   - error: TruncatedReadError if data is shorter than the header
func ParseIndexHeader(data []byte, idLen int) (IndexHeader, error) {
	size := IndexVersionSize + idLen
	if len(data) < size {
		return IndexHeader{}, &errs.TruncatedReadError{Offset: 0, Want: size, Got: len(data)}
	}

	return IndexHeader{
		Version: string(data[:IndexVersionSize]),
		SlideID: string(data[IndexVersionSize:size]),
	}, nil
}
