// Package section defines the fixed binary layouts of a MIRAX index file and
// of the slide position buffers stored in the data files.
//
// # Index File Structure
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Version tag (5 bytes, e.g. "01.02")                     │
//	├─────────────────────────────────────────────────────────┤
//	│ Slide ID (len(SLIDE_ID) bytes, copied from Slidedat)    │
//	├─────────────────────────────────────────────────────────┤
//	│ hier_root:    int32 → hierarchical record table         │
//	│ nonhier_root: int32 → non-hierarchical record table     │
//	├─────────────────────────────────────────────────────────┤
//	│ Record tables (int32 list-head pointer per record)      │
//	│ List heads, data pages (anywhere in the file)           │
//	└─────────────────────────────────────────────────────────┘
//
// All integers are 4-byte little-endian signed values.
//
// # Record Lookup
//
// A record number is resolved through three indirections:
//
//	table_base = int32 at root
//	list_head  = int32 at table_base + record*4
//	at list_head: page-size field, then first page position
//
// For a non-hierarchical record the page-size field is either EmptySectionMagic
// (no data) or 0. For a hierarchical record it is always 0.
//
// # Non-Hierarchical Page
//
//	Bytes  | Field       | Value
//	-------|-------------|---------------------
//	0-3    | Count       | 1
//	4-7    | Placeholder | ignored
//	8-11   | Reserved    | 0
//	12-15  | Reserved    | 0
//	16-19  | Position    | byte offset in data file
//	20-23  | Length      | byte length
//	24-27  | FileIndex   | index into DATAFILE list
//
// # Hierarchical Page
//
//	Bytes  | Field     | Description
//	-------|-----------|--------------------------------
//	0-3    | Count     | number of tile entries
//	4-7    | Next      | next page position, 0 ends chain
//	8-...  | Entries   | Count × HierEntry (16 bytes each)
//
// HierEntry: ImageIndex, Position, Length, FileIndex (4 bytes each).
//
// # Position Record
//
// Position buffers are flat arrays of 9-byte records: a flag byte followed by
// the x and y stage offsets as int32. The compressed variant is zlib-deflated.
package section
