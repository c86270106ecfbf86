package section

import "github.com/arloliu/mirax/errs"

// HierPageHeader opens every page of a hierarchical record chain.
type HierPageHeader struct {
	// Count is the number of HierEntry records following the header.
	Count int32
	// Next is the position of the next page, 0 on the last page.
	Next int32
}

// ParseHierPageHeader parses a page header from exactly HierPageHeaderSize bytes.
func ParseHierPageHeader(data []byte) (HierPageHeader, error) {
	if len(data) != HierPageHeaderSize {
		return HierPageHeader{}, &errs.MalformedLengthError{Length: len(data), RecordSize: HierPageHeaderSize}
	}

	return HierPageHeader{
		Count: int32(engine.Uint32(data[0:4])),
		Next:  int32(engine.Uint32(data[4:8])),
	}, nil
}

// Bytes serializes the page header.
func (h HierPageHeader) Bytes() []byte {
	b := make([]byte, 0, HierPageHeaderSize)
	b = engine.AppendUint32(b, uint32(h.Count))
	b = engine.AppendUint32(b, uint32(h.Next))

	return b
}

// HierEntry locates one tile image of a zoom level.
type HierEntry struct {
	// ImageIndex is the raster index of the tile: y*images_x + x.
	ImageIndex int32
	// Position is the byte offset of the tile in its data file.
	Position uint32
	// Length is the byte length of the tile.
	Length uint32
	// FileIndex selects the data file from the DATAFILE list.
	FileIndex int32
}

// ParseHierEntry parses one tile entry from exactly HierEntrySize bytes.
func ParseHierEntry(data []byte) (HierEntry, error) {
	if len(data) != HierEntrySize {
		return HierEntry{}, &errs.MalformedLengthError{Length: len(data), RecordSize: HierEntrySize}
	}

	return HierEntry{
		ImageIndex: int32(engine.Uint32(data[0:4])),
		Position:   engine.Uint32(data[4:8]),
		Length:     engine.Uint32(data[8:12]),
		FileIndex:  int32(engine.Uint32(data[12:16])),
	}, nil
}

// Bytes serializes the entry.
func (e HierEntry) Bytes() []byte {
	b := make([]byte, 0, HierEntrySize)
	b = engine.AppendUint32(b, uint32(e.ImageIndex))
	b = engine.AppendUint32(b, e.Position)
	b = engine.AppendUint32(b, e.Length)
	b = engine.AppendUint32(b, uint32(e.FileIndex))

	return b
}

// TileXY splits the image index into tile coordinates for a grid imagesX tiles wide.
// imagesX must be positive.
func (e HierEntry) TileXY(imagesX int) (x, y int) {
	idx := int(e.ImageIndex)
	return idx % imagesX, idx / imagesX
}
