package index

import (
	"fmt"

	"github.com/arloliu/mirax/compress"
	"github.com/arloliu/mirax/errs"
	"github.com/arloliu/mirax/format"
	"github.com/arloliu/mirax/section"
)

// Position is the stage offset recorded for one camera position.
type Position struct {
	// X and Y are tile coordinates; both are multiples of the image divisions.
	X, Y int
	Flag uint8
	// DX and DY are the stage offsets.
	DX, DY int32
}

// DecodePositionMap decodes a plain position buffer.
//
// The buffer is a raster-ordered array of 9-byte records over a grid of
// imagesX/divisions positions per row. Records whose flag and offsets are all
// zero carry no data and are omitted from the result.
//
// Returns:
//   - []Position: the non-empty records in buffer order
//   - error: *errs.MalformedLengthError if len(buf) is not a multiple of 9,
//     errs.ErrInvalidGeometry if the grid has no columns
func DecodePositionMap(buf []byte, divisions, imagesX int) ([]Position, error) {
	if len(buf)%section.PositionRecordSize != 0 {
		return nil, &errs.MalformedLengthError{Length: len(buf), RecordSize: section.PositionRecordSize}
	}

	count := len(buf) / section.PositionRecordSize
	if count == 0 {
		return []Position{}, nil
	}

	if divisions <= 0 || imagesX/divisions <= 0 {
		return nil, fmt.Errorf("%d images per row with %d divisions: %w", imagesX, divisions, errs.ErrInvalidGeometry)
	}
	perRow := imagesX / divisions

	positions := make([]Position, 0, count)
	for i := range count {
		off := i * section.PositionRecordSize
		rec, err := section.ParsePositionRecord(buf[off : off+section.PositionRecordSize])
		if err != nil {
			return nil, err
		}

		if rec.IsZero() {
			continue
		}

		positions = append(positions, Position{
			X:    (i % perRow) * divisions,
			Y:    (i / perRow) * divisions,
			Flag: rec.Flag,
			DX:   rec.X,
			DY:   rec.Y,
		})
	}

	return positions, nil
}

// DecodeStoredPositionMap decodes a position buffer as stored in its data file,
// inflating it first when the variant is compressed.
func DecodeStoredPositionMap(variant format.PositionMapVariant, stored []byte, divisions, imagesX int) ([]Position, error) {
	codec, err := compress.GetCodec(variant.Compression())
	if err != nil {
		return nil, err
	}

	buf, err := codec.Decompress(stored)
	if err != nil {
		return nil, fmt.Errorf("%s position map: %w", variant.Key(), err)
	}

	return DecodePositionMap(buf, divisions, imagesX)
}
