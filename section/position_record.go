package section

import "github.com/arloliu/mirax/errs"

// PositionRecord is the stage offset of one camera position.
type PositionRecord struct {
	Flag uint8
	X    int32
	Y    int32
}

// IsZero reports whether the record carries no data.
func (p PositionRecord) IsZero() bool {
	return p.Flag == 0 && p.X == 0 && p.Y == 0
}

// ParsePositionRecord parses one record from exactly PositionRecordSize bytes.
func ParsePositionRecord(data []byte) (PositionRecord, error) {
	if len(data) != PositionRecordSize {
		return PositionRecord{}, &errs.MalformedLengthError{Length: len(data), RecordSize: PositionRecordSize}
	}

	return PositionRecord{
		Flag: data[0],
		X:    int32(engine.Uint32(data[1:5])),
		Y:    int32(engine.Uint32(data[5:9])),
	}, nil
}

// Bytes serializes the record.
func (p PositionRecord) Bytes() []byte {
	b := make([]byte, 0, PositionRecordSize)
	b = append(b, p.Flag)
	b = engine.AppendUint32(b, uint32(p.X))
	b = engine.AppendUint32(b, uint32(p.Y))

	return b
}
