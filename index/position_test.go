package index

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mirax/compress"
	"github.com/arloliu/mirax/errs"
	"github.com/arloliu/mirax/format"
	"github.com/arloliu/mirax/section"
)

func encodePositions(recs ...section.PositionRecord) []byte {
	var b []byte
	for _, r := range recs {
		b = append(b, r.Bytes()...)
	}

	return b
}

func TestDecodePositionMap(t *testing.T) {
	t.Run("LengthMustBeRecordMultiple", func(t *testing.T) {
		for length := 0; length <= 4*section.PositionRecordSize; length++ {
			_, err := DecodePositionMap(make([]byte, length), 2, 4)
			if length%section.PositionRecordSize != 0 {
				require.ErrorIs(t, err, errs.ErrMalformedLength, "length %d", length)
			} else {
				require.NoError(t, err, "length %d", length)
			}
		}
	})

	t.Run("Empty", func(t *testing.T) {
		positions, err := DecodePositionMap(nil, 0, 0)
		require.NoError(t, err)
		require.Empty(t, positions)
	})

	t.Run("SuppressesZeroRecords", func(t *testing.T) {
		buf := encodePositions(
			section.PositionRecord{Flag: 1, X: 10, Y: 20},
			section.PositionRecord{},
			section.PositionRecord{Flag: 1, X: -5, Y: 7},
			section.PositionRecord{X: 3},
			section.PositionRecord{Flag: 2},
			section.PositionRecord{},
		)

		positions, err := DecodePositionMap(buf, 2, 4)
		require.NoError(t, err)
		require.Equal(t, []Position{
			{X: 0, Y: 0, Flag: 1, DX: 10, DY: 20},
			{X: 0, Y: 2, Flag: 1, DX: -5, DY: 7},
			{X: 2, Y: 2, DX: 3},
			{X: 0, Y: 4, Flag: 2},
		}, positions)
	})

	t.Run("CoordinatesAreDivisionMultiples", func(t *testing.T) {
		const divisions, imagesX = 3, 9
		recs := make([]section.PositionRecord, 12)
		for i := range recs {
			recs[i] = section.PositionRecord{Flag: 1}
		}

		positions, err := DecodePositionMap(encodePositions(recs...), divisions, imagesX)
		require.NoError(t, err)
		require.Len(t, positions, len(recs))
		for i, p := range positions {
			require.Zero(t, p.X%divisions)
			require.Zero(t, p.Y%divisions)
			require.Equal(t, (i%3)*divisions, p.X)
			require.Equal(t, (i/3)*divisions, p.Y)
		}
	})

	t.Run("InvalidGeometry", func(t *testing.T) {
		buf := encodePositions(section.PositionRecord{Flag: 1})

		_, err := DecodePositionMap(buf, 0, 4)
		require.ErrorIs(t, err, errs.ErrInvalidGeometry)

		_, err = DecodePositionMap(buf, 4, 2)
		require.ErrorIs(t, err, errs.ErrInvalidGeometry)
	})
}

func TestDecodeStoredPositionMap(t *testing.T) {
	buf := encodePositions(
		section.PositionRecord{Flag: 1, X: 100, Y: 200},
		section.PositionRecord{},
		section.PositionRecord{Flag: 1, X: 101, Y: 201},
		section.PositionRecord{Flag: 0, X: 0, Y: -1},
	)

	plain, err := DecodeStoredPositionMap(format.PositionMapPlain, buf, 1, 2)
	require.NoError(t, err)
	require.Len(t, plain, 3)

	direct, err := DecodePositionMap(buf, 1, 2)
	require.NoError(t, err)
	require.Equal(t, direct, plain)

	compressed, err := compress.NewZlibCompressor().Compress(buf)
	require.NoError(t, err)

	inflated, err := DecodeStoredPositionMap(format.PositionMapCompressed, compressed, 1, 2)
	require.NoError(t, err)
	require.Equal(t, plain, inflated)

	t.Run("CorruptStream", func(t *testing.T) {
		_, err := DecodeStoredPositionMap(format.PositionMapCompressed, buf, 1, 2)
		require.Error(t, err)
	})

	t.Run("MalformedAfterInflate", func(t *testing.T) {
		short, err := compress.NewZlibCompressor().Compress(buf[:10])
		require.NoError(t, err)

		_, err = DecodeStoredPositionMap(format.PositionMapCompressed, short, 1, 2)
		require.ErrorIs(t, err, errs.ErrMalformedLength)
	})
}
