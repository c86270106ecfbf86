package hash

import (
	"encoding/binary"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, String(tt.data))
		})
	}
}

func TestDigest(t *testing.T) {
	t.Run("MatchesRawEncoding", func(t *testing.T) {
		var raw []byte
		raw = binary.LittleEndian.AppendUint64(raw, 7)
		raw = binary.LittleEndian.AppendUint32(raw, 100)
		raw = binary.LittleEndian.AppendUint64(raw, 4)
		raw = append(raw, "Data"...)

		d := New()
		d.AddInt64(7)
		d.AddUint32(100)
		d.AddString("Data")
		require.Equal(t, xxhash.Sum64(raw), d.Sum64())
	})

	t.Run("OrderMatters", func(t *testing.T) {
		a, b := New(), New()
		a.AddInt64(1)
		a.AddInt64(2)
		b.AddInt64(2)
		b.AddInt64(1)
		require.NotEqual(t, a.Sum64(), b.Sum64())
	})

	t.Run("Reset", func(t *testing.T) {
		d := New()
		empty := d.Sum64()
		d.AddUint32(5)
		require.NotEqual(t, empty, d.Sum64())

		d.Reset()
		require.Equal(t, empty, d.Sum64())
	})
}
