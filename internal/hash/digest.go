// Package hash computes xxHash64 fingerprints of decoded index tables.
package hash

import (
	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/mirax/endian"
)

// Digest accumulates fixed-width little-endian fields into an xxHash64 sum.
//
// Two tables produce the same sum only if they hold the same fields in the
// same order, so a digest identifies a tile-location table independently of
// where it was stored in the index file.
type Digest struct {
	d      *xxhash.Digest
	engine endian.EndianEngine
	buf    [8]byte
}

// New returns an empty digest.
func New() *Digest {
	return &Digest{
		d:      xxhash.New(),
		engine: endian.GetLittleEndianEngine(),
	}
}

// AddInt64 adds v as 8 little-endian bytes.
func (d *Digest) AddInt64(v int64) {
	d.engine.PutUint64(d.buf[:], uint64(v))
	_, _ = d.d.Write(d.buf[:])
}

// AddUint32 adds v as 4 little-endian bytes.
func (d *Digest) AddUint32(v uint32) {
	d.engine.PutUint32(d.buf[:4], v)
	_, _ = d.d.Write(d.buf[:4])
}

// AddString adds the length of s followed by its bytes.
func (d *Digest) AddString(s string) {
	d.AddInt64(int64(len(s)))
	_, _ = d.d.WriteString(s)
}

// Sum64 returns the current sum.
func (d *Digest) Sum64() uint64 {
	return d.d.Sum64()
}

// Reset clears the digest.
func (d *Digest) Reset() {
	d.d.Reset()
}

// String returns the xxHash64 of a string.
func String(s string) uint64 {
	return xxhash.Sum64String(s)
}
