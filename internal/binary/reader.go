// Package binary provides the exact-length little-endian reads used to walk a MIRAX index file.
package binary

import (
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/mirax/endian"
	"github.com/arloliu/mirax/errs"
)

// Reader reads fixed-width values from a seekable stream.
//
// Every read must return exactly the requested number of bytes; a short read is
// an *errs.TruncatedReadError and never a zero-filled value. Callers position
// the cursor explicitly with Seek.
type Reader struct {
	rs     io.ReadSeeker
	engine endian.EndianEngine
	pos    int64
}

// NewReader creates a little-endian reader. The stream is assumed to be at offset 0.
func NewReader(rs io.ReadSeeker) *Reader {
	return &Reader{
		rs:     rs,
		engine: endian.GetLittleEndianEngine(),
	}
}

// Seek moves the cursor to the absolute position pos.
func (r *Reader) Seek(pos int64) error {
	if pos < 0 {
		return fmt.Errorf("seek to negative position %d: %w", pos, errs.ErrUnexpectedValue)
	}

	if _, err := r.rs.Seek(pos, io.SeekStart); err != nil {
		return fmt.Errorf("seek to %d: %w", pos, err)
	}
	r.pos = pos

	return nil
}

// Pos returns the current cursor position.
func (r *Reader) Pos() int64 {
	return r.pos
}

// ReadExact reads exactly n bytes from the current position.
func (r *Reader) ReadExact(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}

	buf := make([]byte, n)
	got, err := io.ReadFull(r.rs, buf)
	offset := r.pos
	r.pos += int64(got)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, &errs.TruncatedReadError{Offset: offset, Want: n, Got: got}
		}

		return nil, fmt.Errorf("read %d bytes at %d: %w", n, offset, err)
	}

	return buf, nil
}

// ReadUint8 reads one byte.
func (r *Reader) ReadUint8() (uint8, error) {
	buf, err := r.ReadExact(1)
	if err != nil {
		return 0, err
	}

	return buf[0], nil
}

// ReadInt32 reads a little-endian signed 32-bit integer.
func (r *Reader) ReadInt32() (int32, error) {
	buf, err := r.ReadExact(4)
	if err != nil {
		return 0, err
	}

	return int32(r.engine.Uint32(buf)), nil
}

// ReadUint32 reads a little-endian unsigned 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	buf, err := r.ReadExact(4)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint32(buf), nil
}

// ExpectInt32 reads an int32 and fails with *errs.UnexpectedValueError unless it equals expected.
func (r *Reader) ExpectInt32(expected int32) error {
	offset := r.pos
	v, err := r.ReadInt32()
	if err != nil {
		return err
	}

	if v != expected {
		return &errs.UnexpectedValueError{Offset: offset, Expected: expected, Actual: v}
	}

	return nil
}
