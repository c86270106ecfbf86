// Package errs defines the errors returned while decoding a MIRAX slide.
//
// Structural errors are returned as typed values carrying the offending
// offsets and values; each typed error matches its sentinel with errors.Is:
//
//	if errors.Is(err, errs.ErrUnexpectedValue) {
//	    // index file is corrupt or uses an unsupported variant
//	}
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncatedRead is returned when a stream ends before the declared number of bytes.
	ErrTruncatedRead = errors.New("truncated read")
	// ErrUnexpectedValue is returned when a structural constant in the index file does not match.
	ErrUnexpectedValue = errors.New("unexpected value")
	// ErrMalformedLength is returned when a position map is not a whole number of records.
	ErrMalformedLength = errors.New("malformed length")
	// ErrKeyNotFound is returned when a configuration section, key, layer or level is missing.
	ErrKeyNotFound = errors.New("key not found")

	ErrNotMirax               = errors.New("not a MIRAX file")
	ErrFileIndexOutOfRange    = errors.New("data file index out of range")
	ErrPageCycle              = errors.New("hierarchical page chain revisits a page")
	ErrInvalidGeometry        = errors.New("invalid slide geometry")
	ErrUnsupportedCompression = errors.New("unsupported compression type")
)

// TruncatedReadError reports a short read at a known stream offset.
type TruncatedReadError struct {
	Offset int64
	Want   int
	Got    int
}

func (e *TruncatedReadError) Error() string {
	return fmt.Sprintf("truncated read at offset %d: want %d bytes, got %d", e.Offset, e.Want, e.Got)
}

func (e *TruncatedReadError) Is(target error) bool {
	return target == ErrTruncatedRead
}

// UnexpectedValueError reports a structural constant mismatch.
type UnexpectedValueError struct {
	Offset   int64
	Expected int32
	Actual   int32
}

func (e *UnexpectedValueError) Error() string {
	return fmt.Sprintf("unexpected value at offset %d: expected %d (0x%x), got %d (0x%x)",
		e.Offset, e.Expected, uint32(e.Expected), e.Actual, uint32(e.Actual))
}

func (e *UnexpectedValueError) Is(target error) bool {
	return target == ErrUnexpectedValue
}

// MalformedLengthError reports a buffer whose length is not a multiple of the record size.
type MalformedLengthError struct {
	Length     int
	RecordSize int
}

func (e *MalformedLengthError) Error() string {
	return fmt.Sprintf("malformed length %d: not a multiple of record size %d", e.Length, e.RecordSize)
}

func (e *MalformedLengthError) Is(target error) bool {
	return target == ErrMalformedLength
}

// KeyNotFoundError reports a missing configuration entry.
//
// Key is empty when the whole section is missing.
type KeyNotFoundError struct {
	Section string
	Key     string
}

func (e *KeyNotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("key not found: section [%s]", e.Section)
	}

	return fmt.Sprintf("key not found: [%s] %s", e.Section, e.Key)
}

func (e *KeyNotFoundError) Is(target error) bool {
	return target == ErrKeyNotFound
}

// IsKeyNotFound reports whether err is or wraps a missing configuration entry.
func IsKeyNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}
