// Package endian provides the byte order engines used to decode MIRAX files.
//
// Every multi-byte integer in a MIRAX index file is little-endian, so most
// callers only need GetLittleEndianEngine:
//
//	engine := endian.GetLittleEndianEngine()
//	tableBase := int32(engine.Uint32(buf))
//
// Slidedat.ini stores fill colors as BGR words; SwapBGR converts them to RGB.
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// SwapBGR converts a 24-bit BGR color word into RGB.
//
// The word is laid out big-endian and read back little-endian, which reverses
// all four bytes; the low byte of the result is the former high byte and is dropped.
func SwapBGR(bgr uint32) uint32 {
	var b [4]byte
	GetBigEndianEngine().PutUint32(b[:], bgr)

	return GetLittleEndianEngine().Uint32(b[:]) >> 8
}
