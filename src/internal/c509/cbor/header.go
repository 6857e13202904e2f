// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package c509cbor

import "fmt"

// Major is the three-bit major type of a CBOR data item.
type Major uint8

// Major types defined by RFC 8949.
const (
	MajorUint Major = iota
	MajorNegInt
	MajorBytes
	MajorText
	MajorArray
	MajorMap
	MajorTag
	MajorSimple
)

func (m Major) String() string {
	switch m {
	case MajorUint:
		return "unsigned integer"
	case MajorNegInt:
		return "negative integer"
	case MajorBytes:
		return "byte string"
	case MajorText:
		return "text string"
	case MajorArray:
		return "array"
	case MajorMap:
		return "map"
	case MajorTag:
		return "tag"
	case MajorSimple:
		return "simple/float"
	}
	return fmt.Sprintf("major(%d)", uint8(m))
}

// Additional-information values with special meaning.
const (
	infoUint8      = 24
	infoUint16     = 25
	infoUint32     = 26
	infoUint64     = 27
	infoIndefinite = 31

	simpleFalse = 20
	simpleTrue  = 21
	simpleNull  = 22
)

// HeaderLen returns the size of the shortest header carrying arg.
func HeaderLen(arg uint64) int {
	switch {
	case arg < infoUint8:
		return 1
	case arg <= 0xff:
		return 2
	case arg <= 0xffff:
		return 3
	case arg <= 0xffffffff:
		return 5
	}
	return 9
}

// putHeader writes the shortest header for major and arg and returns its size.
func putHeader(dst []byte, major Major, arg uint64) int {
	lead := byte(major) << 5
	n := HeaderLen(arg)
	switch n {
	case 1:
		dst[0] = lead | byte(arg)
		return 1
	case 2:
		dst[0] = lead | infoUint8
	case 3:
		dst[0] = lead | infoUint16
	case 5:
		dst[0] = lead | infoUint32
	default:
		dst[0] = lead | infoUint64
	}
	for i := n - 1; i >= 1; i-- {
		dst[i] = byte(arg)
		arg >>= 8
	}
	return n
}

// AppendHeader appends the shortest header for major and arg to dst.
func AppendHeader(dst []byte, major Major, arg uint64) []byte {
	var buf [9]byte
	n := putHeader(buf[:], major, arg)
	return append(dst, buf[:n]...)
}

// EncodeUint returns the encoding of v as major type 0.
func EncodeUint(v uint64) []byte {
	return Marshal(Uint(v))
}

// EncodeBytes returns b as a byte string.
func EncodeBytes(b []byte) []byte {
	return Marshal(Bytes(b))
}

// EncodeText returns s as a text string.
func EncodeText(s string) []byte {
	return Marshal(Text(s))
}

// EncodeArray wraps already encoded items in a definite-length array header.
// The result is allocated once at its final size.
func EncodeArray(items ...[]byte) []byte {
	size := HeaderLen(uint64(len(items)))
	for _, it := range items {
		size += len(it)
	}
	dst := make([]byte, size)
	n := putHeader(dst, MajorArray, uint64(len(items)))
	for _, it := range items {
		n += copy(dst[n:], it)
	}
	return dst
}
