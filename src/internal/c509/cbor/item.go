// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package c509cbor

// Item is a CBOR data item that knows its encoded size before it is written.
type Item interface {
	// EncodedLen returns the number of bytes the item occupies once encoded.
	EncodedLen() int

	put(dst []byte) int
}

// Marshal encodes it into a buffer allocated once at its exact final size.
func Marshal(it Item) []byte {
	dst := make([]byte, it.EncodedLen())
	it.put(dst)
	return dst
}

// Uint is an unsigned integer (major type 0).
type Uint uint64

// EncodedLen implements [Item].
func (u Uint) EncodedLen() int { return HeaderLen(uint64(u)) }

func (u Uint) put(dst []byte) int { return putHeader(dst, MajorUint, uint64(u)) }

// Int is a signed integer, written as major type 0 or 1 depending on sign.
type Int int64

func (i Int) header() (Major, uint64) {
	if i < 0 {
		return MajorNegInt, uint64(^i)
	}
	return MajorUint, uint64(i)
}

// EncodedLen implements [Item].
func (i Int) EncodedLen() int {
	_, arg := i.header()
	return HeaderLen(arg)
}

func (i Int) put(dst []byte) int {
	major, arg := i.header()
	return putHeader(dst, major, arg)
}

// Bytes is a byte string (major type 2).
type Bytes []byte

// EncodedLen implements [Item].
func (b Bytes) EncodedLen() int { return HeaderLen(uint64(len(b))) + len(b) }

func (b Bytes) put(dst []byte) int {
	n := putHeader(dst, MajorBytes, uint64(len(b)))
	return n + copy(dst[n:], b)
}

// Text is a UTF-8 text string (major type 3).
type Text string

// EncodedLen implements [Item].
func (s Text) EncodedLen() int { return HeaderLen(uint64(len(s))) + len(s) }

func (s Text) put(dst []byte) int {
	n := putHeader(dst, MajorText, uint64(len(s)))
	return n + copy(dst[n:], s)
}

// Array is a definite-length array (major type 4).
type Array []Item

// EncodedLen implements [Item].
func (a Array) EncodedLen() int {
	n := HeaderLen(uint64(len(a)))
	for _, it := range a {
		n += it.EncodedLen()
	}
	return n
}

func (a Array) put(dst []byte) int {
	n := putHeader(dst, MajorArray, uint64(len(a)))
	for _, it := range a {
		n += it.put(dst[n:])
	}
	return n
}

// Bool is the simple value false or true.
type Bool bool

// EncodedLen implements [Item].
func (Bool) EncodedLen() int { return 1 }

func (b Bool) put(dst []byte) int {
	if b {
		dst[0] = byte(MajorSimple)<<5 | simpleTrue
	} else {
		dst[0] = byte(MajorSimple)<<5 | simpleFalse
	}
	return 1
}

type null struct{}

// Null is the simple value null.
var Null Item = null{}

// EncodedLen implements [Item].
func (null) EncodedLen() int { return 1 }

func (null) put(dst []byte) int {
	dst[0] = byte(MajorSimple)<<5 | simpleNull
	return 1
}

// RawItem is a complete, already encoded data item copied verbatim.
type RawItem []byte

// EncodedLen implements [Item].
func (r RawItem) EncodedLen() int { return len(r) }

func (r RawItem) put(dst []byte) int { return copy(dst, r) }
