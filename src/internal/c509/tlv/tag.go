// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package c509tlv

import "fmt"

// Class is the two-bit tag class of an identifier octet.
type Class uint8

// Tag classes.
const (
	ClassUniversal Class = iota
	ClassApplication
	ClassContextSpecific
	ClassPrivate
)

// Tag identifies the type of a TLV record.
type Tag struct {
	Class       Class
	Constructed bool
	Number      uint32
}

// Universal tags used by X.509 certificates.
var (
	TagBoolean         = Tag{Number: 1}
	TagInteger         = Tag{Number: 2}
	TagBitString       = Tag{Number: 3}
	TagOctetString     = Tag{Number: 4}
	TagNull            = Tag{Number: 5}
	TagOID             = Tag{Number: 6}
	TagUTF8String      = Tag{Number: 12}
	TagSequence        = Tag{Constructed: true, Number: 16}
	TagSet             = Tag{Constructed: true, Number: 17}
	TagNumericString   = Tag{Number: 18}
	TagPrintableString = Tag{Number: 19}
	TagTeletexString   = Tag{Number: 20}
	TagIA5String       = Tag{Number: 22}
	TagUTCTime         = Tag{Number: 23}
	TagGeneralizedTime = Tag{Number: 24}
	TagVisibleString   = Tag{Number: 26}
	TagUniversalString = Tag{Number: 28}
	TagBMPString       = Tag{Number: 30}
)

// Explicit returns the constructed context-specific tag [n], as used by
// EXPLICIT tagging in the certificate structure.
func Explicit(n uint32) Tag {
	return Tag{Class: ClassContextSpecific, Constructed: true, Number: n}
}

// TagFromByte returns the tag described by a single low-tag-number identifier octet.
func TagFromByte(b byte) Tag {
	return Tag{
		Class:       Class(b >> 6),
		Constructed: b&0x20 != 0,
		Number:      uint32(b & 0x1f),
	}
}

// Byte returns the single identifier octet for t. The second result is false
// when t needs the high-tag-number form and does not fit in one octet.
func (t Tag) Byte() (byte, bool) {
	if t.Number >= 0x1f {
		return 0, false
	}
	b := byte(t.Class)<<6 | byte(t.Number)
	if t.Constructed {
		b |= 0x20
	}
	return b, true
}

// String returns a compact description such as "[3]/c" or "16/c".
func (t Tag) String() string {
	s := fmt.Sprintf("%d", t.Number)
	switch t.Class {
	case ClassApplication:
		s = "APPLICATION " + s
	case ClassContextSpecific:
		s = "[" + s + "]"
	case ClassPrivate:
		s = "PRIVATE " + s
	}
	if t.Constructed {
		return s + "/c"
	}
	return s + "/p"
}

// encodedLen returns the number of identifier octets needed for t.
func (t Tag) encodedLen() int {
	if t.Number < 0x1f {
		return 1
	}
	n := 1
	for v := t.Number; v > 0; v >>= 7 {
		n++
	}
	return n
}

// put writes the identifier octets of t into dst and returns the count written.
func (t Tag) put(dst []byte) int {
	lead := byte(t.Class) << 6
	if t.Constructed {
		lead |= 0x20
	}
	if t.Number < 0x1f {
		dst[0] = lead | byte(t.Number)
		return 1
	}
	dst[0] = lead | 0x1f
	n := t.encodedLen()
	v := t.Number
	for i := n - 1; i >= 1; i-- {
		dst[i] = byte(v & 0x7f)
		if i != n-1 {
			dst[i] |= 0x80
		}
		v >>= 7
	}
	return n
}
