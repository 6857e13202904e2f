// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package c509tlv

// Value is a DER structure that knows its encoded size before it is written.
//
// The set of implementations is closed; build trees from [Primitive],
// [Constructed], [Raw] and the helper constructors in this package.
type Value interface {
	// EncodedLen returns the number of bytes the value occupies once encoded.
	EncodedLen() int

	put(dst []byte) int
}

// Marshal encodes v into a buffer allocated once at its exact final size.
func Marshal(v Value) []byte {
	dst := make([]byte, v.EncodedLen())
	v.put(dst)
	return dst
}

// Primitive is a record whose content is already known.
type Primitive struct {
	Tag     Tag
	Content []byte
}

// EncodedLen implements [Value].
func (p Primitive) EncodedLen() int { return EncodedLen(p.Tag, len(p.Content)) }

func (p Primitive) put(dst []byte) int {
	n := p.Tag.put(dst)
	n += putLength(dst[n:], len(p.Content))
	n += copy(dst[n:], p.Content)
	return n
}

// Constructed is a record whose content is the concatenation of its members.
type Constructed struct {
	Tag     Tag
	Members []Value
}

// Sequence returns a SEQUENCE of the given members.
func Sequence(members ...Value) Constructed {
	return Constructed{Tag: TagSequence, Members: members}
}

// Set returns a SET of the given members, kept in the order supplied.
func Set(members ...Value) Constructed {
	return Constructed{Tag: TagSet, Members: members}
}

func (c Constructed) contentLen() int {
	n := 0
	for _, m := range c.Members {
		n += m.EncodedLen()
	}
	return n
}

// EncodedLen implements [Value].
func (c Constructed) EncodedLen() int { return EncodedLen(c.Tag, c.contentLen()) }

func (c Constructed) put(dst []byte) int {
	n := c.Tag.put(dst)
	n += putLength(dst[n:], c.contentLen())
	for _, m := range c.Members {
		n += m.put(dst[n:])
	}
	return n
}

// Raw is a complete, already encoded record copied verbatim.
type Raw []byte

// EncodedLen implements [Value].
func (r Raw) EncodedLen() int { return len(r) }

func (r Raw) put(dst []byte) int { return copy(dst, r) }

// unsignedInteger writes an INTEGER from an unsigned big-endian magnitude,
// inserting the sign-guard octet only when the high bit requires it.
type unsignedInteger []byte

// UnsignedInteger returns an INTEGER holding the non-negative value whose
// big-endian magnitude is mag. Leading zero octets in mag are ignored.
func UnsignedInteger(mag []byte) Value {
	return unsignedInteger(trimLeadingZeros(mag))
}

func (u unsignedInteger) contentLen() int {
	switch {
	case len(u) == 0:
		return 1
	case u[0]&0x80 != 0:
		return len(u) + 1
	}
	return len(u)
}

func (u unsignedInteger) EncodedLen() int { return EncodedLen(TagInteger, u.contentLen()) }

func (u unsignedInteger) put(dst []byte) int {
	cl := u.contentLen()
	n := TagInteger.put(dst)
	n += putLength(dst[n:], cl)
	if cl != len(u) {
		dst[n] = 0x00
		n++
	}
	return n + copy(dst[n:], u)
}

// bitString writes a BIT STRING with no unused bits.
type bitString []byte

// BitString returns a BIT STRING whose bits are exactly the octets of b.
func BitString(b []byte) Value { return bitString(b) }

func (s bitString) EncodedLen() int { return EncodedLen(TagBitString, len(s)+1) }

func (s bitString) put(dst []byte) int {
	n := TagBitString.put(dst)
	n += putLength(dst[n:], len(s)+1)
	dst[n] = 0x00
	n++
	return n + copy(dst[n:], s)
}

// wrappedBitString writes a BIT STRING whose content is an encoded value.
type wrappedBitString struct{ v Value }

// BitStringOf returns a BIT STRING with no unused bits holding the encoding
// of v, as used for RSA public keys. v is written in place, without an
// intermediate buffer.
func BitStringOf(v Value) Value { return wrappedBitString{v} }

func (w wrappedBitString) EncodedLen() int { return EncodedLen(TagBitString, w.v.EncodedLen()+1) }

func (w wrappedBitString) put(dst []byte) int {
	n := TagBitString.put(dst)
	n += putLength(dst[n:], w.v.EncodedLen()+1)
	dst[n] = 0x00
	n++
	return n + w.v.put(dst[n:])
}

// Null is the DER NULL value.
var Null Value = Raw{0x05, 0x00}

// Boolean returns a DER BOOLEAN.
func Boolean(v bool) Value {
	if v {
		return Raw{0x01, 0x01, 0xff}
	}
	return Raw{0x01, 0x01, 0x00}
}

// ObjectIdentifier returns an OBJECT IDENTIFIER from its content octets.
func ObjectIdentifier(content []byte) Value {
	return Primitive{Tag: TagOID, Content: content}
}

// Explicitly wraps v in the constructed context-specific tag [n].
func Explicitly(n uint32, v Value) Value {
	return Constructed{Tag: Explicit(n), Members: []Value{v}}
}
