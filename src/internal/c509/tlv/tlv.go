// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package c509tlv

import (
	"fmt"
	"math"

	"github.com/H0llyW00dzZ/c509-converter/src/internal/c509"
)

// maxLengthOctets is the widest long-form length accepted by the decoder.
const maxLengthOctets = 4

// Node is one decoded TLV record. Value and Raw borrow from the decoder input.
type Node struct {
	Tag    Tag
	Length int
	// Value holds the content octets.
	Value []byte
	// Raw holds the complete record, identifier and length octets included.
	Raw []byte
}

// Members decodes the content of a constructed node as a sequence of records.
func (n Node) Members() ([]Node, error) {
	if !n.Tag.Constructed {
		return nil, fmt.Errorf("%w: %s is not constructed", c509.ErrUnexpectedTag, n.Tag)
	}
	return DecodeAll(n.Value)
}

// Expect returns an error wrapping [c509.ErrUnexpectedTag] unless n carries tag.
func (n Node) Expect(tag Tag) error {
	if n.Tag != tag {
		return fmt.Errorf("%w: got %s, want %s", c509.ErrUnexpectedTag, n.Tag, tag)
	}
	return nil
}

// Decode reads one TLV record starting at offset and reports the number of
// bytes it occupies.
func Decode(b []byte, offset int) (Node, int, error) {
	if offset < 0 || offset >= len(b) {
		return Node{}, 0, fmt.Errorf("%w: no identifier octet at offset %d", c509.ErrTruncatedInput, offset)
	}
	in := b[offset:]

	tag, i, err := decodeIdentifier(in)
	if err != nil {
		return Node{}, 0, err
	}

	length, n, err := decodeLength(in[i:])
	if err != nil {
		return Node{}, 0, err
	}
	i += n

	if length > len(in)-i {
		return Node{}, 0, fmt.Errorf("%w: declared length %d, %d bytes remaining",
			c509.ErrTruncatedInput, length, len(in)-i)
	}

	total := i + length
	return Node{
		Tag:    tag,
		Length: length,
		Value:  in[i:total:total],
		Raw:    in[:total:total],
	}, total, nil
}

// DecodeAll decodes b as a concatenation of TLV records.
func DecodeAll(b []byte) ([]Node, error) {
	var nodes []Node
	for off := 0; off < len(b); {
		node, n, err := Decode(b, off)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
		off += n
	}
	return nodes, nil
}

// DecodeSingle decodes exactly one record spanning all of b.
func DecodeSingle(b []byte) (Node, error) {
	node, n, err := Decode(b, 0)
	if err != nil {
		return Node{}, err
	}
	if n != len(b) {
		return Node{}, fmt.Errorf("%w: %d bytes after record", c509.ErrTrailingData, len(b)-n)
	}
	return node, nil
}

// Encode writes tag, the minimal length and value into a buffer allocated once
// at its exact final size.
func Encode(tag Tag, value []byte) []byte {
	dst := make([]byte, EncodedLen(tag, len(value)))
	n := tag.put(dst)
	n += putLength(dst[n:], len(value))
	copy(dst[n:], value)
	return dst
}

// EncodedLen returns the size of a record with the given tag and content length.
func EncodedLen(tag Tag, valueLen int) int {
	return tag.encodedLen() + lengthLen(valueLen) + valueLen
}

// decodeIdentifier reads the identifier octets, including the high-tag-number form.
func decodeIdentifier(b []byte) (Tag, int, error) {
	tag := TagFromByte(b[0])
	if b[0]&0x1f != 0x1f {
		return tag, 1, nil
	}

	var number uint64
	for i := 1; ; i++ {
		if i >= len(b) {
			return Tag{}, 0, fmt.Errorf("%w: unterminated high tag number", c509.ErrTruncatedInput)
		}
		if i == 1 && b[i] == 0x80 {
			return Tag{}, 0, fmt.Errorf("%w: tag number has leading zero octet", c509.ErrUnexpectedTag)
		}
		number = number<<7 | uint64(b[i]&0x7f)
		if number > math.MaxUint32 {
			return Tag{}, 0, fmt.Errorf("%w: tag number overflows", c509.ErrUnexpectedTag)
		}
		if b[i]&0x80 == 0 {
			tag.Number = uint32(number)
			return tag, i + 1, nil
		}
	}
}

// decodeLength reads the length octets. The indefinite form is not supported.
func decodeLength(b []byte) (int, int, error) {
	if len(b) == 0 {
		return 0, 0, fmt.Errorf("%w: missing length octet", c509.ErrTruncatedInput)
	}
	first := b[0]
	switch {
	case first < 0x80:
		return int(first), 1, nil
	case first == 0x80:
		return 0, 0, fmt.Errorf("%w: indefinite length", c509.ErrInvalidLength)
	}

	count := int(first & 0x7f)
	if count > maxLengthOctets {
		return 0, 0, fmt.Errorf("%w: %d length octets", c509.ErrInvalidLength, count)
	}
	if count > len(b)-1 {
		return 0, 0, fmt.Errorf("%w: length needs %d octets", c509.ErrTruncatedInput, count)
	}

	var length uint64
	for _, o := range b[1 : 1+count] {
		length = length<<8 | uint64(o)
	}
	if length > math.MaxInt32 {
		return 0, 0, fmt.Errorf("%w: length %d too large", c509.ErrInvalidLength, length)
	}
	return int(length), 1 + count, nil
}

// lengthLen returns the number of octets used to encode length in DER.
func lengthLen(length int) int {
	if length < 0x80 {
		return 1
	}
	n := 1
	for ; length > 0; length >>= 8 {
		n++
	}
	return n
}

// putLength writes length in minimal DER form and returns the count written.
func putLength(dst []byte, length int) int {
	if length < 0x80 {
		dst[0] = byte(length)
		return 1
	}
	n := lengthLen(length)
	dst[0] = 0x80 | byte(n-1)
	for i := n - 1; i >= 1; i-- {
		dst[i] = byte(length)
		length >>= 8
	}
	return n
}
