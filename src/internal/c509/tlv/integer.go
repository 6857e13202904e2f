// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package c509tlv

import (
	"fmt"

	"github.com/H0llyW00dzZ/c509-converter/src/internal/c509"
)

// Unsigned returns the big-endian magnitude of a non-negative INTEGER node,
// with the sign-guard octet and any other leading zeros removed. Zero yields
// an empty slice. The result borrows from n.
func Unsigned(n Node) ([]byte, error) {
	if err := n.Expect(TagInteger); err != nil {
		return nil, err
	}
	if len(n.Value) == 0 {
		return nil, fmt.Errorf("%w: empty INTEGER", c509.ErrInvalidValue)
	}
	if n.Value[0]&0x80 != 0 {
		return nil, fmt.Errorf("%w: negative INTEGER", c509.ErrInvalidValue)
	}
	return trimLeadingZeros(n.Value), nil
}

// SmallInt returns the value of a non-negative INTEGER that fits in an int.
func SmallInt(n Node) (int, error) {
	mag, err := Unsigned(n)
	if err != nil {
		return 0, err
	}
	if len(mag) > 3 {
		return 0, fmt.Errorf("%w: INTEGER too large", c509.ErrInvalidValue)
	}
	v := 0
	for _, b := range mag {
		v = v<<8 | int(b)
	}
	return v, nil
}

// BitStringBytes returns the content of a BIT STRING node that has no unused bits.
func BitStringBytes(n Node) ([]byte, error) {
	if err := n.Expect(TagBitString); err != nil {
		return nil, err
	}
	if len(n.Value) == 0 {
		return nil, fmt.Errorf("%w: empty BIT STRING", c509.ErrInvalidValue)
	}
	if n.Value[0] != 0 {
		return nil, fmt.Errorf("%w: BIT STRING with %d unused bits", c509.ErrInvalidValue, n.Value[0])
	}
	return n.Value[1:], nil
}

// BoolValue returns the value of a BOOLEAN node.
func BoolValue(n Node) (bool, error) {
	if err := n.Expect(TagBoolean); err != nil {
		return false, err
	}
	if len(n.Value) != 1 {
		return false, fmt.Errorf("%w: BOOLEAN of %d octets", c509.ErrInvalidValue, len(n.Value))
	}
	return n.Value[0] != 0, nil
}

func trimLeadingZeros(b []byte) []byte {
	for len(b) > 0 && b[0] == 0 {
		b = b[1:]
	}
	return b
}
