// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package c509bigint provides the arbitrary-precision arithmetic needed to
// compress and decompress elliptic-curve points.
//
// Every function returns a freshly allocated result and never mutates its
// operands, so values may be shared freely between goroutines.
package c509bigint

import (
	"fmt"
	"math/big"

	"github.com/H0llyW00dzZ/c509-converter/src/internal/c509"
)

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
	four  = big.NewInt(4)
)

// FromBytes interprets b as an unsigned big-endian integer.
func FromBytes(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// FromHex parses a base-16 constant. It panics on malformed input and is
// meant for package-level curve parameters.
func FromHex(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("c509bigint: invalid hex constant " + s)
	}
	return v
}

// Add returns a + b.
func Add(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) }

// Sub returns a - b.
func Sub(a, b *big.Int) *big.Int { return new(big.Int).Sub(a, b) }

// Mul returns a * b.
func Mul(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) }

// Mod returns a mod m in the range [0, m).
func Mod(a, m *big.Int) *big.Int { return new(big.Int).Mod(a, m) }

// Exp returns base^exp mod m.
func Exp(base, exp, m *big.Int) *big.Int { return new(big.Int).Exp(base, exp, m) }

// IsOdd reports whether a is odd.
func IsOdd(a *big.Int) bool { return a.Bit(0) == 1 }

// ByteLen returns the minimal number of bytes needed to hold |a|.
func ByteLen(a *big.Int) int { return (a.BitLen() + 7) / 8 }

// PadBytes returns a as a big-endian byte string left-padded with zeros to
// size bytes. It fails if a does not fit.
func PadBytes(a *big.Int, size int) ([]byte, error) {
	if a.Sign() < 0 || ByteLen(a) > size {
		return nil, fmt.Errorf("%w: integer of %d bytes does not fit in %d",
			c509.ErrInvalidValue, ByteLen(a), size)
	}
	return a.FillBytes(make([]byte, size)), nil
}

// SqrtMod returns a square root of a modulo the odd prime p.
//
// When p ≡ 3 (mod 4) the root is a^((p+1)/4) mod p; otherwise the general
// Tonelli-Shanks algorithm is used. The candidate is squared and compared
// against a, and an error wrapping [c509.ErrInvalidCurvePoint] is returned
// when a is not a quadratic residue.
func SqrtMod(a, p *big.Int) (*big.Int, error) {
	a = Mod(a, p)

	var root *big.Int
	if Mod(p, four).Cmp(three) == 0 {
		e := new(big.Int).Rsh(Add(p, one), 2)
		root = Exp(a, e, p)
	} else {
		root = new(big.Int).ModSqrt(a, p)
		if root == nil {
			return nil, fmt.Errorf("%w: value is not a square modulo p", c509.ErrInvalidCurvePoint)
		}
	}

	if Exp(root, two, p).Cmp(a) != 0 {
		return nil, fmt.Errorf("%w: value is not a square modulo p", c509.ErrInvalidCurvePoint)
	}
	return root, nil
}
