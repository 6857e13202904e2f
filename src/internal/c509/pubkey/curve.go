// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package c509pubkey

import (
	"bytes"
	"crypto/elliptic"
	"fmt"
	"math/big"

	"github.com/H0llyW00dzZ/c509-converter/src/internal/c509"
	c509bigint "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/bigint"
	c509oid "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/oid"
)

// SEC1 point prefixes.
const (
	pointCompressedEven = 0x02
	pointCompressedOdd  = 0x03
	pointUncompressed   = 0x04
)

// Curve holds the short Weierstrass parameters y² = x³ + a·x + b over GF(p).
type Curve struct {
	Name string
	// OID holds the DER content octets of the named-curve identifier.
	OID     []byte
	A, B, P *big.Int
	// N is the order of the base point.
	N *big.Int
	// Size is the byte length of a field element.
	Size int
}

func nistCurve(name, dotted string, c elliptic.Curve) *Curve {
	p := c.Params()
	return &Curve{
		Name: name,
		OID:  c509oid.MustParse(dotted),
		A:    c509bigint.Sub(p.P, big.NewInt(3)),
		B:    p.B,
		P:    p.P,
		N:    p.N,
		Size: (p.BitSize + 7) / 8,
	}
}

// Supported curves.
var (
	P256 = nistCurve("P-256", "1.2.840.10045.3.1.7", elliptic.P256())
	P384 = nistCurve("P-384", "1.3.132.0.34", elliptic.P384())
	P521 = nistCurve("P-521", "1.3.132.0.35", elliptic.P521())

	Secp256k1 = &Curve{
		Name: "secp256k1",
		OID:  c509oid.MustParse("1.3.132.0.10"),
		A:    big.NewInt(0),
		B:    big.NewInt(7),
		P:    c509bigint.FromHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F"),
		N:    c509bigint.FromHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141"),
		Size: 32,
	}
)

var curves = []*Curve{P256, P384, P521, Secp256k1}

// CurveByOID returns the curve named by the DER content octets oid.
func CurveByOID(oid []byte) (*Curve, bool) {
	for _, c := range curves {
		if bytes.Equal(c.OID, oid) {
			return c, true
		}
	}
	return nil, false
}

// CurveByName returns the curve with the given name, such as "P-256".
func CurveByName(name string) (*Curve, bool) {
	for _, c := range curves {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// rhs returns x³ + a·x + b mod p.
func (c *Curve) rhs(x *big.Int) *big.Int {
	x3 := c509bigint.Mul(c509bigint.Mul(x, x), x)
	ax := c509bigint.Mul(c.A, x)
	return c509bigint.Mod(c509bigint.Add(c509bigint.Add(x3, ax), c.B), c.P)
}

func (c *Curve) inField(v *big.Int) bool {
	return v.Sign() >= 0 && v.Cmp(c.P) < 0
}

// IsOnCurve reports whether (x, y) satisfies the curve equation.
func (c *Curve) IsOnCurve(x, y *big.Int) bool {
	if x == nil || y == nil || !c.inField(x) || !c.inField(y) {
		return false
	}
	y2 := c509bigint.Mod(c509bigint.Mul(y, y), c.P)
	return y2.Cmp(c.rhs(x)) == 0
}

// Decompress recovers y from x and the parity bit of y.
func (c *Curve) Decompress(x *big.Int, odd bool) (*big.Int, error) {
	if !c.inField(x) {
		return nil, fmt.Errorf("%w: x coordinate out of range for %s", c509.ErrInvalidCurvePoint, c.Name)
	}
	y, err := c509bigint.SqrtMod(c.rhs(x), c.P)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Name, err)
	}
	if c509bigint.IsOdd(y) != odd {
		if y.Sign() == 0 {
			return nil, fmt.Errorf("%w: no %s point with odd y at x = 0x%x", c509.ErrInvalidCurvePoint, c.Name, x)
		}
		y = c509bigint.Sub(c.P, y)
	}
	return y, nil
}

// Compress returns the SEC1 compressed encoding (0x02|parity) || x.
func (c *Curve) Compress(x, y *big.Int) []byte {
	out := make([]byte, 1+c.Size)
	out[0] = pointCompressedEven
	if c509bigint.IsOdd(y) {
		out[0] = pointCompressedOdd
	}
	x.FillBytes(out[1:])
	return out
}

// Marshal returns the SEC1 uncompressed encoding 0x04 || x || y.
func (c *Curve) Marshal(x, y *big.Int) []byte {
	out := make([]byte, 1+2*c.Size)
	out[0] = pointUncompressed
	x.FillBytes(out[1 : 1+c.Size])
	y.FillBytes(out[1+c.Size:])
	return out
}

// Unmarshal parses a compressed or uncompressed SEC1 point and checks that
// it lies on the curve.
func (c *Curve) Unmarshal(b []byte) (*big.Int, *big.Int, error) {
	if len(b) == 0 {
		return nil, nil, fmt.Errorf("%w: empty %s point", c509.ErrInvalidCurvePoint, c.Name)
	}

	switch b[0] {
	case pointCompressedEven, pointCompressedOdd:
		if len(b) != 1+c.Size {
			return nil, nil, fmt.Errorf("%w: compressed %s point of %d bytes", c509.ErrInvalidCurvePoint, c.Name, len(b))
		}
		x := c509bigint.FromBytes(b[1:])
		y, err := c.Decompress(x, b[0]&1 == 1)
		if err != nil {
			return nil, nil, err
		}
		return x, y, nil

	case pointUncompressed:
		if len(b) != 1+2*c.Size {
			return nil, nil, fmt.Errorf("%w: uncompressed %s point of %d bytes", c509.ErrInvalidCurvePoint, c.Name, len(b))
		}
		x := c509bigint.FromBytes(b[1 : 1+c.Size])
		y := c509bigint.FromBytes(b[1+c.Size:])
		if !c.IsOnCurve(x, y) {
			return nil, nil, fmt.Errorf("%w: point is not on %s", c509.ErrInvalidCurvePoint, c.Name)
		}
		return x, y, nil
	}
	return nil, nil, fmt.Errorf("%w: unknown point prefix 0x%02x", c509.ErrInvalidCurvePoint, b[0])
}
