// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package c509pubkey

import (
	"fmt"

	"github.com/H0llyW00dzZ/c509-converter/src/internal/c509"
	c509bigint "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/bigint"
	c509cbor "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/cbor"
	c509oid "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/oid"
)

var defaultExponent = c509bigint.FromHex("10001")

// EncodeCompact returns the compact form of key:
//
//	EC:     [alg, curve, compressedPoint]
//	RSA:    [alg, n] or [alg, n, e] when e is not 65537
//	opaque: [alg, key]
func EncodeCompact(reg *c509oid.Registry, key PublicKey) c509cbor.Item {
	alg := reg.Item(c509oid.PublicKeyAlgorithm, key.Algorithm().OID)

	switch k := key.(type) {
	case *ECPublicKey:
		return c509cbor.Array{
			alg,
			reg.Item(c509oid.Curve, k.Curve.OID),
			c509cbor.Bytes(k.Curve.Compress(k.X, k.Y)),
		}
	case *RSAPublicKey:
		if k.E.Cmp(defaultExponent) == 0 {
			return c509cbor.Array{alg, c509cbor.Bytes(k.N.Bytes())}
		}
		return c509cbor.Array{alg, c509cbor.Bytes(k.N.Bytes()), c509cbor.Bytes(k.E.Bytes())}
	case *OpaquePublicKey:
		return c509cbor.Array{alg, c509cbor.Bytes(k.Key)}
	}
	panic(fmt.Sprintf("c509pubkey: unknown key type %T", key))
}

// DecodeCompact reads a key written by [EncodeCompact].
func DecodeCompact(reg *c509oid.Registry, d *c509cbor.Decoder) (PublicKey, error) {
	n, err := d.ReadArrayLen(2, 3)
	if err != nil {
		return nil, err
	}
	id, err := reg.ReadID(d, c509oid.PublicKeyAlgorithm)
	if err != nil {
		return nil, err
	}
	if !id.Known() {
		return nil, fmt.Errorf("%w: public key algorithm %s", c509.ErrUnsupportedAlgorithm, id)
	}

	switch id.Entry.Family {
	case c509oid.FamilyEC:
		if n != 3 {
			return nil, fmt.Errorf("%w: EC key array of %d elements", c509.ErrInvalidLength, n)
		}
		cid, err := reg.ReadID(d, c509oid.Curve)
		if err != nil {
			return nil, err
		}
		curve, ok := CurveByOID(cid.Bytes())
		if !ok {
			return nil, fmt.Errorf("%w: curve %s", c509.ErrUnsupportedAlgorithm, cid)
		}
		point, err := d.ReadBytes()
		if err != nil {
			return nil, err
		}
		x, y, err := curve.Unmarshal(point)
		if err != nil {
			return nil, err
		}
		return &ECPublicKey{Alg: id.Entry, Curve: curve, X: x, Y: y}, nil

	case c509oid.FamilyRSA:
		mod, err := d.ReadBytes()
		if err != nil {
			return nil, err
		}
		e := defaultExponent
		if n == 3 {
			eb, err := d.ReadBytes()
			if err != nil {
				return nil, err
			}
			e = c509bigint.FromBytes(eb)
		}
		if len(mod) == 0 || mod[0] == 0 || e.Sign() == 0 {
			return nil, fmt.Errorf("%w: RSA modulus or exponent not minimal", c509.ErrInvalidValue)
		}
		return &RSAPublicKey{Alg: id.Entry, N: c509bigint.FromBytes(mod), E: e}, nil

	case c509oid.FamilyOpaque:
		if n != 2 {
			return nil, fmt.Errorf("%w: %s key array of %d elements", c509.ErrInvalidLength, id, n)
		}
		key, err := d.ReadBytes()
		if err != nil {
			return nil, err
		}
		return &OpaquePublicKey{Alg: id.Entry, Key: key}, nil
	}
	return nil, fmt.Errorf("%w: public key family %s", c509.ErrUnsupportedAlgorithm, id.Entry.Family)
}
