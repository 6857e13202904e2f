// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package c509sig converts certificate signature values between the octets
// carried in the DER signature BIT STRING and their compact form.
//
// Signature values are never verified, only re-encoded.
package c509sig

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/H0llyW00dzZ/c509-converter/src/internal/c509"
	c509bigint "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/bigint"
	c509oid "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/oid"
	c509tlv "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/tlv"
)

// Value is one of [ECDSA], [RSA], [MAC] or [EdDSA].
type Value interface {
	// Family returns the algorithm family the value belongs to.
	Family() c509oid.Family

	signatureValue()
}

// ECDSA is an (r, s) pair.
type ECDSA struct {
	R, S *big.Int
}

// RSA is the signature representative s as an unsigned integer.
type RSA struct {
	S *big.Int
}

// MAC is an opaque authentication tag.
type MAC struct {
	Tag []byte
}

// EdDSA is an opaque Ed25519 or Ed448 signature.
type EdDSA struct {
	Sig []byte
}

// Family implements [Value].
func (ECDSA) Family() c509oid.Family { return c509oid.FamilyECDSA }

// Family implements [Value].
func (RSA) Family() c509oid.Family { return c509oid.FamilyRSA }

// Family implements [Value].
func (MAC) Family() c509oid.Family { return c509oid.FamilyMAC }

// Family implements [Value].
func (EdDSA) Family() c509oid.Family { return c509oid.FamilyEdDSA }

func (ECDSA) signatureValue() {}
func (RSA) signatureValue()   {}
func (MAC) signatureValue()   {}
func (EdDSA) signatureValue() {}

// Equal reports whether a and b hold the same signature.
func Equal(a, b Value) bool {
	switch va := a.(type) {
	case ECDSA:
		vb, ok := b.(ECDSA)
		return ok && va.R.Cmp(vb.R) == 0 && va.S.Cmp(vb.S) == 0
	case RSA:
		vb, ok := b.(RSA)
		return ok && va.S.Cmp(vb.S) == 0
	case MAC:
		vb, ok := b.(MAC)
		return ok && bytes.Equal(va.Tag, vb.Tag)
	case EdDSA:
		vb, ok := b.(EdDSA)
		return ok && bytes.Equal(va.Sig, vb.Sig)
	}
	return a == nil && b == nil
}

// DecodeSignatureValue parses the content of the certificate signature BIT
// STRING for the given family. ECDSA values are a DER SEQUENCE of two
// INTEGERs whose sign-guard octets are dropped.
func DecodeSignatureValue(family c509oid.Family, b []byte) (Value, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty signature", c509.ErrSignatureComponentMismatch)
	}

	switch family {
	case c509oid.FamilyECDSA:
		return decodeECDSA(b)
	case c509oid.FamilyRSA:
		return RSA{S: c509bigint.FromBytes(b)}, nil
	case c509oid.FamilyMAC:
		return MAC{Tag: b}, nil
	case c509oid.FamilyEdDSA:
		return EdDSA{Sig: b}, nil
	}
	return nil, fmt.Errorf("%w: signature family %s", c509.ErrUnsupportedAlgorithm, family)
}

func decodeECDSA(b []byte) (Value, error) {
	seq, err := c509tlv.DecodeSingle(b)
	if err != nil {
		return nil, fmt.Errorf("%w: ECDSA-Sig-Value: %w", c509.ErrSignatureComponentMismatch, err)
	}
	if err := seq.Expect(c509tlv.TagSequence); err != nil {
		return nil, fmt.Errorf("%w: ECDSA-Sig-Value: %w", c509.ErrSignatureComponentMismatch, err)
	}
	members, err := seq.Members()
	if err != nil {
		return nil, fmt.Errorf("%w: ECDSA-Sig-Value: %w", c509.ErrSignatureComponentMismatch, err)
	}
	if len(members) != 2 {
		return nil, fmt.Errorf("%w: ECDSA-Sig-Value has %d members", c509.ErrSignatureComponentMismatch, len(members))
	}

	var rs [2]*big.Int
	for i, m := range members {
		mag, err := c509tlv.Unsigned(m)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", c509.ErrSignatureComponentMismatch, err)
		}
		if len(mag) == 0 {
			return nil, fmt.Errorf("%w: zero ECDSA component", c509.ErrSignatureComponentMismatch)
		}
		rs[i] = c509bigint.FromBytes(mag)
	}
	return ECDSA{R: rs[0], S: rs[1]}, nil
}

// EncodeSignatureValue returns the compact form of v. ECDSA components are
// left-padded to the width of the longer one and concatenated.
func EncodeSignatureValue(v Value) []byte {
	switch sv := v.(type) {
	case ECDSA:
		width := max(c509bigint.ByteLen(sv.R), c509bigint.ByteLen(sv.S))
		out := make([]byte, 2*width)
		sv.R.FillBytes(out[:width])
		sv.S.FillBytes(out[width:])
		return out
	case RSA:
		return sv.S.Bytes()
	case MAC:
		return sv.Tag
	case EdDSA:
		return sv.Sig
	}
	panic(fmt.Sprintf("c509sig: unknown signature value %T", v))
}

// DecodeCompact parses a compact signature value for the given family.
func DecodeCompact(family c509oid.Family, b []byte) (Value, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty signature", c509.ErrSignatureComponentMismatch)
	}

	switch family {
	case c509oid.FamilyECDSA:
		if len(b)%2 != 0 {
			return nil, fmt.Errorf("%w: ECDSA signature of odd length %d", c509.ErrSignatureComponentMismatch, len(b))
		}
		half := len(b) / 2
		r, s := c509bigint.FromBytes(b[:half]), c509bigint.FromBytes(b[half:])
		if r.Sign() == 0 || s.Sign() == 0 {
			return nil, fmt.Errorf("%w: zero ECDSA component", c509.ErrSignatureComponentMismatch)
		}
		return ECDSA{R: r, S: s}, nil
	case c509oid.FamilyRSA:
		if b[0] == 0 {
			return nil, fmt.Errorf("%w: RSA signature has leading zero", c509.ErrSignatureComponentMismatch)
		}
		return RSA{S: c509bigint.FromBytes(b)}, nil
	case c509oid.FamilyMAC:
		return MAC{Tag: b}, nil
	case c509oid.FamilyEdDSA:
		return EdDSA{Sig: b}, nil
	}
	return nil, fmt.Errorf("%w: signature family %s", c509.ErrUnsupportedAlgorithm, family)
}

// EncodeDER returns the octets to place in the certificate signature BIT STRING.
func EncodeDER(v Value) []byte {
	switch sv := v.(type) {
	case ECDSA:
		return c509tlv.Marshal(c509tlv.Sequence(
			c509tlv.UnsignedInteger(sv.R.Bytes()),
			c509tlv.UnsignedInteger(sv.S.Bytes()),
		))
	case RSA:
		return sv.S.Bytes()
	case MAC:
		return sv.Tag
	case EdDSA:
		return sv.Sig
	}
	panic(fmt.Sprintf("c509sig: unknown signature value %T", v))
}
