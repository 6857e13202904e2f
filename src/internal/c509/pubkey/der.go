// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package c509pubkey

import (
	"fmt"

	"github.com/H0llyW00dzZ/c509-converter/src/internal/c509"
	c509bigint "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/bigint"
	c509oid "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/oid"
	c509tlv "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/tlv"
)

// DecodeSubjectPublicKey parses a SubjectPublicKeyInfo SEQUENCE.
func DecodeSubjectPublicKey(reg *c509oid.Registry, spki c509tlv.Node) (PublicKey, error) {
	if err := spki.Expect(c509tlv.TagSequence); err != nil {
		return nil, err
	}
	members, err := spki.Members()
	if err != nil {
		return nil, err
	}
	if len(members) != 2 {
		return nil, fmt.Errorf("%w: SubjectPublicKeyInfo has %d members", c509.ErrInvalidValue, len(members))
	}

	oid, params, err := decodeAlgorithm(members[0])
	if err != nil {
		return nil, err
	}
	id := reg.LookupByBytes(c509oid.PublicKeyAlgorithm, oid)
	if !id.Known() {
		return nil, fmt.Errorf("%w: public key algorithm %s", c509.ErrUnsupportedAlgorithm, id)
	}
	key, err := c509tlv.BitStringBytes(members[1])
	if err != nil {
		return nil, err
	}

	switch id.Entry.Family {
	case c509oid.FamilyEC:
		if params == nil {
			return nil, fmt.Errorf("%w: EC key without named curve", c509.ErrUnsupportedAlgorithm)
		}
		if err := params.Expect(c509tlv.TagOID); err != nil {
			return nil, fmt.Errorf("EC parameters: %w", err)
		}
		curve, ok := CurveByOID(params.Value)
		if !ok {
			return nil, fmt.Errorf("%w: curve %s", c509.ErrUnsupportedAlgorithm, c509oid.String(params.Value))
		}
		x, y, err := curve.Unmarshal(key)
		if err != nil {
			return nil, err
		}
		return &ECPublicKey{Alg: id.Entry, Curve: curve, X: x, Y: y}, nil

	case c509oid.FamilyRSA:
		if params != nil && params.Tag != c509tlv.TagNull {
			return nil, fmt.Errorf("%w: RSA parameters must be NULL", c509.ErrInvalidValue)
		}
		return decodeRSAKey(id.Entry, key)

	case c509oid.FamilyOpaque:
		if params != nil {
			return nil, fmt.Errorf("%w: %s key with parameters", c509.ErrInvalidValue, id)
		}
		return &OpaquePublicKey{Alg: id.Entry, Key: key}, nil
	}
	return nil, fmt.Errorf("%w: public key family %s", c509.ErrUnsupportedAlgorithm, id.Entry.Family)
}

// decodeAlgorithm splits an AlgorithmIdentifier into its OID content and
// optional parameters.
func decodeAlgorithm(n c509tlv.Node) ([]byte, *c509tlv.Node, error) {
	if err := n.Expect(c509tlv.TagSequence); err != nil {
		return nil, nil, err
	}
	members, err := n.Members()
	if err != nil {
		return nil, nil, err
	}
	if len(members) < 1 || len(members) > 2 {
		return nil, nil, fmt.Errorf("%w: AlgorithmIdentifier has %d members", c509.ErrInvalidValue, len(members))
	}
	if err := members[0].Expect(c509tlv.TagOID); err != nil {
		return nil, nil, err
	}
	if len(members) == 1 {
		return members[0].Value, nil, nil
	}
	return members[0].Value, &members[1], nil
}

func decodeRSAKey(alg *c509oid.Entry, key []byte) (*RSAPublicKey, error) {
	seq, err := c509tlv.DecodeSingle(key)
	if err != nil {
		return nil, fmt.Errorf("RSA key: %w", err)
	}
	if err := seq.Expect(c509tlv.TagSequence); err != nil {
		return nil, fmt.Errorf("RSA key: %w", err)
	}
	members, err := seq.Members()
	if err != nil {
		return nil, err
	}
	if len(members) != 2 {
		return nil, fmt.Errorf("%w: RSAPublicKey has %d members", c509.ErrInvalidValue, len(members))
	}
	n, err := c509tlv.Unsigned(members[0])
	if err != nil {
		return nil, fmt.Errorf("RSA modulus: %w", err)
	}
	e, err := c509tlv.Unsigned(members[1])
	if err != nil {
		return nil, fmt.Errorf("RSA exponent: %w", err)
	}
	if len(n) == 0 || len(e) == 0 {
		return nil, fmt.Errorf("%w: zero RSA modulus or exponent", c509.ErrInvalidValue)
	}
	return &RSAPublicKey{Alg: alg, N: c509bigint.FromBytes(n), E: c509bigint.FromBytes(e)}, nil
}

// EncodeSubjectPublicKey returns the DER SubjectPublicKeyInfo of key. EC
// points are written uncompressed.
func EncodeSubjectPublicKey(key PublicKey) c509tlv.Value {
	alg := key.Algorithm()
	oid := c509tlv.ObjectIdentifier(alg.OID)

	switch k := key.(type) {
	case *ECPublicKey:
		return c509tlv.Sequence(
			c509tlv.Sequence(oid, c509tlv.ObjectIdentifier(k.Curve.OID)),
			c509tlv.BitString(k.Curve.Marshal(k.X, k.Y)),
		)
	case *RSAPublicKey:
		return c509tlv.Sequence(
			c509tlv.Sequence(oid, c509tlv.Null),
			c509tlv.BitStringOf(c509tlv.Sequence(
				c509tlv.UnsignedInteger(k.N.Bytes()),
				c509tlv.UnsignedInteger(k.E.Bytes()),
			)),
		)
	case *OpaquePublicKey:
		return c509tlv.Sequence(
			c509tlv.Sequence(oid),
			c509tlv.BitString(k.Key),
		)
	}
	panic(fmt.Sprintf("c509pubkey: unknown key type %T", key))
}
