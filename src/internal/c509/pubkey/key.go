// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package c509pubkey

import (
	"bytes"
	"math/big"

	c509oid "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/oid"
)

// DefaultRSAExponent is the public exponent omitted from compact RSA keys.
const DefaultRSAExponent = 65537

// PublicKey is one of [*ECPublicKey], [*RSAPublicKey] or [*OpaquePublicKey].
type PublicKey interface {
	// Algorithm returns the registry entry of the key algorithm.
	Algorithm() *c509oid.Entry

	publicKey()
}

// ECPublicKey is a point on a named curve.
type ECPublicKey struct {
	Alg   *c509oid.Entry
	Curve *Curve
	X, Y  *big.Int
}

// RSAPublicKey is an RSA modulus and public exponent.
type RSAPublicKey struct {
	Alg *c509oid.Entry
	N   *big.Int
	E   *big.Int
}

// OpaquePublicKey is a key whose bit string content is carried unchanged,
// such as an Ed25519 or X25519 key.
type OpaquePublicKey struct {
	Alg *c509oid.Entry
	Key []byte
}

// Algorithm implements [PublicKey].
func (k *ECPublicKey) Algorithm() *c509oid.Entry { return k.Alg }

// Algorithm implements [PublicKey].
func (k *RSAPublicKey) Algorithm() *c509oid.Entry { return k.Alg }

// Algorithm implements [PublicKey].
func (k *OpaquePublicKey) Algorithm() *c509oid.Entry { return k.Alg }

func (*ECPublicKey) publicKey()     {}
func (*RSAPublicKey) publicKey()    {}
func (*OpaquePublicKey) publicKey() {}

// Equal reports whether a and b are the same key. Algorithms are compared
// by OID so keys from different registries can be compared.
func Equal(a, b PublicKey) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if !bytes.Equal(a.Algorithm().OID, b.Algorithm().OID) {
		return false
	}

	switch ka := a.(type) {
	case *ECPublicKey:
		kb, ok := b.(*ECPublicKey)
		return ok && ka.Curve == kb.Curve && ka.X.Cmp(kb.X) == 0 && ka.Y.Cmp(kb.Y) == 0
	case *RSAPublicKey:
		kb, ok := b.(*RSAPublicKey)
		return ok && ka.N.Cmp(kb.N) == 0 && ka.E.Cmp(kb.E) == 0
	case *OpaquePublicKey:
		kb, ok := b.(*OpaquePublicKey)
		return ok && bytes.Equal(ka.Key, kb.Key)
	}
	return false
}
