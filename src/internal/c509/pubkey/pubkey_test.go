// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package c509pubkey_test

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/c509-converter/src/internal/c509"
	c509bigint "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/bigint"
	c509cbor "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/cbor"
	c509oid "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/oid"
	c509pubkey "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/pubkey"
	c509tlv "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/tlv"
)

func TestGeneratorsAreOnCurve(t *testing.T) {
	tests := []struct {
		curve  *c509pubkey.Curve
		gx, gy *big.Int
	}{
		{c509pubkey.P256, elliptic.P256().Params().Gx, elliptic.P256().Params().Gy},
		{c509pubkey.P384, elliptic.P384().Params().Gx, elliptic.P384().Params().Gy},
		{c509pubkey.P521, elliptic.P521().Params().Gx, elliptic.P521().Params().Gy},
		{
			c509pubkey.Secp256k1,
			c509bigint.FromHex("79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798"),
			c509bigint.FromHex("483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.curve.Name, func(t *testing.T) {
			assert.True(t, tt.curve.IsOnCurve(tt.gx, tt.gy))
			assert.False(t, tt.curve.IsOnCurve(tt.gx, c509bigint.Add(tt.gy, big.NewInt(1))))

			negY := c509bigint.Sub(tt.curve.P, tt.gy)
			for _, y := range []*big.Int{tt.gy, negY} {
				compressed := tt.curve.Compress(tt.gx, y)
				require.Len(t, compressed, 1+tt.curve.Size)

				x, got, err := tt.curve.Unmarshal(compressed)
				require.NoError(t, err)
				assert.Equal(t, 0, x.Cmp(tt.gx))
				assert.Equal(t, 0, got.Cmp(y))
			}
		})
	}
}

func TestCompressRoundTripRandomKeys(t *testing.T) {
	for _, ec := range []elliptic.Curve{elliptic.P256(), elliptic.P384(), elliptic.P521()} {
		curve, ok := c509pubkey.CurveByName(ec.Params().Name)
		require.True(t, ok, ec.Params().Name)

		for range 16 {
			priv, err := ecdsa.GenerateKey(ec, rand.Reader)
			require.NoError(t, err)

			x, y, err := curve.Unmarshal(curve.Compress(priv.X, priv.Y))
			require.NoError(t, err)
			assert.Equal(t, 0, x.Cmp(priv.X))
			assert.Equal(t, 0, y.Cmp(priv.Y))

			x, y, err = curve.Unmarshal(curve.Marshal(priv.X, priv.Y))
			require.NoError(t, err)
			assert.Equal(t, 0, x.Cmp(priv.X))
			assert.Equal(t, 0, y.Cmp(priv.Y))
		}
	}
}

func TestDecompressOddParity(t *testing.T) {
	curve := c509pubkey.P256
	x := new(big.Int).Lsh(big.NewInt(0x1234), 8*30)

	var y *big.Int
	for range 256 {
		var err error
		if y, err = curve.Decompress(x, true); err == nil {
			break
		}
		require.ErrorIs(t, err, c509.ErrInvalidCurvePoint)
		x = c509bigint.Add(x, big.NewInt(1))
	}
	require.NotNil(t, y)
	assert.True(t, c509bigint.IsOdd(y))
	assert.True(t, curve.IsOnCurve(x, y))

	compressed := curve.Compress(x, y)
	assert.Equal(t, byte(0x03), compressed[0])
	assert.Equal(t, []byte{0x12, 0x34}, compressed[1:3])
}

func TestUnmarshalErrors(t *testing.T) {
	curve := c509pubkey.P256
	params := elliptic.P256().Params()

	tests := []struct {
		name  string
		input []byte
	}{
		{name: "empty", input: nil},
		{name: "unknown prefix", input: append([]byte{0x05}, make([]byte, 32)...)},
		{name: "short compressed", input: []byte{0x02, 0x01}},
		{name: "short uncompressed", input: []byte{0x04, 0x01, 0x02}},
		{name: "x out of range", input: append([]byte{0x02}, bytesOf(params.P, 32)...)},
		{name: "not on curve", input: append(append([]byte{0x04}, bytesOf(params.Gx, 32)...), bytesOf(params.Gx, 32)...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := curve.Unmarshal(tt.input)
			assert.ErrorIs(t, err, c509.ErrInvalidCurvePoint)
		})
	}

	t.Run("no square root", func(t *testing.T) {
		x := big.NewInt(1)
		for {
			if _, err := curve.Decompress(x, false); err != nil {
				assert.ErrorIs(t, err, c509.ErrInvalidCurvePoint)
				return
			}
			x = c509bigint.Add(x, big.NewInt(1))
		}
	})
}

func bytesOf(v *big.Int, size int) []byte {
	return v.FillBytes(make([]byte, size))
}

func generateKeys(t *testing.T) map[string]any {
	t.Helper()

	p256, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	p521, err := ecdsa.GenerateKey(elliptic.P521(), rand.Reader)
	require.NoError(t, err)
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	edPub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	return map[string]any{
		"P-256":   &p256.PublicKey,
		"P-521":   &p521.PublicKey,
		"RSA":     &rsaKey.PublicKey,
		"Ed25519": edPub,
	}
}

func TestSubjectPublicKeyRoundTrip(t *testing.T) {
	for name, pub := range generateKeys(t) {
		t.Run(name, func(t *testing.T) {
			der, err := x509.MarshalPKIXPublicKey(pub)
			require.NoError(t, err)

			node, err := c509tlv.DecodeSingle(der)
			require.NoError(t, err)
			key, err := c509pubkey.DecodeSubjectPublicKey(c509oid.Default, node)
			require.NoError(t, err)

			assert.Equal(t, der, c509tlv.Marshal(c509pubkey.EncodeSubjectPublicKey(key)))

			compact := c509cbor.Marshal(c509pubkey.EncodeCompact(c509oid.Default, key))
			require.NoError(t, c509cbor.Wellformed(compact))

			d := c509cbor.NewDecoder(compact)
			back, err := c509pubkey.DecodeCompact(c509oid.Default, d)
			require.NoError(t, err)
			require.NoError(t, d.Done())
			assert.True(t, c509pubkey.Equal(key, back))
			assert.Less(t, len(compact), len(der))
		})
	}
}

func TestRSAExponent(t *testing.T) {
	alg, ok := c509oid.Default.LookupByTag(c509oid.PublicKeyAlgorithm, 0)
	require.True(t, ok)

	n := c509bigint.FromHex("C3A1" + "00112233445566778899AABBCCDDEEFF")
	tests := []struct {
		name  string
		e     *big.Int
		elems byte
	}{
		{name: "default exponent omitted", e: big.NewInt(65537), elems: 0x82},
		{name: "exponent 3 kept", e: big.NewInt(3), elems: 0x83},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := &c509pubkey.RSAPublicKey{Alg: alg, N: n, E: tt.e}
			compact := c509cbor.Marshal(c509pubkey.EncodeCompact(c509oid.Default, key))
			assert.Equal(t, tt.elems, compact[0])

			back, err := c509pubkey.DecodeCompact(c509oid.Default, c509cbor.NewDecoder(compact))
			require.NoError(t, err)
			assert.True(t, c509pubkey.Equal(key, back))
		})
	}
}

func TestCompressedPointInDER(t *testing.T) {
	curve := c509pubkey.P256
	params := elliptic.P256().Params()
	alg, ok := c509oid.Default.LookupByTag(c509oid.PublicKeyAlgorithm, 1)
	require.True(t, ok)

	spki := c509tlv.Marshal(c509tlv.Sequence(
		c509tlv.Sequence(c509tlv.ObjectIdentifier(alg.OID), c509tlv.ObjectIdentifier(curve.OID)),
		c509tlv.BitString(curve.Compress(params.Gx, params.Gy)),
	))
	node, err := c509tlv.DecodeSingle(spki)
	require.NoError(t, err)

	key, err := c509pubkey.DecodeSubjectPublicKey(c509oid.Default, node)
	require.NoError(t, err)
	ec, ok := key.(*c509pubkey.ECPublicKey)
	require.True(t, ok)
	assert.Equal(t, 0, ec.Y.Cmp(params.Gy))

	// Re-encoded DER carries the uncompressed point.
	pub, err := x509.ParsePKIXPublicKey(c509tlv.Marshal(c509pubkey.EncodeSubjectPublicKey(key)))
	require.NoError(t, err)
	assert.Equal(t, 0, pub.(*ecdsa.PublicKey).Y.Cmp(params.Gy))
}

func TestDecodeSubjectPublicKeyErrors(t *testing.T) {
	ecAlg := c509oid.MustParse("1.2.840.10045.2.1")
	p256 := c509pubkey.P256
	gx, gy := elliptic.P256().Params().Gx, elliptic.P256().Params().Gy

	tests := []struct {
		name     string
		spki     c509tlv.Value
		expected error
	}{
		{
			name: "unknown algorithm",
			spki: c509tlv.Sequence(
				c509tlv.Sequence(c509tlv.ObjectIdentifier(c509oid.MustParse("1.2.840.10040.4.1"))),
				c509tlv.BitString([]byte{0x01}),
			),
			expected: c509.ErrUnsupportedAlgorithm,
		},
		{
			name: "unknown curve",
			spki: c509tlv.Sequence(
				c509tlv.Sequence(c509tlv.ObjectIdentifier(ecAlg), c509tlv.ObjectIdentifier(c509oid.MustParse("1.3.36.3.3.2.8.1.1.7"))),
				c509tlv.BitString(p256.Marshal(gx, gy)),
			),
			expected: c509.ErrUnsupportedAlgorithm,
		},
		{
			name: "EC without curve",
			spki: c509tlv.Sequence(
				c509tlv.Sequence(c509tlv.ObjectIdentifier(ecAlg)),
				c509tlv.BitString(p256.Marshal(gx, gy)),
			),
			expected: c509.ErrUnsupportedAlgorithm,
		},
		{
			name: "point off curve",
			spki: c509tlv.Sequence(
				c509tlv.Sequence(c509tlv.ObjectIdentifier(ecAlg), c509tlv.ObjectIdentifier(p256.OID)),
				c509tlv.BitString(p256.Marshal(gx, gx)),
			),
			expected: c509.ErrInvalidCurvePoint,
		},
		{
			name: "missing bit string",
			spki: c509tlv.Sequence(
				c509tlv.Sequence(c509tlv.ObjectIdentifier(ecAlg), c509tlv.ObjectIdentifier(p256.OID)),
			),
			expected: c509.ErrInvalidValue,
		},
		{
			name:     "not a sequence",
			spki:     c509tlv.Null,
			expected: c509.ErrUnexpectedTag,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := c509tlv.DecodeSingle(c509tlv.Marshal(tt.spki))
			require.NoError(t, err)
			_, err = c509pubkey.DecodeSubjectPublicKey(c509oid.Default, node)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestDecodeCompactErrors(t *testing.T) {
	tests := []struct {
		name     string
		item     c509cbor.Item
		expected error
	}{
		{
			name:     "unknown algorithm tag",
			item:     c509cbor.Array{c509cbor.Uint(99), c509cbor.Bytes{0x01}},
			expected: c509.ErrUnsupportedAlgorithm,
		},
		{
			name:     "unknown raw algorithm",
			item:     c509cbor.Array{c509cbor.Bytes(c509oid.MustParse("1.2.840.10040.4.1")), c509cbor.Bytes{0x01}},
			expected: c509.ErrUnsupportedAlgorithm,
		},
		{
			name:     "EC key missing curve",
			item:     c509cbor.Array{c509cbor.Uint(1), c509cbor.Bytes{0x02}},
			expected: c509.ErrInvalidLength,
		},
		{
			name:     "EC key bad point",
			item:     c509cbor.Array{c509cbor.Uint(1), c509cbor.Uint(1), c509cbor.Bytes{0x02, 0x01}},
			expected: c509.ErrInvalidCurvePoint,
		},
		{
			name:     "too many elements",
			item:     c509cbor.Array{c509cbor.Uint(10), c509cbor.Bytes{0x01}, c509cbor.Bytes{0x02}, c509cbor.Bytes{0x03}},
			expected: c509.ErrInvalidLength,
		},
		{
			name:     "RSA modulus with leading zero",
			item:     c509cbor.Array{c509cbor.Uint(0), c509cbor.Bytes{0x00, 0x01}},
			expected: c509.ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c509pubkey.DecodeCompact(c509oid.Default, c509cbor.NewDecoder(c509cbor.Marshal(tt.item)))
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func BenchmarkDecompressP256(b *testing.B) {
	params := elliptic.P256().Params()
	compressed := c509pubkey.P256.Compress(params.Gx, params.Gy)

	b.ReportAllocs()

	for b.Loop() {
		_, _, _ = c509pubkey.P256.Unmarshal(compressed)
	}
}
