// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package c509oid_test

import (
	"crypto/x509"
	"encoding/asn1"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/c509-converter/src/internal/c509"
	c509oid "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/oid"
)

func TestDefaultBijection(t *testing.T) {
	reg := c509oid.Default
	assert.Equal(t, c509oid.Version, reg.Version())

	for _, cat := range c509oid.Categories() {
		entries := reg.Entries(cat)
		require.NotEmpty(t, entries, cat.String())

		for _, e := range entries {
			byTag, ok := reg.LookupByTag(cat, e.Tag)
			require.True(t, ok, "%s tag %d", cat, e.Tag)
			assert.Equal(t, e.OID, byTag.OID)

			id := reg.LookupByBytes(cat, e.OID)
			require.True(t, id.Known(), "%s %s", cat, e.Name)
			assert.Equal(t, e.Tag, id.Entry.Tag)
			assert.Equal(t, e.OID, id.Bytes())
		}
	}
}

func TestEntriesOrdered(t *testing.T) {
	entries := c509oid.Default.Entries(c509oid.SignatureAlgorithm)
	for i := 1; i < len(entries); i++ {
		assert.Less(t, entries[i-1].Tag, entries[i].Tag)
	}
}

func TestUnknownOIDFallsBackToRaw(t *testing.T) {
	raw := c509oid.MustParse("1.3.6.1.4.1.99999.1")
	id := c509oid.Default.LookupByBytes(c509oid.Extension, raw)

	assert.False(t, id.Known())
	assert.Equal(t, raw, id.Bytes())
	assert.Equal(t, "1.3.6.1.4.1.99999.1", id.String())

	_, ok := c509oid.Default.LookupByTag(c509oid.Extension, 9999)
	assert.False(t, ok)
}

func TestCategoriesAreIndependent(t *testing.T) {
	ed := c509oid.MustParse("1.3.101.112")

	sig := c509oid.Default.LookupByBytes(c509oid.SignatureAlgorithm, ed)
	key := c509oid.Default.LookupByBytes(c509oid.PublicKeyAlgorithm, ed)
	require.True(t, sig.Known())
	require.True(t, key.Known())
	assert.Equal(t, uint64(12), sig.Entry.Tag)
	assert.Equal(t, uint64(10), key.Entry.Tag)
	assert.Equal(t, c509oid.FamilyEdDSA, sig.Entry.Family)
	assert.Equal(t, c509oid.FamilyOpaque, key.Entry.Family)

	// Extension OIDs are unknown in the attribute space.
	assert.False(t, c509oid.Default.LookupByBytes(c509oid.Attribute, c509oid.MustParse("2.5.29.15")).Known())
}

func TestParseAndArcs(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "matches encoding/asn1",
			testFunc: func(t *testing.T) {
				want, err := asn1.Marshal(asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1})
				require.NoError(t, err)

				got, err := c509oid.Parse("1.2.840.10045.2.1")
				require.NoError(t, err)
				assert.Equal(t, want[2:], got)
			},
		},
		{
			name: "arcs round trip",
			testFunc: func(t *testing.T) {
				b := c509oid.MustParse("0.9.2342.19200300.100.1.25")
				arcs, err := c509oid.Arcs(b)
				require.NoError(t, err)
				assert.Equal(t, "0.9.2342.19200300.100.1.25", arcs.String())
			},
		},
		{
			name: "rejects malformed dotted",
			testFunc: func(t *testing.T) {
				_, err := c509oid.Parse("1.x.3")
				assert.ErrorIs(t, err, c509.ErrInvalidValue)
				_, err = c509oid.Parse("7.1")
				assert.ErrorIs(t, err, c509.ErrInvalidValue)
			},
		},
		{
			name: "rejects malformed content",
			testFunc: func(t *testing.T) {
				_, err := c509oid.Arcs([]byte{0x2a, 0x86})
				assert.ErrorIs(t, err, c509.ErrInvalidValue)
				assert.Equal(t, "2a86", c509oid.String([]byte{0x2a, 0x86}))
			},
		},
		{
			name: "MustParse panics",
			testFunc: func(t *testing.T) {
				assert.Panics(t, func() { c509oid.MustParse("") })
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.testFunc(t)
		})
	}
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	entries := c509oid.DefaultEntries()

	dupTag := append(entries, c509oid.Entry{
		Category: c509oid.Curve,
		Tag:      1,
		Name:     "brainpoolP256r1",
		OID:      c509oid.MustParse("1.3.36.3.3.2.8.1.1.7"),
	})
	_, err := c509oid.NewRegistry(2, dupTag)
	assert.ErrorIs(t, err, c509oid.ErrDuplicate)

	dupOID := append(c509oid.DefaultEntries(), c509oid.Entry{
		Category: c509oid.Curve,
		Tag:      40,
		Name:     "prime256v1",
		OID:      c509oid.MustParse("1.2.840.10045.3.1.7"),
	})
	_, err = c509oid.NewRegistry(2, dupOID)
	assert.ErrorIs(t, err, c509oid.ErrDuplicate)

	extended := append(c509oid.DefaultEntries(), c509oid.Entry{
		Category: c509oid.Curve,
		Tag:      40,
		Name:     "brainpoolP256r1",
		OID:      c509oid.MustParse("1.3.36.3.3.2.8.1.1.7"),
	})
	reg, err := c509oid.NewRegistry(2, extended)
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Version())
	e, ok := reg.LookupByTag(c509oid.Curve, 40)
	require.True(t, ok)
	assert.Equal(t, "1.3.36.3.3.2.8.1.1.7", e.Dotted())
}

func TestSignatureAlgorithmsMatchCryptoX509(t *testing.T) {
	// Names used by crypto/x509 for the same identifiers.
	tests := []struct {
		tag  uint64
		algo x509.SignatureAlgorithm
	}{
		{0, x509.ECDSAWithSHA256},
		{1, x509.ECDSAWithSHA384},
		{2, x509.ECDSAWithSHA512},
		{12, x509.PureEd25519},
		{23, x509.SHA256WithRSA},
		{24, x509.SHA384WithRSA},
		{25, x509.SHA512WithRSA},
		{30, x509.SHA1WithRSA},
		{31, x509.ECDSAWithSHA1},
	}

	for _, tt := range tests {
		e, ok := c509oid.Default.LookupByTag(c509oid.SignatureAlgorithm, tt.tag)
		require.True(t, ok)
		assert.Equal(t, tt.algo.String(), canonicalName(e.Name), "tag %d", tt.tag)
	}
}

func canonicalName(name string) string {
	switch name {
	case "ecdsa-with-SHA256":
		return "ECDSA-SHA256"
	case "ecdsa-with-SHA384":
		return "ECDSA-SHA384"
	case "ecdsa-with-SHA512":
		return "ECDSA-SHA512"
	case "ecdsa-with-SHA1":
		return "ECDSA-SHA1"
	case "sha256WithRSAEncryption":
		return "SHA256-RSA"
	case "sha384WithRSAEncryption":
		return "SHA384-RSA"
	case "sha512WithRSAEncryption":
		return "SHA512-RSA"
	case "sha1WithRSAEncryption":
		return "SHA1-RSA"
	}
	return name
}

func TestConcurrentLookups(t *testing.T) {
	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			for _, e := range c509oid.Default.Entries(c509oid.Extension) {
				id := c509oid.Default.LookupByBytes(c509oid.Extension, e.OID)
				assert.True(t, id.Known())
			}
		})
	}
	wg.Wait()
}
