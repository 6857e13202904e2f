// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package c509cert_test

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"encoding/pem"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/c509-converter/src/internal/c509"
	c509cert "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/cert"
	c509cbor "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/cbor"
)

// fixture is a DER certificate together with the certificate that signed it.
type fixture struct {
	name   string
	der    []byte
	parent *x509.Certificate
}

var unknownExtensionOID = asn1.ObjectIdentifier{1, 3, 6, 1, 4, 1, 99999, 1}

func template(t *testing.T, cn string) *x509.Certificate {
	t.Helper()

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 127))
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Second)
	return &x509.Certificate{
		SerialNumber: serial,
		Subject: pkix.Name{
			CommonName:         cn,
			Organization:       []string{"H0llyW00dzZ"},
			OrganizationalUnit: []string{"C509 Converter"},
			Country:            []string{"ID"},
			Locality:           []string{"Jakarta"},
		},
		NotBefore:             now.Add(-time.Hour),
		NotAfter:              now.Add(90 * 24 * time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth, x509.ExtKeyUsageClientAuth},
		BasicConstraintsValid: true,
		IsCA:                  true,
		DNSNames:              []string{cn, "www." + cn},
		IPAddresses:           []net.IP{net.ParseIP("192.0.2.1")},
		ExtraExtensions: []pkix.Extension{
			{Id: unknownExtensionOID, Value: []byte{0x04, 0x02, 0xca, 0xfe}},
		},
	}
}

// create signs tmpl and retries until the signature has no leading zero
// octet, so RSA signatures survive the minimal integer encoding unchanged.
func create(t *testing.T, tmpl, parent *x509.Certificate, pub crypto.PublicKey, signer crypto.Signer) ([]byte, *x509.Certificate) {
	t.Helper()

	for range 32 {
		der, err := x509.CreateCertificate(rand.Reader, tmpl, parent, pub, signer)
		require.NoError(t, err)
		cert, err := x509.ParseCertificate(der)
		require.NoError(t, err)
		if cert.Signature[0] != 0 {
			return der, cert
		}
		tmpl.SerialNumber = new(big.Int).Add(tmpl.SerialNumber, big.NewInt(1))
	}
	t.Fatal("could not produce a signature without leading zero")
	return nil, nil
}

func generatedFixtures(t *testing.T) []fixture {
	t.Helper()

	p256, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	p384, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	require.NoError(t, err)
	p521, err := ecdsa.GenerateKey(elliptic.P521(), rand.Reader)
	require.NoError(t, err)
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	edPub, edPriv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	var fixtures []fixture

	ecTmpl := template(t, "ec.example.com")
	ecDER, ecCA := create(t, ecTmpl, ecTmpl, &p256.PublicKey, p256)
	fixtures = append(fixtures, fixture{name: "ECDSA P-256 self-signed", der: ecDER, parent: ecCA})

	leafTmpl := template(t, "leaf.example.com")
	leafTmpl.IsCA = false
	leafTmpl.KeyUsage = x509.KeyUsageDigitalSignature
	leafTmpl.SignatureAlgorithm = x509.ECDSAWithSHA384
	leafDER, _ := create(t, leafTmpl, ecCA, &p384.PublicKey, p256)
	fixtures = append(fixtures, fixture{name: "ECDSA P-384 issued by P-256", der: leafDER, parent: ecCA})

	rsaTmpl := template(t, "rsa.example.com")
	rsaDER, rsaCA := create(t, rsaTmpl, rsaTmpl, &rsaKey.PublicKey, rsaKey)
	fixtures = append(fixtures, fixture{name: "RSA 2048 self-signed", der: rsaDER, parent: rsaCA})

	mixedTmpl := template(t, "p521.example.com")
	mixedTmpl.IsCA = false
	mixedTmpl.SignatureAlgorithm = x509.SHA384WithRSA
	mixedDER, _ := create(t, mixedTmpl, rsaCA, &p521.PublicKey, rsaKey)
	fixtures = append(fixtures, fixture{name: "P-521 issued by RSA", der: mixedDER, parent: rsaCA})

	edTmpl := template(t, "ed25519.example.com")
	edDER, edCA := create(t, edTmpl, edTmpl, edPub, edPriv)
	fixtures = append(fixtures, fixture{name: "Ed25519 self-signed", der: edDER, parent: edCA})

	foreverTmpl := template(t, "forever.example.com")
	foreverTmpl.NotBefore = time.Date(1949, time.June, 1, 0, 0, 0, 0, time.UTC)
	foreverTmpl.NotAfter = c509cert.NoExpiry
	foreverDER, foreverCA := create(t, foreverTmpl, foreverTmpl, &p256.PublicKey, p256)
	fixtures = append(fixtures, fixture{name: "no expiry", der: foreverDER, parent: foreverCA})

	return fixtures
}

func googleDER(tb testing.TB) []byte {
	tb.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", "www.google.com.pem"))
	require.NoError(tb, err)
	block, _ := pem.Decode(data)
	require.NotNil(tb, block)
	return block.Bytes
}

// rewriteCompact replaces element idx of the top-level compact array.
func rewriteCompact(t *testing.T, compact []byte, idx int, item c509cbor.Item) []byte {
	t.Helper()
	return c509cbor.Marshal(compactElements(t, compact).with(idx, item))
}

type elements c509cbor.Array

func (e elements) with(idx int, item c509cbor.Item) c509cbor.Array {
	out := make(c509cbor.Array, len(e))
	copy(out, e)
	out[idx] = item
	return out
}

func compactElements(t *testing.T, compact []byte) elements {
	t.Helper()

	d := c509cbor.NewDecoder(compact)
	n, err := d.ReadArray()
	require.NoError(t, err)
	items := make(elements, n)
	for i := range n {
		raw, err := d.ReadRaw()
		require.NoError(t, err)
		items[i] = c509cbor.RawItem(raw)
	}
	require.NoError(t, d.Done())
	return items
}

func requireFieldError(t *testing.T, err error, field string, kind error) {
	t.Helper()

	var fe *c509.FieldError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, field, fe.Field, "error: %v", err)
	require.ErrorIs(t, err, kind)
}
