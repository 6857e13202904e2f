// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"bytes"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/cloudflare/cfssl/crypto/pkcs7"

	c509cbor "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/cbor"
	c509tlv "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/tlv"
	"github.com/H0llyW00dzZ/c509-converter/src/internal/helper/gc"
)

var (
	// ErrInvalidPEMBlock indicates that the provided data does not contain a valid PEM block.
	ErrInvalidPEMBlock = errors.New("x509certs: invalid PEM block")

	// ErrInvalidBlockType indicates that the PEM block type is not the expected certificate type.
	ErrInvalidBlockType = errors.New("x509certs: invalid block type")

	// ErrParseCertificate indicates data that is not a sequence of DER certificates.
	ErrParseCertificate = errors.New("x509certs: failed to parse certificate")

	// ErrParsePKCS7 indicates a failure to parse PKCS7 formatted data.
	ErrParsePKCS7 = errors.New("x509certs: failed to parse PKCS7 data")

	// ErrNoCertificatesInPKCS indicates that no certificates were found in the PKCS7 data.
	ErrNoCertificatesInPKCS = errors.New("x509certs: no certificates found in PKCS7 data")

	// ErrParseCompact indicates data that is not a sequence of compact certificates.
	ErrParseCompact = errors.New("x509certs: failed to parse compact certificate")
)

// Certificate decodes certificate files into raw DER or compact encodings
// and formats converted output. Certificates are kept as bytes rather than
// parsed [x509.Certificate] values, so inputs the standard library rejects,
// such as secp256k1 keys, still reach the converter.
//
// [x509.Certificate]: https://pkg.go.dev/crypto/x509#Certificate
type Certificate struct {
	certBlockType  string
	pkcs7BlockType string
}

// New creates a new Certificate with default settings.
func New() *Certificate {
	return &Certificate{
		certBlockType:  "CERTIFICATE",
		pkcs7BlockType: "PKCS7",
	}
}

// IsPEM checks if the data is in PEM format.
func (c *Certificate) IsPEM(data []byte) bool {
	block, _ := pem.Decode(data)
	return block != nil
}

// DecodeMultiple returns the DER encoding of every certificate in data. It
// accepts PEM (CERTIFICATE or PKCS7 blocks), a PKCS#7 SignedData bundle, or
// one or more concatenated DER certificates.
func (c *Certificate) DecodeMultiple(data []byte) ([][]byte, error) {
	if c.IsPEM(data) {
		var ders [][]byte

		for len(data) > 0 {
			block, rest := pem.Decode(data)
			if block == nil {
				break
			}

			switch block.Type {
			case c.certBlockType:
				if err := checkDER(block.Bytes); err != nil {
					return nil, err
				}
				ders = append(ders, block.Bytes)
			case c.pkcs7BlockType:
				bundle, err := decodePKCS7(block.Bytes)
				if err != nil {
					return nil, err
				}
				ders = append(ders, bundle...)
			default:
				return nil, ErrInvalidBlockType
			}

			data = rest
		}

		return ders, nil
	}

	if bundle, err := decodePKCS7(data); err == nil || errors.Is(err, ErrNoCertificatesInPKCS) {
		return bundle, err
	}

	nodes, err := c509tlv.DecodeAll(data)
	if err != nil || len(nodes) == 0 {
		return nil, ErrParseCertificate
	}
	ders := make([][]byte, len(nodes))
	for i, n := range nodes {
		if n.Tag != c509tlv.TagSequence {
			return nil, ErrParseCertificate
		}
		ders[i] = n.Raw
	}
	return ders, nil
}

// Decode returns the first certificate in data.
func (c *Certificate) Decode(data []byte) ([]byte, error) {
	ders, err := c.DecodeMultiple(data)
	if err != nil {
		return nil, err
	}
	if len(ders) == 0 {
		return nil, ErrInvalidPEMBlock
	}
	return ders[0], nil
}

// checkDER verifies der is exactly one SEQUENCE.
func checkDER(der []byte) error {
	n, err := c509tlv.DecodeSingle(der)
	if err != nil || n.Tag != c509tlv.TagSequence {
		return ErrParseCertificate
	}
	return nil
}

// decodePKCS7 extracts the certificates of a SignedData bundle using
// Cloudflare's parser.
func decodePKCS7(data []byte) ([][]byte, error) {
	p, err := pkcs7.ParsePKCS7(data)
	if err != nil {
		return nil, ErrParsePKCS7
	}
	certs := p.Content.SignedData.Certificates
	if len(certs) == 0 {
		return nil, ErrNoCertificatesInPKCS
	}

	ders := make([][]byte, len(certs))
	for i, cert := range certs {
		ders[i] = cert.Raw
	}
	return ders, nil
}

// DecodeCompact splits data into compact certificates. data is a CBOR
// sequence of certificate arrays, or the same as hex text with one
// certificate per line.
func (c *Certificate) DecodeCompact(data []byte) ([][]byte, error) {
	if text := bytes.TrimSpace(data); len(text) > 0 && isHexText(text) {
		var out [][]byte
		for line := range bytes.Lines(text) {
			line = bytes.TrimSpace(line)
			if len(line) == 0 {
				continue
			}
			raw := make([]byte, hex.DecodedLen(len(line)))
			if _, err := hex.Decode(raw, line); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrParseCompact, err)
			}
			items, err := splitSequence(raw)
			if err != nil {
				return nil, err
			}
			out = append(out, items...)
		}
		return out, nil
	}
	return splitSequence(data)
}

// isHexText reports whether data consists only of hex digits and line breaks.
// A binary compact certificate always starts with an array header (0x8a),
// which is not printable, so the two forms cannot be confused.
func isHexText(data []byte) bool {
	for _, b := range data {
		switch {
		case b >= '0' && b <= '9', b >= 'a' && b <= 'f', b >= 'A' && b <= 'F':
		case b == '\n', b == '\r', b == ' ', b == '\t':
		default:
			return false
		}
	}
	return true
}

func splitSequence(data []byte) ([][]byte, error) {
	if len(data) == 0 {
		return nil, ErrParseCompact
	}
	var items [][]byte
	d := c509cbor.NewDecoder(data)
	for d.Remaining() > 0 {
		raw, err := d.ReadRaw()
		if err != nil {
			return nil, fmt.Errorf("%w: item %d: %w", ErrParseCompact, len(items), err)
		}
		items = append(items, raw)
	}
	return items, nil
}

// EncodePEM encodes a DER certificate to PEM format.
func (c *Certificate) EncodePEM(der []byte) []byte {
	block := pem.Block{
		Type:  c.certBlockType,
		Bytes: der,
	}
	return pem.EncodeToMemory(&block)
}

// EncodeMultiplePEM encodes multiple DER certificates to PEM format.
func (c *Certificate) EncodeMultiplePEM(ders [][]byte) []byte {
	buf := gc.Default.Get()
	defer gc.Default.Put(buf)

	for _, der := range ders {
		// Writes to the pooled buffer never fail.
		_ = pem.Encode(buf, &pem.Block{Type: c.certBlockType, Bytes: der})
	}
	if buf.Len() == 0 {
		return nil
	}
	return bytes.Clone(buf.Bytes())
}

// EncodeMultipleDER concatenates DER certificates.
func (c *Certificate) EncodeMultipleDER(ders [][]byte) []byte { return gc.Concat(ders...) }

// EncodeCompactSequence concatenates compact certificates into a CBOR sequence.
func (c *Certificate) EncodeCompactSequence(items [][]byte) []byte { return gc.Concat(items...) }

// EncodeCompactHex writes each compact certificate as one line of lower
// case hex.
func (c *Certificate) EncodeCompactHex(items [][]byte) []byte {
	buf := gc.Default.Get()
	defer gc.Default.Put(buf)

	for _, item := range items {
		buf.WriteString(hex.EncodeToString(item))
		buf.WriteByte('\n')
	}
	return bytes.Clone(buf.Bytes())
}
