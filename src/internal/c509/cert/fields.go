// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package c509cert

import (
	"bytes"
	"slices"
	"time"

	c509pubkey "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/pubkey"
	c509sig "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/signature"
	c509tlv "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/tlv"
)

// Field names reported in errors.
const (
	FieldCertificate        = "certificate"
	FieldTBSCertificate     = "tbsCertificate"
	FieldVersion            = "version"
	FieldSerialNumber       = "serialNumber"
	FieldSignature          = "signature"
	FieldIssuer             = "issuer"
	FieldValidity           = "validity"
	FieldSubject            = "subject"
	FieldSubjectPublicKey   = "subjectPublicKeyInfo"
	FieldExtensions         = "extensions"
	FieldSignatureAlgorithm = "signatureAlgorithm"
	FieldSignatureValue     = "signatureValue"
)

// compactFields is the length of the top-level compact array.
const compactFields = 10

// NoExpiry is the notAfter value RFC 5280 reserves for certificates without
// a well-defined expiration date.
var NoExpiry = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

// AlgorithmIdentifier names an algorithm by OID with optional parameters.
type AlgorithmIdentifier struct {
	// OID holds the DER content octets.
	OID []byte
	// Params is the complete DER encoding of the parameters, or nil when absent.
	Params []byte
}

// Equal reports whether a and b are identical.
func (a AlgorithmIdentifier) Equal(b AlgorithmIdentifier) bool {
	return bytes.Equal(a.OID, b.OID) && bytes.Equal(a.Params, b.Params) && (a.Params == nil) == (b.Params == nil)
}

// Attribute is one AttributeTypeAndValue of a distinguished name.
type Attribute struct {
	// Type holds the DER content octets of the attribute OID.
	Type []byte
	// Tag is the tag of the value, normally a universal string type.
	Tag c509tlv.Tag
	// Value holds the content octets of the value.
	Value []byte
}

// Equal reports whether a and b are identical.
func (a Attribute) Equal(b Attribute) bool {
	return bytes.Equal(a.Type, b.Type) && a.Tag == b.Tag && bytes.Equal(a.Value, b.Value)
}

// RDN is a relative distinguished name, kept in input order.
type RDN []Attribute

// Name is a distinguished name.
type Name []RDN

// Equal reports whether n and m hold the same attributes in the same order.
func (n Name) Equal(m Name) bool {
	return slices.EqualFunc(n, m, func(a, b RDN) bool {
		return slices.EqualFunc(a, b, Attribute.Equal)
	})
}

// Extension is one certificate extension. Value holds the content of the
// extnValue OCTET STRING.
type Extension struct {
	OID      []byte
	Critical bool
	Value    []byte
}

// Equal reports whether e and f are identical.
func (e Extension) Equal(f Extension) bool {
	return bytes.Equal(e.OID, f.OID) && e.Critical == f.Critical && bytes.Equal(e.Value, f.Value)
}

// Fields is the decoded content of a certificate. Byte slices may alias the
// input they were decoded from and must not be modified.
type Fields struct {
	// Version is the X.509 version number, 1 to 3.
	Version int
	// SerialNumber is the unsigned big-endian magnitude without leading zeros.
	SerialNumber       []byte
	Signature          AlgorithmIdentifier
	Issuer             Name
	NotBefore          time.Time
	NotAfter           time.Time
	Subject            Name
	PublicKey          c509pubkey.PublicKey
	Extensions         []Extension
	SignatureAlgorithm AlgorithmIdentifier
	SignatureValue     c509sig.Value
}

// SelfIssued reports whether the issuer and subject names are equal.
func (f *Fields) SelfIssued() bool { return f.Issuer.Equal(f.Subject) }

// Equal reports whether f and g describe the same certificate.
func (f *Fields) Equal(g *Fields) bool {
	if f == nil || g == nil {
		return f == g
	}
	return f.Version == g.Version &&
		bytes.Equal(f.SerialNumber, g.SerialNumber) &&
		f.Signature.Equal(g.Signature) &&
		f.Issuer.Equal(g.Issuer) &&
		f.NotBefore.Equal(g.NotBefore) &&
		f.NotAfter.Equal(g.NotAfter) &&
		f.Subject.Equal(g.Subject) &&
		c509pubkey.Equal(f.PublicKey, g.PublicKey) &&
		slices.EqualFunc(f.Extensions, g.Extensions, Extension.Equal) &&
		f.SignatureAlgorithm.Equal(g.SignatureAlgorithm) &&
		c509sig.Equal(f.SignatureValue, g.SignatureValue)
}
