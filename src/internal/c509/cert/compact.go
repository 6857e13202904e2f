// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package c509cert

import (
	"fmt"

	"github.com/H0llyW00dzZ/c509-converter/src/internal/c509"
	c509cbor "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/cbor"
	c509oid "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/oid"
	c509pubkey "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/pubkey"
	c509sig "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/signature"
)

// MarshalCompact encodes f as a compact certificate. The result is built in
// a single allocation.
func (f *Fields) MarshalCompact(reg *c509oid.Registry) ([]byte, error) {
	if err := f.check(reg); err != nil {
		return nil, err
	}
	for _, name := range []struct {
		field string
		name  Name
	}{{FieldIssuer, f.Issuer}, {FieldSubject, f.Subject}} {
		for _, rdn := range name.name {
			if len(rdn) == 0 {
				return nil, c509.WrapField(name.field, fmt.Errorf("%w: empty RelativeDistinguishedName", c509.ErrInvalidValue))
			}
			for _, attr := range rdn {
				if _, ok := attr.Tag.Byte(); !ok {
					return nil, c509.WrapField(name.field, fmt.Errorf("%w: attribute value tag %s", c509.ErrUnexpectedTag, attr.Tag))
				}
			}
		}
	}

	var issuer c509cbor.Item = c509cbor.Null
	if !f.SelfIssued() {
		issuer = nameItem(reg, f.Issuer)
	}

	return c509cbor.Marshal(c509cbor.Array{
		c509cbor.Uint(f.Version),
		c509cbor.Bytes(trimLeadingZeros(f.SerialNumber)),
		algorithmItem(reg, f.Signature),
		issuer,
		validityItem(f.NotBefore, f.NotAfter),
		nameItem(reg, f.Subject),
		c509pubkey.EncodeCompact(reg, f.PublicKey),
		extensionsItem(reg, f.Extensions),
		algorithmItem(reg, f.SignatureAlgorithm),
		c509cbor.Bytes(c509sig.EncodeSignatureValue(f.SignatureValue)),
	}), nil
}

// parseCompact walks a compact certificate field by field.
func parseCompact(reg *c509oid.Registry, compact []byte) (*Fields, error) {
	if err := c509cbor.Wellformed(compact); err != nil {
		return nil, c509.WrapField(FieldCertificate, err)
	}
	d := c509cbor.NewDecoder(compact)
	if _, err := d.ReadArrayLen(compactFields, compactFields); err != nil {
		return nil, c509.WrapField(FieldCertificate, err)
	}

	f := new(Fields)
	version, err := d.ReadUint()
	if err == nil && (version < 1 || version > 3) {
		err = fmt.Errorf("%w: version %d", c509.ErrInvalidValue, version)
	}
	if err != nil {
		return nil, c509.WrapField(FieldVersion, err)
	}
	f.Version = int(version)

	serial, err := d.ReadBytes()
	if err == nil && len(serial) > 0 && serial[0] == 0 {
		err = fmt.Errorf("%w: serial number has leading zero", c509.ErrInvalidValue)
	}
	if err != nil {
		return nil, c509.WrapField(FieldSerialNumber, err)
	}
	f.SerialNumber = serial

	if f.Signature, err = readAlgorithm(reg, d); err != nil {
		return nil, c509.WrapField(FieldSignature, err)
	}

	selfIssued := d.IsNull()
	if selfIssued {
		err = d.ReadNull()
	} else {
		f.Issuer, err = readName(reg, d)
	}
	if err != nil {
		return nil, c509.WrapField(FieldIssuer, err)
	}

	if f.NotBefore, f.NotAfter, err = readValidity(d); err != nil {
		return nil, c509.WrapField(FieldValidity, err)
	}

	if f.Subject, err = readName(reg, d); err != nil {
		return nil, c509.WrapField(FieldSubject, err)
	}
	if selfIssued {
		f.Issuer = f.Subject
	}

	if f.PublicKey, err = c509pubkey.DecodeCompact(reg, d); err != nil {
		return nil, c509.WrapField(FieldSubjectPublicKey, err)
	}

	if f.Extensions, err = readExtensions(reg, d); err != nil {
		return nil, c509.WrapField(FieldExtensions, err)
	}

	if f.SignatureAlgorithm, err = readAlgorithm(reg, d); err != nil {
		return nil, c509.WrapField(FieldSignatureAlgorithm, err)
	}
	family, err := signatureFamily(reg, f.SignatureAlgorithm)
	if err != nil {
		return nil, c509.WrapField(FieldSignatureAlgorithm, err)
	}

	sig, err := d.ReadBytes()
	if err == nil {
		f.SignatureValue, err = c509sig.DecodeCompact(family, sig)
	}
	if err != nil {
		return nil, c509.WrapField(FieldSignatureValue, err)
	}

	if err := d.Done(); err != nil {
		return nil, c509.WrapField(FieldCertificate, err)
	}
	return f, nil
}

func trimLeadingZeros(b []byte) []byte {
	for len(b) > 0 && b[0] == 0 {
		b = b[1:]
	}
	return b
}
