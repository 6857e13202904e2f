// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package c509cert

import (
	"fmt"

	"github.com/H0llyW00dzZ/c509-converter/src/internal/c509"
	c509oid "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/oid"
	c509pubkey "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/pubkey"
	c509sig "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/signature"
	c509tlv "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/tlv"
)

// Implicitly tagged TBSCertificate members.
var (
	tagIssuerUniqueID  = c509tlv.Tag{Class: c509tlv.ClassContextSpecific, Number: 1}
	tagSubjectUniqueID = c509tlv.Tag{Class: c509tlv.ClassContextSpecific, Number: 2}
)

// cursor hands out the members of a SEQUENCE in order.
type cursor struct {
	nodes []c509tlv.Node
	pos   int
}

func (c *cursor) next(field string) (c509tlv.Node, error) {
	if c.pos >= len(c.nodes) {
		return c509tlv.Node{}, c509.WrapField(field, fmt.Errorf("%w: field missing", c509.ErrTruncatedInput))
	}
	n := c.nodes[c.pos]
	c.pos++
	return n, nil
}

// nextIf consumes the next member only if it carries tag.
func (c *cursor) nextIf(tag c509tlv.Tag) (c509tlv.Node, bool) {
	if c.pos < len(c.nodes) && c.nodes[c.pos].Tag == tag {
		c.pos++
		return c.nodes[c.pos-1], true
	}
	return c509tlv.Node{}, false
}

func (c *cursor) done(field string) error {
	if rest := len(c.nodes) - c.pos; rest > 0 {
		return c509.WrapField(field, fmt.Errorf("%w: %d unexpected members (next is %s)",
			c509.ErrTrailingData, rest, c.nodes[c.pos].Tag))
	}
	return nil
}

// parseDER walks a DER certificate field by field.
func parseDER(reg *c509oid.Registry, der []byte) (*Fields, error) {
	root, err := c509tlv.DecodeSingle(der)
	if err == nil {
		err = root.Expect(c509tlv.TagSequence)
	}
	if err != nil {
		return nil, c509.WrapField(FieldCertificate, err)
	}
	top, err := root.Members()
	if err != nil {
		return nil, c509.WrapField(FieldCertificate, err)
	}
	if len(top) != 3 {
		return nil, c509.WrapField(FieldCertificate,
			fmt.Errorf("%w: Certificate has %d members", c509.ErrInvalidValue, len(top)))
	}

	tbsNode := top[0]
	if err := tbsNode.Expect(c509tlv.TagSequence); err != nil {
		return nil, c509.WrapField(FieldTBSCertificate, err)
	}
	members, err := tbsNode.Members()
	if err != nil {
		return nil, c509.WrapField(FieldTBSCertificate, err)
	}
	tbs := &cursor{nodes: members}
	f := &Fields{Version: 1}

	if n, ok := tbs.nextIf(c509tlv.Explicit(0)); ok {
		if f.Version, err = decodeVersion(n); err != nil {
			return nil, c509.WrapField(FieldVersion, err)
		}
	}

	n, err := tbs.next(FieldSerialNumber)
	if err != nil {
		return nil, err
	}
	if f.SerialNumber, err = c509tlv.Unsigned(n); err != nil {
		return nil, c509.WrapField(FieldSerialNumber, err)
	}

	if n, err = tbs.next(FieldSignature); err != nil {
		return nil, err
	}
	if f.Signature, err = decodeAlgorithm(n); err != nil {
		return nil, c509.WrapField(FieldSignature, err)
	}

	if n, err = tbs.next(FieldIssuer); err != nil {
		return nil, err
	}
	if f.Issuer, err = decodeName(n); err != nil {
		return nil, c509.WrapField(FieldIssuer, err)
	}

	if n, err = tbs.next(FieldValidity); err != nil {
		return nil, err
	}
	if f.NotBefore, f.NotAfter, err = decodeValidity(n); err != nil {
		return nil, c509.WrapField(FieldValidity, err)
	}

	if n, err = tbs.next(FieldSubject); err != nil {
		return nil, err
	}
	if f.Subject, err = decodeName(n); err != nil {
		return nil, c509.WrapField(FieldSubject, err)
	}

	if n, err = tbs.next(FieldSubjectPublicKey); err != nil {
		return nil, err
	}
	if f.PublicKey, err = c509pubkey.DecodeSubjectPublicKey(reg, n); err != nil {
		return nil, c509.WrapField(FieldSubjectPublicKey, err)
	}

	for _, tag := range []c509tlv.Tag{tagIssuerUniqueID, tagSubjectUniqueID} {
		if _, ok := tbs.nextIf(tag); ok {
			return nil, c509.WrapField(FieldTBSCertificate,
				fmt.Errorf("%w: unique identifiers are not supported", c509.ErrInvalidValue))
		}
	}

	if n, ok := tbs.nextIf(c509tlv.Explicit(3)); ok {
		if f.Extensions, err = decodeExtensions(n); err != nil {
			return nil, c509.WrapField(FieldExtensions, err)
		}
	}
	if err := tbs.done(FieldTBSCertificate); err != nil {
		return nil, err
	}

	if f.SignatureAlgorithm, err = decodeAlgorithm(top[1]); err != nil {
		return nil, c509.WrapField(FieldSignatureAlgorithm, err)
	}
	family, err := signatureFamily(reg, f.SignatureAlgorithm)
	if err != nil {
		return nil, c509.WrapField(FieldSignatureAlgorithm, err)
	}

	sig, err := c509tlv.BitStringBytes(top[2])
	if err == nil {
		f.SignatureValue, err = c509sig.DecodeSignatureValue(family, sig)
	}
	if err != nil {
		return nil, c509.WrapField(FieldSignatureValue, err)
	}
	return f, nil
}

func decodeVersion(n c509tlv.Node) (int, error) {
	inner, err := n.Members()
	if err != nil {
		return 0, err
	}
	if len(inner) != 1 {
		return 0, fmt.Errorf("%w: version wrapper has %d members", c509.ErrInvalidValue, len(inner))
	}
	v, err := c509tlv.SmallInt(inner[0])
	if err != nil {
		return 0, err
	}
	if v > 2 {
		return 0, fmt.Errorf("%w: version %d", c509.ErrInvalidValue, v+1)
	}
	return v + 1, nil
}

// check validates the parts of f that both encoders rely on.
func (f *Fields) check(reg *c509oid.Registry) error {
	if f.Version < 1 || f.Version > 3 {
		return c509.WrapField(FieldVersion, fmt.Errorf("%w: version %d", c509.ErrInvalidValue, f.Version))
	}
	if f.PublicKey == nil {
		return c509.WrapField(FieldSubjectPublicKey, fmt.Errorf("%w: no public key", c509.ErrInvalidValue))
	}
	if f.SignatureValue == nil {
		return c509.WrapField(FieldSignatureValue, fmt.Errorf("%w: no signature value", c509.ErrInvalidValue))
	}
	family, err := signatureFamily(reg, f.SignatureAlgorithm)
	if err != nil {
		return c509.WrapField(FieldSignatureAlgorithm, err)
	}
	if family != f.SignatureValue.Family() {
		return c509.WrapField(FieldSignatureValue, fmt.Errorf("%w: %s value for %s algorithm",
			c509.ErrSignatureComponentMismatch, f.SignatureValue.Family(), family))
	}
	return nil
}

// MarshalDER encodes f as a DER certificate using minimal encodings. The
// signature algorithm must be known to reg.
func (f *Fields) MarshalDER(reg *c509oid.Registry) ([]byte, error) {
	if err := f.check(reg); err != nil {
		return nil, err
	}

	tbs := make([]c509tlv.Value, 0, 8)
	if f.Version > 1 {
		tbs = append(tbs, c509tlv.Explicitly(0, c509tlv.UnsignedInteger([]byte{byte(f.Version - 1)})))
	}
	tbs = append(tbs,
		c509tlv.UnsignedInteger(f.SerialNumber),
		encodeAlgorithm(f.Signature),
	)

	issuer, err := encodeName(f.Issuer)
	if err != nil {
		return nil, c509.WrapField(FieldIssuer, err)
	}
	validity, err := encodeValidity(f.NotBefore, f.NotAfter)
	if err != nil {
		return nil, c509.WrapField(FieldValidity, err)
	}
	subject, err := encodeName(f.Subject)
	if err != nil {
		return nil, c509.WrapField(FieldSubject, err)
	}
	tbs = append(tbs, issuer, validity, subject, c509pubkey.EncodeSubjectPublicKey(f.PublicKey))
	if len(f.Extensions) > 0 {
		tbs = append(tbs, encodeExtensions(f.Extensions))
	}

	return c509tlv.Marshal(c509tlv.Sequence(
		c509tlv.Sequence(tbs...),
		encodeAlgorithm(f.SignatureAlgorithm),
		c509tlv.BitString(c509sig.EncodeDER(f.SignatureValue)),
	)), nil
}
