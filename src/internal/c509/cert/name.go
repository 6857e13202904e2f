// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package c509cert

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"

	"github.com/H0llyW00dzZ/c509-converter/src/internal/c509"
	c509cbor "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/cbor"
	c509oid "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/oid"
	c509tlv "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/tlv"
)

// hardwareAddress matches EUI-48 and EUI-64 identifiers written as upper
// case hex octets separated by hyphens, e.g. "00-1B-63-84-45-E6". Such
// values are carried as their raw octets in the compact form.
var hardwareAddress = regexp.MustCompile(`^[0-9A-F]{2}(?:-[0-9A-F]{2}){5}(?:(?:-[0-9A-F]{2}){2})?$`)

var (
	bmpEncoding       encoding.Encoding = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	universalEncoding encoding.Encoding = utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM)
)

// textTags are string types whose content is already UTF-8 compatible.
var textTags = map[c509tlv.Tag]bool{
	c509tlv.TagUTF8String:      true,
	c509tlv.TagPrintableString: true,
	c509tlv.TagIA5String:       true,
	c509tlv.TagNumericString:   true,
	c509tlv.TagVisibleString:   true,
}

// transcoding returns the encoding of a string type stored as text after
// conversion, or nil.
func transcoding(tag c509tlv.Tag) encoding.Encoding {
	switch tag {
	case c509tlv.TagBMPString:
		return bmpEncoding
	case c509tlv.TagUniversalString:
		return universalEncoding
	}
	return nil
}

func decodeName(n c509tlv.Node) (Name, error) {
	if err := n.Expect(c509tlv.TagSequence); err != nil {
		return nil, err
	}
	rdns, err := n.Members()
	if err != nil {
		return nil, err
	}

	name := make(Name, 0, len(rdns))
	for _, rn := range rdns {
		if err := rn.Expect(c509tlv.TagSet); err != nil {
			return nil, err
		}
		atvs, err := rn.Members()
		if err != nil {
			return nil, err
		}
		if len(atvs) == 0 {
			return nil, fmt.Errorf("%w: empty RelativeDistinguishedName", c509.ErrInvalidValue)
		}

		rdn := make(RDN, 0, len(atvs))
		for _, an := range atvs {
			attr, err := decodeAttribute(an)
			if err != nil {
				return nil, err
			}
			rdn = append(rdn, attr)
		}
		name = append(name, rdn)
	}
	return name, nil
}

func decodeAttribute(n c509tlv.Node) (Attribute, error) {
	if err := n.Expect(c509tlv.TagSequence); err != nil {
		return Attribute{}, err
	}
	members, err := n.Members()
	if err != nil {
		return Attribute{}, err
	}
	if len(members) != 2 {
		return Attribute{}, fmt.Errorf("%w: AttributeTypeAndValue has %d members", c509.ErrInvalidValue, len(members))
	}
	if err := expectOID(members[0]); err != nil {
		return Attribute{}, err
	}
	if _, ok := members[1].Tag.Byte(); !ok {
		return Attribute{}, fmt.Errorf("%w: attribute value tag %s", c509.ErrUnexpectedTag, members[1].Tag)
	}
	return Attribute{Type: members[0].Value, Tag: members[1].Tag, Value: members[1].Value}, nil
}

func encodeName(name Name) (c509tlv.Value, error) {
	rdns := make([]c509tlv.Value, len(name))
	for i, rdn := range name {
		if len(rdn) == 0 {
			return nil, fmt.Errorf("%w: empty RelativeDistinguishedName", c509.ErrInvalidValue)
		}
		atvs := make([]c509tlv.Value, len(rdn))
		for j, attr := range rdn {
			if _, ok := attr.Tag.Byte(); !ok {
				return nil, fmt.Errorf("%w: attribute value tag %s", c509.ErrUnexpectedTag, attr.Tag)
			}
			atvs[j] = c509tlv.Sequence(
				c509tlv.ObjectIdentifier(attr.Type),
				c509tlv.Primitive{Tag: attr.Tag, Content: attr.Value},
			)
		}
		rdns[i] = c509tlv.Set(atvs...)
	}
	return c509tlv.Sequence(rdns...), nil
}

// nameItem writes a name as an array of RDN arrays whose attributes are
// [type, stringTag, value]. value is text for string types representable as
// UTF-8 and the raw content octets otherwise. A negative stringTag marks a
// hardware address carried as raw octets.
func nameItem(reg *c509oid.Registry, name Name) c509cbor.Item {
	rdns := make(c509cbor.Array, len(name))
	for i, rdn := range name {
		attrs := make(c509cbor.Array, len(rdn))
		for j, attr := range rdn {
			attrs[j] = attributeItem(reg, attr)
		}
		rdns[i] = attrs
	}
	return rdns
}

func attributeItem(reg *c509oid.Registry, attr Attribute) c509cbor.Item {
	ident, _ := attr.Tag.Byte()
	typ := reg.Item(c509oid.Attribute, attr.Type)

	if textTags[attr.Tag] && hardwareAddress.Match(attr.Value) {
		raw, _ := hex.DecodeString(strings.ReplaceAll(string(attr.Value), "-", ""))
		return c509cbor.Array{typ, c509cbor.Int(-int64(ident)), c509cbor.Bytes(raw)}
	}
	if text, ok := attributeText(attr); ok {
		return c509cbor.Array{typ, c509cbor.Uint(ident), c509cbor.Text(text)}
	}
	return c509cbor.Array{typ, c509cbor.Uint(ident), c509cbor.Bytes(attr.Value)}
}

// attributeText returns the value as UTF-8 when it can be restored exactly.
func attributeText(attr Attribute) (string, bool) {
	if textTags[attr.Tag] {
		return string(attr.Value), utf8.Valid(attr.Value)
	}
	enc := transcoding(attr.Tag)
	if enc == nil {
		return "", false
	}
	text, err := enc.NewDecoder().Bytes(attr.Value)
	if err != nil {
		return "", false
	}
	back, err := enc.NewEncoder().Bytes(text)
	if err != nil || !bytes.Equal(back, attr.Value) {
		return "", false
	}
	return string(text), true
}

func readName(reg *c509oid.Registry, d *c509cbor.Decoder) (Name, error) {
	n, err := d.ReadArray()
	if err != nil {
		return nil, err
	}
	name := make(Name, 0, n)
	for range n {
		m, err := d.ReadArray()
		if err != nil {
			return nil, err
		}
		if m == 0 {
			return nil, fmt.Errorf("%w: empty RelativeDistinguishedName", c509.ErrInvalidValue)
		}
		rdn := make(RDN, 0, m)
		for range m {
			attr, err := readAttribute(reg, d)
			if err != nil {
				return nil, err
			}
			rdn = append(rdn, attr)
		}
		name = append(name, rdn)
	}
	return name, nil
}

func readAttribute(reg *c509oid.Registry, d *c509cbor.Decoder) (Attribute, error) {
	if _, err := d.ReadArrayLen(3, 3); err != nil {
		return Attribute{}, err
	}
	typ, err := reg.ReadID(d, c509oid.Attribute)
	if err != nil {
		return Attribute{}, err
	}
	ident, err := d.ReadInt()
	if err != nil {
		return Attribute{}, err
	}
	hwaddr := ident < 0
	if hwaddr {
		ident = -ident
	}
	if ident < 0 || ident > 0xff {
		return Attribute{}, fmt.Errorf("%w: string tag %d", c509.ErrUnexpectedTag, ident)
	}
	tag := c509tlv.TagFromByte(byte(ident))
	if tag.Number == 0x1f {
		return Attribute{}, fmt.Errorf("%w: string tag 0x%02x needs the high tag number form", c509.ErrUnexpectedTag, ident)
	}
	attr := Attribute{Type: typ.Bytes(), Tag: tag}

	major, err := d.PeekMajor()
	if err != nil {
		return Attribute{}, err
	}

	switch {
	case hwaddr:
		raw, err := d.ReadBytes()
		if err != nil {
			return Attribute{}, err
		}
		if !textTags[tag] || (len(raw) != 6 && len(raw) != 8) {
			return Attribute{}, fmt.Errorf("%w: hardware address of %d octets in %s", c509.ErrInvalidValue, len(raw), tag)
		}
		attr.Value = formatHardwareAddress(raw)

	case major == c509cbor.MajorText:
		text, err := d.ReadText()
		if err != nil {
			return Attribute{}, err
		}
		switch enc := transcoding(tag); {
		case textTags[tag]:
			attr.Value = []byte(text)
		case enc != nil:
			if attr.Value, err = enc.NewEncoder().Bytes([]byte(text)); err != nil {
				return Attribute{}, fmt.Errorf("%w: %v", c509.ErrInvalidValue, err)
			}
		default:
			return Attribute{}, fmt.Errorf("%w: text value for %s", c509.ErrInvalidValue, tag)
		}

	default:
		if attr.Value, err = d.ReadBytes(); err != nil {
			return Attribute{}, err
		}
	}
	return attr, nil
}

func formatHardwareAddress(raw []byte) []byte {
	out := make([]byte, 0, 3*len(raw)-1)
	for i, b := range raw {
		if i > 0 {
			out = append(out, '-')
		}
		out = append(out, strings.ToUpper(hex.EncodeToString([]byte{b}))...)
	}
	return out
}

// String renders name in RFC 4514 order using registry attribute names
// where known, for display only.
func (n Name) String(reg *c509oid.Registry) string {
	var sb strings.Builder
	for i := len(n) - 1; i >= 0; i-- {
		if sb.Len() > 0 {
			sb.WriteString(", ")
		}
		for j, attr := range n[i] {
			if j > 0 {
				sb.WriteByte('+')
			}
			sb.WriteString(reg.LookupByBytes(c509oid.Attribute, attr.Type).String())
			sb.WriteByte('=')
			if text, ok := attributeText(attr); ok {
				sb.WriteString(text)
			} else {
				sb.WriteString("#" + hex.EncodeToString(attr.Value))
			}
		}
	}
	return sb.String()
}
