// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package c509oid

import (
	"encoding/asn1"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"

	"github.com/H0llyW00dzZ/c509-converter/src/internal/c509"
	c509tlv "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/tlv"
)

// Parse converts dotted notation such as "1.2.840.10045.2.1" into DER
// content octets (without identifier and length).
func Parse(dotted string) ([]byte, error) {
	parts := strings.Split(dotted, ".")
	arcs := make(asn1.ObjectIdentifier, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("%w: bad arc %q in OID %q", c509.ErrInvalidValue, p, dotted)
		}
		arcs[i] = v
	}
	return FromArcs(arcs)
}

// FromArcs returns the DER content octets of arcs.
func FromArcs(arcs asn1.ObjectIdentifier) ([]byte, error) {
	b := cryptobyte.NewBuilder(nil)
	b.AddASN1ObjectIdentifier(arcs)
	full, err := b.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: OID %s: %v", c509.ErrInvalidValue, arcs, err)
	}

	var content cryptobyte.String
	in := cryptobyte.String(full)
	if !in.ReadASN1(&content, cbasn1.OBJECT_IDENTIFIER) {
		return nil, fmt.Errorf("%w: OID %s", c509.ErrInvalidValue, arcs)
	}
	return content, nil
}

// Arcs decodes DER content octets into their arcs.
func Arcs(content []byte) (asn1.ObjectIdentifier, error) {
	in := cryptobyte.String(c509tlv.Encode(c509tlv.TagOID, content))
	var arcs asn1.ObjectIdentifier
	if !in.ReadASN1ObjectIdentifier(&arcs) {
		return nil, fmt.Errorf("%w: malformed OID %x", c509.ErrInvalidValue, content)
	}
	return arcs, nil
}

// String returns content in dotted notation, or its hex form when it does
// not decode.
func String(content []byte) string {
	arcs, err := Arcs(content)
	if err != nil {
		return fmt.Sprintf("%x", content)
	}
	return arcs.String()
}

// MustParse is like [Parse] but panics on error. It is meant for tables.
func MustParse(dotted string) []byte {
	b, err := Parse(dotted)
	if err != nil {
		panic(err)
	}
	return b
}
