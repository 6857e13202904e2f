// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package c509oid

import (
	"fmt"

	"github.com/H0llyW00dzZ/c509-converter/src/internal/c509"
	c509cbor "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/cbor"
)

// Item returns the compact form of id: its tag as an unsigned integer, or
// the raw OID as a byte string.
func (id ID) Item() c509cbor.Item {
	if id.Entry != nil {
		return c509cbor.Uint(id.Entry.Tag)
	}
	return c509cbor.Bytes(id.Raw)
}

// Item returns the compact form of the OID whose content octets are oid.
func (r *Registry) Item(cat Category, oid []byte) c509cbor.Item {
	return r.LookupByBytes(cat, oid).Item()
}

// ReadID reads an identifier written by [ID.Item]. A tag missing from cat
// fails with [c509.ErrUnsupportedAlgorithm] for algorithm and curve
// categories and [c509.ErrInvalidValue] otherwise.
func (r *Registry) ReadID(d *c509cbor.Decoder, cat Category) (ID, error) {
	major, err := d.PeekMajor()
	if err != nil {
		return ID{}, err
	}

	switch major {
	case c509cbor.MajorUint:
		tag, err := d.ReadUint()
		if err != nil {
			return ID{}, err
		}
		e, ok := r.LookupByTag(cat, tag)
		if !ok {
			kind := c509.ErrInvalidValue
			switch cat {
			case SignatureAlgorithm, PublicKeyAlgorithm, Curve:
				kind = c509.ErrUnsupportedAlgorithm
			}
			return ID{}, fmt.Errorf("%w: unknown %s tag %d", kind, cat, tag)
		}
		return ID{Entry: e}, nil

	case c509cbor.MajorBytes:
		raw, err := d.ReadBytes()
		if err != nil {
			return ID{}, err
		}
		if _, err := Arcs(raw); err != nil {
			return ID{}, err
		}
		return r.LookupByBytes(cat, raw), nil
	}
	return ID{}, fmt.Errorf("%w: %s identifier encoded as %s", c509.ErrUnexpectedTag, cat, major)
}
