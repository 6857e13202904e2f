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
	c509tlv "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/tlv"
)

// decodeExtensions parses the content of the [3] EXPLICIT wrapper.
func decodeExtensions(wrapper c509tlv.Node) ([]Extension, error) {
	inner, err := wrapper.Members()
	if err != nil {
		return nil, err
	}
	if len(inner) != 1 {
		return nil, fmt.Errorf("%w: extensions wrapper has %d members", c509.ErrInvalidValue, len(inner))
	}
	if err := inner[0].Expect(c509tlv.TagSequence); err != nil {
		return nil, err
	}
	nodes, err := inner[0].Members()
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: empty extensions", c509.ErrInvalidValue)
	}

	exts := make([]Extension, 0, len(nodes))
	for _, n := range nodes {
		ext, err := decodeExtension(n)
		if err != nil {
			return nil, err
		}
		exts = append(exts, ext)
	}
	return exts, nil
}

func decodeExtension(n c509tlv.Node) (Extension, error) {
	if err := n.Expect(c509tlv.TagSequence); err != nil {
		return Extension{}, err
	}
	members, err := n.Members()
	if err != nil {
		return Extension{}, err
	}
	if len(members) < 2 || len(members) > 3 {
		return Extension{}, fmt.Errorf("%w: Extension has %d members", c509.ErrInvalidValue, len(members))
	}
	if err := expectOID(members[0]); err != nil {
		return Extension{}, err
	}

	ext := Extension{OID: members[0].Value}
	if len(members) == 3 {
		if ext.Critical, err = c509tlv.BoolValue(members[1]); err != nil {
			return Extension{}, fmt.Errorf("critical: %w", err)
		}
	}
	value := members[len(members)-1]
	if err := value.Expect(c509tlv.TagOctetString); err != nil {
		return Extension{}, fmt.Errorf("extnValue: %w", err)
	}
	ext.Value = value.Value
	return ext, nil
}

func encodeExtensions(exts []Extension) c509tlv.Value {
	seq := make([]c509tlv.Value, len(exts))
	for i, ext := range exts {
		value := c509tlv.Primitive{Tag: c509tlv.TagOctetString, Content: ext.Value}
		if ext.Critical {
			seq[i] = c509tlv.Sequence(c509tlv.ObjectIdentifier(ext.OID), c509tlv.Boolean(true), value)
		} else {
			seq[i] = c509tlv.Sequence(c509tlv.ObjectIdentifier(ext.OID), value)
		}
	}
	return c509tlv.Explicitly(3, c509tlv.Sequence(seq...))
}

// extensionsItem writes each extension as [id, value] or [id, true, value]
// when critical.
func extensionsItem(reg *c509oid.Registry, exts []Extension) c509cbor.Item {
	items := make(c509cbor.Array, len(exts))
	for i, ext := range exts {
		id := reg.Item(c509oid.Extension, ext.OID)
		if ext.Critical {
			items[i] = c509cbor.Array{id, c509cbor.Bool(true), c509cbor.Bytes(ext.Value)}
		} else {
			items[i] = c509cbor.Array{id, c509cbor.Bytes(ext.Value)}
		}
	}
	return items
}

func readExtensions(reg *c509oid.Registry, d *c509cbor.Decoder) ([]Extension, error) {
	n, err := d.ReadArray()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}

	exts := make([]Extension, 0, n)
	for range n {
		m, err := d.ReadArrayLen(2, 3)
		if err != nil {
			return nil, err
		}
		id, err := reg.ReadID(d, c509oid.Extension)
		if err != nil {
			return nil, err
		}
		ext := Extension{OID: id.Bytes()}
		if m == 3 {
			critical, err := d.ReadBool()
			if err != nil {
				return nil, err
			}
			if !critical {
				return nil, fmt.Errorf("%w: explicit non-critical flag on %s", c509.ErrInvalidValue, id)
			}
			ext.Critical = true
		}
		if ext.Value, err = d.ReadBytes(); err != nil {
			return nil, err
		}
		exts = append(exts, ext)
	}
	return exts, nil
}
