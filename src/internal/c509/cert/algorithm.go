// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package c509cert

import (
	"bytes"
	"fmt"

	"github.com/H0llyW00dzZ/c509-converter/src/internal/c509"
	c509cbor "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/cbor"
	c509oid "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/oid"
	c509tlv "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/tlv"
)

// expectOID checks that n is a well-formed OBJECT IDENTIFIER.
func expectOID(n c509tlv.Node) error {
	if err := n.Expect(c509tlv.TagOID); err != nil {
		return err
	}
	_, err := c509oid.Arcs(n.Value)
	return err
}

func decodeAlgorithm(n c509tlv.Node) (AlgorithmIdentifier, error) {
	if err := n.Expect(c509tlv.TagSequence); err != nil {
		return AlgorithmIdentifier{}, err
	}
	members, err := n.Members()
	if err != nil {
		return AlgorithmIdentifier{}, err
	}
	if len(members) < 1 || len(members) > 2 {
		return AlgorithmIdentifier{}, fmt.Errorf("%w: AlgorithmIdentifier has %d members", c509.ErrInvalidValue, len(members))
	}
	if err := expectOID(members[0]); err != nil {
		return AlgorithmIdentifier{}, err
	}

	alg := AlgorithmIdentifier{OID: members[0].Value}
	if len(members) == 2 {
		alg.Params = members[1].Raw
	}
	return alg, nil
}

func encodeAlgorithm(alg AlgorithmIdentifier) c509tlv.Value {
	oid := c509tlv.ObjectIdentifier(alg.OID)
	if alg.Params == nil {
		return c509tlv.Sequence(oid)
	}
	return c509tlv.Sequence(oid, c509tlv.Raw(alg.Params))
}

// algorithmItem returns the tag when the OID is registered and its
// parameters are the canonical ones, the raw OID when parameters are
// absent, and [oid, params] otherwise.
func algorithmItem(reg *c509oid.Registry, alg AlgorithmIdentifier) c509cbor.Item {
	id := reg.LookupByBytes(c509oid.SignatureAlgorithm, alg.OID)
	switch {
	case id.Known() && bytes.Equal(alg.Params, id.Entry.Params) && (alg.Params == nil) == (id.Entry.Params == nil):
		return id.Item()
	case alg.Params == nil:
		return c509cbor.Bytes(alg.OID)
	}
	return c509cbor.Array{c509cbor.Bytes(alg.OID), c509cbor.Bytes(alg.Params)}
}

func readAlgorithm(reg *c509oid.Registry, d *c509cbor.Decoder) (AlgorithmIdentifier, error) {
	major, err := d.PeekMajor()
	if err != nil {
		return AlgorithmIdentifier{}, err
	}

	if major != c509cbor.MajorArray {
		id, err := reg.ReadID(d, c509oid.SignatureAlgorithm)
		if err != nil {
			return AlgorithmIdentifier{}, err
		}
		if id.Known() && major == c509cbor.MajorUint {
			return AlgorithmIdentifier{OID: id.Entry.OID, Params: id.Entry.Params}, nil
		}
		return AlgorithmIdentifier{OID: id.Bytes()}, nil
	}

	if _, err := d.ReadArrayLen(2, 2); err != nil {
		return AlgorithmIdentifier{}, err
	}
	oid, err := d.ReadBytes()
	if err != nil {
		return AlgorithmIdentifier{}, err
	}
	if _, err := c509oid.Arcs(oid); err != nil {
		return AlgorithmIdentifier{}, err
	}
	params, err := d.ReadBytes()
	if err != nil {
		return AlgorithmIdentifier{}, err
	}
	if _, err := c509tlv.DecodeSingle(params); err != nil {
		return AlgorithmIdentifier{}, fmt.Errorf("algorithm parameters: %w", err)
	}
	return AlgorithmIdentifier{OID: oid, Params: params}, nil
}

// signatureFamily returns the signature family of alg.
func signatureFamily(reg *c509oid.Registry, alg AlgorithmIdentifier) (c509oid.Family, error) {
	id := reg.LookupByBytes(c509oid.SignatureAlgorithm, alg.OID)
	if !id.Known() {
		return c509oid.FamilyNone, fmt.Errorf("%w: signature algorithm %s", c509.ErrUnsupportedAlgorithm, id)
	}
	return id.Entry.Family, nil
}
