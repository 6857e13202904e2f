// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package c509oid

import (
	"errors"
	"fmt"
	"slices"
)

// Category selects one of the independent tag spaces.
type Category uint8

// Categories of the registry.
const (
	SignatureAlgorithm Category = iota
	PublicKeyAlgorithm
	Curve
	Extension
	Attribute
	numCategories
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case SignatureAlgorithm:
		return "signature algorithm"
	case PublicKeyAlgorithm:
		return "public key algorithm"
	case Curve:
		return "curve"
	case Extension:
		return "extension"
	case Attribute:
		return "attribute"
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}

// Categories lists every category in table order.
func Categories() []Category {
	return []Category{SignatureAlgorithm, PublicKeyAlgorithm, Curve, Extension, Attribute}
}

// Family classifies algorithm entries so codecs can dispatch on them.
type Family uint8

// Families of signature and public-key algorithms.
const (
	FamilyNone Family = iota
	// FamilyECDSA signatures carry an (r, s) pair.
	FamilyECDSA
	// FamilyRSA covers both RSA signatures and rsaEncryption keys.
	FamilyRSA
	// FamilyMAC values are opaque tags.
	FamilyMAC
	// FamilyEdDSA signatures are opaque octet strings.
	FamilyEdDSA
	// FamilyEC keys are points on a named curve.
	FamilyEC
	// FamilyOpaque keys are carried as raw bit string content.
	FamilyOpaque
)

// String returns the family name.
func (f Family) String() string {
	switch f {
	case FamilyECDSA:
		return "ECDSA"
	case FamilyRSA:
		return "RSA"
	case FamilyMAC:
		return "MAC"
	case FamilyEdDSA:
		return "EdDSA"
	case FamilyEC:
		return "EC"
	case FamilyOpaque:
		return "opaque"
	}
	return "none"
}

// Entry is one row of the registry.
type Entry struct {
	Category Category
	Tag      uint64
	Name     string
	// OID holds the DER content octets.
	OID    []byte
	Family Family
	// Params is the complete DER encoding of the AlgorithmIdentifier
	// parameters the tag implies, or nil when they are absent.
	Params []byte
}

// Dotted returns the OID of e in dotted notation.
func (e *Entry) Dotted() string { return String(e.OID) }

// ID is the result of a lookup: either a registry entry or the raw OID.
type ID struct {
	Entry *Entry
	Raw   []byte
}

// Known reports whether the OID has a compact tag.
func (id ID) Known() bool { return id.Entry != nil }

// Bytes returns the DER content octets of the OID in either case.
func (id ID) Bytes() []byte {
	if id.Entry != nil {
		return id.Entry.OID
	}
	return id.Raw
}

// String returns the entry name or the dotted form of the raw OID.
func (id ID) String() string {
	if id.Entry != nil {
		return id.Entry.Name
	}
	return String(id.Raw)
}

// ErrDuplicate is returned by [NewRegistry] when a table is not a bijection.
var ErrDuplicate = errors.New("c509oid: duplicate registry entry")

// Registry is an immutable set of bijections between OIDs and tags.
type Registry struct {
	version int
	byTag   [numCategories]map[uint64]*Entry
	byOID   [numCategories]map[string]*Entry
	ordered [numCategories][]*Entry
}

// NewRegistry builds a registry from entries. It fails if a tag or OID
// appears twice within one category.
func NewRegistry(version int, entries []Entry) (*Registry, error) {
	r := &Registry{version: version}
	for c := range numCategories {
		r.byTag[c] = make(map[uint64]*Entry)
		r.byOID[c] = make(map[string]*Entry)
	}

	for i := range entries {
		e := &entries[i]
		if e.Category >= numCategories {
			return nil, fmt.Errorf("c509oid: %s has unknown category %d", e.Name, e.Category)
		}
		if prev, ok := r.byTag[e.Category][e.Tag]; ok {
			return nil, fmt.Errorf("%w: %s tag %d used by %s and %s", ErrDuplicate, e.Category, e.Tag, prev.Name, e.Name)
		}
		if prev, ok := r.byOID[e.Category][string(e.OID)]; ok {
			return nil, fmt.Errorf("%w: %s OID %s used by %s and %s", ErrDuplicate, e.Category, e.Dotted(), prev.Name, e.Name)
		}
		r.byTag[e.Category][e.Tag] = e
		r.byOID[e.Category][string(e.OID)] = e
		r.ordered[e.Category] = append(r.ordered[e.Category], e)
	}

	for c := range numCategories {
		slices.SortFunc(r.ordered[c], func(a, b *Entry) int {
			switch {
			case a.Tag < b.Tag:
				return -1
			case a.Tag > b.Tag:
				return 1
			}
			return 0
		})
	}
	return r, nil
}

// Version identifies the table revision.
func (r *Registry) Version() int { return r.version }

// LookupByBytes maps DER content octets to a compact tag, falling back to the
// raw bytes for OIDs outside the table.
func (r *Registry) LookupByBytes(cat Category, oid []byte) ID {
	if cat < numCategories {
		if e, ok := r.byOID[cat][string(oid)]; ok {
			return ID{Entry: e}
		}
	}
	return ID{Raw: oid}
}

// LookupByTag returns the entry for tag within cat.
func (r *Registry) LookupByTag(cat Category, tag uint64) (*Entry, bool) {
	if cat >= numCategories {
		return nil, false
	}
	e, ok := r.byTag[cat][tag]
	return e, ok
}

// Entries returns the entries of cat ordered by tag. The slice must not be modified.
func (r *Registry) Entries(cat Category) []*Entry {
	if cat >= numCategories {
		return nil
	}
	return r.ordered[cat]
}
