// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package c509cert

import (
	c509oid "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/oid"
)

// Certificate is the result of one parse. It is never modified after
// construction. At least one of DER and Compact is set.
type Certificate struct {
	// DER is the DER input, if the certificate was parsed from DER.
	DER []byte
	// Compact is the compact input, if the certificate was parsed from the compact form.
	Compact []byte
	Fields  *Fields
}

// Converter converts certificates using one OID registry.
type Converter struct {
	reg *c509oid.Registry
}

// New returns a converter backed by reg, or by [c509oid.Default] when reg is nil.
func New(reg *c509oid.Registry) *Converter {
	if reg == nil {
		reg = c509oid.Default
	}
	return &Converter{reg: reg}
}

// Default converts with the default registry.
var Default = New(nil)

// Registry returns the registry used by c.
func (c *Converter) Registry() *c509oid.Registry { return c.reg }

// ParseDER decodes a DER certificate.
func (c *Converter) ParseDER(der []byte) (*Certificate, error) {
	f, err := parseDER(c.reg, der)
	if err != nil {
		return nil, err
	}
	return &Certificate{DER: der, Fields: f}, nil
}

// ParseCompact decodes a compact certificate.
func (c *Converter) ParseCompact(compact []byte) (*Certificate, error) {
	f, err := parseCompact(c.reg, compact)
	if err != nil {
		return nil, err
	}
	return &Certificate{Compact: compact, Fields: f}, nil
}

// ToCompact converts a DER certificate to its compact form.
func (c *Converter) ToCompact(der []byte) ([]byte, error) {
	f, err := parseDER(c.reg, der)
	if err != nil {
		return nil, err
	}
	return f.MarshalCompact(c.reg)
}

// ToDER converts a compact certificate back to DER.
func (c *Converter) ToDER(compact []byte) ([]byte, error) {
	f, err := parseCompact(c.reg, compact)
	if err != nil {
		return nil, err
	}
	return f.MarshalDER(c.reg)
}

// ToCompact converts der with the [Default] converter.
func ToCompact(der []byte) ([]byte, error) { return Default.ToCompact(der) }

// ToDER converts compact with the [Default] converter.
func ToDER(compact []byte) ([]byte, error) { return Default.ToDER(compact) }
