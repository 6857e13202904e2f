// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package c509cbor

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/H0llyW00dzZ/c509-converter/src/internal/c509"
)

var diagMode = func() cbor.DiagMode {
	dm, err := cbor.DiagOptions{
		ByteStringEncoding: cbor.ByteStringBase16Encoding,
	}.DiagMode()
	if err != nil {
		panic(err)
	}
	return dm
}()

// Wellformed reports whether b holds exactly one well-formed CBOR data item.
// Failures are mapped onto the c509 sentinel errors.
func Wellformed(b []byte) error {
	err := cbor.Wellformed(b)
	if err == nil {
		return nil
	}

	var extra *cbor.ExtraneousDataError
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: %v", c509.ErrTruncatedInput, err)
	case errors.As(err, &extra):
		return fmt.Errorf("%w: %v", c509.ErrTrailingData, err)
	}
	return fmt.Errorf("%w: %v", c509.ErrInvalidValue, err)
}

// Diagnose returns the RFC 8949 diagnostic notation of the single data item in b,
// with byte strings rendered in base16.
func Diagnose(b []byte) (string, error) {
	if err := Wellformed(b); err != nil {
		return "", err
	}
	return diagMode.Diagnose(b)
}
