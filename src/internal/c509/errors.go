// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package c509

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncatedInput indicates that a declared length exceeds the remaining bytes.
	ErrTruncatedInput = errors.New("c509: truncated input")

	// ErrInvalidLength indicates a malformed or unsupported length encoding,
	// such as the indefinite form or a length that does not fit in an int.
	ErrInvalidLength = errors.New("c509: invalid length encoding")

	// ErrUnsupportedAlgorithm indicates an OID that is not mapped to a handled key or signature type.
	ErrUnsupportedAlgorithm = errors.New("c509: unsupported algorithm")

	// ErrInvalidCurvePoint indicates a point that is not on its curve or has no square root.
	ErrInvalidCurvePoint = errors.New("c509: invalid curve point")

	// ErrSignatureComponentMismatch indicates a signature layout inconsistent with its algorithm.
	ErrSignatureComponentMismatch = errors.New("c509: signature component mismatch")

	// ErrUnsupportedMajorType indicates a CBOR item outside the supported subset.
	ErrUnsupportedMajorType = errors.New("c509: unsupported CBOR major type")

	// ErrUnexpectedTag indicates a DER tag or CBOR item that does not belong at its position.
	ErrUnexpectedTag = errors.New("c509: unexpected tag")

	// ErrTrailingData indicates bytes left over after a complete structure.
	ErrTrailingData = errors.New("c509: trailing data")

	// ErrInvalidValue indicates content that is well framed but not a valid value for its field.
	ErrInvalidValue = errors.New("c509: invalid value")

	// ErrInvalidTime indicates a UTCTime or GeneralizedTime outside the DER profile.
	ErrInvalidTime = errors.New("c509: invalid time")
)

// FieldError reports which certificate field a conversion failed on.
// Err always wraps one of the package sentinel errors.
type FieldError struct {
	Field string
	Err   error
}

// Error implements the error interface.
func (e *FieldError) Error() string { return fmt.Sprintf("c509: field %s: %v", e.Field, e.Err) }

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error { return e.Err }

// WrapField annotates err with the field name. A nil err yields nil, and an
// error that already carries a field is returned unchanged so the innermost
// field name wins.
func WrapField(field string, err error) error {
	if err == nil {
		return nil
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		return err
	}
	return &FieldError{Field: field, Err: err}
}
