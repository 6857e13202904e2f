// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package c509cert converts whole X.509 certificates between DER and the
// compact CBOR form.
//
// A conversion is one linear pass over the fixed certificate field order:
//
//	0 version
//	1 serialNumber
//	2 signature
//	3 issuer (null when equal to the subject)
//	4 validity [notBefore, notAfter] (notAfter null for 99991231235959Z)
//	5 subject
//	6 subjectPublicKeyInfo
//	7 extensions
//	8 signatureAlgorithm
//	9 signatureValue
//
// The compact form is a single CBOR array in that order. Any failure aborts
// the conversion and is reported as a [*c509.FieldError] naming the field.
// Round trips are field-equivalent: DER rebuilt from the compact form uses
// minimal encodings and may differ byte-wise from a non-canonical input, but
// decodes to [Fields] equal to the original.
//
// A [Converter] holds only its read-only OID registry and may be used from
// multiple goroutines.
package c509cert
