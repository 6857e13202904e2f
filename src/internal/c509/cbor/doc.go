// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package c509cbor writes and reads the small subset of CBOR (RFC 8949) used
// by compact certificates: unsigned and negative integers, byte strings, text
// strings, definite-length arrays and the simple values false, true and null.
//
// Encoders always pick the shortest argument form. The [Decoder] rejects
// maps, tags, floating-point values, indefinite lengths and non-minimal
// arguments, so anything it accepts re-encodes to the same bytes.
//
// Structural validation and diagnostic notation are delegated to
// github.com/fxamacker/cbor/v2 through [Wellformed] and [Diagnose].
package c509cbor
