// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package c509tlv implements the tag/length/value discipline of ASN.1 [DER]
// for the subset of types found in X.509 certificates.
//
// Decoding is lenient where BER allows it (non-minimal long-form lengths are
// accepted) but fails closed on anything ambiguous: indefinite lengths, length
// fields wider than four bytes and declared lengths that run past the input
// are rejected. Decoded nodes borrow their content from the input slice.
//
// Encoding is always canonical DER. Structures are described as a [Value] tree
// and serialized by [Marshal], which sizes the complete output first and then
// writes it into a single allocation.
//
// [DER]: https://www.itu.int/rec/T-REC-X.690
package c509tlv
