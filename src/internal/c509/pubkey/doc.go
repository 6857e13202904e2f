// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package c509pubkey converts SubjectPublicKeyInfo structures between their
// DER form and the compact CBOR form.
//
// Keys are a closed set of variants: [*ECPublicKey], [*RSAPublicKey] and
// [*OpaquePublicKey]. Elliptic-curve points are always held uncompressed;
// the compact form stores the SEC1 compressed point and the DER form the
// uncompressed one, so a point decoded from either side compares equal.
package c509pubkey
