// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package c509 holds the error taxonomy shared by the [C509] certificate codec packages.
//
// The codec itself lives in the sub-packages:
//   - tlv: DER tag/length/value records
//   - cbor: CBOR primitive framing for the compact form
//   - bigint: arbitrary-precision helpers used by the public-key codec
//   - oid: the registry mapping object identifiers to compact tags
//   - pubkey: subject public key info, including elliptic-curve point compression
//   - signature: ECDSA, RSA, MAC and EdDSA signature values
//   - cert: the certificate transformer tying everything together
//
// Every failure produced by those packages wraps one of the sentinel errors declared
// here, so callers can classify a failed conversion with [errors.Is].
//
// [C509]: https://datatracker.ietf.org/doc/draft-ietf-cose-cbor-encoded-cert/
package c509
