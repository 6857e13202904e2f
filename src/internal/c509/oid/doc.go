// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package c509oid maps the object identifiers recognized by the compact
// certificate format to small integer tags.
//
// Each [Category] (signature algorithms, public-key algorithms, curves,
// extensions and name attributes) is its own bijection, so the same tag may
// appear in several categories. OIDs missing from the table are not errors:
// [Registry.LookupByBytes] returns an [ID] carrying the raw encoding, which
// the certificate codec writes verbatim so conversion stays lossless.
//
// The [Default] registry is built once at package initialization and never
// modified afterwards, so it is safe for concurrent use.
package c509oid
