// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for the C509 converter.
// It implements a Cobra-based CLI with commands to encode X.509 certificates
// into the compact C509 form, decode them back to DER or PEM, inspect a
// certificate field by field, convert whole directories concurrently, and
// fetch certificates from live TLS servers. Settings may come from a YAML or
// JSON config file validated against an embedded JSON schema.
package cli
