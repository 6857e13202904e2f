// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// c509-converter is a command-line tool that converts X.509 certificates
// between DER and C509, a compact CBOR encoding.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/c509-converter/cmd/c509-converter@latest
//
// # Usage
//
//	c509-converter [--config FILE] COMMAND [FLAGS]
//
// # Commands
//
//	encode   -f IN [-o OUT] [--hex]          X.509 (PEM, DER, PKCS#7) to C509
//	decode   -f IN [-o OUT] [--pem]          C509 (binary or hex) to DER or PEM
//	inspect  -f IN [-o OUT]                  per-field table and CBOR diagnostic notation
//	batch    --in DIR --out DIR [--reverse]  convert a directory concurrently
//	fetch    [HOST...] [--hosts FILE] --out DIR
//
// # Configuration
//
// A YAML or JSON file given by --config or $C509_CONFIG_FILE may set
// workers, timeoutSeconds, defaultPort, pem and logFormat ("text" or
// "json"). Command-line flags take precedence.
//
// # Examples
//
// Encode a certificate and restore it:
//
//	c509-converter encode -f cert.pem -o cert.c509
//	c509-converter decode -f cert.c509 --pem -o cert.pem
//
// Compare the sizes of both encodings field by field:
//
//	c509-converter inspect -f cert.pem
//
// Store the chain a server presents:
//
//	c509-converter fetch example.com:443 --out certs/
package main
