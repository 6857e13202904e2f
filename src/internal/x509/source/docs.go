// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509source obtains certificates from live TLS servers. It fetches
// the chain a server presents during the handshake and parses host lists used
// by the fetch command.
package x509source
