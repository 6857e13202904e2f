// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509source

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"
)

// ErrNoPeerCertificates indicates a handshake in which the server sent no certificates.
var ErrNoPeerCertificates = errors.New("x509source: no certificates received from server")

// FetchRemote performs a TLS handshake with host:port and returns the DER
// encoding of every certificate the server presented, leaf first. The chain
// is not verified.
func FetchRemote(ctx context.Context, host string, port int, timeout time.Duration) ([][]byte, error) {
	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: timeout},
		// Only the presented certificates are needed, not a trusted connection.
		Config: &tls.Config{InsecureSkipVerify: true, ServerName: host},
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	defer conn.Close()

	peerCerts := conn.(*tls.Conn).ConnectionState().PeerCertificates
	if len(peerCerts) == 0 {
		return nil, ErrNoPeerCertificates
	}

	ders := make([][]byte, len(peerCerts))
	for i, cert := range peerCerts {
		ders[i] = cert.Raw
	}
	return ders, nil
}
