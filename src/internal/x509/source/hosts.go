// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
)

// ErrInvalidTarget indicates a host list entry that is not host or host:port.
var ErrInvalidTarget = errors.New("x509source: invalid target")

// Target is a TLS endpoint to fetch certificates from.
type Target struct {
	Host string
	Port int
}

// String returns host:port.
func (t Target) String() string { return net.JoinHostPort(t.Host, strconv.Itoa(t.Port)) }

// FileBase returns a file name stem for t, e.g. "example.com" or
// "example.com_8443" for a non-default port.
func (t Target) FileBase(defaultPort int) string {
	host := strings.NewReplacer(":", "_", "[", "", "]", "").Replace(t.Host)
	if t.Port == defaultPort {
		return host
	}
	return host + "_" + strconv.Itoa(t.Port)
}

// ParseTarget parses host, host:port or [ipv6]:port. defaultPort applies
// when no port is given.
func ParseTarget(s string, defaultPort int) (Target, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Target{}, fmt.Errorf("%w: empty", ErrInvalidTarget)
	}

	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		// No port: a bare name or a bare IPv6 address.
		host = strings.Trim(s, "[]")
		if strings.ContainsAny(host, " /") {
			return Target{}, fmt.Errorf("%w: %q", ErrInvalidTarget, s)
		}
		return Target{Host: host, Port: defaultPort}, nil
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 || host == "" {
		return Target{}, fmt.Errorf("%w: %q", ErrInvalidTarget, s)
	}
	return Target{Host: host, Port: port}, nil
}

// LoadHostList reads one target per line. Blank lines and text after '#'
// are ignored.
func LoadHostList(r io.Reader, defaultPort int) ([]Target, error) {
	var targets []Target

	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text, _, _ := strings.Cut(sc.Text(), "#")
		if strings.TrimSpace(text) == "" {
			continue
		}
		t, err := ParseTarget(text, defaultPort)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		targets = append(targets, t)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return targets, nil
}
