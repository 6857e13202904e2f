// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package c509cert

import (
	"fmt"
	"time"

	"github.com/H0llyW00dzZ/c509-converter/src/internal/c509"
	c509cbor "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/cbor"
	c509tlv "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/tlv"
)

const (
	layoutUTCTime         = "060102150405Z"
	layoutGeneralizedTime = "20060102150405Z"
)

// decodeTime parses a UTCTime or GeneralizedTime in the RFC 5280 profile:
// seconds present, no fraction, Zulu.
func decodeTime(n c509tlv.Node) (time.Time, error) {
	s := string(n.Value)

	switch n.Tag {
	case c509tlv.TagUTCTime:
		if len(s) != len(layoutUTCTime) {
			return time.Time{}, fmt.Errorf("%w: UTCTime %q", c509.ErrInvalidTime, s)
		}
		// RFC 5280 4.1.2.5.1: YY >= 50 is 19YY.
		if s[:2] >= "50" {
			s = "19" + s
		} else {
			s = "20" + s
		}
	case c509tlv.TagGeneralizedTime:
		if len(s) != len(layoutGeneralizedTime) {
			return time.Time{}, fmt.Errorf("%w: GeneralizedTime %q", c509.ErrInvalidTime, s)
		}
	default:
		return time.Time{}, fmt.Errorf("%w: %s is not a time", c509.ErrUnexpectedTag, n.Tag)
	}

	t, err := time.Parse(layoutGeneralizedTime, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", c509.ErrInvalidTime, err)
	}
	return t, nil
}

// encodeTime uses UTCTime for 1950 through 2049 and GeneralizedTime otherwise.
func encodeTime(t time.Time) (c509tlv.Value, error) {
	t = t.UTC()
	if y := t.Year(); y < 0 || y > 9999 {
		return nil, fmt.Errorf("%w: year %d", c509.ErrInvalidTime, y)
	}
	if y := t.Year(); y >= 1950 && y < 2050 {
		return c509tlv.Primitive{Tag: c509tlv.TagUTCTime, Content: []byte(t.Format(layoutUTCTime))}, nil
	}
	return c509tlv.Primitive{Tag: c509tlv.TagGeneralizedTime, Content: []byte(t.Format(layoutGeneralizedTime))}, nil
}

func decodeValidity(n c509tlv.Node) (time.Time, time.Time, error) {
	if err := n.Expect(c509tlv.TagSequence); err != nil {
		return time.Time{}, time.Time{}, err
	}
	members, err := n.Members()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if len(members) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: Validity has %d members", c509.ErrInvalidValue, len(members))
	}
	notBefore, err := decodeTime(members[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("notBefore: %w", err)
	}
	notAfter, err := decodeTime(members[1])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("notAfter: %w", err)
	}
	return notBefore, notAfter, nil
}

func encodeValidity(notBefore, notAfter time.Time) (c509tlv.Value, error) {
	nb, err := encodeTime(notBefore)
	if err != nil {
		return nil, fmt.Errorf("notBefore: %w", err)
	}
	na, err := encodeTime(notAfter)
	if err != nil {
		return nil, fmt.Errorf("notAfter: %w", err)
	}
	return c509tlv.Sequence(nb, na), nil
}

func validityItem(notBefore, notAfter time.Time) c509cbor.Item {
	var na c509cbor.Item = c509cbor.Int(notAfter.Unix())
	if notAfter.Equal(NoExpiry) {
		na = c509cbor.Null
	}
	return c509cbor.Array{c509cbor.Int(notBefore.Unix()), na}
}

func readValidity(d *c509cbor.Decoder) (time.Time, time.Time, error) {
	if _, err := d.ReadArrayLen(2, 2); err != nil {
		return time.Time{}, time.Time{}, err
	}
	notBefore, err := readTime(d)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("notBefore: %w", err)
	}
	if d.IsNull() {
		return notBefore, NoExpiry, d.ReadNull()
	}
	notAfter, err := readTime(d)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("notAfter: %w", err)
	}
	return notBefore, notAfter, nil
}

func readTime(d *c509cbor.Decoder) (time.Time, error) {
	secs, err := d.ReadInt()
	if err != nil {
		return time.Time{}, err
	}
	t := time.Unix(secs, 0).UTC()
	if y := t.Year(); y < 0 || y > 9999 {
		return time.Time{}, fmt.Errorf("%w: %d seconds is outside years 0000-9999", c509.ErrInvalidTime, secs)
	}
	return t, nil
}
