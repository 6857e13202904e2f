// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package c509tlv_test

import (
	"bytes"
	"encoding/asn1"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/c509-converter/src/internal/c509"
	c509tlv "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/tlv"
)

func TestEncodeLengthBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		length int
		header []byte
	}{
		{name: "zero", length: 0, header: []byte{0x04, 0x00}},
		{name: "short form max", length: 127, header: []byte{0x04, 0x7f}},
		{name: "long form min", length: 128, header: []byte{0x04, 0x81, 0x80}},
		{name: "one length octet max", length: 255, header: []byte{0x04, 0x81, 0xff}},
		{name: "two length octets", length: 256, header: []byte{0x04, 0x82, 0x01, 0x00}},
		{name: "three length octets", length: 65536, header: []byte{0x04, 0x83, 0x01, 0x00, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value := bytes.Repeat([]byte{0xab}, tt.length)
			encoded := c509tlv.Encode(c509tlv.TagOctetString, value)

			require.Len(t, encoded, len(tt.header)+tt.length)
			assert.Equal(t, tt.header, encoded[:len(tt.header)])
			assert.Equal(t, len(encoded), c509tlv.EncodedLen(c509tlv.TagOctetString, tt.length))
			assert.Equal(t, cap(encoded), len(encoded), "output must be allocated at its exact size")
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tags := []c509tlv.Tag{
		c509tlv.TagInteger,
		c509tlv.TagSequence,
		c509tlv.Explicit(3),
		{Class: c509tlv.ClassContextSpecific, Number: 30},
		{Class: c509tlv.ClassContextSpecific, Number: 31},
		{Class: c509tlv.ClassApplication, Constructed: true, Number: 0x1234},
		{Class: c509tlv.ClassPrivate, Number: 0x0fffffff},
	}
	lengths := []int{0, 1, 127, 128, 255, 256, 70000}

	for _, tag := range tags {
		for _, length := range lengths {
			value := bytes.Repeat([]byte{0x5a}, length)
			encoded := c509tlv.Encode(tag, value)

			node, n, err := c509tlv.Decode(encoded, 0)
			require.NoError(t, err, "tag %s length %d", tag, length)
			assert.Equal(t, len(encoded), n)
			assert.Equal(t, tag, node.Tag)
			assert.Equal(t, length, node.Length)
			assert.Equal(t, value, node.Value)
			assert.Equal(t, encoded, node.Raw)
		}
	}
}

func TestDecodeAtOffset(t *testing.T) {
	input := append([]byte{0xff, 0xff}, c509tlv.Encode(c509tlv.TagNull, nil)...)

	node, n, err := c509tlv.Decode(input, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, c509tlv.TagNull, node.Tag)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		wantErr error
	}{
		{
			name:    "declared length 0xFF with 10 bytes remaining",
			input:   append([]byte{0x04, 0x81, 0xff}, make([]byte, 10)...),
			wantErr: c509.ErrTruncatedInput,
		},
		{
			name:    "short form longer than input",
			input:   []byte{0x04, 0x05, 0x01},
			wantErr: c509.ErrTruncatedInput,
		},
		{
			name:    "empty input",
			input:   nil,
			wantErr: c509.ErrTruncatedInput,
		},
		{
			name:    "missing length",
			input:   []byte{0x30},
			wantErr: c509.ErrTruncatedInput,
		},
		{
			name:    "missing long form length octets",
			input:   []byte{0x04, 0x82, 0x01},
			wantErr: c509.ErrTruncatedInput,
		},
		{
			name:    "indefinite length",
			input:   []byte{0x30, 0x80, 0x00, 0x00},
			wantErr: c509.ErrInvalidLength,
		},
		{
			name:    "five length octets",
			input:   []byte{0x04, 0x85, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00},
			wantErr: c509.ErrInvalidLength,
		},
		{
			name:    "reserved length octet",
			input:   []byte{0x04, 0xff},
			wantErr: c509.ErrInvalidLength,
		},
		{
			name:    "length beyond int32",
			input:   []byte{0x04, 0x84, 0xff, 0xff, 0xff, 0xff},
			wantErr: c509.ErrInvalidLength,
		},
		{
			name:    "unterminated high tag number",
			input:   []byte{0x1f, 0x81},
			wantErr: c509.ErrTruncatedInput,
		},
		{
			name:    "high tag number with leading zero",
			input:   []byte{0x1f, 0x80, 0x01, 0x00},
			wantErr: c509.ErrUnexpectedTag,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				_, _, err := c509tlv.Decode(tt.input, 0)
				assert.ErrorIs(t, err, tt.wantErr)
			})
		})
	}
}

func TestDecodeLenientLongForm(t *testing.T) {
	node, n, err := c509tlv.Decode([]byte{0x04, 0x81, 0x02, 0xaa, 0xbb}, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []byte{0xaa, 0xbb}, node.Value)
}

func TestNodeHelpers(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Members",
			testFunc: func(t *testing.T) {
				der, err := asn1.Marshal(struct {
					A int
					B []byte
				}{A: 7, B: []byte{1, 2, 3}})
				require.NoError(t, err)

				node, err := c509tlv.DecodeSingle(der)
				require.NoError(t, err)
				members, err := node.Members()
				require.NoError(t, err)
				require.Len(t, members, 2)
				assert.Equal(t, c509tlv.TagInteger, members[0].Tag)
				assert.Equal(t, []byte{1, 2, 3}, members[1].Value)
			},
		},
		{
			name: "Members of primitive",
			testFunc: func(t *testing.T) {
				node, err := c509tlv.DecodeSingle([]byte{0x02, 0x01, 0x05})
				require.NoError(t, err)
				_, err = node.Members()
				assert.ErrorIs(t, err, c509.ErrUnexpectedTag)
			},
		},
		{
			name: "DecodeSingle trailing data",
			testFunc: func(t *testing.T) {
				_, err := c509tlv.DecodeSingle([]byte{0x05, 0x00, 0x00})
				assert.ErrorIs(t, err, c509.ErrTrailingData)
			},
		},
		{
			name: "Expect",
			testFunc: func(t *testing.T) {
				node, err := c509tlv.DecodeSingle([]byte{0x05, 0x00})
				require.NoError(t, err)
				assert.NoError(t, node.Expect(c509tlv.TagNull))
				assert.ErrorIs(t, node.Expect(c509tlv.TagInteger), c509.ErrUnexpectedTag)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.testFunc(t)
		})
	}
}

func TestMarshalMatchesEncodingASN1(t *testing.T) {
	type inner struct {
		OID  asn1.ObjectIdentifier
		Flag bool
	}
	type outer struct {
		Serial  int64
		Inner   inner
		Payload []byte
		Bits    asn1.BitString
	}
	payload := bytes.Repeat([]byte{0x42}, 300)
	bits := []byte{0x80, 0x01, 0xff}

	want, err := asn1.Marshal(outer{
		Serial:  0x80,
		Inner:   inner{OID: asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}, Flag: true},
		Payload: payload,
		Bits:    asn1.BitString{Bytes: bits, BitLength: len(bits) * 8},
	})
	require.NoError(t, err)

	oid, err := asn1.Marshal(asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1})
	require.NoError(t, err)

	got := c509tlv.Marshal(c509tlv.Sequence(
		c509tlv.UnsignedInteger([]byte{0x80}),
		c509tlv.Sequence(c509tlv.Raw(oid), c509tlv.Boolean(true)),
		c509tlv.Primitive{Tag: c509tlv.TagOctetString, Content: payload},
		c509tlv.BitString(bits),
	))
	assert.Equal(t, want, got)
	assert.Equal(t, len(got), cap(got))
}

func TestIntegerHelpers(t *testing.T) {
	tests := []struct {
		name    string
		mag     []byte
		wantDER []byte
	}{
		{name: "zero", mag: nil, wantDER: []byte{0x02, 0x01, 0x00}},
		{name: "small", mag: []byte{0x01}, wantDER: []byte{0x02, 0x01, 0x01}},
		{name: "leading zeros ignored", mag: []byte{0x00, 0x00, 0x7f}, wantDER: []byte{0x02, 0x01, 0x7f}},
		{name: "guard octet", mag: []byte{0x80}, wantDER: []byte{0x02, 0x02, 0x00, 0x80}},
		{name: "guard octet multi", mag: []byte{0xff, 0x01}, wantDER: []byte{0x02, 0x03, 0x00, 0xff, 0x01}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			der := c509tlv.Marshal(c509tlv.UnsignedInteger(tt.mag))
			assert.Equal(t, tt.wantDER, der)

			node, err := c509tlv.DecodeSingle(der)
			require.NoError(t, err)
			mag, err := c509tlv.Unsigned(node)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(bytes.TrimLeft(tt.mag, "\x00"), mag), "magnitude %x", mag)
		})
	}

	t.Run("negative rejected", func(t *testing.T) {
		node, err := c509tlv.DecodeSingle([]byte{0x02, 0x01, 0xff})
		require.NoError(t, err)
		_, err = c509tlv.Unsigned(node)
		assert.ErrorIs(t, err, c509.ErrInvalidValue)
	})

	t.Run("SmallInt", func(t *testing.T) {
		node, err := c509tlv.DecodeSingle([]byte{0x02, 0x02, 0x01, 0x00})
		require.NoError(t, err)
		v, err := c509tlv.SmallInt(node)
		require.NoError(t, err)
		assert.Equal(t, 256, v)
	})
}

func TestBitStringBytes(t *testing.T) {
	node, err := c509tlv.DecodeSingle([]byte{0x03, 0x03, 0x00, 0xde, 0xad})
	require.NoError(t, err)
	b, err := c509tlv.BitStringBytes(node)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad}, b)

	node, err = c509tlv.DecodeSingle([]byte{0x03, 0x02, 0x04, 0xf0})
	require.NoError(t, err)
	_, err = c509tlv.BitStringBytes(node)
	assert.ErrorIs(t, err, c509.ErrInvalidValue)
}

func BenchmarkMarshalNested(b *testing.B) {
	payload := bytes.Repeat([]byte{0x01}, 512)
	v := c509tlv.Sequence(
		c509tlv.Sequence(c509tlv.UnsignedInteger([]byte{0x8b, 0x27}), c509tlv.Null),
		c509tlv.Primitive{Tag: c509tlv.TagOctetString, Content: payload},
		c509tlv.BitString(payload),
	)

	b.ReportAllocs()

	for b.Loop() {
		_ = c509tlv.Marshal(v)
	}
}

func TestBitStringOf(t *testing.T) {
	inner := c509tlv.Sequence(c509tlv.UnsignedInteger([]byte{0x80}), c509tlv.Null)
	want := c509tlv.Marshal(c509tlv.BitString(c509tlv.Marshal(inner)))

	assert.Equal(t, want, c509tlv.Marshal(c509tlv.BitStringOf(inner)))
}
