// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package c509cbor

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/H0llyW00dzZ/c509-converter/src/internal/c509"
)

// Decoder reads data items sequentially from a borrowed slice.
//
// Byte strings returned by the decoder alias the input.
type Decoder struct {
	data []byte
	off  int
}

// NewDecoder returns a decoder positioned at the start of b.
func NewDecoder(b []byte) *Decoder {
	return &Decoder{data: b}
}

// Offset reports the number of bytes consumed so far.
func (d *Decoder) Offset() int { return d.off }

// Remaining reports the number of unread bytes.
func (d *Decoder) Remaining() int { return len(d.data) - d.off }

// Done returns an error wrapping [c509.ErrTrailingData] if any input is left.
func (d *Decoder) Done() error {
	if r := d.Remaining(); r != 0 {
		return fmt.Errorf("%w: %d bytes after last item", c509.ErrTrailingData, r)
	}
	return nil
}

// PeekMajor returns the major type of the next item without consuming it.
func (d *Decoder) PeekMajor() (Major, error) {
	if d.off >= len(d.data) {
		return 0, fmt.Errorf("%w: expected data item at offset %d", c509.ErrTruncatedInput, d.off)
	}
	return Major(d.data[d.off] >> 5), nil
}

// IsNull reports whether the next item is the simple value null.
func (d *Decoder) IsNull() bool {
	return d.off < len(d.data) && d.data[d.off] == byte(MajorSimple)<<5|simpleNull
}

// ReadNull consumes a null.
func (d *Decoder) ReadNull() error {
	if !d.IsNull() {
		return d.unexpected("null")
	}
	d.off++
	return nil
}

// ReadBool consumes false or true.
func (d *Decoder) ReadBool() (bool, error) {
	if d.off >= len(d.data) {
		return false, fmt.Errorf("%w: expected bool", c509.ErrTruncatedInput)
	}
	switch d.data[d.off] {
	case byte(MajorSimple)<<5 | simpleFalse:
		d.off++
		return false, nil
	case byte(MajorSimple)<<5 | simpleTrue:
		d.off++
		return true, nil
	}
	return false, d.unexpected("bool")
}

// ReadUint consumes an unsigned integer.
func (d *Decoder) ReadUint() (uint64, error) {
	arg, err := d.expect(MajorUint)
	if err != nil {
		return 0, err
	}
	return arg, nil
}

// ReadInt consumes an unsigned or negative integer that fits in an int64.
func (d *Decoder) ReadInt() (int64, error) {
	major, err := d.PeekMajor()
	if err != nil {
		return 0, err
	}
	if major != MajorUint && major != MajorNegInt {
		return 0, d.unexpected("integer")
	}
	_, arg, err := d.readHeader()
	if err != nil {
		return 0, err
	}
	if arg > math.MaxInt64 {
		return 0, fmt.Errorf("%w: integer out of range", c509.ErrInvalidValue)
	}
	if major == MajorNegInt {
		return -1 - int64(arg), nil
	}
	return int64(arg), nil
}

// ReadBytes consumes a byte string. The result aliases the input.
func (d *Decoder) ReadBytes() ([]byte, error) {
	return d.readString(MajorBytes)
}

// ReadText consumes a text string and checks that it is valid UTF-8.
func (d *Decoder) ReadText() (string, error) {
	b, err := d.readString(MajorText)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: text string is not valid UTF-8", c509.ErrInvalidValue)
	}
	return string(b), nil
}

// ReadArray consumes an array header and returns its element count. The
// elements follow and must be read by the caller.
func (d *Decoder) ReadArray() (int, error) {
	arg, err := d.expect(MajorArray)
	if err != nil {
		return 0, err
	}
	// Every element takes at least one byte.
	if arg > uint64(d.Remaining()) {
		return 0, fmt.Errorf("%w: array of %d elements, %d bytes remaining",
			c509.ErrTruncatedInput, arg, d.Remaining())
	}
	return int(arg), nil
}

// ReadArrayLen consumes an array header and checks that it has between
// lo and hi elements inclusive.
func (d *Decoder) ReadArrayLen(lo, hi int) (int, error) {
	n, err := d.ReadArray()
	if err != nil {
		return 0, err
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%w: array of %d elements, want %d..%d", c509.ErrInvalidLength, n, lo, hi)
	}
	return n, nil
}

// ReadRaw consumes one complete data item and returns its encoding.
func (d *Decoder) ReadRaw() ([]byte, error) {
	start := d.off
	if err := d.skip(0); err != nil {
		return nil, err
	}
	return d.data[start:d.off:d.off], nil
}

// maxDepth bounds nesting in ReadRaw.
const maxDepth = 32

func (d *Decoder) skip(depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("%w: nesting deeper than %d", c509.ErrInvalidValue, maxDepth)
	}
	major, err := d.PeekMajor()
	if err != nil {
		return err
	}
	switch major {
	case MajorUint, MajorNegInt:
		_, _, err = d.readHeader()
		return err
	case MajorBytes, MajorText:
		_, err = d.readString(major)
		return err
	case MajorArray:
		n, err := d.ReadArray()
		if err != nil {
			return err
		}
		for range n {
			if err := d.skip(depth + 1); err != nil {
				return err
			}
		}
		return nil
	case MajorSimple:
		if d.IsNull() {
			return d.ReadNull()
		}
		_, err = d.ReadBool()
		return err
	}
	return fmt.Errorf("%w: %s", c509.ErrUnsupportedMajorType, major)
}

func (d *Decoder) readString(major Major) ([]byte, error) {
	arg, err := d.expect(major)
	if err != nil {
		return nil, err
	}
	if arg > uint64(d.Remaining()) {
		return nil, fmt.Errorf("%w: %s of %d bytes, %d remaining",
			c509.ErrTruncatedInput, major, arg, d.Remaining())
	}
	end := d.off + int(arg)
	b := d.data[d.off:end:end]
	d.off = end
	return b, nil
}

func (d *Decoder) expect(major Major) (uint64, error) {
	got, err := d.PeekMajor()
	if err != nil {
		return 0, err
	}
	if got != major {
		return 0, d.unexpected(major.String())
	}
	_, arg, err := d.readHeader()
	return arg, err
}

// readHeader consumes the initial byte and argument of the next item.
func (d *Decoder) readHeader() (Major, uint64, error) {
	if d.off >= len(d.data) {
		return 0, 0, fmt.Errorf("%w: expected data item", c509.ErrTruncatedInput)
	}
	initial := d.data[d.off]
	major, info := Major(initial>>5), initial&0x1f

	switch major {
	case MajorMap, MajorTag:
		return 0, 0, fmt.Errorf("%w: %s", c509.ErrUnsupportedMajorType, major)
	}
	if info == infoIndefinite {
		return 0, 0, fmt.Errorf("%w: indefinite length %s", c509.ErrUnsupportedMajorType, major)
	}

	var size int
	switch {
	case info < infoUint8:
		d.off++
		return major, uint64(info), nil
	case info == infoUint8:
		size = 1
	case info == infoUint16:
		size = 2
	case info == infoUint32:
		size = 4
	case info == infoUint64:
		size = 8
	default:
		return 0, 0, fmt.Errorf("%w: reserved additional information %d", c509.ErrInvalidLength, info)
	}
	if major == MajorSimple {
		return 0, 0, fmt.Errorf("%w: floating-point or extended simple value", c509.ErrUnsupportedMajorType)
	}
	if size > len(d.data)-d.off-1 {
		return 0, 0, fmt.Errorf("%w: %d-byte argument", c509.ErrTruncatedInput, size)
	}

	var arg uint64
	for _, b := range d.data[d.off+1 : d.off+1+size] {
		arg = arg<<8 | uint64(b)
	}
	if HeaderLen(arg) != 1+size {
		return 0, 0, fmt.Errorf("%w: non-minimal argument %d", c509.ErrInvalidLength, arg)
	}
	d.off += 1 + size
	return major, arg, nil
}

func (d *Decoder) unexpected(want string) error {
	if d.off >= len(d.data) {
		return fmt.Errorf("%w: expected %s", c509.ErrTruncatedInput, want)
	}
	major := Major(d.data[d.off] >> 5)
	switch {
	case major == MajorMap, major == MajorTag,
		major == MajorSimple && d.data[d.off]&0x1f >= infoUint8,
		d.data[d.off]&0x1f == infoIndefinite:
		return fmt.Errorf("%w: %s at offset %d", c509.ErrUnsupportedMajorType, major, d.off)
	}
	return fmt.Errorf("%w: got %s at offset %d, want %s", c509.ErrUnexpectedTag, major, d.off, want)
}
