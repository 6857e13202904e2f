// Copyright (c) 2024 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package gc

import (
	"fmt"
	"io"
	"os"

	"github.com/valyala/bytebufferpool"
)

// Buffer defines the interface for a reusable byte buffer.
// It abstracts the [bytebufferpool.ByteBuffer] type to avoid direct dependencies.
type Buffer interface {
	io.Writer
	io.WriterTo
	io.ReaderFrom
	WriteString(s string) (int, error)
	WriteByte(c byte) error
	Bytes() []byte
	String() string
	Len() int
	Reset()
}

// Pool defines the interface for buffer pooling.
//
// Pool implementations must be safe for concurrent use by multiple goroutines.
type Pool interface {
	Get() Buffer
	Put(b Buffer)
}

// pool wraps [bytebufferpool.Pool] to implement Pool interface.
type pool struct{ p *bytebufferpool.Pool }

// Get returns a buffer from the pool.
func (p *pool) Get() Buffer { return p.p.Get() }

// Put resets b and returns it to the pool. Buffers not obtained from a
// bytebufferpool are dropped.
func (p *pool) Put(b Buffer) {
	if buf, ok := b.(*bytebufferpool.ByteBuffer); ok {
		buf.Reset()
		p.p.Put(buf)
	}
}

// Default is the buffer pool shared by file reads, CBOR sequence assembly
// and log line formatting.
//
// The usual pattern:
//
//	buf := gc.Default.Get()
//	defer gc.Default.Put(buf)
//
//	if _, err := buf.ReadFrom(f); err != nil {
//		return nil, err
//	}
//	out := bytes.Clone(buf.Bytes())
//
// Bytes returned by a pooled buffer must be copied before Put.
var Default Pool = &pool{p: &bytebufferpool.Pool{}}

// ReadAll reads r to EOF through a pooled buffer and returns a copy of the
// content sized exactly to it.
func ReadAll(r io.Reader) ([]byte, error) {
	buf := Default.Get()
	defer Default.Put(buf)

	if _, err := buf.ReadFrom(r); err != nil {
		return nil, err
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

// ReadFile is [os.ReadFile] backed by the [Default] pool.
func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return data, nil
}

// Concat joins parts through a pooled buffer into one exactly sized slice.
func Concat(parts ...[]byte) []byte {
	buf := Default.Get()
	defer Default.Put(buf)

	for _, p := range parts {
		buf.Write(p)
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out
}
