// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package gc_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/c509-converter/src/internal/helper/gc"
)

type errorReader struct{ err error }

func (e *errorReader) Read([]byte) (int, error) { return 0, e.err }

// plainBuffer satisfies gc.Buffer without coming from the pool.
type plainBuffer struct{ bytes.Buffer }

func TestPool(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Get Put Reset",
			testFunc: func(t *testing.T) {
				buf := gc.Default.Get()
				require.NotNil(t, buf)
				buf.WriteString("c509")
				buf.WriteByte('!')
				assert.Equal(t, "c509!", buf.String())
				assert.Equal(t, 5, buf.Len())
				gc.Default.Put(buf)

				again := gc.Default.Get()
				defer gc.Default.Put(again)
				assert.Zero(t, again.Len())
			},
		},
		{
			name: "Put Foreign Buffer",
			testFunc: func(t *testing.T) {
				assert.NotPanics(t, func() { gc.Default.Put(&plainBuffer{}) })
			},
		},
		{
			name: "WriteTo",
			testFunc: func(t *testing.T) {
				buf := gc.Default.Get()
				defer gc.Default.Put(buf)
				buf.Write([]byte{0x83, 0x01, 0x02, 0x03})

				var out bytes.Buffer
				n, err := buf.WriteTo(&out)
				require.NoError(t, err)
				assert.Equal(t, int64(4), n)
				assert.Equal(t, []byte{0x83, 0x01, 0x02, 0x03}, out.Bytes())
			},
		},
		{
			name: "Concurrent Use",
			testFunc: func(t *testing.T) {
				var wg sync.WaitGroup
				for i := range 64 {
					wg.Go(func() {
						for range 200 {
							buf := gc.Default.Get()
							buf.WriteString(strings.Repeat("x", i))
							assert.Equal(t, i, buf.Len())
							gc.Default.Put(buf)
						}
					})
				}
				wg.Wait()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestReadAll(t *testing.T) {
	data := bytes.Repeat([]byte{0x30, 0x82}, 4096)

	got, err := gc.ReadAll(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Equal(t, len(got), cap(got))

	boom := errors.New("boom")
	_, err = gc.ReadAll(&errorReader{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cert.der")
	require.NoError(t, os.WriteFile(path, []byte{0x30, 0x00}, 0o644))

	got, err := gc.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x30, 0x00}, got)

	_, err = gc.ReadFile(filepath.Join(t.TempDir(), "missing.der"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConcat(t *testing.T) {
	assert.Equal(t, []byte{1, 2, 3, 4}, gc.Concat([]byte{1}, nil, []byte{2, 3}, []byte{4}))
	assert.Empty(t, gc.Concat())
}

func BenchmarkReadAll(b *testing.B) {
	data := bytes.Repeat([]byte{0xa5}, 2048)
	b.ReportAllocs()
	for b.Loop() {
		if _, err := gc.ReadAll(bytes.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}
