// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/H0llyW00dzZ/c509-converter/src/internal/helper/gc"
	"github.com/H0llyW00dzZ/c509-converter/src/internal/helper/posix"
)

const (
	extCompact = ".c509"
	extDER     = ".der"
	extPEM     = ".pem"
)

// x509Exts and compactExts select the files a batch picks up.
var (
	x509Exts    = []string{".pem", ".crt", ".cer", ".der", ".p7b", ".p7c"}
	compactExts = []string{extCompact, ".cbor", ".hex"}
)

type batchOptions struct {
	inDir   string
	outDir  string
	reverse bool
	pem     bool
	workers int
}

func newBatchCmd(a *app) *cobra.Command {
	var opts batchOptions
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Convert every certificate file in a directory",
		Long: `Convert every certificate file in --in concurrently and write the results to
--out. Files that fail to convert are reported and skipped. A file holding
several certificates produces one numbered output per certificate.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("workers") {
				opts.workers = a.cfg.Workers
			}
			if !cmd.Flags().Changed("pem") {
				opts.pem = a.cfg.PEM
			}
			return run(func() error {
				return a.runBatch(cmd.Context(), opts)
			})
		},
	}
	cmd.Flags().StringVar(&opts.inDir, "in", "", "input directory")
	cmd.Flags().StringVar(&opts.outDir, "out", "", "output directory (created if missing)")
	cmd.Flags().BoolVar(&opts.reverse, "reverse", false, "convert C509 files back to X.509")
	cmd.Flags().BoolVar(&opts.pem, "pem", false, "with --reverse, write PEM instead of DER")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 4, "concurrent conversions")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func (a *app) runBatch(ctx context.Context, opts batchOptions) error {
	entries, err := os.ReadDir(opts.inDir)
	if err != nil {
		return fmt.Errorf("error reading input directory: %w", err)
	}
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	exts := x509Exts
	if opts.reverse {
		exts = compactExts
	}

	var converted, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.workers, 1))

	for _, entry := range entries {
		if entry.IsDir() || !slices.Contains(exts, strings.ToLower(filepath.Ext(entry.Name()))) {
			continue
		}
		name := entry.Name()
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			n, err := a.convertFile(filepath.Join(opts.inDir, name), opts)
			if err != nil {
				a.log.Errorf("%s: %v", name, err)
				failed.Add(1)
				return nil
			}
			converted.Add(int64(n))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	a.log.Printf("Batch finished: %d certificate(s) written, %d file(s) failed", converted.Load(), failed.Load())
	if converted.Load() == 0 && failed.Load() > 0 {
		return ErrBatchFailed
	}
	return nil
}

// convertFile converts one input file and returns the number of
// certificates written.
func (a *app) convertFile(path string, opts batchOptions) (int, error) {
	data, err := gc.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var (
		outputs [][]byte
		ext     string
	)
	if opts.reverse {
		items, err := a.decoder.DecodeCompact(data)
		if err != nil {
			return 0, err
		}
		if outputs, err = a.decodeAll(items); err != nil {
			return 0, err
		}
		ext = extDER
		if opts.pem {
			ext = extPEM
			for i, der := range outputs {
				outputs[i] = a.decoder.EncodePEM(der)
			}
		}
	} else {
		ders, err := a.decoder.DecodeMultiple(data)
		if err != nil {
			return 0, err
		}
		if outputs, err = a.encodeAll(ders); err != nil {
			return 0, err
		}
		ext = extCompact
	}

	base := posix.ReplaceExt(path, "")
	for i, out := range outputs {
		target := filepath.Join(opts.outDir, posix.IndexedName(base, i+1, len(outputs), ext))
		if err := os.WriteFile(target, out, 0o644); err != nil {
			return i, err
		}
	}
	return len(outputs), nil
}
