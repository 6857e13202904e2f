// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/H0llyW00dzZ/c509-converter/src/internal/helper/posix"
	x509source "github.com/H0llyW00dzZ/c509-converter/src/internal/x509/source"
)

// ErrNoTargets is returned when fetch is given no hosts.
var ErrNoTargets = errors.New("no hosts given (pass HOST arguments or --hosts)")

type fetchOptions struct {
	hostsFile string
	outDir    string
	port      int
	timeout   int
	workers   int
}

func newFetchCmd(a *app) *cobra.Command {
	var opts fetchOptions
	cmd := &cobra.Command{
		Use:   "fetch [HOST[:PORT]...]",
		Short: "Fetch certificates from TLS servers and store them as C509",
		Long: `Connect to each host, read the certificates the server presents and write
them to --out as <host>.c509, or <host>_N.c509 when the server sends a
chain. The certificates are not verified.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("port") {
				opts.port = a.cfg.DefaultPort
			}
			if !flags.Changed("timeout") {
				opts.timeout = a.cfg.TimeoutSeconds
			}
			if !flags.Changed("workers") {
				opts.workers = a.cfg.Workers
			}
			return run(func() error {
				targets, err := collectTargets(args, opts)
				if err != nil {
					return err
				}
				return a.runFetch(cmd.Context(), targets, opts)
			})
		},
	}
	cmd.Flags().StringVar(&opts.hostsFile, "hosts", "", "file with one host[:port] per line")
	cmd.Flags().StringVar(&opts.outDir, "out", "", "output directory (created if missing)")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 443, "port for hosts given without one")
	cmd.Flags().IntVarP(&opts.timeout, "timeout", "t", 10, "dial and handshake timeout in seconds")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 4, "concurrent connections")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func collectTargets(args []string, opts fetchOptions) ([]x509source.Target, error) {
	var targets []x509source.Target
	for _, arg := range args {
		t, err := x509source.ParseTarget(arg, opts.port)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	if opts.hostsFile != "" {
		f, err := os.Open(opts.hostsFile)
		if err != nil {
			return nil, fmt.Errorf("error reading hosts file: %w", err)
		}
		defer f.Close()
		listed, err := x509source.LoadHostList(f, opts.port)
		if err != nil {
			return nil, err
		}
		targets = append(targets, listed...)
	}
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}
	return targets, nil
}

func (a *app) runFetch(ctx context.Context, targets []x509source.Target, opts fetchOptions) error {
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}
	timeout := time.Duration(opts.timeout) * time.Second

	var written, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.workers, 1))

	for _, target := range targets {
		g.Go(func() error {
			n, err := a.fetchTarget(gctx, target, opts.outDir, opts.port, timeout)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				a.log.Errorf("%s: %v", target, err)
				failed.Add(1)
				return nil
			}
			written.Add(int64(n))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	a.log.Printf("Fetch finished: %d certificate(s) written, %d host(s) failed", written.Load(), failed.Load())
	if written.Load() == 0 {
		return ErrBatchFailed
	}
	return nil
}

func (a *app) fetchTarget(ctx context.Context, target x509source.Target, outDir string, defaultPort int, timeout time.Duration) (int, error) {
	ders, err := x509source.FetchRemote(ctx, target.Host, target.Port, timeout)
	if err != nil {
		return 0, err
	}
	items, err := a.encodeAll(ders)
	if err != nil {
		return 0, err
	}

	base := target.FileBase(defaultPort)
	for i, item := range items {
		path := filepath.Join(outDir, posix.IndexedName(base, i+1, len(items), extCompact))
		if err := os.WriteFile(path, item, 0o644); err != nil {
			return i, err
		}
	}
	a.log.Printf("%s: %d certificate(s)", target, len(items))
	return len(items), nil
}
