// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/H0llyW00dzZ/c509-converter/src/cli"
	"github.com/H0llyW00dzZ/c509-converter/src/logger"
	verpkg "github.com/H0llyW00dzZ/c509-converter/src/version"
)

var version string // set by ldflags or defaults to imported version

func init() {
	if version == "" {
		version = verpkg.Version
	}
}

func main() {
	log := logger.NewCLILogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() {
		done <- cli.Execute(ctx, version, log)
	}()

	select {
	case err := <-done:
		if err != nil {
			log.Errorf("%v", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		log.Println("Operation cancelled by signal. Exiting...")
		// Give in-flight conversions a moment to stop.
		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
		}
		os.Exit(130)
	}

	if cli.OperationPerformedSuccessfully {
		log.Println("Conversion completed successfully.")
	}
}
