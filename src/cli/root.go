// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	c509cert "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/cert"
	"github.com/H0llyW00dzZ/c509-converter/src/internal/helper/gc"
	"github.com/H0llyW00dzZ/c509-converter/src/internal/helper/posix"
	x509certs "github.com/H0llyW00dzZ/c509-converter/src/internal/x509/certs"
	"github.com/H0llyW00dzZ/c509-converter/src/logger"
)

var (
	// OperationPerformed reports whether the last Execute ran a conversion command.
	OperationPerformed bool
	// OperationPerformedSuccessfully reports whether that command succeeded.
	OperationPerformedSuccessfully bool
)

var (
	// ErrInputFileRequired is returned when a command that needs -f is run without it.
	ErrInputFileRequired = errors.New("input file is required (use -f)")

	// ErrBatchFailed is returned when no file of a batch could be converted.
	ErrBatchFailed = errors.New("no certificate could be converted")
)

// app carries what every subcommand shares.
type app struct {
	log        logger.Logger
	cfg        *Config
	decoder    *x509certs.Certificate
	conv       *c509cert.Converter
	configPath string
}

// Execute runs the command line in os.Args against ctx. Progress and
// failures go to log; converted certificates go to the output file or
// stdout.
func Execute(ctx context.Context, version string, log logger.Logger) error {
	OperationPerformed = false
	OperationPerformedSuccessfully = false

	if log == nil {
		log = logger.NewCLILogger()
	}
	rootCmd := newRootCmd(version, log)
	rootCmd.SetArgs(os.Args[1:])
	return rootCmd.ExecuteContext(ctx)
}

func newRootCmd(version string, log logger.Logger) *cobra.Command {
	a := &app{
		log:     log,
		decoder: x509certs.New(),
		conv:    c509cert.Default,
	}
	exe := posix.GetExecutableName()

	rootCmd := &cobra.Command{
		Use:   exe,
		Short: "Convert X.509 certificates between DER and the compact C509 encoding",
		Long: `Convert X.509 certificates between DER and C509, a CBOR-based compact encoding.
Input certificates may be PEM, DER or PKCS#7; compact certificates are read
as binary CBOR sequences or hex text.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			if cfg.LogFormat == logFormatJSON {
				if _, ok := a.log.(*logger.CLILogger); ok {
					a.log = logger.NewJSONLogger(os.Stderr, false)
				}
			}
			return nil
		},
		Example: fmt.Sprintf(`  %[1]s encode -f leaf.pem -o leaf.c509
  %[1]s decode -f leaf.c509 --pem
  %[1]s inspect -f leaf.c509
  %[1]s batch --in certs/ --out compact/
  %[1]s fetch example.com --out compact/`, exe),
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "",
		"YAML or JSON config file (default: $"+configEnv+")")

	rootCmd.AddCommand(
		newEncodeCmd(a),
		newDecodeCmd(a),
		newInspectCmd(a),
		newBatchCmd(a),
		newFetchCmd(a),
	)
	return rootCmd
}

// run marks an operation as performed and records its outcome.
func run(fn func() error) error {
	OperationPerformed = true
	if err := fn(); err != nil {
		return err
	}
	OperationPerformedSuccessfully = true
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return nil, ErrInputFileRequired
	}
	data, err := gc.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading input file: %w", err)
	}
	return data, nil
}

// writeOutput writes data to path, or to the command's stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing to output file: %w", err)
	}
	return nil
}
