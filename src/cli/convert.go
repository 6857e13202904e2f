// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEncodeCmd(a *app) *cobra.Command {
	var (
		inputFile  string
		outputFile string
		hexOutput  bool
	)
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Convert PEM, DER or PKCS#7 certificates to C509",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(func() error {
				data, err := readInput(inputFile)
				if err != nil {
					return err
				}
				ders, err := a.decoder.DecodeMultiple(data)
				if err != nil {
					return err
				}
				items, err := a.encodeAll(ders)
				if err != nil {
					return err
				}

				out := a.decoder.EncodeCompactSequence(items)
				if hexOutput {
					out = a.decoder.EncodeCompactHex(items)
				}
				a.log.Printf("Encoded %d certificate(s): %d DER bytes to %d C509 bytes",
					len(items), totalLen(ders), totalLen(items))
				return writeOutput(cmd, outputFile, out)
			})
		},
	}
	cmd.Flags().StringVarP(&inputFile, "file", "f", "", "input certificate file (PEM, DER or PKCS#7)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&hexOutput, "hex", false, "write one hex line per certificate instead of binary CBOR")
	return cmd
}

func newDecodeCmd(a *app) *cobra.Command {
	var (
		inputFile  string
		outputFile string
		pemOutput  bool
	)
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Convert C509 certificates back to DER or PEM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("pem") {
				pemOutput = a.cfg.PEM
			}
			return run(func() error {
				data, err := readInput(inputFile)
				if err != nil {
					return err
				}
				items, err := a.decoder.DecodeCompact(data)
				if err != nil {
					return err
				}
				ders, err := a.decodeAll(items)
				if err != nil {
					return err
				}

				out := a.decoder.EncodeMultipleDER(ders)
				if pemOutput {
					out = a.decoder.EncodeMultiplePEM(ders)
				}
				a.log.Printf("Decoded %d certificate(s): %d C509 bytes to %d DER bytes",
					len(ders), totalLen(items), totalLen(ders))
				return writeOutput(cmd, outputFile, out)
			})
		},
	}
	cmd.Flags().StringVarP(&inputFile, "file", "f", "", "input C509 file (binary CBOR sequence or hex lines)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&pemOutput, "pem", false, "write PEM instead of DER")
	return cmd
}

// encodeAll converts every DER certificate, stopping at the first failure.
func (a *app) encodeAll(ders [][]byte) ([][]byte, error) {
	items := make([][]byte, len(ders))
	for i, der := range ders {
		compact, err := a.conv.ToCompact(der)
		if err != nil {
			return nil, fmt.Errorf("certificate %d: %w", i+1, err)
		}
		items[i] = compact
	}
	return items, nil
}

func (a *app) decodeAll(items [][]byte) ([][]byte, error) {
	ders := make([][]byte, len(items))
	for i, item := range items {
		der, err := a.conv.ToDER(item)
		if err != nil {
			return nil, fmt.Errorf("certificate %d: %w", i+1, err)
		}
		ders[i] = der
	}
	return ders, nil
}

func totalLen(parts [][]byte) int {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	return n
}
