// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	c509cbor "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/cbor"
	c509cert "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/cert"
	c509oid "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/oid"
	c509pubkey "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/pubkey"
	c509sig "github.com/H0llyW00dzZ/c509-converter/src/internal/c509/signature"
	"github.com/H0llyW00dzZ/c509-converter/src/internal/helper/gc"
)

// inspected holds both encodings of one certificate.
type inspected struct {
	der     []byte
	compact []byte
	fields  *c509cert.Fields
}

func newInspectCmd(a *app) *cobra.Command {
	var (
		inputFile  string
		outputFile string
	)
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the fields of a certificate and its C509 size per field",
		Long: `Show the fields of each certificate in the input as a markdown table with the
size of every element of the compact encoding, followed by the CBOR
diagnostic notation. The input may be X.509 (PEM, DER or PKCS#7) or C509.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(func() error {
				data, err := readInput(inputFile)
				if err != nil {
					return err
				}
				certs, err := a.inspectAll(data)
				if err != nil {
					return err
				}

				buf := gc.Default.Get()
				defer gc.Default.Put(buf)
				for i, c := range certs {
					if i > 0 {
						buf.WriteString("\n")
					}
					report, err := a.renderReport(i+1, c)
					if err != nil {
						return err
					}
					buf.WriteString(report)
				}
				return writeOutput(cmd, outputFile, buf.Bytes())
			})
		},
	}
	cmd.Flags().StringVarP(&inputFile, "file", "f", "", "input certificate file (X.509 or C509)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	return cmd
}

// inspectAll parses data as X.509 first and falls back to C509.
func (a *app) inspectAll(data []byte) ([]inspected, error) {
	reg := a.conv.Registry()
	if ders, err := a.decoder.DecodeMultiple(data); err == nil {
		out := make([]inspected, len(ders))
		for i, der := range ders {
			c, err := a.conv.ParseDER(der)
			if err != nil {
				return nil, fmt.Errorf("certificate %d: %w", i+1, err)
			}
			compact, err := c.Fields.MarshalCompact(reg)
			if err != nil {
				return nil, fmt.Errorf("certificate %d: %w", i+1, err)
			}
			out[i] = inspected{der: der, compact: compact, fields: c.Fields}
		}
		return out, nil
	}

	items, err := a.decoder.DecodeCompact(data)
	if err != nil {
		return nil, fmt.Errorf("input is neither X.509 nor C509: %w", err)
	}
	out := make([]inspected, len(items))
	for i, item := range items {
		c, err := a.conv.ParseCompact(item)
		if err != nil {
			return nil, fmt.Errorf("certificate %d: %w", i+1, err)
		}
		der, err := c.Fields.MarshalDER(reg)
		if err != nil {
			return nil, fmt.Errorf("certificate %d: %w", i+1, err)
		}
		out[i] = inspected{der: der, compact: item, fields: c.Fields}
	}
	return out, nil
}

// elementSizes returns the encoded length of each top-level compact element.
func elementSizes(compact []byte) ([]int, error) {
	d := c509cbor.NewDecoder(compact)
	n, err := d.ReadArray()
	if err != nil {
		return nil, err
	}
	sizes := make([]int, n)
	for i := range n {
		raw, err := d.ReadRaw()
		if err != nil {
			return nil, err
		}
		sizes[i] = len(raw)
	}
	return sizes, nil
}

func (a *app) renderReport(index int, c inspected) (string, error) {
	reg := a.conv.Registry()
	f := c.fields

	sizes, err := elementSizes(c.compact)
	if err != nil {
		return "", err
	}
	diag, err := c509cbor.Diagnose(c.compact)
	if err != nil {
		return "", err
	}

	issuer := f.Issuer.String(reg)
	if f.SelfIssued() {
		issuer = "(self-issued)"
	}
	values := [][2]string{
		{c509cert.FieldVersion, "v" + strconv.Itoa(f.Version)},
		{c509cert.FieldSerialNumber, hex.EncodeToString(f.SerialNumber)},
		{c509cert.FieldSignature, algorithmName(reg, f.Signature)},
		{c509cert.FieldIssuer, issuer},
		{c509cert.FieldValidity, validityText(f.NotBefore, f.NotAfter)},
		{c509cert.FieldSubject, f.Subject.String(reg)},
		{c509cert.FieldSubjectPublicKey, keyText(f.PublicKey)},
		{c509cert.FieldExtensions, extensionsText(reg, f.Extensions)},
		{c509cert.FieldSignatureAlgorithm, algorithmName(reg, f.SignatureAlgorithm)},
		{c509cert.FieldSignatureValue, signatureText(f.SignatureValue)},
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "## Certificate %d\n\n", index)

	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)
	table.Header([]string{"Field", "Value", "C509 bytes"})

	rows := make([][]string, 0, len(values)+1)
	for i, v := range values {
		size := "-"
		if i < len(sizes) {
			size = strconv.Itoa(sizes[i])
		}
		rows = append(rows, []string{v[0], v[1], size})
	}
	rows = append(rows, []string{"total", fmt.Sprintf("%d DER bytes", len(c.der)), strconv.Itoa(len(c.compact))})

	if err := table.Bulk(rows); err != nil {
		return "", err
	}
	if err := table.Render(); err != nil {
		return "", err
	}

	fmt.Fprintf(&buf, "\n```\n%s\n```\n", diag)
	return buf.String(), nil
}

func algorithmName(reg *c509oid.Registry, alg c509cert.AlgorithmIdentifier) string {
	return reg.LookupByBytes(c509oid.SignatureAlgorithm, alg.OID).String()
}

func validityText(notBefore, notAfter time.Time) string {
	end := notAfter.UTC().Format(time.RFC3339)
	if notAfter.Equal(c509cert.NoExpiry) {
		end = "no expiration"
	}
	return notBefore.UTC().Format(time.RFC3339) + " to " + end
}

func keyText(key c509pubkey.PublicKey) string {
	name := "unknown"
	if alg := key.Algorithm(); alg != nil {
		name = alg.Name
	}
	switch k := key.(type) {
	case *c509pubkey.ECPublicKey:
		return name + " " + k.Curve.Name
	case *c509pubkey.RSAPublicKey:
		return fmt.Sprintf("%s %d-bit", name, k.N.BitLen())
	case *c509pubkey.OpaquePublicKey:
		return fmt.Sprintf("%s (%d bytes)", name, len(k.Key))
	}
	return name
}

func extensionsText(reg *c509oid.Registry, exts []c509cert.Extension) string {
	if len(exts) == 0 {
		return "none"
	}
	names := make([]string, len(exts))
	for i, e := range exts {
		names[i] = reg.LookupByBytes(c509oid.Extension, e.OID).String()
		if e.Critical {
			names[i] += " (critical)"
		}
	}
	return strings.Join(names, ", ")
}

func signatureText(v c509sig.Value) string {
	return fmt.Sprintf("%s, %d bytes", v.Family(), len(c509sig.EncodeSignatureValue(v)))
}
