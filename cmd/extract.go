/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/humaidq/liverscreen/assess"
	"github.com/humaidq/liverscreen/extract"
)

var CmdExtract = &cli.Command{
	Name:      "extract",
	Usage:     "Pull lab values out of a PDF report",
	ArgsUsage: "<report.pdf>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "text",
			Usage: "read plain report text from this file instead of a PDF",
		},
		&cli.StringFlag{
			Name:  "format",
			Value: formatText,
			Usage: "output format: text, json or yaml",
		},
	},
	Action: extractReport,
}

func extractReport(ctx context.Context, cmd *cli.Command) error {
	fields, err := extractFields(cmd)
	if err != nil {
		return err
	}

	return encodeFields(os.Stdout, cmd.String("format"), fields)
}

// extractFields reads the report named on the command line. Finding no
// values in a readable report is not an error; only unreadable input is.
func extractFields(cmd *cli.Command) (extract.Fields, error) {
	if textPath := cmd.String("text"); textPath != "" {
		content, err := os.ReadFile(textPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read text file: %w", err)
		}

		return extract.FromText(string(content)), nil
	}

	args := cmd.Args()
	if args.Len() < 1 {
		return nil, errReportFileRequired
	}

	f, err := os.Open(args.First())
	if err != nil {
		return nil, fmt.Errorf("failed to open report: %w", err)
	}
	defer f.Close()

	fields, err := extract.FromPDF(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", args.First(), err)
	}

	return fields, nil
}

func encodeFields(w io.Writer, format string, fields extract.Fields) error {
	switch format {
	case formatText:
		if len(fields) == 0 {
			fmt.Fprintln(w, "No recognisable lab values found")
			return nil
		}

		for _, name := range fields.Names() {
			fmt.Fprintf(w, "%s: %g\n", name, fields[assess.Field(name)])
		}

		return nil
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(fieldsDoc(fields))
	case formatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(fieldsDoc(fields)); err != nil {
			return err
		}

		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", errUnsupportedFormat, format)
	}
}

// fieldsDoc flattens to a string-keyed map so both encoders render sorted,
// predictable keys.
func fieldsDoc(fields extract.Fields) map[string]float64 {
	doc := make(map[string]float64, len(fields))
	for field, value := range fields {
		doc[string(field)] = value
	}

	return doc
}
