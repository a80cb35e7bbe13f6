/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/liverscreen/batch"
)

var CmdBatch = &cli.Command{
	Name:      "batch",
	Usage:     "Score a CSV or XLSX table of patients",
	ArgsUsage: "<input file>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "output",
			Usage: "output file path (defaults to the input name with _scored appended)",
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "output format, csv or xlsx (defaults to the output file extension)",
		},
	},
	Action: scoreBatch,
}

func scoreBatch(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args()
	if args.Len() < 1 {
		return errInputFileRequired
	}

	input := args.First()

	inputFormat, ok := batch.DetectFormat(input)
	if !ok {
		return fmt.Errorf("%w: %q", errUnsupportedTable, input)
	}

	output := cmd.String("output")

	outputFormat, err := batchOutputFormat(cmd, inputFormat, output)
	if err != nil {
		return err
	}

	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + "_scored" + outputFormat.Ext()
	}

	in, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer in.Close()

	header, rows, err := batch.Read(in, inputFormat)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", input, err)
	}

	res := batch.Process(header, rows)

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := batch.Write(out, outputFormat, res); err != nil {
		out.Close()
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	fmt.Printf("Scored %d of %d row(s), %d incomplete\n",
		res.Summary.Scored, res.Summary.Rows, res.Summary.Incomplete)

	for _, issue := range res.Issues {
		fmt.Println("  " + issue)
	}

	fmt.Printf("Results written to %s\n", output)

	return nil
}

// batchOutputFormat resolves the output format: an explicit --format wins,
// then the --output extension, then the input's own format.
func batchOutputFormat(cmd *cli.Command, inputFormat batch.Format, output string) (batch.Format, error) {
	if name := cmd.String("format"); name != "" {
		switch batch.Format(strings.ToLower(name)) {
		case batch.FormatCSV:
			return batch.FormatCSV, nil
		case batch.FormatXLSX:
			return batch.FormatXLSX, nil
		default:
			return "", fmt.Errorf("%w: %q", errUnsupportedTable, name)
		}
	}

	if output != "" {
		format, ok := batch.DetectFormat(output)
		if !ok {
			return "", fmt.Errorf("%w: %q", errUnsupportedTable, output)
		}

		return format, nil
	}

	return inputFormat, nil
}
