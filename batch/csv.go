/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package batch

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ReadCSV parses a CSV table into its header row and data rows. Rows may be
// ragged; short rows read as absent trailing cells.
func ReadCSV(r io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil, errEmptyTable
	}

	return records[0], records[1:], nil
}

// WriteCSV renders a processed result as CSV.
func WriteCSV(w io.Writer, res *Result) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(res.Header); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	for _, row := range res.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush CSV: %w", err)
	}

	return nil
}
