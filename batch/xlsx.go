/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package batch

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// resultsSheet is the sheet name XLSX output is written to.
const resultsSheet = "Results"

// Column widths for XLSX output. Result columns are a little wider than
// input columns, and the trailing Notes column wider still.
const (
	xlsxInputColWidth  = 12.0
	xlsxResultColWidth = 18.0
	xlsxNotesColWidth  = 60.0
)

// ReadXLSX parses the first sheet of a workbook into its header row and
// data rows. Rows may be ragged; short rows read as absent trailing cells.
func ReadXLSX(r io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil, errNoSheets
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read workbook rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil, errEmptyTable
	}

	return rows[0], rows[1:], nil
}

// WriteXLSX renders a processed result as a single-sheet workbook with a
// bold frozen header row.
func WriteXLSX(w io.Writer, res *Result) error {
	f := excelize.NewFile()
	// No deferred Close: WriteTo needs the file open, so Close is explicit.

	index, err := f.NewSheet(resultsSheet)
	if err != nil {
		f.Close()
		return fmt.Errorf("create sheet: %w", err)
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return fmt.Errorf("delete default sheet: %w", err)
	}

	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		f.Close()
		return fmt.Errorf("create header style: %w", err)
	}

	for col, cell := range res.Header {
		name, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return fmt.Errorf("convert coordinates: %w", err)
		}

		if err := f.SetCellValue(resultsSheet, name, cell); err != nil {
			f.Close()
			return fmt.Errorf("set header cell %s: %w", name, err)
		}

		if err := f.SetCellStyle(resultsSheet, name, name, headerStyle); err != nil {
			f.Close()
			return fmt.Errorf("style header cell %s: %w", name, err)
		}
	}

	inputCols := len(res.Header) - len(resultColumns)

	for i := range res.Header {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return fmt.Errorf("convert column number: %w", err)
		}

		width := xlsxInputColWidth
		switch {
		case i == len(res.Header)-1:
			width = xlsxNotesColWidth
		case i >= inputCols:
			width = xlsxResultColWidth
		}

		if err := f.SetColWidth(resultsSheet, name, name, width); err != nil {
			f.Close()
			return fmt.Errorf("set column width: %w", err)
		}
	}

	for rowIdx, row := range res.Rows {
		for colIdx, cell := range row {
			if cell == "" {
				continue
			}

			name, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				f.Close()
				return fmt.Errorf("convert coordinates: %w", err)
			}

			if err := f.SetCellValue(resultsSheet, name, cell); err != nil {
				f.Close()
				return fmt.Errorf("set cell %s: %w", name, err)
			}
		}
	}

	if err := f.SetPanes(resultsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return fmt.Errorf("freeze header row: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		f.Close()
		return fmt.Errorf("write workbook: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close workbook: %w", err)
	}

	return nil
}
