/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package batch

import (
	"io"
	"path/filepath"
	"strings"
)

// Format identifies a supported table file format.
type Format string

// Supported table formats.
const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// DetectFormat maps a filename extension onto a table format.
func DetectFormat(filename string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV, true
	case ".xlsx":
		return FormatXLSX, true
	default:
		return "", false
	}
}

// Ext returns the filename extension for the format, dot included.
func (f Format) Ext() string {
	if f == FormatXLSX {
		return ".xlsx"
	}

	return ".csv"
}

// ContentType returns the MIME type used when serving the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}

	return "text/csv"
}

// Read parses a table in the given format into its header row and data rows.
func Read(r io.Reader, format Format) ([]string, [][]string, error) {
	if format == FormatXLSX {
		return ReadXLSX(r)
	}

	return ReadCSV(r)
}

// Write renders a processed result in the given format.
func Write(w io.Writer, format Format, res *Result) error {
	if format == FormatXLSX {
		return WriteXLSX(w, res)
	}

	return WriteCSV(w, res)
}
