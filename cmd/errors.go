/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import "errors"

var (
	errInputFileRequired  = errors.New("input file is required")
	errReportFileRequired = errors.New("a PDF path (or --text file) is required")
	errUnsupportedFormat  = errors.New("format must be one of: text, json, yaml")
	errUnsupportedTable   = errors.New("table files must be .csv or .xlsx")
)
