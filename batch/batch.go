/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package batch scores tabular patient data row by row. Input tables come
// from CSV or XLSX files; the output is the same table with the index
// values, categories, composite score, and per-row notes appended. A bad
// row never stops the rest of the batch.
package batch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/humaidq/liverscreen/assess"
	"github.com/humaidq/liverscreen/utils"
)

// Column identifies a recognized input column by its canonical header name.
type Column string

// Canonical column names. Aliases in input headers resolve onto these.
const (
	ColumnAge           Column = "age"
	ColumnSex           Column = "sex"
	ColumnBMI           Column = "bmi"
	ColumnWaist         Column = "waist_cm"
	ColumnTriglycerides Column = "tg_mgdl"
	ColumnGGT           Column = "ggt_ul"
	ColumnAST           Column = "ast_ul"
	ColumnALT           Column = "alt_ul"
	ColumnULNAST        Column = "uln_ast"
	ColumnPlatelets     Column = "platelets"
	ColumnAlbumin       Column = "albumin_gdl"
	ColumnDiabetes      Column = "diab_ifg"
)

// columnAliases maps every accepted header spelling (lowercased, trimmed)
// onto its canonical column.
var columnAliases = map[string]Column{
	"age":           ColumnAge,
	"sex":           ColumnSex,
	"bmi":           ColumnBMI,
	"waist_cm":      ColumnWaist,
	"waist":         ColumnWaist,
	"tg_mgdl":       ColumnTriglycerides,
	"tg":            ColumnTriglycerides,
	"triglycerides": ColumnTriglycerides,
	"ggt_ul":        ColumnGGT,
	"ggt":           ColumnGGT,
	"ast_ul":        ColumnAST,
	"ast":           ColumnAST,
	"alt_ul":        ColumnALT,
	"alt":           ColumnALT,
	"uln_ast":       ColumnULNAST,
	"platelets":     ColumnPlatelets,
	"albumin_gdl":   ColumnAlbumin,
	"albumin":       ColumnAlbumin,
	"diab_ifg":      ColumnDiabetes,
	"diabetes":      ColumnDiabetes,
}

// TemplateColumns returns the canonical input headers in template order,
// for display and for generated templates.
func TemplateColumns() []Column {
	return []Column{
		ColumnAge, ColumnSex, ColumnBMI, ColumnWaist,
		ColumnTriglycerides, ColumnGGT, ColumnAST, ColumnALT,
		ColumnULNAST, ColumnPlatelets, ColumnAlbumin, ColumnDiabetes,
	}
}

// resultColumns are appended to the input header in this order.
var resultColumns = []string{
	"FLI", "FLI_category", "FLI_action",
	"FIB4", "FIB4_category",
	"APRI", "APRI_category",
	"NFS", "NFS_category",
	"LiverHealth100", "LiverHealth_category",
	"Notes",
}

// maxSummaryIssues caps how many row notes the summary carries for display.
const maxSummaryIssues = 5

// columnBinding ties a recognized column to its position in the input
// header. Bindings are kept in header order so notes come out stable.
type columnBinding struct {
	index  int
	column Column
}

// resolveColumns matches header cells against the recognized aliases.
// Unrecognized headers are left alone and pass through to the output; a
// duplicated recognized header binds at its first occurrence.
func resolveColumns(header []string) []columnBinding {
	var bindings []columnBinding

	seen := make(map[Column]bool)

	for i, cell := range header {
		column, ok := columnAliases[strings.ToLower(strings.TrimSpace(cell))]
		if !ok || seen[column] {
			continue
		}

		seen[column] = true

		bindings = append(bindings, columnBinding{index: i, column: column})
	}

	return bindings
}

// recordFromRow builds a patient record from one row. Cells that fail to
// parse are reported as issues and leave their field absent, so the
// formulas surface them as "not computable" rather than the row failing.
func recordFromRow(bindings []columnBinding, row []string) (assess.PatientRecord, []string) {
	var (
		rec    assess.PatientRecord
		issues []string
	)

	for _, b := range bindings {
		if b.index >= len(row) {
			continue
		}

		cell := row[b.index]

		switch b.column {
		case ColumnSex:
			rec.Sex = assess.ParseSex(strings.TrimSpace(cell))
		case ColumnDiabetes:
			flag, err := utils.ParseBoolFlag(cell)
			if err != nil {
				issues = append(issues, fmt.Sprintf("%s: %v", b.column, err))
				continue
			}

			rec.Diabetes = flag
		default:
			value, err := utils.ParseOptionalFloat(cell)
			if err != nil {
				issues = append(issues, fmt.Sprintf("%s: %v", b.column, err))
				continue
			}

			if value == nil {
				continue
			}

			switch b.column {
			case ColumnAge:
				rec.Age = value
			case ColumnBMI:
				rec.BMI = value
			case ColumnWaist:
				rec.Waist = value
			case ColumnTriglycerides:
				rec.Triglycerides = value
			case ColumnGGT:
				rec.GGT = value
			case ColumnAST:
				rec.AST = value
			case ColumnALT:
				rec.ALT = value
			case ColumnULNAST:
				rec.ULNAST = value
			case ColumnPlatelets:
				rec.Platelets = value
			case ColumnAlbumin:
				rec.Albumin = value
			}
		}
	}

	return rec, issues
}

// Summary counts how a processed batch went.
type Summary struct {
	Rows       int
	Scored     int // rows where every index and the composite computed
	Incomplete int
}

// Result is a processed batch ready for writing: the input table with the
// result columns appended, plus counts and a few example notes for display.
type Result struct {
	Header  []string
	Rows    [][]string
	Summary Summary
	Issues  []string
}

// Process scores every row of the input table. The output preserves row
// order and count; rows that cannot be scored keep their input cells and
// explain themselves in the Notes column.
func Process(header []string, rows [][]string) *Result {
	bindings := resolveColumns(header)

	out := &Result{
		Header: append(append([]string{}, header...), resultColumns...),
		Rows:   make([][]string, 0, len(rows)),
	}
	out.Summary.Rows = len(rows)

	for i, row := range rows {
		rec, issues := recordFromRow(bindings, row)
		rep := assess.Evaluate(rec)

		notes := append(issues, rep.Notes()...)
		if len(notes) == 0 {
			out.Summary.Scored++
		} else {
			out.Summary.Incomplete++

			if len(out.Issues) < maxSummaryIssues {
				out.Issues = append(out.Issues, fmt.Sprintf("row %d: %s", i+1, notes[0]))
			}
		}

		cells := append(padRow(row, len(header)), resultCells(&rep, notes)...)
		out.Rows = append(out.Rows, cells)
	}

	logger.Debug("Processed batch",
		"rows", out.Summary.Rows,
		"scored", out.Summary.Scored,
		"incomplete", out.Summary.Incomplete)

	return out
}

// padRow copies a row out to the header width so ragged input lines up
// with the appended result columns.
func padRow(row []string, width int) []string {
	cells := make([]string, width)
	copy(cells, row)

	return cells
}

// resultCells renders one report into the appended columns. Cells for
// values that could not be computed stay empty.
func resultCells(rep *assess.Report, notes []string) []string {
	cells := make([]string, 0, len(resultColumns))

	cells = append(cells, outcomeValue(&rep.FLI), outcomeLabel(&rep.FLI), outcomeAction(&rep.FLI))

	for _, o := range rep.FibrosisOutcomes() {
		cells = append(cells, outcomeValue(&o), outcomeLabel(&o))
	}

	if rep.Health != nil {
		cells = append(cells, strconv.Itoa(rep.Health.Score), rep.Health.Label)
	} else {
		cells = append(cells, "", "")
	}

	return append(cells, strings.Join(notes, "; "))
}

func outcomeValue(o *assess.Outcome) string {
	if !o.Computable() {
		return ""
	}

	return o.Result.FormatValue()
}

func outcomeLabel(o *assess.Outcome) string {
	if !o.Computable() {
		return ""
	}

	return o.Result.Label
}

func outcomeAction(o *assess.Outcome) string {
	if !o.Computable() {
		return ""
	}

	return o.Result.Action
}
