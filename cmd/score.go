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
	"github.com/humaidq/liverscreen/utils"
)

// Output formats shared by the score and extract commands.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var CmdScore = &cli.Command{
	Name:  "score",
	Usage: "Compute the liver indices and health score for one patient",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "age",
			Usage: "age in years",
		},
		&cli.StringFlag{
			Name:  "sex",
			Usage: "sex, M or F",
		},
		&cli.StringFlag{
			Name:  "bmi",
			Usage: "body mass index (kg/m2)",
		},
		&cli.StringFlag{
			Name:  "waist",
			Usage: "waist circumference (cm)",
		},
		&cli.StringFlag{
			Name:  "tg",
			Usage: "triglycerides (mg/dL)",
		},
		&cli.StringFlag{
			Name:  "ggt",
			Usage: "gamma-glutamyl transferase (U/L)",
		},
		&cli.StringFlag{
			Name:  "ast",
			Usage: "aspartate aminotransferase (U/L)",
		},
		&cli.StringFlag{
			Name:  "alt",
			Usage: "alanine aminotransferase (U/L)",
		},
		&cli.StringFlag{
			Name:  "uln-ast",
			Usage: "lab upper limit of normal for AST (U/L), defaults to 40",
		},
		&cli.StringFlag{
			Name:  "platelets",
			Usage: "platelet count (10^9/L)",
		},
		&cli.StringFlag{
			Name:  "albumin",
			Usage: "serum albumin (g/dL)",
		},
		&cli.StringFlag{
			Name:  "diabetes",
			Usage: "diabetes or impaired fasting glycaemia (yes/no)",
		},
		&cli.StringFlag{
			Name:  "format",
			Value: formatText,
			Usage: "output format: text, json or yaml",
		},
	},
	Action: score,
}

func score(ctx context.Context, cmd *cli.Command) error {
	rec, err := recordFromFlags(cmd)
	if err != nil {
		return err
	}

	rep := assess.Evaluate(rec)

	return encodeReport(os.Stdout, cmd.String("format"), &rep)
}

// scoreNumericFlags lists the numeric flags in display order with the
// patient field each one feeds.
var scoreNumericFlags = []struct {
	name  string
	field assess.Field
}{
	{"age", assess.FieldAge},
	{"bmi", assess.FieldBMI},
	{"waist", assess.FieldWaist},
	{"tg", assess.FieldTriglycerides},
	{"ggt", assess.FieldGGT},
	{"ast", assess.FieldAST},
	{"alt", assess.FieldALT},
	{"uln-ast", assess.FieldULNAST},
	{"platelets", assess.FieldPlatelets},
	{"albumin", assess.FieldAlbumin},
}

// recordFromFlags builds a patient record from the command flags. Flags that
// were not given leave their field absent, so the formulas report what is
// missing instead of defaulting.
func recordFromFlags(cmd *cli.Command) (assess.PatientRecord, error) {
	var rec assess.PatientRecord

	for _, f := range scoreNumericFlags {
		value, err := utils.ParseOptionalFloat(cmd.String(f.name))
		if err != nil {
			return rec, fmt.Errorf("invalid --%s: %w", f.name, err)
		}

		if value == nil {
			continue
		}

		rec.Set(f.field, *value)
	}

	rec.Sex = assess.ParseSex(cmd.String("sex"))

	diab, err := utils.ParseBoolFlag(cmd.String("diabetes"))
	if err != nil {
		return rec, fmt.Errorf("invalid --diabetes: %w", err)
	}

	rec.Diabetes = diab

	return rec, nil
}

// indexDoc is the wire form of one index outcome for json and yaml output.
// Exactly one of Value or Error is present.
type indexDoc struct {
	Index    string   `json:"index" yaml:"index"`
	Value    *float64 `json:"value,omitempty" yaml:"value,omitempty"`
	Band     string   `json:"band,omitempty" yaml:"band,omitempty"`
	Category string   `json:"category,omitempty" yaml:"category,omitempty"`
	Action   string   `json:"action,omitempty" yaml:"action,omitempty"`
	Error    string   `json:"error,omitempty" yaml:"error,omitempty"`
}

type healthDoc struct {
	Score  int    `json:"score" yaml:"score"`
	Band   string `json:"band" yaml:"band"`
	Label  string `json:"label" yaml:"label"`
	Advice string `json:"advice" yaml:"advice"`
}

type reportDoc struct {
	Indices     []indexDoc `json:"indices" yaml:"indices"`
	LiverHealth *healthDoc `json:"liver_health,omitempty" yaml:"liver_health,omitempty"`
	Notes       []string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

func newReportDoc(rep *assess.Report) reportDoc {
	doc := reportDoc{
		Indices: make([]indexDoc, 0, 4),
		Notes:   rep.Notes(),
	}

	for _, o := range rep.Outcomes() {
		entry := indexDoc{Index: string(o.Index)}

		if o.Computable() {
			value := o.Result.Value
			entry.Value = &value
			entry.Band = string(o.Result.Band)
			entry.Category = o.Result.Label
			entry.Action = o.Result.Action
		} else {
			entry.Error = o.Err.Error()
		}

		doc.Indices = append(doc.Indices, entry)
	}

	if rep.Health != nil {
		doc.LiverHealth = &healthDoc{
			Score:  rep.Health.Score,
			Band:   string(rep.Health.Band),
			Label:  rep.Health.Label,
			Advice: rep.Health.Advice,
		}
	}

	return doc
}

// encodeReport writes the report in the requested format.
func encodeReport(w io.Writer, format string, rep *assess.Report) error {
	switch format {
	case formatText:
		printReportText(w, rep)
		return nil
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(newReportDoc(rep))
	case formatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(newReportDoc(rep)); err != nil {
			return err
		}

		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", errUnsupportedFormat, format)
	}
}

// printReportText renders the report for the terminal: one line per index
// with its interpretation, then the composite score. Indices that could not
// be computed print "n/a" with the reason.
func printReportText(w io.Writer, rep *assess.Report) {
	for _, o := range rep.Outcomes() {
		if !o.Computable() {
			fmt.Fprintf(w, "%-6s %8s   %s\n", o.Index, "n/a", o.Err.Error())
			continue
		}

		fmt.Fprintf(w, "%-6s %8s   %s\n", o.Index, o.Result.FormatValue(), o.Result.Label)

		if o.Result.Action != "" {
			fmt.Fprintf(w, "%-6s %8s   %s\n", "", "", o.Result.Action)
		}
	}

	fmt.Fprintln(w)

	if rep.Health != nil {
		fmt.Fprintf(w, "Liver Health Score: %d/100 (%s)\n", rep.Health.Score, rep.Health.Label)
		fmt.Fprintf(w, "%s\n", rep.Health.Advice)
	} else {
		fmt.Fprintf(w, "Liver Health Score: n/a\n%s\n", rep.HealthErr.Error())
	}
}
