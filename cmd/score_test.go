// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/liverscreen/assess"
)

// scoredRecord is a record every index computes for, landing the composite
// at 64.
func scoredRecord() assess.PatientRecord {
	var rec assess.PatientRecord

	rec.Set(assess.FieldAge, 45)
	rec.Set(assess.FieldBMI, 30)
	rec.Set(assess.FieldWaist, 100)
	rec.Set(assess.FieldTriglycerides, 160)
	rec.Set(assess.FieldGGT, 45)
	rec.Set(assess.FieldAST, 40)
	rec.Set(assess.FieldALT, 20)
	rec.Set(assess.FieldULNAST, 40)
	rec.Set(assess.FieldPlatelets, 200)
	rec.Set(assess.FieldAlbumin, 4.0)
	rec.Sex = assess.SexMale
	rec.Diabetes = true

	return rec
}

// runWithFlags parses args against the given flags and hands the parsed
// command to fn.
func runWithFlags(t *testing.T, flags []cli.Flag, args []string, fn func(*cli.Command)) {
	t.Helper()

	cmd := &cli.Command{
		Name:  "test",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fn(cmd)
			return nil
		},
	}

	if err := cmd.Run(context.Background(), append([]string{"test"}, args...)); err != nil {
		t.Fatalf("failed to run command: %v", err)
	}
}

func TestRecordFromFlags(t *testing.T) {
	t.Parallel()

	flags := []cli.Flag{
		&cli.StringFlag{Name: "age"},
		&cli.StringFlag{Name: "sex"},
		&cli.StringFlag{Name: "ast"},
		&cli.StringFlag{Name: "platelets"},
		&cli.StringFlag{Name: "diabetes"},
	}
	args := []string{"--age", "45", "--sex", "f", "--ast", "40", "--platelets", "200", "--diabetes", "yes"}

	runWithFlags(t, flags, args, func(cmd *cli.Command) {
		rec, err := recordFromFlags(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if rec.Age == nil || *rec.Age != 45 {
			t.Fatalf("unexpected age: %v", rec.Age)
		}

		if rec.Sex != assess.SexFemale {
			t.Fatalf("unexpected sex: %q", rec.Sex)
		}

		if rec.AST == nil || *rec.AST != 40 {
			t.Fatalf("unexpected AST: %v", rec.AST)
		}

		if !rec.Diabetes {
			t.Fatalf("expected the diabetes flag to be set")
		}

		// Flags that were not given leave their field absent.
		if rec.BMI != nil || rec.Albumin != nil {
			t.Fatalf("expected unset fields to stay absent")
		}
	})
}

func TestRecordFromFlagsInvalidValue(t *testing.T) {
	t.Parallel()

	flags := []cli.Flag{&cli.StringFlag{Name: "age"}}

	runWithFlags(t, flags, []string{"--age", "abc"}, func(cmd *cli.Command) {
		_, err := recordFromFlags(cmd)
		if err == nil {
			t.Fatalf("expected an error for a non-numeric age")
		}

		if !strings.Contains(err.Error(), "invalid --age") {
			t.Fatalf("expected the flag named in the error, got %q", err.Error())
		}
	})
}

func TestRecordFromFlagsInvalidDiabetes(t *testing.T) {
	t.Parallel()

	flags := []cli.Flag{&cli.StringFlag{Name: "diabetes"}}

	runWithFlags(t, flags, []string{"--diabetes", "maybe"}, func(cmd *cli.Command) {
		_, err := recordFromFlags(cmd)
		if err == nil {
			t.Fatalf("expected an error for an unparseable diabetes flag")
		}

		if !strings.Contains(err.Error(), "invalid --diabetes") {
			t.Fatalf("expected the flag named in the error, got %q", err.Error())
		}
	})
}

func TestPrintReportText(t *testing.T) {
	t.Parallel()

	rep := assess.Evaluate(scoredRecord())

	var buf bytes.Buffer
	printReportText(&buf, &rep)

	out := buf.String()

	for _, want := range []string{
		"78.5",
		"2.012",
		"0.500",
		"0.680",
		"Liver Health Score: 64/100 (Indeterminate)",
		"Proceed to fibrosis staging",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in text output, got:\n%s", want, out)
		}
	}
}

func TestPrintReportTextNotComputable(t *testing.T) {
	t.Parallel()

	rep := assess.Evaluate(assess.PatientRecord{})

	var buf bytes.Buffer
	printReportText(&buf, &rep)

	out := buf.String()

	if !strings.Contains(out, "n/a") {
		t.Fatalf("expected n/a values in text output, got:\n%s", out)
	}

	if !strings.Contains(out, "FLI not computable: missing triglycerides") {
		t.Fatalf("expected the missing input named, got:\n%s", out)
	}

	if !strings.Contains(out, "Liver Health Score: n/a") {
		t.Fatalf("expected the composite reported as n/a, got:\n%s", out)
	}
}

func TestEncodeReportJSON(t *testing.T) {
	t.Parallel()

	rep := assess.Evaluate(scoredRecord())

	var buf bytes.Buffer
	if err := encodeReport(&buf, formatJSON, &rep); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc reportDoc
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("failed to decode output: %v", err)
	}

	if len(doc.Indices) != 4 {
		t.Fatalf("expected 4 indices, got %d", len(doc.Indices))
	}

	if doc.Indices[1].Index != "FIB-4" || doc.Indices[1].Band != "indeterminate" {
		t.Fatalf("unexpected FIB-4 entry: %#v", doc.Indices[1])
	}

	if doc.Indices[0].Value == nil || *doc.Indices[0].Value < 78 || *doc.Indices[0].Value > 79 {
		t.Fatalf("unexpected FLI value: %#v", doc.Indices[0].Value)
	}

	if doc.LiverHealth == nil || doc.LiverHealth.Score != 64 {
		t.Fatalf("unexpected liver health: %#v", doc.LiverHealth)
	}

	if len(doc.Notes) != 0 {
		t.Fatalf("expected no notes, got %v", doc.Notes)
	}
}

func TestEncodeReportJSONNotComputable(t *testing.T) {
	t.Parallel()

	rep := assess.Evaluate(assess.PatientRecord{})

	var buf bytes.Buffer
	if err := encodeReport(&buf, formatJSON, &rep); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc reportDoc
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("failed to decode output: %v", err)
	}

	if doc.LiverHealth != nil {
		t.Fatalf("expected no liver health entry, got %#v", doc.LiverHealth)
	}

	for _, entry := range doc.Indices {
		if entry.Value != nil || entry.Error == "" {
			t.Fatalf("expected an error-only entry, got %#v", entry)
		}
	}

	if len(doc.Notes) != 5 {
		t.Fatalf("expected 5 notes, got %v", doc.Notes)
	}
}

func TestEncodeReportYAML(t *testing.T) {
	t.Parallel()

	rep := assess.Evaluate(scoredRecord())

	var buf bytes.Buffer
	if err := encodeReport(&buf, formatYAML, &rep); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()

	for _, want := range []string{"index: FIB-4", "band: indeterminate", "score: 64"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in yaml output, got:\n%s", want, out)
		}
	}
}

func TestEncodeReportUnknownFormat(t *testing.T) {
	t.Parallel()

	rep := assess.Evaluate(scoredRecord())

	var buf bytes.Buffer

	err := encodeReport(&buf, "xml", &rep)
	if !errors.Is(err, errUnsupportedFormat) {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
}
