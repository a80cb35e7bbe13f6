// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/humaidq/liverscreen/assess"
)

const sampleReport = `CLINICAL CHEMISTRY REPORT
Patient ID: 48213

AST: 52 U/L (reference range 10-40 U/L)
ALT: 41 U/L
GGT: 85 U/L
Triglycerides:   210   mg/dL
Platelet count: 180 x10^3/μL
Albumin: 4.1 g/dL
`

func assertField(t *testing.T, fields Fields, field assess.Field, want float64) {
	t.Helper()

	got, ok := fields[field]
	if !ok {
		t.Fatalf("expected %s to be found", field)
	}

	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s: expected %v, got %v", field, want, got)
	}
}

func TestFromText(t *testing.T) {
	t.Parallel()

	fields := FromText(sampleReport)

	assertField(t, fields, assess.FieldAST, 52)
	assertField(t, fields, assess.FieldALT, 41)
	assertField(t, fields, assess.FieldGGT, 85)
	assertField(t, fields, assess.FieldTriglycerides, 210)
	assertField(t, fields, assess.FieldPlatelets, 180)
	assertField(t, fields, assess.FieldAlbumin, 4.1)
	assertField(t, fields, assess.FieldULNAST, 40)
}

func TestFromTextLabelVariants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		field assess.Field
		want  float64
	}{
		{"SGOT alias", "SGOT 52 IU/L", assess.FieldAST, 52},
		{"SGPT with dash", "SGPT - 41 IU/L", assess.FieldALT, 41},
		{"GGT spelled out", "Gamma-glutamyl transferase 85 U/L", assess.FieldGGT, 85},
		{"TG short label", "TG: 160 mg/dL", assess.FieldTriglycerides, 160},
		{"platelets without unit", "Platelets: 230", assess.FieldPlatelets, 230},
		{"platelets SI unit", "Platelets 230 10^9/L", assess.FieldPlatelets, 230},
		{"decimal value", "ALT: 41.5 U/L", assess.FieldALT, 41.5},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fields := FromText(tc.text)
			assertField(t, fields, tc.field, tc.want)
		})
	}
}

func TestFromTextAlbuminUnits(t *testing.T) {
	t.Parallel()

	t.Run("g/dL kept as-is", func(t *testing.T) {
		t.Parallel()

		fields := FromText("Albumin: 4.2 g/dL")
		assertField(t, fields, assess.FieldAlbumin, 4.2)
	})

	t.Run("g/L divided by ten", func(t *testing.T) {
		t.Parallel()

		fields := FromText("Albumin: 42 g/L")
		assertField(t, fields, assess.FieldAlbumin, 4.2)
	})
}

func TestFromTextUnmatchedFieldsAbsent(t *testing.T) {
	t.Parallel()

	t.Run("unrelated text", func(t *testing.T) {
		t.Parallel()

		fields := FromText("The quick brown fox jumps over the lazy dog.")
		if len(fields) != 0 {
			t.Fatalf("expected no fields, got %v", fields)
		}
	})

	t.Run("value without units", func(t *testing.T) {
		t.Parallel()

		// A bare number after the label is not trusted without its units,
		// except for platelets where the unit suffix is optional.
		fields := FromText("AST: 52")
		if _, ok := fields[assess.FieldAST]; ok {
			t.Fatal("expected AST without units to be skipped")
		}
	})
}

func TestApply(t *testing.T) {
	t.Parallel()

	fields := Fields{
		assess.FieldAST:       52,
		assess.FieldALT:       41,
		assess.FieldGGT:       85,
		assess.FieldPlatelets: 180,
		assess.FieldAlbumin:   4.1,
		assess.FieldULNAST:    40,
	}

	var rec assess.PatientRecord
	fields.Apply(&rec)

	if rec.AST == nil || *rec.AST != 52 {
		t.Fatalf("expected AST 52, got %v", rec.AST)
	}
	if rec.ALT == nil || *rec.ALT != 41 {
		t.Fatalf("expected ALT 41, got %v", rec.ALT)
	}
	if rec.GGT == nil || *rec.GGT != 85 {
		t.Fatalf("expected GGT 85, got %v", rec.GGT)
	}
	if rec.Platelets == nil || *rec.Platelets != 180 {
		t.Fatalf("expected platelets 180, got %v", rec.Platelets)
	}
	if rec.Albumin == nil || *rec.Albumin != 4.1 {
		t.Fatalf("expected albumin 4.1, got %v", rec.Albumin)
	}
	if rec.ULNAST == nil || *rec.ULNAST != 40 {
		t.Fatalf("expected ULN AST 40, got %v", rec.ULNAST)
	}

	// Fields the report never mentioned stay absent.
	if rec.Triglycerides != nil {
		t.Fatal("expected triglycerides to stay absent")
	}
	if rec.Age != nil || rec.BMI != nil || rec.Waist != nil {
		t.Fatal("expected demographic fields to stay absent")
	}
}

func TestNamesSorted(t *testing.T) {
	t.Parallel()

	fields := Fields{
		assess.FieldTriglycerides: 210,
		assess.FieldAST:           52,
		assess.FieldAlbumin:       4.1,
	}

	want := []string{"AST", "albumin", "triglycerides"}
	if got := fields.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFromPDFRejectsNonPDF(t *testing.T) {
	t.Parallel()

	if _, err := FromPDF(strings.NewReader("not a pdf")); err == nil {
		t.Fatal("expected an error for non-PDF input")
	}
}
