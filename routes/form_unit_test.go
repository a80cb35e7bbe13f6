// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"net/url"
	"reflect"
	"testing"

	"github.com/humaidq/liverscreen/assess"
)

func fullAssessmentForm() url.Values {
	return url.Values{
		"age":       {"45"},
		"sex":       {"M"},
		"bmi":       {"30"},
		"waist":     {"100"},
		"tg":        {"160"},
		"ggt":       {"45"},
		"ast":       {"40"},
		"alt":       {"20"},
		"uln_ast":   {"40"},
		"platelets": {"200"},
		"albumin":   {"4.0"},
		"diab":      {"1"},
	}
}

func TestRecordFromForm(t *testing.T) {
	t.Parallel()

	rec, invalid := recordFromForm(fullAssessmentForm())
	if len(invalid) > 0 {
		t.Fatalf("expected no invalid fields, got %v", invalid)
	}

	if rec.Age == nil || *rec.Age != 45 {
		t.Fatalf("unexpected age: %v", rec.Age)
	}

	if rec.Sex != assess.SexMale {
		t.Fatalf("unexpected sex: %q", rec.Sex)
	}

	if rec.Albumin == nil || *rec.Albumin != 4.0 {
		t.Fatalf("unexpected albumin: %v", rec.Albumin)
	}

	if !rec.Diabetes {
		t.Fatal("expected diabetes flag to be set")
	}
}

func TestRecordFromFormReportsInvalidFields(t *testing.T) {
	t.Parallel()

	form := fullAssessmentForm()
	form.Set("age", "abc")
	form.Set("diab", "maybe")

	_, invalid := recordFromForm(form)

	want := []string{"age", "diabetes flag"}
	if !reflect.DeepEqual(invalid, want) {
		t.Fatalf("unexpected invalid fields: %v", invalid)
	}
}

func TestRecordFromFormEmptyFieldsStayAbsent(t *testing.T) {
	t.Parallel()

	form := url.Values{
		"age": {"45"},
		"sex": {"F"},
	}

	rec, invalid := recordFromForm(form)
	if len(invalid) > 0 {
		t.Fatalf("expected no invalid fields, got %v", invalid)
	}

	if rec.Age == nil || *rec.Age != 45 {
		t.Fatalf("unexpected age: %v", rec.Age)
	}

	if rec.BMI != nil || rec.Platelets != nil || rec.ULNAST != nil {
		t.Fatal("expected absent fields to stay nil")
	}

	if rec.Diabetes {
		t.Fatal("expected diabetes flag to default to false")
	}
}

func TestFormValuesReturnsDefaults(t *testing.T) {
	t.Parallel()

	s := newTestSession()

	values := formValues(s)
	if !reflect.DeepEqual(values, defaultFormValues()) {
		t.Fatalf("unexpected form values: %v", values)
	}
}

func TestFormValuesStashIsOneShot(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	stashFormValues(s, map[string]string{"ast": "52", "alt": "61"})

	values := formValues(s)
	if values["ast"] != "52" || values["alt"] != "61" {
		t.Fatalf("expected stashed values to override defaults, got %v", values)
	}

	// Untouched fields keep their defaults.
	if values["age"] != defaultFormValues()["age"] {
		t.Fatalf("unexpected age value: %q", values["age"])
	}

	again := formValues(s)
	if !reflect.DeepEqual(again, defaultFormValues()) {
		t.Fatalf("expected stash to be consumed, got %v", again)
	}
}

func TestEnteredFormValuesKeepSubmission(t *testing.T) {
	t.Parallel()

	form := url.Values{
		"age":  {" 45 "},
		"bmi":  {"not-a-number"},
		"sex":  {"F"},
		"diab": {"yes"},
	}

	values := enteredFormValues(form)

	if values["age"] != "45" {
		t.Fatalf("unexpected age value: %q", values["age"])
	}

	if values["bmi"] != "not-a-number" {
		t.Fatalf("expected invalid input to be preserved, got %q", values["bmi"])
	}

	if values["sex"] != "F" || values["diab"] != "yes" {
		t.Fatalf("unexpected sex or diab value: %v", values)
	}

	if values["platelets"] != "" {
		t.Fatalf("expected absent field to be empty, got %q", values["platelets"])
	}
}

func TestFieldFormNameCoversNumericFields(t *testing.T) {
	t.Parallel()

	for _, f := range numericFormFields {
		name, ok := fieldFormName(f.field)
		if !ok || name != f.name {
			t.Fatalf("fieldFormName(%q) = %q, %v", f.field, name, ok)
		}
	}

	if _, ok := fieldFormName(assess.Field("unknown")); ok {
		t.Fatal("expected unknown field to have no form name")
	}
}

func TestFormatFieldValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value float64
		want  string
	}{
		{value: 45, want: "45"},
		{value: 4.2, want: "4.2"},
		{value: 0.5, want: "0.5"},
	}

	for _, tt := range tests {
		if got := formatFieldValue(tt.value); got != tt.want {
			t.Fatalf("formatFieldValue(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}
