/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"encoding/gob"
	"net/url"
	"strconv"
	"strings"

	"github.com/flamego/session"

	"github.com/humaidq/liverscreen/assess"
	"github.com/humaidq/liverscreen/utils"
)

// formValuesSessionKey stashes entered or extracted form values so the next
// form render can prefill them. Consumed one-shot, like a flash.
const formValuesSessionKey = "form_values"

func init() {
	gob.Register(map[string]string{})
}

// formField ties a form input name to the patient field it feeds.
type formField struct {
	name  string
	field assess.Field
}

// numericFormFields lists the numeric inputs of the assessment form in
// display order. Sex and the diabetes flag are handled separately.
var numericFormFields = []formField{
	{"age", assess.FieldAge},
	{"bmi", assess.FieldBMI},
	{"waist", assess.FieldWaist},
	{"tg", assess.FieldTriglycerides},
	{"ggt", assess.FieldGGT},
	{"ast", assess.FieldAST},
	{"alt", assess.FieldALT},
	{"uln_ast", assess.FieldULNAST},
	{"platelets", assess.FieldPlatelets},
	{"albumin", assess.FieldAlbumin},
}

// defaultFormValues returns the form prefill used when there is nothing
// stashed: a plausible mid-range patient.
func defaultFormValues() map[string]string {
	return map[string]string{
		"age":       "40",
		"sex":       "M",
		"bmi":       "27.0",
		"waist":     "95.0",
		"tg":        "160",
		"ggt":       "45",
		"ast":       "35",
		"alt":       "30",
		"uln_ast":   "40",
		"platelets": "230",
		"albumin":   "4.2",
		"diab":      "0",
	}
}

// recordFromForm builds a patient record from submitted form values. Inputs
// that are present but not numeric are reported back by field name; absent
// inputs simply leave the field unset.
func recordFromForm(form url.Values) (assess.PatientRecord, []string) {
	var (
		rec     assess.PatientRecord
		invalid []string
	)

	for _, f := range numericFormFields {
		value, err := utils.ParseOptionalFloat(form.Get(f.name))
		if err != nil {
			invalid = append(invalid, string(f.field))
			continue
		}

		if value == nil {
			continue
		}

		rec.Set(f.field, *value)
	}

	rec.Sex = assess.ParseSex(strings.TrimSpace(form.Get("sex")))

	diab, err := utils.ParseBoolFlag(form.Get("diab"))
	if err != nil {
		invalid = append(invalid, "diabetes flag")
	} else {
		rec.Diabetes = diab
	}

	return rec, invalid
}

// enteredFormValues captures the submitted inputs so an invalid submission
// can be re-rendered as entered.
func enteredFormValues(form url.Values) map[string]string {
	values := make(map[string]string, len(numericFormFields)+2)

	for _, f := range numericFormFields {
		values[f.name] = strings.TrimSpace(form.Get(f.name))
	}

	values["sex"] = strings.TrimSpace(form.Get("sex"))
	values["diab"] = strings.TrimSpace(form.Get("diab"))

	return values
}

func stashFormValues(s session.Session, values map[string]string) {
	s.Set(formValuesSessionKey, values)
}

// takeFormValues returns the stashed form values and clears them.
func takeFormValues(s session.Session) map[string]string {
	values, ok := s.Get(formValuesSessionKey).(map[string]string)
	if !ok {
		return nil
	}

	s.Delete(formValuesSessionKey)

	return values
}

// formValues merges any stashed values over the defaults for rendering.
func formValues(s session.Session) map[string]string {
	values := defaultFormValues()

	for name, value := range takeFormValues(s) {
		values[name] = value
	}

	return values
}

// fieldFormName maps a patient field back to its form input name.
func fieldFormName(field assess.Field) (string, bool) {
	for _, f := range numericFormFields {
		if f.field == field {
			return f.name, true
		}
	}

	return "", false
}

// formatFieldValue renders an extracted value the way a user would type it.
func formatFieldValue(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}
