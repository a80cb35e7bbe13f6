/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package extract recovers lab values from free-form report text. Extraction
// is best effort: a field that cannot be found is simply absent, never
// guessed.
package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/humaidq/liverscreen/assess"
)

// Fields holds the lab values recovered from one report, keyed by the
// patient field they belong to.
type Fields map[assess.Field]float64

// Lab report patterns. Each captures a decimal value followed by the units
// the field is recorded in; the platelet unit suffix is optional since the
// 10^3/µL and 10^9/L scales are numerically identical.
var labPatterns = map[assess.Field]*regexp.Regexp{
	assess.FieldAST:           regexp.MustCompile(`(?i)(?:AST|SGOT)\s*[:\-]?\s*([0-9]+(?:\.[0-9]+)?)\s*(?:U/?L|IU/?L)`),
	assess.FieldALT:           regexp.MustCompile(`(?i)(?:ALT|SGPT)\s*[:\-]?\s*([0-9]+(?:\.[0-9]+)?)\s*(?:U/?L|IU/?L)`),
	assess.FieldGGT:           regexp.MustCompile(`(?i)(?:GGT|Gamma[\-\s]*glutamyl[\-\s]*transferase)\s*[:\-]?\s*([0-9]+(?:\.[0-9]+)?)\s*(?:U/?L|IU/?L)`),
	assess.FieldTriglycerides: regexp.MustCompile(`(?i)(?:Triglycerides?|TG)\s*[:\-]?\s*([0-9]+(?:\.[0-9]+)?)\s*mg/?dL`),
	assess.FieldPlatelets:     regexp.MustCompile(`(?i)(?:Platelets?|Platelet\s*count)\s*[:\-]?\s*([0-9]+(?:\.[0-9]+)?)\s*(?:x?\s*10\^?[39]\s*/\s*(?:µ|u)?L)?`),
	assess.FieldAlbumin:       regexp.MustCompile(`(?i)Albumin\s*[:\-]?\s*([0-9]+(?:\.[0-9]+)?)\s*(?:g/?dL|g/?L)`),
	assess.FieldULNAST:        regexp.MustCompile(`(?i)(?:AST|SGOT)[^\n]{0,30}?(?:reference|ref\.?\s*range|range)[^\n]{0,20}?(\d{2,3})\s*(?:U/?L|IU/?L)`),
}

// albuminUnitPattern decides whether a matched albumin value was reported in
// g/L and needs dividing by ten, the one unit conversion performed.
var albuminUnitPattern = regexp.MustCompile(`(?i)Albumin[^\n]{0,20}?[0-9]+(?:\.[0-9]+)?\s*(g/?dL|g/?L)`)

var spaceRuns = regexp.MustCompile(`[^\S\r\n]+`)

// FromText scans report text for the recognized lab fields.
func FromText(text string) Fields {
	text = normalize(text)
	found := make(Fields)

	for field, pattern := range labPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		value, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}

		found[field] = value
	}

	if _, ok := found[assess.FieldAlbumin]; ok {
		if m := albuminUnitPattern.FindStringSubmatch(text); m != nil {
			unit := strings.ToLower(strings.ReplaceAll(m[1], " ", ""))
			if strings.Contains(unit, "g/l") {
				found[assess.FieldAlbumin] /= 10
			}
		}
	}

	return found
}

// normalize collapses space runs within lines and unifies the two mu
// codepoints PDFs use for µ.
func normalize(text string) string {
	text = spaceRuns.ReplaceAllString(text, " ")
	return strings.ReplaceAll(text, "μ", "µ")
}

// Apply copies the found values onto a patient record, leaving every other
// field untouched.
func (f Fields) Apply(rec *assess.PatientRecord) {
	for field, value := range f {
		rec.Set(field, value)
	}
}

// Names returns the found field names sorted for stable display.
func (f Fields) Names() []string {
	names := make([]string, 0, len(f))
	for field := range f {
		names = append(names, string(field))
	}

	sort.Strings(names)

	return names
}
