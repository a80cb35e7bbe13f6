/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package assess

import "fmt"

// Sex represents the recorded patient sex
type Sex string

// Sex values represent supported sex categories.
const (
	SexMale    Sex = "M"
	SexFemale  Sex = "F"
	SexUnknown Sex = "" // Recorded only; no formula depends on it
)

// Index identifies one of the computed liver indices
type Index string

// Index values represent the supported liver indices.
const (
	IndexFLI  Index = "FLI"
	IndexFIB4 Index = "FIB-4"
	IndexAPRI Index = "APRI"
	IndexNFS  Index = "NFS"
)

// DefaultULNAST is the assumed upper limit of normal for AST (U/L) when the
// lab-specific value is not provided.
const DefaultULNAST = 40.0

// PatientRecord holds one patient's inputs. Lab fields are pointers so an
// absent value is distinguishable from zero; a formula missing a required
// field reports "not computable" rather than defaulting.
type PatientRecord struct {
	Age           *float64 // years
	Sex           Sex
	BMI           *float64 // kg/m²
	Waist         *float64 // cm
	Triglycerides *float64 // mg/dL
	GGT           *float64 // U/L
	AST           *float64 // U/L
	ALT           *float64 // U/L
	ULNAST        *float64 // U/L, nil means DefaultULNAST
	Platelets     *float64 // ×10⁹/L
	Albumin       *float64 // g/dL
	Diabetes      bool     // diabetes or impaired fasting glucose
}

// ULNASTOrDefault returns the record's AST upper limit of normal, or the
// default when none was provided.
func (r *PatientRecord) ULNASTOrDefault() float64 {
	if r.ULNAST == nil {
		return DefaultULNAST
	}

	return *r.ULNAST
}

// Set assigns the named numeric field on the record. Sex and the diabetes
// flag are not numeric inputs and are set directly.
func (r *PatientRecord) Set(field Field, value float64) {
	v := value

	switch field {
	case FieldAge:
		r.Age = &v
	case FieldBMI:
		r.BMI = &v
	case FieldWaist:
		r.Waist = &v
	case FieldTriglycerides:
		r.Triglycerides = &v
	case FieldGGT:
		r.GGT = &v
	case FieldAST:
		r.AST = &v
	case FieldALT:
		r.ALT = &v
	case FieldULNAST:
		r.ULNAST = &v
	case FieldPlatelets:
		r.Platelets = &v
	case FieldAlbumin:
		r.Albumin = &v
	}
}

// ParseSex normalizes free-form sex input ("m", "Male", "F", ...). Anything
// unrecognized maps to SexUnknown.
func ParseSex(s string) Sex {
	switch s {
	case "M", "m", "Male", "male", "MALE":
		return SexMale
	case "F", "f", "Female", "female", "FEMALE":
		return SexFemale
	default:
		return SexUnknown
	}
}

// IndexResult is one computed index value with its interpretation. Immutable
// once computed; derived solely from a PatientRecord snapshot.
type IndexResult struct {
	Index  Index
	Value  float64
	Band   Band
	Label  string
	Action string // empty for indices without a per-band action
}

// FormatValue renders the index value at its conventional precision
// (FLI one decimal, fibrosis indices three).
func (r *IndexResult) FormatValue() string {
	if r.Index == IndexFLI {
		return fmt.Sprintf("%.1f", r.Value)
	}

	return fmt.Sprintf("%.3f", r.Value)
}

// Outcome is the tagged result of one index computation: either a result or
// the error explaining why it could not be computed, never both.
type Outcome struct {
	Index  Index
	Result *IndexResult
	Err    error
}

// Computable reports whether the index produced a value.
func (o *Outcome) Computable() bool {
	return o.Err == nil && o.Result != nil
}

// HealthScore is the fibrosis-based composite with its interpretation band.
// The per-index subscores it was combined from are kept for display.
type HealthScore struct {
	Score  int // 0-100, higher is better
	Band   Band
	Label  string
	Advice string

	FIB4Subscore float64
	APRISubscore float64
	NFSSubscore  float64
}

// Report is a full assessment of one patient record: the four index outcomes
// plus the composite Liver Health Score (or the reason it is incomplete).
// Identical records always produce identical reports.
type Report struct {
	Record    PatientRecord
	FLI       Outcome
	FIB4      Outcome
	APRI      Outcome
	NFS       Outcome
	Health    *HealthScore
	HealthErr error
}

// Outcomes returns the four index outcomes in presentation order.
func (rep *Report) Outcomes() []Outcome {
	return []Outcome{rep.FLI, rep.FIB4, rep.APRI, rep.NFS}
}

// FibrosisOutcomes returns the three outcomes that feed the composite score.
func (rep *Report) FibrosisOutcomes() []Outcome {
	return []Outcome{rep.FIB4, rep.APRI, rep.NFS}
}

// Notes collects the human-readable reasons any part of the report could not
// be computed, in presentation order.
func (rep *Report) Notes() []string {
	var notes []string

	for _, o := range rep.Outcomes() {
		if o.Err != nil {
			notes = append(notes, o.Err.Error())
		}
	}

	if rep.HealthErr != nil {
		notes = append(notes, rep.HealthErr.Error())
	}

	return notes
}
