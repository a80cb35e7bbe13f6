/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package assess computes four validated liver-health indices (FLI, FIB-4,
// APRI, NFS) and a fibrosis-based composite Liver Health Score from a single
// patient record. All computation is pure and deterministic; a missing or
// unusable input yields a per-index "not computable" outcome rather than a
// fabricated value.
package assess

import "math"

// FattyLiverIndex computes FLI, a 0-100 steatosis screening score from
// triglycerides, BMI, GGT, and waist circumference (Bedogni coefficient set).
func FattyLiverIndex(rec PatientRecord) (IndexResult, error) {
	tg, err := requirePositive(IndexFLI, FieldTriglycerides, rec.Triglycerides)
	if err != nil {
		return IndexResult{}, err
	}

	bmi, err := requirePositive(IndexFLI, FieldBMI, rec.BMI)
	if err != nil {
		return IndexResult{}, err
	}

	ggt, err := requirePositive(IndexFLI, FieldGGT, rec.GGT)
	if err != nil {
		return IndexResult{}, err
	}

	waist, err := requireValue(IndexFLI, FieldWaist, rec.Waist)
	if err != nil {
		return IndexResult{}, err
	}

	l := 0.953*math.Log(tg) + 0.139*bmi + 0.718*math.Log(ggt) + 0.053*waist - 15.745
	value := clamp(100*math.Exp(l)/(1+math.Exp(l)), 0, 100)

	return newIndexResult(IndexFLI, value), nil
}

// Fibrosis4Index computes FIB-4 = age*AST / (platelets*sqrt(ALT)).
func Fibrosis4Index(rec PatientRecord) (IndexResult, error) {
	age, err := requirePositive(IndexFIB4, FieldAge, rec.Age)
	if err != nil {
		return IndexResult{}, err
	}

	ast, err := requireValue(IndexFIB4, FieldAST, rec.AST)
	if err != nil {
		return IndexResult{}, err
	}

	alt, err := requirePositive(IndexFIB4, FieldALT, rec.ALT)
	if err != nil {
		return IndexResult{}, err
	}

	platelets, err := requirePositive(IndexFIB4, FieldPlatelets, rec.Platelets)
	if err != nil {
		return IndexResult{}, err
	}

	value := (age * ast) / (platelets * math.Sqrt(alt))

	return newIndexResult(IndexFIB4, value), nil
}

// ASTPlateletRatioIndex computes APRI = (AST/ULN_AST)*100 / platelets. When
// the record carries no lab-specific ULN_AST, DefaultULNAST applies.
func ASTPlateletRatioIndex(rec PatientRecord) (IndexResult, error) {
	ast, err := requireValue(IndexAPRI, FieldAST, rec.AST)
	if err != nil {
		return IndexResult{}, err
	}

	uln := DefaultULNAST
	if rec.ULNAST != nil {
		uln, err = requirePositive(IndexAPRI, FieldULNAST, rec.ULNAST)
		if err != nil {
			return IndexResult{}, err
		}
	}

	platelets, err := requirePositive(IndexAPRI, FieldPlatelets, rec.Platelets)
	if err != nil {
		return IndexResult{}, err
	}

	value := (ast / uln) * 100 / platelets

	return newIndexResult(IndexAPRI, value), nil
}

// NAFLDFibrosisScore computes NFS with the published Angulo coefficient set;
// the AST/ALT term is the plain ratio in this published form.
func NAFLDFibrosisScore(rec PatientRecord) (IndexResult, error) {
	age, err := requirePositive(IndexNFS, FieldAge, rec.Age)
	if err != nil {
		return IndexResult{}, err
	}

	bmi, err := requirePositive(IndexNFS, FieldBMI, rec.BMI)
	if err != nil {
		return IndexResult{}, err
	}

	ast, err := requireValue(IndexNFS, FieldAST, rec.AST)
	if err != nil {
		return IndexResult{}, err
	}

	alt, err := requirePositive(IndexNFS, FieldALT, rec.ALT)
	if err != nil {
		return IndexResult{}, err
	}

	platelets, err := requireValue(IndexNFS, FieldPlatelets, rec.Platelets)
	if err != nil {
		return IndexResult{}, err
	}

	albumin, err := requireValue(IndexNFS, FieldAlbumin, rec.Albumin)
	if err != nil {
		return IndexResult{}, err
	}

	diab := 0.0
	if rec.Diabetes {
		diab = 1.0
	}

	value := -1.675 + 0.037*age + 0.094*bmi + 1.13*diab +
		0.99*(ast/alt) - 0.013*platelets - 0.66*albumin

	return newIndexResult(IndexNFS, value), nil
}

// Evaluate runs all four indices and the composite score over one record.
// Per-index failures never abort the remaining indices; the composite is
// incomplete whenever any fibrosis index is not computable.
func Evaluate(rec PatientRecord) Report {
	rep := Report{Record: rec}

	fli, fliErr := FattyLiverIndex(rec)
	rep.FLI = outcomeOf(IndexFLI, fli, fliErr)

	fib4, fib4Err := Fibrosis4Index(rec)
	rep.FIB4 = outcomeOf(IndexFIB4, fib4, fib4Err)

	apri, apriErr := ASTPlateletRatioIndex(rec)
	rep.APRI = outcomeOf(IndexAPRI, apri, apriErr)

	nfs, nfsErr := NAFLDFibrosisScore(rec)
	rep.NFS = outcomeOf(IndexNFS, nfs, nfsErr)

	health, err := LiverHealth(rep.FIB4, rep.APRI, rep.NFS)
	if err != nil {
		rep.HealthErr = err
	} else {
		rep.Health = &health
	}

	return rep
}

func outcomeOf(idx Index, result IndexResult, err error) Outcome {
	if err != nil {
		return Outcome{Index: idx, Err: err}
	}

	return Outcome{Index: idx, Result: &result}
}

// requireValue resolves a field that must be present and non-negative.
func requireValue(idx Index, field Field, v *float64) (float64, error) {
	if v == nil {
		return 0, &InputError{Index: idx, Field: field, Reason: ReasonMissing}
	}

	if *v < 0 {
		return 0, &InputError{Index: idx, Field: field, Reason: ReasonInvalid, Detail: "negative value"}
	}

	return *v, nil
}

// requirePositive resolves a field that must be present and strictly
// positive (divisors, logarithm and square-root arguments).
func requirePositive(idx Index, field Field, v *float64) (float64, error) {
	val, err := requireValue(idx, field, v)
	if err != nil {
		return 0, err
	}

	if val == 0 {
		return 0, &InputError{Index: idx, Field: field, Reason: ReasonInvalid, Detail: "must be greater than zero"}
	}

	return val, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
