/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package assess

import (
	"errors"
	"fmt"
	"strings"
)

// Field names a patient input as it appears in error messages.
type Field string

// Field values name the patient inputs used by the formulas.
const (
	FieldAge           Field = "age"
	FieldBMI           Field = "BMI"
	FieldWaist         Field = "waist circumference"
	FieldTriglycerides Field = "triglycerides"
	FieldGGT           Field = "GGT"
	FieldAST           Field = "AST"
	FieldALT           Field = "ALT"
	FieldULNAST        Field = "AST upper limit of normal"
	FieldPlatelets     Field = "platelet count"
	FieldAlbumin       Field = "albumin"
)

// InputReason distinguishes why a field made an index not computable.
type InputReason string

// InputReason values represent the supported failure reasons.
const (
	ReasonMissing InputReason = "missing"
	ReasonInvalid InputReason = "invalid"
)

// InputError reports a patient field that is absent or unusable for one
// index. It is local to that index; other indices compute independently.
type InputError struct {
	Index  Index
	Field  Field
	Reason InputReason
	Detail string
}

func (e *InputError) Error() string {
	if e.Reason == ReasonMissing {
		return fmt.Sprintf("%s not computable: missing %s", e.Index, e.Field)
	}

	if e.Detail != "" {
		return fmt.Sprintf("%s not computable: invalid %s (%s)", e.Index, e.Field, e.Detail)
	}

	return fmt.Sprintf("%s not computable: invalid %s", e.Index, e.Field)
}

// IncompleteError reports which fibrosis indices kept the composite Liver
// Health Score from being computed.
type IncompleteError struct {
	Missing []Index
}

func (e *IncompleteError) Error() string {
	names := make([]string, 0, len(e.Missing))
	for _, idx := range e.Missing {
		names = append(names, string(idx))
	}

	return "liver health score incomplete: " + strings.Join(names, ", ") + " not computable"
}

// IsMissingInput reports whether err is an InputError for an absent field.
func IsMissingInput(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr) && inputErr.Reason == ReasonMissing
}

// IsInvalidInput reports whether err is an InputError for a present but
// unusable field.
func IsInvalidInput(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr) && inputErr.Reason == ReasonInvalid
}
