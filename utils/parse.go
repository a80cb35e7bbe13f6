/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package utils holds small input-parsing helpers shared by the form, batch,
// and CLI layers.
package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseOptionalFloat parses a numeric cell or form value. Empty or
// whitespace-only input means "absent" and yields a nil pointer with no
// error; anything else must parse as a finite decimal number.
func ParseOptionalFloat(s string) (*float64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, nil
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("%w: %q", errNotANumber, trimmed)
	}

	return &value, nil
}

// ParseBoolFlag parses a yes/no style cell or form value. Empty input means
// false.
func ParseBoolFlag(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return false, nil
	case "1", "y", "yes", "true":
		return true, nil
	case "0", "n", "no", "false":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", errNotAFlag, s)
	}
}
