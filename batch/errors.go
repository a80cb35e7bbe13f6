/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package batch

import "errors"

var (
	errEmptyTable = errors.New("table has no header row")
	errNoSheets   = errors.New("workbook has no sheets")
)
