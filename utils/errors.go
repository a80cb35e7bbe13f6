/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package utils

import "errors"

var (
	errNotANumber = errors.New("not a number")
	errNotAFlag   = errors.New("not a yes/no flag")
)
