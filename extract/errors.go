/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package extract

import "errors"

var (
	errEncryptedPDF = errors.New("PDF is password protected and cannot be read")
	errNoTextInPDF  = errors.New("no text could be recovered from the PDF")
)
