/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import "errors"

var (
	errDownloadNotFound = errors.New("download not found or expired")
	errNoUploadedFile   = errors.New("no file uploaded")
)
