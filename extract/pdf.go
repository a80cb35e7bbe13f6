/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"
)

// FromPDF extracts the report text from a PDF and scans it for lab fields.
// Pages that fail to yield text are skipped; the whole document failing is
// an error.
func FromPDF(r io.Reader) (Fields, error) {
	text, err := readPDFText(r)
	if err != nil {
		return nil, err
	}

	return FromText(text), nil
}

// readPDFText concatenates the text of every readable page. Encrypted
// documents are given one chance with an empty password, which covers PDFs
// that restrict printing but not reading.
func readPDFText(r io.Reader) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", fmt.Errorf("read PDF: %w", err)
	}

	reader, err := model.NewPdfReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}

	encrypted, err := reader.IsEncrypted()
	if err != nil {
		return "", fmt.Errorf("check PDF encryption: %w", err)
	}

	if encrypted {
		ok, err := reader.Decrypt([]byte(""))
		if err != nil {
			return "", fmt.Errorf("decrypt PDF: %w", err)
		}

		if !ok {
			return "", errEncryptedPDF
		}
	}

	numPages, err := reader.GetNumPages()
	if err != nil {
		return "", fmt.Errorf("count PDF pages: %w", err)
	}

	var sb strings.Builder

	for i := 1; i <= numPages; i++ {
		page, err := reader.GetPage(i)
		if err != nil {
			logger.Warn("Skipping unreadable PDF page", "page", i, "error", err)
			continue
		}

		ex, err := extractor.New(page)
		if err != nil {
			logger.Warn("Skipping PDF page without extractor", "page", i, "error", err)
			continue
		}

		text, err := ex.ExtractText()
		if err != nil {
			logger.Warn("Skipping PDF page text", "page", i, "error", err)
			continue
		}

		sb.WriteString(text)
		sb.WriteString("\n")
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "", errNoTextInPDF
	}

	return sb.String(), nil
}
