/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"fmt"
	"net/http"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/liverscreen/extract"
)

// reportUploadMaxBytes caps lab report uploads at 20MB.
const reportUploadMaxBytes = 20 << 20

// ReportForm renders the lab report upload page.
func ReportForm(c flamego.Context, t template.Template, data template.Data) {
	data["IsReport"] = true

	t.HTML(http.StatusOK, "report")
}

// UploadReport extracts lab values from an uploaded PDF report and stashes
// them as assessment form prefills. Fields the report does not mention are
// left to the form defaults.
func UploadReport(c flamego.Context, s session.Session) {
	if err := c.Request().ParseMultipartForm(reportUploadMaxBytes); err != nil {
		logger.Error("Error parsing report upload form", "error", err)
		SetErrorFlash(s, "Failed to parse upload form")
		c.Redirect("/report", http.StatusSeeOther)

		return
	}

	file, header, err := c.Request().FormFile("report_pdf")
	if err != nil {
		logger.Error("Error reading report upload", "error", err)
		SetErrorFlash(s, "No file uploaded or invalid file")
		c.Redirect("/report", http.StatusSeeOther)

		return
	}

	defer func() {
		if err := file.Close(); err != nil {
			logger.Error("Error closing report upload file", "error", err)
		}
	}()

	logger.Info("Uploading lab report", "filename", header.Filename, "bytes", header.Size)

	fields, err := extract.FromPDF(file)
	if err != nil {
		logger.Error("Error extracting lab report", "filename", header.Filename, "error", err)
		SetErrorFlash(s, "Could not read the report: "+err.Error())
		c.Redirect("/report", http.StatusSeeOther)

		return
	}

	if len(fields) == 0 {
		SetWarningFlash(s, "No recognisable lab values found in the report")
		c.Redirect("/report", http.StatusSeeOther)

		return
	}

	values := make(map[string]string, len(fields))

	for field, value := range fields {
		name, ok := fieldFormName(field)
		if !ok {
			continue
		}

		values[name] = formatFieldValue(value)
	}

	stashFormValues(s, values)

	logger.Info("Extracted lab values from report", "filename", header.Filename, "fields", len(fields))
	SetSuccessFlash(s, fmt.Sprintf("Parsed %d field(s) from the report", len(fields)))
	c.Redirect("/", http.StatusSeeOther)
}
