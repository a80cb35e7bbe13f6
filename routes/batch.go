/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/liverscreen/batch"
)

// batchUploadMaxBytes caps batch table uploads at 20MB.
const batchUploadMaxBytes = 20 << 20

// batchDownloadBasename names generated result files; the format extension
// is appended per download.
const batchDownloadBasename = "liverscreen_results"

// BatchForm renders the batch upload page with the accepted column names.
func BatchForm(c flamego.Context, t template.Template, data template.Data) {
	data["IsBatch"] = true
	data["TemplateColumns"] = batch.TemplateColumns()

	t.HTML(http.StatusOK, "batch")
}

// UploadBatch scores an uploaded CSV or XLSX table and renders the summary
// page with download links for the scored results in both formats.
func UploadBatch(c flamego.Context, s session.Session, t template.Template, data template.Data) {
	if err := c.Request().ParseMultipartForm(batchUploadMaxBytes); err != nil {
		logger.Error("Error parsing batch upload form", "error", err)
		SetErrorFlash(s, "Failed to parse upload form")
		c.Redirect("/batch", http.StatusSeeOther)

		return
	}

	file, header, err := c.Request().FormFile("batch_file")
	if err != nil {
		logger.Error("Error reading batch upload", "error", err)
		SetErrorFlash(s, "No file uploaded or invalid file")
		c.Redirect("/batch", http.StatusSeeOther)

		return
	}

	defer func() {
		if err := file.Close(); err != nil {
			logger.Error("Error closing batch upload file", "error", err)
		}
	}()

	format, ok := batch.DetectFormat(header.Filename)
	if !ok {
		SetErrorFlash(s, "Unsupported file type, upload a .csv or .xlsx file")
		c.Redirect("/batch", http.StatusSeeOther)

		return
	}

	logger.Info("Uploading batch table", "filename", header.Filename, "bytes", header.Size)

	tableHeader, rows, err := batch.Read(file, format)
	if err != nil {
		logger.Error("Error reading batch table", "filename", header.Filename, "error", err)
		SetErrorFlash(s, "Could not read the file: "+err.Error())
		c.Redirect("/batch", http.StatusSeeOther)

		return
	}

	result := batch.Process(tableHeader, rows)

	csvToken, err := storeBatchResult(result, batch.FormatCSV)
	if err != nil {
		logger.Error("Error rendering CSV results", "error", err)
		SetErrorFlash(s, "Failed to generate results")
		c.Redirect("/batch", http.StatusSeeOther)

		return
	}

	xlsxToken, err := storeBatchResult(result, batch.FormatXLSX)
	if err != nil {
		logger.Error("Error rendering XLSX results", "error", err)
		SetErrorFlash(s, "Failed to generate results")
		c.Redirect("/batch", http.StatusSeeOther)

		return
	}

	data["IsBatch"] = true
	data["Summary"] = result.Summary
	data["Issues"] = result.Issues
	data["CSVToken"] = csvToken
	data["XLSXToken"] = xlsxToken

	t.HTML(http.StatusOK, "batch_results")
}

// storeBatchResult renders the scored table in the given format and parks it
// for download, returning the pickup token.
func storeBatchResult(result *batch.Result, format batch.Format) (string, error) {
	var buf bytes.Buffer
	if err := batch.Write(&buf, format, result); err != nil {
		return "", err
	}

	now := time.Now()
	token := batchDownloads.Put(storedDownload{
		filename:    batchDownloadBasename + format.Ext(),
		contentType: format.ContentType(),
		data:        buf.Bytes(),
		expiresAt:   now.Add(batchDownloadTTL),
	}, now)

	return token, nil
}

// DownloadBatchResult serves a previously generated result file by token.
func DownloadBatchResult(c flamego.Context, s session.Session) {
	token := c.Param("token")

	d, err := batchDownloads.Get(token, time.Now())
	if err != nil {
		SetErrorFlash(s, "Download link is invalid or expired")
		c.Redirect("/batch", http.StatusSeeOther)

		return
	}

	headers := c.ResponseWriter().Header()
	headers.Set("Content-Type", d.contentType)
	headers.Set("Content-Disposition", "attachment; filename=\""+d.filename+"\"")
	headers.Set("Content-Length", strconv.Itoa(len(d.data)))
	headers.Set("X-Content-Type-Options", "nosniff")

	c.ResponseWriter().WriteHeader(http.StatusOK)

	if _, err := c.ResponseWriter().Write(d.data); err != nil {
		logger.Error("Error writing batch result response", "error", err)
	}
}
