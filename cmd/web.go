/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/flamego/csrf"
	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"
	"github.com/urfave/cli/v3"

	"github.com/humaidq/liverscreen/routes"
	"github.com/humaidq/liverscreen/static"
	"github.com/humaidq/liverscreen/templates"
)

var CmdStart = &cli.Command{
	Name:    "start",
	Aliases: []string{"run"},
	Usage:   "Start the web server",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "port",
			Value:   "8080",
			Sources: cli.EnvVars("LIVERSCREEN_PORT"),
			Usage:   "the web server port",
		},
		&cli.BoolFlag{
			Name:  "dev",
			Value: false,
			Usage: "enables development mode (for templates)",
		},
	},
	Action: start,
}

func start(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("dev") {
		flamego.SetEnv(flamego.EnvTypeDev)
	}

	f, err := newWebApp()
	if err != nil {
		return fmt.Errorf("failed to set up web app: %w", err)
	}

	port := cmd.String("port")
	appLogger.Info("Starting web server", "port", port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%s", port),
		Handler:      f,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("web server stopped: %w", err)
	}

	return nil
}

// newWebApp assembles the flamego instance with all middleware and routes
// registered, ready to serve or to drive from tests.
func newWebApp() (*flamego.Flame, error) {
	fs, err := template.EmbedFS(templates.Templates, ".", []string{".html"})
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	f := flamego.New()
	f.Use(flamego.Recovery())
	f.Use(routes.RequestLogger)
	f.Use(session.Sessioner())
	f.Use(csrf.Csrfer())
	f.Use(template.Templater(template.Options{
		FileSystem: fs,
	}))
	f.Use(flamego.Static(flamego.StaticOptions{
		FileSystem: http.FS(static.Static),
	}))
	f.Use(routes.NoCacheHeaders())
	f.Use(routes.CSRFInjector())
	f.Use(routes.FlashInjector())

	f.Get("/", routes.AssessmentForm)
	f.Post("/assess", csrf.Validate, routes.SubmitAssessment)
	f.Get("/report", routes.ReportForm)
	f.Post("/report", csrf.Validate, routes.UploadReport)
	f.Get("/batch", routes.BatchForm)
	f.Post("/batch", csrf.Validate, routes.UploadBatch)
	f.Get("/batch/download/{token}", routes.DownloadBatchResult)

	configureEmptyNotFoundHandler(f)

	return f, nil
}

// configureEmptyNotFoundHandler replaces flamego's default "404 page not
// found" body with an empty response, so probes learn nothing about the
// application.
func configureEmptyNotFoundHandler(f *flamego.Flame) {
	f.NotFound(func(w http.ResponseWriter) {
		w.WriteHeader(http.StatusNotFound)
	})
}
