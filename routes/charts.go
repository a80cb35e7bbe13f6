/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"bytes"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/humaidq/liverscreen/assess"
)

// Band display colours, shared by the result tables and the charts. Grey is
// used for anything that could not be computed.
const (
	colorLow           = "#2e7d32"
	colorIndeterminate = "#f9a825"
	colorHigh          = "#c62828"
	colorUnknown       = "#cccccc"
)

func bandColor(band assess.Band) string {
	switch band {
	case assess.BandLow:
		return colorLow
	case assess.BandIndeterminate:
		return colorIndeterminate
	case assess.BandHigh:
		return colorHigh
	default:
		return colorUnknown
	}
}

func outcomeColor(o *assess.Outcome) string {
	if !o.Computable() {
		return colorUnknown
	}

	return bandColor(o.Result.Band)
}

// generateHealthGauge creates a gauge chart for the 0-100 composite score
func generateHealthGauge(health *assess.HealthScore) (string, error) {
	gauge := charts.NewGauge()
	gauge.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Liver Health Score",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
	)

	gauge.AddSeries("Liver Health", []opts.GaugeData{
		{Name: "Score", Value: health.Score},
	})

	// Render to HTML string
	var buf bytes.Buffer
	err := gauge.Render(&buf)
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}

// generateSubscoreChart creates a bar chart of the three fibrosis subscores,
// each bar coloured by its index's risk band
func generateSubscoreChart(rep *assess.Report) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Fibrosis subscores",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "subscore",
			Max:  100,
		}),
	)

	health := rep.Health

	bar.SetXAxis([]string{
		string(assess.IndexFIB4),
		string(assess.IndexAPRI),
		string(assess.IndexNFS),
	}).AddSeries("Subscore", []opts.BarData{
		{Value: health.FIB4Subscore, ItemStyle: &opts.ItemStyle{Color: outcomeColor(&rep.FIB4)}},
		{Value: health.APRISubscore, ItemStyle: &opts.ItemStyle{Color: outcomeColor(&rep.APRI)}},
		{Value: health.NFSSubscore, ItemStyle: &opts.ItemStyle{Color: outcomeColor(&rep.NFS)}},
	})

	var buf bytes.Buffer
	err := bar.Render(&buf)
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}
