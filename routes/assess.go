/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	htmltemplate "html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/liverscreen/assess"
)

// indexView is one index outcome prepared for display. Value is empty when
// the index could not be computed; Note then carries the reason.
type indexView struct {
	Name   string
	Value  string
	Label  string
	Action string
	Color  string
	Note   string
}

func newIndexView(o assess.Outcome) indexView {
	if !o.Computable() {
		return indexView{
			Name:  string(o.Index),
			Label: "Not computable",
			Color: colorUnknown,
			Note:  o.Err.Error(),
		}
	}

	return indexView{
		Name:   string(o.Index),
		Value:  o.Result.FormatValue(),
		Label:  o.Result.Label,
		Action: o.Result.Action,
		Color:  bandColor(o.Result.Band),
	}
}

// healthView is the composite score prepared for display.
type healthView struct {
	Score  string
	Label  string
	Advice string
	Color  string
}

// AssessmentForm renders the patient input form, prefilled with stashed
// values from a previous submission or report upload, else with defaults.
func AssessmentForm(c flamego.Context, s session.Session, t template.Template, data template.Data) {
	data["IsHome"] = true
	data["FormValues"] = formValues(s)

	t.HTML(http.StatusOK, "home")
}

// SubmitAssessment scores the submitted patient inputs and renders the
// results page. Invalid inputs redirect back to the form with the entered
// values preserved.
func SubmitAssessment(c flamego.Context, s session.Session, t template.Template, data template.Data) {
	if err := c.Request().ParseForm(); err != nil {
		logger.Error("Failed to parse assessment form", "error", err)
		SetErrorFlash(s, "Failed to parse form")
		c.Redirect("/", http.StatusSeeOther)

		return
	}

	form := c.Request().Form

	rec, invalid := recordFromForm(form)
	if len(invalid) > 0 {
		SetErrorFlash(s, "Invalid value for "+strings.Join(invalid, ", "))
		stashFormValues(s, enteredFormValues(form))
		c.Redirect("/", http.StatusSeeOther)

		return
	}

	rep := assess.Evaluate(rec)

	views := make([]indexView, 0, 4)
	for _, o := range rep.Outcomes() {
		views = append(views, newIndexView(o))
	}

	data["IsHome"] = true
	data["Indices"] = views
	data["Notes"] = rep.Notes()

	if rep.Health != nil {
		data["Health"] = healthView{
			Score:  strconv.Itoa(rep.Health.Score),
			Label:  rep.Health.Label,
			Advice: rep.Health.Advice,
			Color:  bandColor(rep.Health.Band),
		}

		gauge, err := generateHealthGauge(rep.Health)
		if err != nil {
			logger.Error("Failed to generate health gauge", "error", err)
		} else {
			data["GaugeChart"] = htmltemplate.HTML(gauge)
		}

		subscores, err := generateSubscoreChart(&rep)
		if err != nil {
			logger.Error("Failed to generate subscore chart", "error", err)
		} else {
			data["SubscoreChart"] = htmltemplate.HTML(subscores)
		}
	}

	t.HTML(http.StatusOK, "results")
}
