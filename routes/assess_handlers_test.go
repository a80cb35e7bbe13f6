// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"
)

func newAssessTestApp(s session.Session, tmpl template.Template, data template.Data) *flamego.Flame {
	f := flamego.New()
	f.Use(func(c flamego.Context) {
		c.MapTo(s, (*session.Session)(nil))
		c.MapTo(tmpl, (*template.Template)(nil))
		c.Map(data)
		c.Next()
	})

	f.Get("/", func(c flamego.Context, sess session.Session, t template.Template, d template.Data) {
		AssessmentForm(c, sess, t, d)
	})
	f.Post("/assess", func(c flamego.Context, sess session.Session, t template.Template, d template.Data) {
		SubmitAssessment(c, sess, t, d)
	})

	return f
}

func TestAssessmentFormRendersDefaults(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	tpl := &testTemplate{}
	data := template.Data{}
	f := newAssessTestApp(s, tpl, data)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, req)

	if tpl.status != http.StatusOK || tpl.name != "home" {
		t.Fatalf("unexpected render: %d %q", tpl.status, tpl.name)
	}

	values, ok := data["FormValues"].(map[string]string)
	if !ok {
		t.Fatalf("expected form values in template data, got %#v", data["FormValues"])
	}

	if values["age"] != "40" || values["sex"] != "M" || values["albumin"] != "4.2" {
		t.Fatalf("unexpected default form values: %v", values)
	}
}

func TestAssessmentFormPrefillsStashedValues(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	stashFormValues(s, map[string]string{"ast": "52", "alt": "61"})

	tpl := &testTemplate{}
	data := template.Data{}
	f := newAssessTestApp(s, tpl, data)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, req)

	values, ok := data["FormValues"].(map[string]string)
	if !ok {
		t.Fatalf("expected form values in template data, got %#v", data["FormValues"])
	}

	if values["ast"] != "52" || values["alt"] != "61" {
		t.Fatalf("expected stashed values to prefill the form, got %v", values)
	}

	if values["age"] != "40" {
		t.Fatalf("expected untouched fields to keep defaults, got %q", values["age"])
	}
}

func TestSubmitAssessmentRendersResults(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	tpl := &testTemplate{}
	data := template.Data{}
	f := newAssessTestApp(s, tpl, data)

	rec := performFormPOST(t, f, "/assess", fullAssessmentForm())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	if tpl.name != "results" {
		t.Fatalf("unexpected template: %q", tpl.name)
	}

	views, ok := data["Indices"].([]indexView)
	if !ok || len(views) != 4 {
		t.Fatalf("expected four index views, got %#v", data["Indices"])
	}

	for _, view := range views {
		if view.Value == "" || view.Note != "" {
			t.Fatalf("expected computable index, got %#v", view)
		}
	}

	health, ok := data["Health"].(healthView)
	if !ok {
		t.Fatalf("expected health view, got %#v", data["Health"])
	}

	if health.Score != "64" {
		t.Fatalf("unexpected composite score: %q", health.Score)
	}

	if data["GaugeChart"] == nil || data["SubscoreChart"] == nil {
		t.Fatal("expected charts in template data")
	}

	if notes, ok := data["Notes"].([]string); ok && len(notes) > 0 {
		t.Fatalf("expected no notes, got %v", notes)
	}

	assertNoFlash(t, s)
}

func TestSubmitAssessmentPartialInputsStillRender(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	tpl := &testTemplate{}
	data := template.Data{}
	f := newAssessTestApp(s, tpl, data)

	form := fullAssessmentForm()
	form.Set("platelets", "")
	form.Set("albumin", "")

	rec := performFormPOST(t, f, "/assess", form)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	if tpl.name != "results" {
		t.Fatalf("unexpected template: %q", tpl.name)
	}

	notes, ok := data["Notes"].([]string)
	if !ok || len(notes) == 0 {
		t.Fatalf("expected notes for missing inputs, got %#v", data["Notes"])
	}

	if _, exists := data["Health"]; exists {
		t.Fatalf("expected no composite score, got %#v", data["Health"])
	}

	if _, exists := data["GaugeChart"]; exists {
		t.Fatal("expected no gauge chart without a composite score")
	}
}

func TestSubmitAssessmentInvalidValuesRedirect(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	tpl := &testTemplate{}
	data := template.Data{}
	f := newAssessTestApp(s, tpl, data)

	form := fullAssessmentForm()
	form.Set("age", "abc")

	rec := performFormPOST(t, f, "/assess", form)

	assertRedirect(t, rec, "/")
	assertFlash(t, s, FlashError, "Invalid value for age")

	stashed, ok := s.Get(formValuesSessionKey).(map[string]string)
	if !ok {
		t.Fatalf("expected stashed form values, got %#v", s.Get(formValuesSessionKey))
	}

	if stashed["age"] != "abc" {
		t.Fatalf("expected entered value to be preserved, got %q", stashed["age"])
	}
}

func TestSubmitAssessmentMalformedFormRedirects(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	tpl := &testTemplate{}
	data := template.Data{}
	f := newAssessTestApp(s, tpl, data)

	rec := performMalformedFormPOST(t, f, "/assess")

	assertRedirect(t, rec, "/")
	assertFlash(t, s, FlashError, "Failed to parse form")
}
