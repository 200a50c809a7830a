// Package fuzz implements the probe loop: for every field of a form,
// for every selected payload, fill, submit, analyze.
package fuzz

import (
	"context"

	"github.com/PentesterFlow/OpenFuzzer/internal/analyzer"
	"github.com/PentesterFlow/OpenFuzzer/internal/browser"
	"github.com/PentesterFlow/OpenFuzzer/internal/errors"
	"github.com/PentesterFlow/OpenFuzzer/internal/events"
	"github.com/PentesterFlow/OpenFuzzer/internal/logger"
	"github.com/PentesterFlow/OpenFuzzer/internal/payloads"
	"github.com/PentesterFlow/OpenFuzzer/internal/ratelimit"
)

// Engine drives probes against one shared page controller. A probe is
// one fill + one submit + one analyze; a failed probe contributes zero
// findings and never aborts the rest of the form.
type Engine struct {
	ctrl     browser.Controller
	catalog  *payloads.Catalog
	analyzer *analyzer.ResponseAnalyzer
	limiter  *ratelimit.Limiter
	log      *logger.Logger
	bus      *events.Bus
}

// New creates a fuzzing engine. The limiter may be nil, in which case
// probes run unpaced.
func New(ctrl browser.Controller, catalog *payloads.Catalog, limiter *ratelimit.Limiter, log *logger.Logger, bus *events.Bus) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	if bus == nil {
		bus = events.NewBus()
	}
	return &Engine{
		ctrl:     ctrl,
		catalog:  catalog,
		analyzer: analyzer.New(),
		limiter:  limiter,
		log:      log.WithComponent("fuzzer"),
		bus:      bus,
	}
}

// FuzzForm probes every field of a form with every payload selected
// for its type and returns the accumulated findings in discovery
// order. Submissions may navigate the page away from the form; later
// probes then run against whatever page currently renders, which
// mirrors how a human tester clicks through.
func (e *Engine) FuzzForm(ctx context.Context, form browser.Form) []analyzer.Finding {
	findings := make([]analyzer.Finding, 0)

	e.bus.Emit(events.Event{Type: events.FormStart, Form: form.Label()})
	e.log.Debugf("fuzzing form %s with %d fields", form.Label(), len(form.Fields))

	for _, field := range form.Fields {
		select {
		case <-ctx.Done():
			return findings
		default:
		}

		e.bus.Emit(events.Event{Type: events.FieldStart, Form: form.Label(), Field: field.Label()})

		for _, payload := range e.catalog.PayloadsForField(field) {
			if err := e.wait(ctx); err != nil {
				return findings
			}
			findings = append(findings, e.probe(form, field, payload)...)
		}

		e.bus.Emit(events.Event{Type: events.FieldComplete, Form: form.Label(), Field: field.Label()})
	}

	e.bus.Emit(events.Event{Type: events.FormComplete, Form: form.Label(), Count: len(findings)})
	return findings
}

// probe runs a single fill-submit-analyze cycle.
func (e *Engine) probe(form browser.Form, field browser.Field, payload payloads.Payload) []analyzer.Finding {
	url := e.ctrl.CurrentURL()

	if err := e.ctrl.FillField(field.Selector, payload.Value); err != nil {
		e.log.ErrorEvent(errors.NewFillError(url, field.Selector, err), url, "fill_field")
		e.bus.RecordError()
		return nil
	}

	resp, err := e.ctrl.SubmitForm(form.Selector)
	if err != nil {
		e.log.ErrorEvent(errors.NewSubmitError(url, form.Selector, err), url, "submit_form")
		e.bus.RecordError()
		return nil
	}

	e.bus.Emit(events.Event{
		Type:    events.PayloadSent,
		Form:    form.Label(),
		Field:   field.Label(),
		Payload: payload.Name,
		URL:     url,
	})

	found := e.analyzer.Analyze(resp, payload)
	for _, f := range found {
		e.bus.Emit(events.Event{
			Type:     events.VulnerabilityFound,
			URL:      f.URL,
			Finding:  string(f.Type),
			Severity: string(f.Severity),
			Payload:  f.Payload,
		})
		e.log.FindingEvent(string(f.Type), string(f.Severity), f.URL)
	}

	e.log.ProbeEvent(url, field.Label(), payload.Name, len(found))
	return found
}

func (e *Engine) wait(ctx context.Context) error {
	if e.limiter == nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}
	return e.limiter.Wait(ctx)
}
