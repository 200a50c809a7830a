package fuzz

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/PentesterFlow/OpenFuzzer/internal/analyzer"
	"github.com/PentesterFlow/OpenFuzzer/internal/browser"
	"github.com/PentesterFlow/OpenFuzzer/internal/events"
	"github.com/PentesterFlow/OpenFuzzer/internal/logger"
	"github.com/PentesterFlow/OpenFuzzer/internal/payloads"
)

// scriptedController echoes every submitted payload back, and can be
// told to fail fills or submits for specific selectors.
type scriptedController struct {
	lastFilled map[string]string
	failFill   map[string]bool
	failSubmit bool
	fills      int
	submits    int
	echoBody   bool
	fixedBody  string
}

func newScriptedController() *scriptedController {
	return &scriptedController{
		lastFilled: make(map[string]string),
		failFill:   make(map[string]bool),
		echoBody:   true,
	}
}

func (s *scriptedController) Navigate(context.Context, string) error { return nil }

func (s *scriptedController) FillField(selector, value string) error {
	s.fills++
	if s.failFill[selector] {
		return errors.New("fill refused")
	}
	s.lastFilled[selector] = value
	return nil
}

func (s *scriptedController) Click(string) error { return nil }

func (s *scriptedController) SubmitForm(selector string) (*browser.ResponseRecord, error) {
	s.submits++
	if s.failSubmit {
		return nil, errors.New("submit refused")
	}
	body := s.fixedBody
	if s.echoBody {
		for _, v := range s.lastFilled {
			body += v
		}
	}
	return &browser.ResponseRecord{
		Status: 200,
		URL:    "https://example.com/target",
		Body:   body,
	}, nil
}

func (s *scriptedController) ExtractLinks() ([]string, error)       { return nil, nil }
func (s *scriptedController) ExtractForms() ([]browser.Form, error) { return nil, nil }
func (s *scriptedController) CurrentURL() string                    { return "https://example.com/target" }
func (s *scriptedController) Close() error                          { return nil }

func singleFieldForm(fieldType browser.FieldType) browser.Form {
	return browser.Form{
		ID:       "f",
		Selector: "#f",
		Method:   "post",
		Fields: []browser.Field{
			{Name: "q", Type: fieldType, Selector: "#q"},
		},
	}
}

// singlePayloadCatalog keeps probe counts predictable in tests.
type singlePayloadCatalog struct{ payload payloads.Payload }

func (p singlePayloadCatalog) Category() payloads.Category { return p.payload.Category }
func (p singlePayloadCatalog) PayloadsFor(browser.FieldType) []payloads.Payload {
	return []payloads.Payload{p.payload}
}

func newTestCatalog(p payloads.Payload) *payloads.Catalog {
	c := &payloads.Catalog{}
	c.Register(singlePayloadCatalog{payload: p})
	return c
}

func TestFuzzFormFindsReflectedXSS(t *testing.T) {
	ctrl := newScriptedController()
	catalog := newTestCatalog(payloads.Payload{
		Value:    "<script>alert(1)</script>",
		Category: payloads.CategoryXSS,
		Name:     "Basic Script Alert",
	})

	e := New(ctrl, catalog, nil, nil, nil)
	findings := e.FuzzForm(context.Background(), singleFieldForm(browser.FieldText))

	if len(findings) != 1 {
		t.Fatalf("FuzzForm() returned %d findings %v, want 1", len(findings), findings)
	}
	f := findings[0]
	if f.Type != analyzer.FindingXSS || f.Severity != analyzer.SeverityHigh {
		t.Errorf("finding = %+v, want high xss", f)
	}
	if f.Payload != "<script>alert(1)</script>" {
		t.Errorf("finding payload = %q, traceability broken", f.Payload)
	}
}

func TestFuzzFormOneProbePerFieldPayload(t *testing.T) {
	ctrl := newScriptedController()
	ctrl.echoBody = false
	catalog := payloads.NewCatalog()

	form := browser.Form{
		ID:       "login",
		Selector: "#login",
		Fields: []browser.Field{
			{Name: "user", Type: browser.FieldText, Selector: "#user"},
			{Name: "pass", Type: browser.FieldPassword, Selector: "#pass"},
		},
	}

	e := New(ctrl, catalog, nil, nil, nil)
	e.FuzzForm(context.Background(), form)

	wantProbes := 0
	for _, f := range form.Fields {
		wantProbes += len(catalog.PayloadsForField(f))
	}
	if ctrl.fills != wantProbes {
		t.Errorf("fills = %d, want %d (one per field x payload)", ctrl.fills, wantProbes)
	}
	if ctrl.submits != wantProbes {
		t.Errorf("submits = %d, want %d (one per probe)", ctrl.submits, wantProbes)
	}
}

func TestFuzzFormFillFailureIsFailOpen(t *testing.T) {
	ctrl := newScriptedController()
	ctrl.failFill["#user"] = true
	catalog := newTestCatalog(payloads.Payload{
		Value: "x", Category: payloads.CategoryGeneric, Name: "Probe",
	})

	form := browser.Form{
		ID:       "f",
		Selector: "#f",
		Fields: []browser.Field{
			{Name: "user", Type: browser.FieldText, Selector: "#user"},
			{Name: "comment", Type: browser.FieldTextarea, Selector: "#comment"},
		},
	}

	e := New(ctrl, catalog, nil, nil, nil)
	e.FuzzForm(context.Background(), form)

	// A failed fill skips the submit but the next field still runs.
	if ctrl.submits != 1 {
		t.Errorf("submits = %d, want 1 (failed fill must not submit)", ctrl.submits)
	}
	if _, ok := ctrl.lastFilled["#comment"]; !ok {
		t.Error("later field was not probed after an earlier fill failure")
	}
}

func TestFuzzFormProbeFailuresAreCategorized(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: logger.DebugLevel, Output: &buf})
	catalog := newTestCatalog(payloads.Payload{
		Value: "x", Category: payloads.CategoryGeneric, Name: "Probe",
	})

	ctrl := newScriptedController()
	ctrl.failFill["#q"] = true
	e := New(ctrl, catalog, nil, log, nil)
	e.FuzzForm(context.Background(), singleFieldForm(browser.FieldText))

	if !strings.Contains(buf.String(), "could not fill field #q") {
		t.Errorf("fill failure not logged through the error taxonomy:\n%s", buf.String())
	}

	buf.Reset()
	ctrl = newScriptedController()
	ctrl.failSubmit = true
	e = New(ctrl, catalog, nil, log, nil)
	e.FuzzForm(context.Background(), singleFieldForm(browser.FieldText))

	if !strings.Contains(buf.String(), "could not submit form #f") {
		t.Errorf("submit failure not logged through the error taxonomy:\n%s", buf.String())
	}
}

func TestFuzzFormSubmitFailureYieldsNoFindings(t *testing.T) {
	ctrl := newScriptedController()
	ctrl.failSubmit = true
	catalog := newTestCatalog(payloads.Payload{
		Value:    "<script>alert(1)</script>",
		Category: payloads.CategoryXSS,
		Name:     "Basic Script Alert",
	})

	e := New(ctrl, catalog, nil, nil, nil)
	findings := e.FuzzForm(context.Background(), singleFieldForm(browser.FieldText))

	if len(findings) != 0 {
		t.Errorf("FuzzForm() = %v, want none when every submit fails", findings)
	}
}

func TestFuzzFormDuplicateFindingsPreserved(t *testing.T) {
	ctrl := newScriptedController()
	ctrl.echoBody = false
	ctrl.fixedBody = "You have an error in your SQL syntax"
	catalog := payloads.NewCatalog()

	form := singleFieldForm(browser.FieldDate)

	e := New(ctrl, catalog, nil, nil, nil)
	findings := e.FuzzForm(context.Background(), form)

	// Both date payloads hit the same SQL error; each probe keeps its
	// own finding.
	var sqli int
	for _, f := range findings {
		if f.Type == analyzer.FindingSQLi {
			sqli++
		}
	}
	if sqli != 2 {
		t.Errorf("sqli findings = %d, want 2 preserved duplicates", sqli)
	}
}

func TestFuzzFormCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ctrl := newScriptedController()
	e := New(ctrl, payloads.NewCatalog(), nil, nil, nil)
	findings := e.FuzzForm(ctx, singleFieldForm(browser.FieldText))

	if len(findings) != 0 {
		t.Errorf("FuzzForm() = %v, want none after cancellation", findings)
	}
	if ctrl.fills != 0 {
		t.Errorf("fills = %d, want 0 after cancellation", ctrl.fills)
	}
}

func TestFuzzFormEmitsEvents(t *testing.T) {
	ctrl := newScriptedController()
	catalog := newTestCatalog(payloads.Payload{
		Value:    "<script>alert(1)</script>",
		Category: payloads.CategoryXSS,
		Name:     "Basic Script Alert",
	})

	bus := events.NewBus()
	var seen []events.Type
	bus.Subscribe(func(e events.Event) { seen = append(seen, e.Type) })

	e := New(ctrl, catalog, nil, nil, bus)
	e.FuzzForm(context.Background(), singleFieldForm(browser.FieldText))

	want := []events.Type{
		events.FormStart, events.FieldStart, events.PayloadSent,
		events.VulnerabilityFound, events.FieldComplete, events.FormComplete,
	}
	if len(seen) != len(want) {
		t.Fatalf("events = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("events[%d] = %s, want %s", i, seen[i], want[i])
		}
	}
}
