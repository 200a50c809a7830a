// Package fuzzer is the public entry point: it wires the crawler, the
// payload catalog, the fuzzing engine and the analyzer into one scan
// session against a target.
package fuzzer

import (
	"context"
	"fmt"
	"time"

	"github.com/PentesterFlow/OpenFuzzer/internal/analyzer"
	"github.com/PentesterFlow/OpenFuzzer/internal/auth"
	"github.com/PentesterFlow/OpenFuzzer/internal/browser"
	"github.com/PentesterFlow/OpenFuzzer/internal/crawl"
	ferrors "github.com/PentesterFlow/OpenFuzzer/internal/errors"
	"github.com/PentesterFlow/OpenFuzzer/internal/events"
	"github.com/PentesterFlow/OpenFuzzer/internal/fuzz"
	"github.com/PentesterFlow/OpenFuzzer/internal/logger"
	"github.com/PentesterFlow/OpenFuzzer/internal/payloads"
	"github.com/PentesterFlow/OpenFuzzer/internal/ratelimit"
	"github.com/PentesterFlow/OpenFuzzer/internal/report"
)

// Session orchestrates one scan: navigate, authenticate, crawl, then
// fuzz every form on every discovered page. Strictly sequential; all
// probes share the session's single page controller.
type Session struct {
	config  *Config
	ctrl    browser.Controller
	log     *logger.Logger
	bus     *events.Bus
	catalog *payloads.Catalog
	limiter *ratelimit.Limiter
}

// NewSession creates a session from options.
func NewSession(opts ...Option) (*Session, error) {
	s := &Session{
		config:  DefaultConfig(),
		bus:     events.NewBus(),
		catalog: payloads.NewCatalog(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	if s.log == nil {
		level := logger.InfoLevel
		if s.config.Verbose {
			level = logger.DebugLevel
		}
		s.log = logger.New(logger.Config{Level: level, Pretty: true, Component: "session"})
	}

	s.limiter = ratelimit.NewLimiter(s.config.RateLimit.RequestsPerSecond, s.config.RateLimit.Burst)
	if s.config.RateLimit.ProbeDelay > 0 {
		s.limiter.SetProbeDelay(s.config.RateLimit.ProbeDelay)
	}

	return s, nil
}

// Events returns the session's event bus, for attaching displays.
func (s *Session) Events() *events.Bus {
	return s.bus
}

// Run executes the scan and returns the result. The returned result
// carries whatever was found even when the scan is cut short by ctx.
func (s *Session) Run(ctx context.Context) (*report.Result, error) {
	result := &report.Result{
		Target:    s.config.Target,
		StartedAt: time.Now(),
	}
	defer func() {
		result.FinishedAt = time.Now()
		stats := s.bus.Stats()
		result.PagesCount = stats.PagesCrawled
		result.FormsFuzzed = stats.FormsFuzzed
		result.Errors = stats.Errors
	}()

	if s.ctrl == nil {
		ctrl, err := browser.NewRodController(s.config.Browser, s.log)
		if err != nil {
			return result, fmt.Errorf("failed to start browser: %w", err)
		}
		s.ctrl = ctrl
		defer s.ctrl.Close()
	}

	s.bus.Emit(events.Event{Type: events.SessionStart, URL: s.config.Target})

	if err := s.ctrl.Navigate(ctx, s.config.Target); err != nil {
		// Unreachable start URL is the one fatal scan error.
		return result, ferrors.NewNavigationError(s.config.Target, "start URL unreachable", err)
	}

	if s.config.Auth.Configured() {
		login := auth.NewFormLogin(s.config.Auth, s.log)
		if err := login.Authenticate(ctx, s.ctrl); err != nil {
			return result, err
		}
	}

	crawler := crawl.New(s.ctrl, s.log, s.bus)
	pages, err := crawler.Crawl(ctx, s.config.Target, s.config.MaxDepth, s.config.MaxPages)
	result.Pages = pages
	if err != nil {
		return result, err
	}

	engine := fuzz.New(s.ctrl, s.catalog, s.limiter, s.log, s.bus)
	result.Findings = s.fuzzPages(ctx, engine, pages)

	s.bus.Emit(events.Event{Type: events.SessionComplete, Count: len(result.Findings)})
	return result, ctx.Err()
}

// fuzzPages walks the page list in crawl order and fuzzes every form.
func (s *Session) fuzzPages(ctx context.Context, engine *fuzz.Engine, pages []crawl.Page) []analyzer.Finding {
	findings := make([]analyzer.Finding, 0)

	for _, page := range pages {
		select {
		case <-ctx.Done():
			return findings
		default:
		}

		if err := s.ctrl.Navigate(ctx, page.URL); err != nil {
			scanErr := ferrors.Categorize(err, page.URL)
			s.log.ErrorEvent(scanErr, page.URL, "navigate")
			s.bus.RecordError()
			if !ferrors.IsRecoverable(scanErr) {
				return findings
			}
			continue
		}

		forms, err := s.ctrl.ExtractForms()
		if err != nil {
			s.log.ErrorEvent(err, page.URL, "extract_forms")
			s.bus.RecordError()
			continue
		}

		for _, form := range forms {
			findings = append(findings, engine.FuzzForm(ctx, form)...)
		}
	}

	return findings
}

// WriteReport renders the result to the configured report path and
// archives findings when a store path is set.
func (s *Session) WriteReport(result *report.Result) error {
	if s.config.StorePath != "" {
		store, err := report.NewBoltStore(s.config.StorePath)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.AppendFindings(result.Findings); err != nil {
			return err
		}
		if err := store.SaveResult(result); err != nil {
			return err
		}
	}

	if s.config.ReportPath != "" {
		return report.WriteFile(s.config.ReportPath, result)
	}
	return nil
}
