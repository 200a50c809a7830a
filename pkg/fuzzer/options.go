package fuzzer

import (
	"time"

	"github.com/PentesterFlow/OpenFuzzer/internal/auth"
	"github.com/PentesterFlow/OpenFuzzer/internal/browser"
	"github.com/PentesterFlow/OpenFuzzer/internal/events"
	"github.com/PentesterFlow/OpenFuzzer/internal/logger"
)

// Option is a functional option for configuring the Session.
type Option func(*Session) error

// WithTarget sets the target URL to scan.
func WithTarget(url string) Option {
	return func(s *Session) error {
		s.config.Target = url
		return nil
	}
}

// WithMaxDepth sets the maximum crawl depth.
func WithMaxDepth(depth int) Option {
	return func(s *Session) error {
		if depth < 1 {
			depth = 1
		}
		s.config.MaxDepth = depth
		return nil
	}
}

// WithMaxPages sets the maximum number of pages to crawl.
func WithMaxPages(pages int) Option {
	return func(s *Session) error {
		if pages < 1 {
			pages = 1
		}
		s.config.MaxPages = pages
		return nil
	}
}

// WithTimeout sets the probe timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Session) error {
		s.config.Timeout = timeout
		s.config.Browser.Timeout = timeout
		return nil
	}
}

// WithRateLimit sets the probe pacing.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(s *Session) error {
		s.config.RateLimit.RequestsPerSecond = requestsPerSecond
		s.config.RateLimit.Burst = burst
		return nil
	}
}

// WithAuth configures form login before the crawl.
func WithAuth(creds auth.Credentials) Option {
	return func(s *Session) error {
		s.config.Auth = creds
		return nil
	}
}

// WithBrowserConfig replaces the browser configuration.
func WithBrowserConfig(cfg browser.Config) Option {
	return func(s *Session) error {
		s.config.Browser = cfg
		return nil
	}
}

// WithController injects a page controller, bypassing browser launch.
// Used by embedders and tests.
func WithController(ctrl browser.Controller) Option {
	return func(s *Session) error {
		s.ctrl = ctrl
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(s *Session) error {
		s.log = log
		return nil
	}
}

// WithEventListener subscribes a listener to session progress events.
func WithEventListener(l events.Listener) Option {
	return func(s *Session) error {
		s.bus.Subscribe(l)
		return nil
	}
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg *Config) Option {
	return func(s *Session) error {
		s.config = cfg
		return nil
	}
}
