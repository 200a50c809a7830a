// Package report renders the findings of a scan session. Pure
// presentation: it consumes the ordered finding sequence and never
// feeds anything back into the scan.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PentesterFlow/OpenFuzzer/internal/analyzer"
	"github.com/PentesterFlow/OpenFuzzer/internal/crawl"
)

// Result is the complete outcome of one scan session.
type Result struct {
	Target      string             `json:"target"`
	StartedAt   time.Time          `json:"started_at"`
	FinishedAt  time.Time          `json:"finished_at"`
	Pages       []crawl.Page       `json:"pages"`
	Findings    []analyzer.Finding `json:"findings"`
	PagesCount  int                `json:"pages_count"`
	FormsFuzzed int                `json:"forms_fuzzed"`
	Errors      int                `json:"errors"`
}

// Duration returns how long the scan ran.
func (r *Result) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// BySeverity groups findings by severity, preserving discovery order
// within each group.
func (r *Result) BySeverity() map[analyzer.Severity][]analyzer.Finding {
	out := make(map[analyzer.Severity][]analyzer.Finding)
	for _, f := range r.Findings {
		out[f.Severity] = append(out[f.Severity], f)
	}
	return out
}

// Writer renders a scan result to a destination.
type Writer interface {
	Write(result *Result) error
}

// WriteFile renders the result to path, picking the format from the
// file extension: .json, .md, everything else HTML.
func WriteFile(path string, result *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	var w Writer
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		w = NewJSONWriter(f)
	case ".md", ".markdown":
		w = NewMarkdownWriter(f)
	default:
		w = NewHTMLWriter(f)
	}

	return w.Write(result)
}
