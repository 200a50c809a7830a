package report

import (
	"fmt"
	"io"
	"time"

	"github.com/PentesterFlow/OpenFuzzer/internal/analyzer"
)

// MarkdownWriter renders the result as a Markdown document with
// findings grouped by severity, highest first.
type MarkdownWriter struct {
	w io.Writer
}

// NewMarkdownWriter creates a Markdown report writer.
func NewMarkdownWriter(w io.Writer) *MarkdownWriter {
	return &MarkdownWriter{w: w}
}

var severityOrder = []analyzer.Severity{
	analyzer.SeverityHigh,
	analyzer.SeverityMedium,
	analyzer.SeverityLow,
}

// Write renders the report.
func (m *MarkdownWriter) Write(result *Result) error {
	fmt.Fprintf(m.w, "# Vulnerability Scan Report\n\n")
	fmt.Fprintf(m.w, "- **Target:** %s\n", result.Target)
	fmt.Fprintf(m.w, "- **Started:** %s\n", result.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(m.w, "- **Duration:** %s\n", result.Duration().Round(time.Second))
	fmt.Fprintf(m.w, "- **Pages crawled:** %d\n", result.PagesCount)
	fmt.Fprintf(m.w, "- **Forms fuzzed:** %d\n", result.FormsFuzzed)
	fmt.Fprintf(m.w, "- **Findings:** %d\n\n", len(result.Findings))

	grouped := result.BySeverity()
	for _, sev := range severityOrder {
		findings := grouped[sev]
		if len(findings) == 0 {
			continue
		}

		fmt.Fprintf(m.w, "## %s severity (%d)\n\n", titleCase(string(sev)), len(findings))
		for i, f := range findings {
			fmt.Fprintf(m.w, "### %d. %s\n\n", i+1, f.Type)
			fmt.Fprintf(m.w, "- **URL:** %s\n", f.URL)
			fmt.Fprintf(m.w, "- **Payload:** `%s`\n", f.Payload)
			if f.Evidence != "" {
				fmt.Fprintf(m.w, "- **Evidence:** `%s`\n", f.Evidence)
			}
			fmt.Fprintf(m.w, "- **Description:** %s\n\n", f.Description)
		}
	}

	if len(result.Findings) == 0 {
		fmt.Fprintf(m.w, "No findings.\n")
	}

	return nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
