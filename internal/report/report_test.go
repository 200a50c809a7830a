package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PentesterFlow/OpenFuzzer/internal/analyzer"
	"github.com/PentesterFlow/OpenFuzzer/internal/crawl"
)

func sampleResult() *Result {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return &Result{
		Target:     "https://example.com",
		StartedAt:  start,
		FinishedAt: start.Add(42 * time.Second),
		Pages: []crawl.Page{
			{URL: "https://example.com/", Depth: 0},
			{URL: "https://example.com/login", Depth: 1},
		},
		Findings: []analyzer.Finding{
			{
				Type:     analyzer.FindingXSS,
				Severity: analyzer.SeverityHigh,
				Payload:  "<script>alert(1)</script>",
				Evidence: "...echo <script>alert(1)</script> back...",
				URL:      "https://example.com/login",
			},
			{
				Type:     analyzer.FindingDebugInfo,
				Severity: analyzer.SeverityLow,
				Payload:  "' OR '1'='1",
				Evidence: "...var_dump output...",
				URL:      "https://example.com/login",
			},
		},
		PagesCount:  2,
		FormsFuzzed: 1,
	}
}

func TestJSONWriterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONWriter(&buf).Write(sampleResult()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var decoded Result
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if decoded.Target != "https://example.com" {
		t.Errorf("target = %q", decoded.Target)
	}
	if len(decoded.Findings) != 2 {
		t.Errorf("findings = %d, want 2", len(decoded.Findings))
	}
	if decoded.Findings[0].Type != analyzer.FindingXSS {
		t.Errorf("finding order not preserved: %v", decoded.Findings)
	}
}

func TestMarkdownWriterGroupsBySeverity(t *testing.T) {
	var buf bytes.Buffer
	if err := NewMarkdownWriter(&buf).Write(sampleResult()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "# Vulnerability Scan Report") {
		t.Error("missing report title")
	}
	highIdx := strings.Index(out, "## High severity")
	lowIdx := strings.Index(out, "## Low severity")
	if highIdx == -1 || lowIdx == -1 {
		t.Fatalf("missing severity sections in:\n%s", out)
	}
	if highIdx > lowIdx {
		t.Error("high severity section must precede low")
	}
	if !strings.Contains(out, "`<script>alert(1)</script>`") {
		t.Error("payload missing from markdown report")
	}
}

func TestHTMLWriterEscapesPayloads(t *testing.T) {
	var buf bytes.Buffer
	if err := NewHTMLWriter(&buf).Write(sampleResult()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "<script>alert(1)</script>") {
		t.Error("payload rendered unescaped into the HTML report")
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Error("escaped payload missing from HTML report")
	}
}

func TestWriteFilePicksFormatByExtension(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		file string
		want string
	}{
		{"report.json", `"target"`},
		{"report.md", "# Vulnerability Scan Report"},
		{"report.html", "<!DOCTYPE html>"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := WriteFile(path, sampleResult()); err != nil {
				t.Fatalf("WriteFile() error = %v", err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile() error = %v", err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("%s does not contain %q", tt.file, tt.want)
			}
		})
	}
}

func TestBoltStorePreservesOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "findings.db")

	store, err := NewBoltStore(path)
	if err != nil {
		t.Fatalf("NewBoltStore() error = %v", err)
	}
	defer store.Close()

	first := sampleResult().Findings
	if err := store.AppendFindings(first); err != nil {
		t.Fatalf("AppendFindings() error = %v", err)
	}
	// Duplicates are stored again, never collapsed.
	if err := store.AppendFindings(first[:1]); err != nil {
		t.Fatalf("AppendFindings() error = %v", err)
	}

	got, err := store.Findings()
	if err != nil {
		t.Fatalf("Findings() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("stored %d findings, want 3", len(got))
	}
	if got[0].Type != analyzer.FindingXSS || got[1].Type != analyzer.FindingDebugInfo || got[2].Type != analyzer.FindingXSS {
		t.Errorf("order not preserved: %v", got)
	}
}

func TestBoltStoreSaveResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "findings.db")

	store, err := NewBoltStore(path)
	if err != nil {
		t.Fatalf("NewBoltStore() error = %v", err)
	}
	defer store.Close()

	if err := store.SaveResult(sampleResult()); err != nil {
		t.Errorf("SaveResult() error = %v", err)
	}
}
