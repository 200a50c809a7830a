package analyzer

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/PentesterFlow/OpenFuzzer/internal/browser"
	"github.com/PentesterFlow/OpenFuzzer/internal/payloads"
)

func xssPayload() payloads.Payload {
	return payloads.Payload{
		Value:    "<script>alert(1)</script>",
		Category: payloads.CategoryXSS,
		Name:     "Basic Script Alert",
	}
}

func sqliPayload() payloads.Payload {
	return payloads.Payload{
		Value:    "' OR '1'='1",
		Category: payloads.CategorySQLi,
		Name:     "Basic OR",
	}
}

func TestAnalyzeXSSReflection(t *testing.T) {
	a := New()
	resp := &browser.ResponseRecord{
		Status: 200,
		URL:    "https://example.com/search",
		Body:   "your query <script>alert(1)</script> was rejected",
	}

	findings := a.Analyze(resp, xssPayload())
	if len(findings) != 1 {
		t.Fatalf("Analyze() returned %d findings %v, want 1", len(findings), findings)
	}

	f := findings[0]
	if f.Type != FindingXSS {
		t.Errorf("type = %s, want xss", f.Type)
	}
	if f.Severity != SeverityHigh {
		t.Errorf("severity = %s, want high", f.Severity)
	}
	if !strings.Contains(f.Evidence, "<script>alert(1)</script>") {
		t.Errorf("evidence %q does not contain the reflected payload", f.Evidence)
	}
	if !strings.HasPrefix(f.Evidence, "...") || !strings.HasSuffix(f.Evidence, "...") {
		t.Errorf("evidence %q is not a bounded context window", f.Evidence)
	}
	if f.Payload != "<script>alert(1)</script>" {
		t.Errorf("payload = %q, payload traceability broken", f.Payload)
	}
	if f.URL != "https://example.com/search" {
		t.Errorf("url = %q, url traceability broken", f.URL)
	}
}

func TestAnalyzeXSSNoReflection(t *testing.T) {
	a := New()
	resp := &browser.ResponseRecord{
		Status: 200,
		Body:   "input sanitized, nothing echoed",
	}

	if findings := a.Analyze(resp, xssPayload()); len(findings) != 0 {
		t.Errorf("Analyze() = %v, want none", findings)
	}
}

func TestAnalyzeXSSCategoryGate(t *testing.T) {
	a := New()
	resp := &browser.ResponseRecord{
		Status: 200,
		Body:   "echoing ' OR '1'='1 right back",
	}

	// Reflection alone never fires for a non-xss payload.
	if findings := a.Analyze(resp, sqliPayload()); len(findings) != 0 {
		t.Errorf("Analyze() = %v, want none for non-xss reflection", findings)
	}
}

func TestAnalyzeSQLiAndServerErrorCombine(t *testing.T) {
	a := New()
	resp := &browser.ResponseRecord{
		Status: 500,
		URL:    "https://example.com/login",
		Body:   "You have an error in your SQL syntax near ''1'='1'",
	}

	findings := a.Analyze(resp, sqliPayload())
	if len(findings) != 2 {
		t.Fatalf("Analyze() returned %d findings %v, want sqli + server_error", len(findings), findings)
	}
	if findings[0].Type != FindingSQLi || findings[0].Severity != SeverityHigh {
		t.Errorf("findings[0] = %+v, want high sqli", findings[0])
	}
	if findings[1].Type != FindingServerError || findings[1].Severity != SeverityMedium {
		t.Errorf("findings[1] = %+v, want medium server_error", findings[1])
	}
}

func TestAnalyzeServerErrorStatusOnly(t *testing.T) {
	a := New()
	resp := &browser.ResponseRecord{
		Status: 503,
		Body:   "service unavailable",
	}

	findings := a.Analyze(resp, sqliPayload())
	if len(findings) != 1 || findings[0].Type != FindingServerError {
		t.Fatalf("Analyze() = %v, want single server_error", findings)
	}
	// Body has no matching fingerprint, so no evidence window.
	if findings[0].Evidence != "" {
		t.Errorf("evidence = %q, want empty for status-only trigger", findings[0].Evidence)
	}
}

func TestAnalyzePathDisclosure(t *testing.T) {
	a := New()
	resp := &browser.ResponseRecord{
		Status: 200,
		Body:   "open failed: /var/www/html/config.php missing",
	}

	findings := a.Analyze(resp, sqliPayload())
	if len(findings) != 1 || findings[0].Type != FindingPathDisclosure {
		t.Fatalf("Analyze() = %v, want single path_disclosure", findings)
	}
	if findings[0].Severity != SeverityLow {
		t.Errorf("severity = %s, want low", findings[0].Severity)
	}
	if !strings.Contains(findings[0].Evidence, "/var/www/") {
		t.Errorf("evidence = %q, want the path fingerprint", findings[0].Evidence)
	}
}

func TestAnalyzeDebugInfo(t *testing.T) {
	a := New()
	resp := &browser.ResponseRecord{
		Status: 200,
		Body:   "leftover var_dump($user) output here",
	}

	findings := a.Analyze(resp, sqliPayload())
	if len(findings) != 1 || findings[0].Type != FindingDebugInfo {
		t.Fatalf("Analyze() = %v, want single debug_info", findings)
	}
}

func TestAnalyzeSSRF(t *testing.T) {
	a := New()
	ssrf := payloads.Payload{
		Value:    "http://169.254.169.254/latest/meta-data/",
		Category: payloads.CategorySSRF,
		Name:     "AWS Metadata",
	}

	resp := &browser.ResponseRecord{
		Status: 200,
		Body:   "ami-id\ninstance-id\ninstance-type\n",
	}

	findings := a.Analyze(resp, ssrf)
	if len(findings) != 1 || findings[0].Type != FindingSSRF {
		t.Fatalf("Analyze() = %v, want single ssrf", findings)
	}
	if findings[0].Severity != SeverityHigh {
		t.Errorf("severity = %s, want high", findings[0].Severity)
	}

	// Same body with a non-ssrf payload stays silent.
	if got := a.Analyze(resp, sqliPayload()); len(got) != 0 {
		t.Errorf("Analyze() = %v, want none for non-ssrf payload", got)
	}
}

func TestAnalyzeNilResponse(t *testing.T) {
	a := New()
	if findings := a.Analyze(nil, xssPayload()); len(findings) != 0 {
		t.Errorf("Analyze(nil) = %v, want none", findings)
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	a := New()
	resp := &browser.ResponseRecord{
		Status: 500,
		URL:    "https://example.com/x",
		Body:   "SQL syntax error at /var/www/app.php DEBUG trace",
	}

	first := a.Analyze(resp, sqliPayload())
	second := a.Analyze(resp, sqliPayload())
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated analysis diverged: %v vs %v", first, second)
	}
}

func TestEvidenceWindowBounds(t *testing.T) {
	body := strings.Repeat("a", 100) + "SQL syntax" + strings.Repeat("b", 100)
	got := evidenceAroundPattern(body, sqlErrorPattern)

	want := "..." + strings.Repeat("a", 20) + "SQL syntax" + strings.Repeat("b", 20) + "..."
	if got != want {
		t.Errorf("evidence = %q, want %q", got, want)
	}
}

func TestEvidenceWindowAtBodyEdge(t *testing.T) {
	got := evidenceAround("SQL syntax", "SQL syntax")
	if got != "...SQL syntax..." {
		t.Errorf("evidence = %q, want the whole short body", got)
	}
}

func TestEvidenceWindowKeepsRunesIntact(t *testing.T) {
	// Three-byte runes on both sides put the raw ±20 byte offsets in the
	// middle of a rune.
	body := strings.Repeat("界", 20) + "SQL syntax" + strings.Repeat("界", 20)
	got := evidenceAround(body, "SQL syntax")

	if !utf8.ValidString(got) {
		t.Errorf("evidence is not valid UTF-8: %q", got)
	}
	if !strings.Contains(got, "SQL syntax") {
		t.Errorf("evidence = %q, missing the match", got)
	}
}
