// Package analyzer classifies form-submission responses into findings.
// Checks are independent and additive, so one response may yield several
// findings, always in the same fixed order.
package analyzer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PentesterFlow/OpenFuzzer/internal/browser"
	"github.com/PentesterFlow/OpenFuzzer/internal/payloads"
)

// FindingType classifies a finding by vulnerability class.
type FindingType string

// Finding types, in analyzer check order.
const (
	FindingXSS            FindingType = "xss"
	FindingSQLi           FindingType = "sqli"
	FindingServerError    FindingType = "server_error"
	FindingPathDisclosure FindingType = "path_disclosure"
	FindingDebugInfo      FindingType = "debug_info"
	FindingSSRF           FindingType = "ssrf"
)

// Severity ranks how serious a finding is.
type Severity string

// Severity levels.
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Finding is one piece of evidence of a potential vulnerability. A
// finding is reproducible from its URL and payload value. Findings are
// never deduplicated.
type Finding struct {
	Type        FindingType `json:"type"`
	Severity    Severity    `json:"severity"`
	Payload     string      `json:"payload"`
	Evidence    string      `json:"evidence"`
	Description string      `json:"description"`
	URL         string      `json:"url"`
}

var (
	sqlErrorPattern       = regexp.MustCompile(`SQL syntax|ORA-[0-9]|mysql_fetch|pg_query|sqlite3_|SQLSTATE`)
	serverErrorPattern    = regexp.MustCompile(`Exception|Error|Warning|Fatal|Undefined|stack trace|at .+\(.+:[0-9]+\)`)
	pathDisclosurePattern = regexp.MustCompile(`[A-Za-z]:\\|/var/www/|/home/|/usr/local/|/opt/|/etc/`)
	debugInfoPattern      = regexp.MustCompile(`DEBUG|TRACE|console\.log|System\.out\.print|print_r|var_dump`)
)

// ssrfIndicators are substrings whose presence in a response body marks
// a server-side request as having reached an internal target: cloud
// metadata endpoints, router and admin panels, leaked file content.
var ssrfIndicators = []string{
	"ami-id", "instance-id", "instance-type", "local-hostname",
	"instance/attributes", "instance/service-accounts",
	"<title>Router</title>", "<title>Admin</title>",
	"root:x:", "mysql:", "www-data:",
}

// ResponseAnalyzer classifies responses. Stateless; safe to share.
type ResponseAnalyzer struct{}

// New returns a response analyzer.
func New() *ResponseAnalyzer {
	return &ResponseAnalyzer{}
}

// Analyze inspects one response against the payload that produced it
// and returns zero or more findings. Identical inputs always yield
// identical findings.
func (a *ResponseAnalyzer) Analyze(response *browser.ResponseRecord, payload payloads.Payload) []Finding {
	findings := make([]Finding, 0)
	if response == nil {
		return findings
	}

	body := response.Body
	url := response.URL

	if payload.Category == payloads.CategoryXSS && a.checkReflection(body, payload.Value) {
		findings = append(findings, Finding{
			Type:        FindingXSS,
			Severity:    SeverityHigh,
			Payload:     payload.Value,
			Evidence:    evidenceAround(body, payload.Value),
			Description: "XSS payload was reflected in the response",
			URL:         url,
		})
	}

	if payload.Category == payloads.CategorySQLi && sqlErrorPattern.MatchString(body) {
		findings = append(findings, Finding{
			Type:        FindingSQLi,
			Severity:    SeverityHigh,
			Payload:     payload.Value,
			Evidence:    evidenceAroundPattern(body, sqlErrorPattern),
			Description: "SQL error detected in response",
			URL:         url,
		})
	}

	if response.Status >= 500 || serverErrorPattern.MatchString(body) {
		findings = append(findings, Finding{
			Type:        FindingServerError,
			Severity:    SeverityMedium,
			Payload:     payload.Value,
			Evidence:    evidenceAroundPattern(body, serverErrorPattern),
			Description: "Server error detected in response",
			URL:         url,
		})
	}

	if pathDisclosurePattern.MatchString(body) {
		findings = append(findings, Finding{
			Type:        FindingPathDisclosure,
			Severity:    SeverityLow,
			Payload:     payload.Value,
			Evidence:    evidenceAroundPattern(body, pathDisclosurePattern),
			Description: "Path disclosure detected in response",
			URL:         url,
		})
	}

	if debugInfoPattern.MatchString(body) {
		findings = append(findings, Finding{
			Type:        FindingDebugInfo,
			Severity:    SeverityLow,
			Payload:     payload.Value,
			Evidence:    evidenceAroundPattern(body, debugInfoPattern),
			Description: "Debug information detected in response",
			URL:         url,
		})
	}

	if payload.Category == payloads.CategorySSRF && a.checkSSRF(body) {
		findings = append(findings, Finding{
			Type:        FindingSSRF,
			Severity:    SeverityHigh,
			Payload:     payload.Value,
			Evidence:    "Response indicates successful SSRF",
			Description: "Potential SSRF vulnerability detected",
			URL:         url,
		})
	}

	return findings
}

// checkReflection reports whether the literal payload value appears
// verbatim in the body.
func (a *ResponseAnalyzer) checkReflection(body, payloadValue string) bool {
	escaped := regexp.QuoteMeta(payloadValue)
	matched, err := regexp.MatchString(escaped, body)
	if err != nil {
		return false
	}
	return matched
}

func (a *ResponseAnalyzer) checkSSRF(body string) bool {
	for _, indicator := range ssrfIndicators {
		if strings.Contains(body, indicator) {
			return true
		}
	}
	return false
}

// evidenceAround returns a 20-character context window around the
// first occurrence of a literal substring. Empty when absent.
func evidenceAround(body, substr string) string {
	index := strings.Index(body, substr)
	if index == -1 {
		return ""
	}
	return window(body, index, index+len(substr))
}

// evidenceAroundPattern returns a 20-character context window around
// the first regex match. Empty when there is no match.
func evidenceAroundPattern(body string, pattern *regexp.Regexp) string {
	loc := pattern.FindStringIndex(body)
	if loc == nil {
		return ""
	}
	return window(body, loc[0], loc[1])
}

func window(body string, start, end int) string {
	lo := start - 20
	if lo < 0 {
		lo = 0
	}
	for lo > 0 && !utf8.RuneStart(body[lo]) {
		lo--
	}

	hi := end + 20
	if hi > len(body) {
		hi = len(body)
	}
	for hi < len(body) && !utf8.RuneStart(body[hi]) {
		hi++
	}

	return fmt.Sprintf("...%s...", body[lo:hi])
}
