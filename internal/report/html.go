package report

import (
	"html/template"
	"io"
	"time"
)

// HTMLWriter renders the result as a standalone HTML page.
type HTMLWriter struct {
	w io.Writer
}

// NewHTMLWriter creates an HTML report writer.
func NewHTMLWriter(w io.Writer) *HTMLWriter {
	return &HTMLWriter{w: w}
}

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"fmtTime": func(t time.Time) string { return t.Format("2006-01-02 15:04:05") },
	"inc":     func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Vulnerability Scan Report - {{.Target}}</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #222; }
h1 { border-bottom: 2px solid #444; padding-bottom: 0.3em; }
table { border-collapse: collapse; width: 100%; margin-top: 1em; }
th, td { border: 1px solid #ccc; padding: 0.5em; text-align: left; vertical-align: top; }
th { background: #f0f0f0; }
.high { color: #b00020; font-weight: bold; }
.medium { color: #c77700; font-weight: bold; }
.low { color: #2e7d32; }
code { background: #f6f6f6; padding: 0.1em 0.3em; word-break: break-all; }
</style>
</head>
<body>
<h1>Vulnerability Scan Report</h1>
<p>
Target: <strong>{{.Target}}</strong><br>
Started: {{fmtTime .StartedAt}}<br>
Pages crawled: {{.PagesCount}} &middot; Forms fuzzed: {{.FormsFuzzed}} &middot; Findings: {{len .Findings}}
</p>
{{if .Findings}}
<table>
<tr><th>#</th><th>Type</th><th>Severity</th><th>URL</th><th>Payload</th><th>Evidence</th></tr>
{{range $i, $f := .Findings}}
<tr>
<td>{{inc $i}}</td>
<td>{{$f.Type}}</td>
<td class="{{$f.Severity}}">{{$f.Severity}}</td>
<td>{{$f.URL}}</td>
<td><code>{{$f.Payload}}</code></td>
<td><code>{{$f.Evidence}}</code></td>
</tr>
{{end}}
</table>
{{else}}
<p>No findings.</p>
{{end}}
</body>
</html>
`))

// Write renders the report.
func (h *HTMLWriter) Write(result *Result) error {
	return htmlTemplate.Execute(h.w, result)
}
