// Package progress renders a live status line for a running scan and a
// summary box at the end. It consumes bus events and nothing else.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/PentesterFlow/OpenFuzzer/internal/events"
)

// Display renders scan progress to a terminal.
type Display struct {
	mu      sync.Mutex
	out     io.Writer
	started bool
	stopped bool

	target    string
	startTime time.Time
	lastLine  string

	pages    int
	forms    int
	payloads int
	findings int
	errors   int
}

// New creates a progress display writing to stderr.
func New() *Display {
	return &Display{out: os.Stderr}
}

// NewWithWriter creates a progress display writing to w.
func NewWithWriter(w io.Writer) *Display {
	return &Display{out: w}
}

// Attach subscribes the display to a bus. Call before the session
// starts.
func (d *Display) Attach(bus *events.Bus) {
	bus.Subscribe(d.handle)
}

func (d *Display) handle(e events.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch e.Type {
	case events.SessionStart:
		d.started = true
		d.startTime = time.Now()
		d.target = e.URL
	case events.PageComplete:
		d.pages++
	case events.FormComplete:
		d.forms++
	case events.PayloadSent:
		d.payloads++
	case events.VulnerabilityFound:
		d.findings++
	case events.SessionComplete:
		d.stopped = true
		fmt.Fprintln(d.out)
		return
	}

	if d.started && !d.stopped {
		d.render()
	}
}

// render redraws the status line. Caller holds the lock.
func (d *Display) render() {
	elapsed := time.Since(d.startTime).Round(time.Second)
	line := fmt.Sprintf("\rPages: %d | Forms: %d | Payloads: %d | Findings: %d | %s",
		d.pages, d.forms, d.payloads, d.findings, formatDuration(elapsed))

	if len(line) < len(d.lastLine) {
		fmt.Fprint(d.out, "\r"+strings.Repeat(" ", len(d.lastLine)))
	}
	fmt.Fprint(d.out, line)
	d.lastLine = line
}

// PrintSummary prints the final summary box.
func (d *Display) PrintSummary(w io.Writer) {
	d.mu.Lock()
	defer d.mu.Unlock()

	duration := time.Since(d.startTime)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════════════╗")
	fmt.Fprintln(w, "║                        Scan Complete                         ║")
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Target:          %s\n", truncate(d.target, 50))
	fmt.Fprintf(w, "  Duration:        %s\n", formatDuration(duration))
	fmt.Fprintf(w, "  Pages Crawled:   %d\n", d.pages)
	fmt.Fprintf(w, "  Forms Fuzzed:    %d\n", d.forms)
	fmt.Fprintf(w, "  Payloads Sent:   %d\n", d.payloads)
	fmt.Fprintf(w, "  Findings:        %d\n", d.findings)
	fmt.Fprintln(w)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
