package progress

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/PentesterFlow/OpenFuzzer/internal/events"
)

func TestDisplayCountsEvents(t *testing.T) {
	var buf bytes.Buffer
	d := NewWithWriter(&buf)

	bus := events.NewBus()
	d.Attach(bus)

	bus.Emit(events.Event{Type: events.SessionStart, URL: "https://example.com"})
	bus.Emit(events.Event{Type: events.PageComplete})
	bus.Emit(events.Event{Type: events.PageComplete})
	bus.Emit(events.Event{Type: events.FormComplete})
	bus.Emit(events.Event{Type: events.PayloadSent})
	bus.Emit(events.Event{Type: events.VulnerabilityFound})

	if d.pages != 2 || d.forms != 1 || d.payloads != 1 || d.findings != 1 {
		t.Errorf("counters = pages %d forms %d payloads %d findings %d",
			d.pages, d.forms, d.payloads, d.findings)
	}
	if !strings.Contains(buf.String(), "Pages: 2") {
		t.Errorf("status line missing page count: %q", buf.String())
	}
}

func TestDisplaySummary(t *testing.T) {
	var out bytes.Buffer
	d := NewWithWriter(&out)

	bus := events.NewBus()
	d.Attach(bus)
	bus.Emit(events.Event{Type: events.SessionStart, URL: "https://example.com"})
	bus.Emit(events.Event{Type: events.VulnerabilityFound})
	bus.Emit(events.Event{Type: events.SessionComplete})

	var summary bytes.Buffer
	d.PrintSummary(&summary)

	s := summary.String()
	if !strings.Contains(s, "Scan Complete") {
		t.Error("missing summary header")
	}
	if !strings.Contains(s, "Findings:        1") {
		t.Errorf("missing findings count in summary:\n%s", s)
	}
	if !strings.Contains(s, "https://example.com") {
		t.Error("missing target in summary")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{5, "5s"},
		{65, "1m05s"},
		{3665, "1h01m05s"},
	}

	for _, tt := range tests {
		got := formatDuration(time.Duration(tt.seconds) * time.Second)
		if got != tt.want {
			t.Errorf("formatDuration(%ds) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
