// Package events is the progress-notification bus for a scan session.
// Emission is purely observational; core logic never reads events back.
package events

import (
	"sync"
	"time"
)

// Type names a progress event.
type Type string

// Event types emitted over a session's lifetime.
const (
	SessionStart       Type = "session_start"
	CrawlStart         Type = "crawl_start"
	CrawlComplete      Type = "crawl_complete"
	PageStart          Type = "page_start"
	PageComplete       Type = "page_complete"
	FormStart          Type = "form_start"
	FormComplete       Type = "form_complete"
	FieldStart         Type = "field_start"
	FieldComplete      Type = "field_complete"
	PayloadSent        Type = "payload_sent"
	VulnerabilityFound Type = "vulnerability_found"
	SessionComplete    Type = "session_complete"
)

// Event is one progress notification.
type Event struct {
	Type      Type      `json:"type"`
	Timestamp time.Time `json:"timestamp"`

	// URL of the page the event concerns, when applicable.
	URL string `json:"url,omitempty"`

	// Form and Field labels, for form/field/payload events.
	Form  string `json:"form,omitempty"`
	Field string `json:"field,omitempty"`

	// Payload name for payload_sent, finding type for
	// vulnerability_found.
	Payload  string `json:"payload,omitempty"`
	Finding  string `json:"finding,omitempty"`
	Severity string `json:"severity,omitempty"`

	// Count carries event-specific totals: pages for crawl_complete,
	// findings for session_complete.
	Count int `json:"count,omitempty"`
}

// Listener receives events. Listeners must not block; emission happens
// on the scan path.
type Listener func(Event)

// Stats is a snapshot of session counters.
type Stats struct {
	PagesCrawled  int
	FormsFuzzed   int
	FieldsFuzzed  int
	PayloadsSent  int
	FindingsCount int
	Errors        int
}

// Bus dispatches events to registered listeners and keeps running
// counters. Safe for concurrent use; with no listeners, emission is a
// counter update and nothing else.
type Bus struct {
	mu        sync.Mutex
	listeners []Listener
	stats     Stats
	start     time.Time
}

// NewBus creates an event bus.
func NewBus() *Bus {
	return &Bus{start: time.Now()}
}

// Subscribe registers a listener for all events.
func (b *Bus) Subscribe(l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, l)
}

// Emit stamps and dispatches an event.
func (b *Bus) Emit(e Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	b.mu.Lock()
	switch e.Type {
	case PageComplete:
		b.stats.PagesCrawled++
	case FormComplete:
		b.stats.FormsFuzzed++
	case FieldComplete:
		b.stats.FieldsFuzzed++
	case PayloadSent:
		b.stats.PayloadsSent++
	case VulnerabilityFound:
		b.stats.FindingsCount++
	}
	listeners := make([]Listener, len(b.listeners))
	copy(listeners, b.listeners)
	b.mu.Unlock()

	for _, l := range listeners {
		l(e)
	}
}

// RecordError bumps the error counter.
func (b *Bus) RecordError() {
	b.mu.Lock()
	b.stats.Errors++
	b.mu.Unlock()
}

// Stats returns a snapshot of the session counters.
func (b *Bus) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}

// Elapsed returns time since the bus was created.
func (b *Bus) Elapsed() time.Duration {
	return time.Since(b.start)
}
