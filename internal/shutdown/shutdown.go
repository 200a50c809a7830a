// Package shutdown handles Ctrl-C for the scanner CLI: the first
// signal cancels the session context so the scan winds down and still
// writes its report, a second signal exits immediately.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

// Callback is a cleanup function run during shutdown.
type Callback func(ctx context.Context) error

// Handler manages graceful shutdown of a scan.
type Handler struct {
	mu        sync.Mutex
	callbacks []Callback

	shuttingDown atomic.Bool
	timeout      time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	sigChan chan os.Signal
}

// New creates a shutdown handler listening for SIGINT and SIGTERM.
func New(timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	h := &Handler{
		callbacks: make([]Callback, 0),
		timeout:   timeout,
		ctx:       ctx,
		cancel:    cancel,
		sigChan:   make(chan os.Signal, 2),
	}

	signal.Notify(h.sigChan, syscall.SIGINT, syscall.SIGTERM)
	go h.watch()

	return h
}

// Context returns the context cancelled on the first signal. The scan
// session runs under it.
func (h *Handler) Context() context.Context {
	return h.ctx
}

// Register adds a cleanup callback run after the session stops.
// Callbacks run in registration order.
func (h *Handler) Register(cb Callback) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.callbacks = append(h.callbacks, cb)
}

// Shutdown cancels the session and runs callbacks. Safe to call more
// than once; later calls are no-ops.
func (h *Handler) Shutdown() {
	if !h.shuttingDown.CompareAndSwap(false, true) {
		return
	}

	h.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	h.mu.Lock()
	callbacks := make([]Callback, len(h.callbacks))
	copy(callbacks, h.callbacks)
	h.mu.Unlock()

	for _, cb := range callbacks {
		_ = cb(ctx)
	}
}

// IsShuttingDown reports whether shutdown has begun.
func (h *Handler) IsShuttingDown() bool {
	return h.shuttingDown.Load()
}

func (h *Handler) watch() {
	<-h.sigChan
	go h.Shutdown()

	// Second signal aborts without cleanup.
	<-h.sigChan
	os.Exit(130)
}
