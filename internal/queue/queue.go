// Package queue provides the crawl frontier: a FIFO queue of pages
// awaiting a visit.
package queue

import (
	"errors"
	"sync"
)

var (
	ErrQueueEmpty  = errors.New("queue is empty")
	ErrQueueClosed = errors.New("queue is closed")
)

// Item represents an entry in the crawl frontier.
type Item struct {
	URL       string
	Depth     int
	ParentURL string
}

// Frontier is a thread-safe FIFO queue of crawl items. FIFO order is
// what makes the crawl breadth-first: everything pushed at depth d is
// popped before anything pushed at depth d+1.
type Frontier struct {
	mu     sync.RWMutex
	items  []*Item
	urlSet map[string]struct{}
	closed bool
}

// NewFrontier creates an empty frontier.
func NewFrontier() *Frontier {
	return &Frontier{
		items:  make([]*Item, 0),
		urlSet: make(map[string]struct{}),
	}
}

// Push appends an item to the back of the frontier. Duplicate URLs
// already waiting in the frontier are silently ignored.
func (f *Frontier) Push(item *Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrQueueClosed
	}

	if _, exists := f.urlSet[item.URL]; exists {
		return nil
	}

	f.urlSet[item.URL] = struct{}{}
	f.items = append(f.items, item)
	return nil
}

// Pop removes and returns the item at the front of the frontier.
func (f *Frontier) Pop() (*Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, ErrQueueClosed
	}

	if len(f.items) == 0 {
		return nil, ErrQueueEmpty
	}

	item := f.items[0]
	f.items[0] = nil
	f.items = f.items[1:]
	delete(f.urlSet, item.URL)
	return item, nil
}

// Peek returns the next item without removing it.
func (f *Frontier) Peek() (*Item, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.closed {
		return nil, ErrQueueClosed
	}

	if len(f.items) == 0 {
		return nil, ErrQueueEmpty
	}

	return f.items[0], nil
}

// Len returns the number of items waiting in the frontier.
func (f *Frontier) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.items)
}

// IsEmpty returns true if the frontier is empty.
func (f *Frontier) IsEmpty() bool {
	return f.Len() == 0
}

// Contains checks if a URL is waiting in the frontier.
func (f *Frontier) Contains(url string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, exists := f.urlSet[url]
	return exists
}

// Clear removes all items from the frontier.
func (f *Frontier) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = make([]*Item, 0)
	f.urlSet = make(map[string]struct{})
}

// Close closes the frontier. Subsequent pushes and pops fail.
func (f *Frontier) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}
