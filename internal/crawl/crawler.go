// Package crawl implements the bounded breadth-first crawler that turns
// a start URL into an ordered, deduplicated page list.
package crawl

import (
	"context"

	"github.com/bits-and-blooms/bloom/v3"

	"github.com/PentesterFlow/OpenFuzzer/internal/browser"
	"github.com/PentesterFlow/OpenFuzzer/internal/errors"
	"github.com/PentesterFlow/OpenFuzzer/internal/events"
	"github.com/PentesterFlow/OpenFuzzer/internal/logger"
	"github.com/PentesterFlow/OpenFuzzer/internal/queue"
	"github.com/PentesterFlow/OpenFuzzer/internal/scope"
)

// Page is one crawled page: its normalized URL and the link depth at
// which it was discovered.
type Page struct {
	URL   string `json:"url"`
	Depth int    `json:"depth"`
}

// Crawler performs a bounded breadth-first traversal over same-origin
// links. Pages come back in non-decreasing depth order, never more than
// maxPages of them, never deeper than maxDepth.
type Crawler struct {
	ctrl browser.Controller
	log  *logger.Logger
	bus  *events.Bus

	// bloomFilter fronts the exact visited set; a negative answer
	// skips the map lookup entirely.
	bloomFilter *bloom.BloomFilter
	visited     map[string]struct{}
}

// New creates a crawler driving the given page controller.
func New(ctrl browser.Controller, log *logger.Logger, bus *events.Bus) *Crawler {
	if log == nil {
		log = logger.Nop()
	}
	if bus == nil {
		bus = events.NewBus()
	}
	return &Crawler{
		ctrl:        ctrl,
		log:         log.WithComponent("crawler"),
		bus:         bus,
		bloomFilter: bloom.NewWithEstimates(100000, 0.01),
		visited:     make(map[string]struct{}),
	}
}

// Crawl traverses from startURL and returns the visited pages in BFS
// order. The start URL always occupies the first page slot, even when
// its navigation fails. Navigation failures mark the URL visited so it
// is never retried.
func (c *Crawler) Crawl(ctx context.Context, startURL string, maxDepth, maxPages int) ([]Page, error) {
	start, err := scope.NormalizeURL(startURL)
	if err != nil {
		return nil, errors.NewNavigationError(startURL, "invalid start URL", err)
	}

	checker, err := scope.NewChecker(start)
	if err != nil {
		return nil, errors.NewNavigationError(startURL, "invalid start URL", err)
	}

	c.bus.Emit(events.Event{Type: events.CrawlStart, URL: start})
	c.log.Debugf("scope pinned to %s", checker.Origin())

	frontier := queue.NewFrontier()
	frontier.Push(&queue.Item{URL: start, Depth: 0})

	pages := make([]Page, 0, maxPages)

	for !frontier.IsEmpty() && len(pages) < maxPages {
		select {
		case <-ctx.Done():
			return pages, errors.NewCancelledError("crawl")
		default:
		}

		item, err := frontier.Pop()
		if err != nil {
			break
		}

		if c.isVisited(item.URL) {
			continue
		}
		c.markVisited(item.URL)

		pages = append(pages, Page{URL: item.URL, Depth: item.Depth})
		c.bus.Emit(events.Event{Type: events.PageStart, URL: item.URL})
		c.log.WithURL(item.URL).Debugf("visiting page at depth %d", item.Depth)

		links := c.visit(ctx, item.URL)

		if item.Depth < maxDepth {
			c.enqueueLinks(frontier, checker, links, item.URL, item.Depth+1)
		}

		c.bus.Emit(events.Event{Type: events.PageComplete, URL: item.URL})
	}

	c.bus.Emit(events.Event{Type: events.CrawlComplete, Count: len(pages)})
	c.log.Infof("crawl complete: %d pages", len(pages))
	return pages, nil
}

// visit navigates to a page and returns its outbound links. A failed
// page contributes no links but stays in the page list.
func (c *Crawler) visit(ctx context.Context, url string) []string {
	if err := c.ctrl.Navigate(ctx, url); err != nil {
		c.log.ErrorEvent(err, url, "navigate")
		c.bus.RecordError()
		return nil
	}

	links, err := c.ctrl.ExtractLinks()
	if err != nil {
		c.log.ErrorEvent(err, url, "extract_links")
		c.bus.RecordError()
		return nil
	}
	return links
}

// enqueueLinks pushes in-scope crawlable links onto the frontier at the
// given depth. Out-of-scope, non-crawlable, already-visited and
// malformed links are dropped.
func (c *Crawler) enqueueLinks(frontier *queue.Frontier, checker *scope.Checker, links []string, parent string, depth int) {
	for _, link := range links {
		norm, err := scope.NormalizeURL(link)
		if err != nil {
			continue
		}
		if !checker.IsInScope(norm) || !scope.IsCrawlable(norm) {
			continue
		}
		if c.isVisited(norm) {
			continue
		}
		frontier.Push(&queue.Item{URL: norm, Depth: depth, ParentURL: parent})
	}
}

func (c *Crawler) isVisited(url string) bool {
	if !c.bloomFilter.TestString(url) {
		return false
	}
	_, ok := c.visited[url]
	return ok
}

func (c *Crawler) markVisited(url string) {
	c.bloomFilter.AddString(url)
	c.visited[url] = struct{}{}
}

// VisitedCount returns how many URLs the crawler has visited.
func (c *Crawler) VisitedCount() int {
	return len(c.visited)
}
