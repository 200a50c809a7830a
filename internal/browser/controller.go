package browser

import "context"

// Controller is the page controller capability the core drives. All
// probes share one live rendered page, so implementations are not safe
// for concurrent use; callers serialize access (the session owns the
// controller).
type Controller interface {
	// Navigate loads a URL in the shared page.
	Navigate(ctx context.Context, url string) error

	// FillField sets a field's value. Best effort: failures are
	// reported, not fatal.
	FillField(selector, value string) error

	// Click clicks an element.
	Click(selector string) error

	// SubmitForm submits the form matching selector and captures the
	// resulting document response.
	SubmitForm(selector string) (*ResponseRecord, error)

	// ExtractLinks returns the outbound links of the current page,
	// resolved to absolute URLs.
	ExtractLinks() ([]string, error)

	// ExtractForms reconstructs the forms of the current page.
	ExtractForms() ([]Form, error)

	// CurrentURL returns the page's current URL.
	CurrentURL() string

	// Close releases the underlying browser resources.
	Close() error
}
