// Package scope provides URL scope checking and normalization for the
// crawler. The fuzzer only ever probes pages on the start URL's origin.
package scope

import (
	"net/url"
	"strings"
)

// Checker validates URLs against the start URL's origin.
type Checker struct {
	scheme string
	host   string
}

// NewChecker creates a scope checker pinned to the origin of targetURL.
func NewChecker(targetURL string) (*Checker, error) {
	parsed, err := url.Parse(targetURL)
	if err != nil {
		return nil, err
	}

	return &Checker{
		scheme: strings.ToLower(parsed.Scheme),
		host:   strings.ToLower(parsed.Host),
	}, nil
}

// Origin returns the scheme://host the checker is pinned to.
func (c *Checker) Origin() string {
	return c.scheme + "://" + c.host
}

// IsInScope checks if a URL shares the start URL's origin. Origin is
// scheme plus host, so an http link on an https site is out of scope.
func (c *Checker) IsInScope(urlStr string) bool {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return false
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}

	if strings.ToLower(parsed.Scheme) != c.scheme {
		return false
	}

	return strings.ToLower(parsed.Host) == c.host
}

// NormalizeURL normalizes a URL for visited-set identity:
// scheme+host+path+query with the fragment stripped.
func NormalizeURL(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)

	// Remove default ports
	if (parsed.Scheme == "http" && strings.HasSuffix(parsed.Host, ":80")) ||
		(parsed.Scheme == "https" && strings.HasSuffix(parsed.Host, ":443")) {
		parsed.Host = parsed.Host[:strings.LastIndex(parsed.Host, ":")]
	}

	parsed.Fragment = ""

	// Remove trailing slash from path (except for root)
	if parsed.Path != "/" && strings.HasSuffix(parsed.Path, "/") {
		parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	}

	if parsed.Path == "" {
		parsed.Path = "/"
	}

	// Sort query parameters for consistent comparison
	if parsed.RawQuery != "" {
		values := parsed.Query()
		parsed.RawQuery = values.Encode()
	}

	return parsed.String(), nil
}

// ResolveURL resolves a relative URL against a base URL.
func ResolveURL(baseURL, relativeURL string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}

	ref, err := url.Parse(relativeURL)
	if err != nil {
		return "", err
	}

	resolved := base.ResolveReference(ref)
	return resolved.String(), nil
}

// skipExtensions lists non-HTML resource extensions the crawler never
// queues: images, archives, documents, media and static assets.
var skipExtensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".ico", ".svg", ".webp",
	".css", ".woff", ".woff2", ".ttf", ".eot",
	".pdf", ".zip", ".tar", ".gz", ".rar",
	".mp3", ".mp4", ".wav", ".avi", ".mov",
	".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx",
}

// IsCrawlable checks if a URL points at something worth navigating to.
func IsCrawlable(urlStr string) bool {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return false
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}

	if parsed.Host == "" {
		return false
	}

	path := strings.ToLower(parsed.Path)
	for _, ext := range skipExtensions {
		if strings.HasSuffix(path, ext) {
			return false
		}
	}

	return true
}
