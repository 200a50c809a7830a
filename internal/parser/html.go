// Package parser provides HTML parsing for the fuzzer: link extraction
// for the crawler and form reconstruction for the fuzzing engine.
package parser

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLParser parses rendered HTML documents.
type HTMLParser struct {
	baseURL *url.URL
}

// NewHTMLParser creates a new HTML parser resolving relative URLs
// against baseURL.
func NewHTMLParser(baseURL string) (*HTMLParser, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &HTMLParser{baseURL: u}, nil
}

// FormInfo represents a parsed form.
type FormInfo struct {
	ID            string
	Name          string
	Action        string
	Method        string
	Selector      string
	Inputs        []InputInfo
	SubmitTargets []string
}

// InputInfo represents an injectable form input.
type InputInfo struct {
	Name     string
	ID       string
	Type     string
	Selector string
	Required bool
}

// ExtractLinks returns all anchor hrefs resolved to absolute URLs.
func (p *HTMLParser) ExtractLinks(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	links := make([]string, 0)
	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" {
			return
		}

		resolved := p.resolveURL(href)
		if resolved == "" {
			return
		}

		links = append(links, resolved)
	})

	return links, nil
}

// ExtractForms reconstructs every form on the page, with CSS selectors
// usable to fill fields and trigger submission on the live page.
func (p *HTMLParser) ExtractForms(html string) ([]FormInfo, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	forms := make([]FormInfo, 0)
	doc.Find("form").Each(func(formIdx int, f *goquery.Selection) {
		form := FormInfo{
			ID:            f.AttrOr("id", ""),
			Name:          f.AttrOr("name", ""),
			Action:        p.resolveURL(f.AttrOr("action", "")),
			Method:        strings.ToLower(f.AttrOr("method", "get")),
			Selector:      formSelector(f),
			Inputs:        make([]InputInfo, 0),
			SubmitTargets: make([]string, 0),
		}

		f.Find("input, textarea, select").Each(func(i int, el *goquery.Selection) {
			typ := inputType(el)
			if typ == "submit" || typ == "button" {
				return
			}

			input := InputInfo{
				Name:     el.AttrOr("name", ""),
				ID:       el.AttrOr("id", ""),
				Type:     typ,
				Selector: fieldSelector(el),
				Required: el.AttrOr("required", "missing") != "missing",
			}
			if input.Selector == "" {
				return
			}
			form.Inputs = append(form.Inputs, input)
		})

		f.Find(`input[type="submit"], button[type="submit"], button:not([type])`).Each(func(i int, el *goquery.Selection) {
			if sel := fieldSelector(el); sel != "" {
				form.SubmitTargets = append(form.SubmitTargets, sel)
			}
		})

		forms = append(forms, form)
	})

	return forms, nil
}

// resolveURL resolves a possibly-relative href against the base URL.
// Returns "" for hrefs that cannot produce a navigable URL.
func (p *HTMLParser) resolveURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}

	lower := strings.ToLower(href)
	for _, prefix := range []string{"javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(lower, prefix) {
			return ""
		}
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}

	return p.baseURL.ResolveReference(ref).String()
}

// formSelector builds a selector for the form itself: prefer #id, then
// form[name=...], falling back to a structural path.
func formSelector(f *goquery.Selection) string {
	if id := f.AttrOr("id", ""); id != "" {
		return "#" + id
	}
	if name := f.AttrOr("name", ""); name != "" {
		return fmt.Sprintf(`form[name=%q]`, name)
	}
	return structuralSelector(f)
}

// structuralSelector builds an ancestor-scoped path to an element.
// :nth-of-type counts siblings within one parent, so each step is
// positioned relative to its own parent; the walk stops at body or at
// the nearest ancestor with an id.
func structuralSelector(el *goquery.Selection) string {
	parts := make([]string, 0, 4)

	for cur := el; cur.Length() > 0; cur = cur.Parent() {
		tag := goquery.NodeName(cur)
		if tag == "" || tag == "html" || strings.HasPrefix(tag, "#") {
			break
		}
		if id := cur.AttrOr("id", ""); id != "" {
			parts = append([]string{"#" + id}, parts...)
			break
		}
		if tag == "body" {
			parts = append([]string{"body"}, parts...)
			break
		}

		n := 1
		cur.PrevAll().Each(func(_ int, sib *goquery.Selection) {
			if goquery.NodeName(sib) == tag {
				n++
			}
		})
		parts = append([]string{fmt.Sprintf("%s:nth-of-type(%d)", tag, n)}, parts...)
	}

	return strings.Join(parts, " > ")
}

// fieldSelector builds a selector for a field: prefer #id, then
// [name=...]. Fields with neither cannot be addressed on the live page.
func fieldSelector(el *goquery.Selection) string {
	if id := el.AttrOr("id", ""); id != "" {
		return "#" + id
	}
	if name := el.AttrOr("name", ""); name != "" {
		return fmt.Sprintf(`[name=%q]`, name)
	}
	return ""
}

// inputType returns the effective type of an input-like element.
func inputType(el *goquery.Selection) string {
	switch goquery.NodeName(el) {
	case "textarea":
		return "textarea"
	case "select":
		return "select"
	}
	typ := strings.ToLower(el.AttrOr("type", "text"))
	if typ == "" {
		typ = "text"
	}
	return typ
}
