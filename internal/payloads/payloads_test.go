package payloads

import (
	"reflect"
	"strings"
	"testing"

	"github.com/PentesterFlow/OpenFuzzer/internal/browser"
)

func TestCatalogNeverEmpty(t *testing.T) {
	c := NewCatalog()

	for _, ft := range browser.AllFieldTypes {
		field := browser.Field{Name: "f", Type: ft, Selector: "#f"}
		got := c.PayloadsForField(field)
		if len(got) == 0 {
			t.Errorf("PayloadsForField(%s) returned no payloads", ft)
		}
		for i, p := range got {
			if p.Value == "" {
				t.Errorf("PayloadsForField(%s)[%d] has empty value", ft, i)
			}
			if p.Category == "" {
				t.Errorf("PayloadsForField(%s)[%d] has empty category", ft, i)
			}
		}
	}
}

func TestCatalogDeterministic(t *testing.T) {
	c := NewCatalog()
	field := browser.Field{Name: "q", Type: browser.FieldSearch, Selector: "#q"}

	first := c.PayloadsForField(field)
	second := c.PayloadsForField(field)
	if !reflect.DeepEqual(first, second) {
		t.Error("same field yielded different payload sets across calls")
	}
}

func TestCatalogProviderOrder(t *testing.T) {
	c := NewCatalog()

	want := []Category{CategoryCSRF, CategorySQLi, CategorySSRF, CategoryXSS}
	got := c.Categories()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}

func TestXSSFieldTypePolicies(t *testing.T) {
	p := XSSProvider{}

	tests := []struct {
		fieldType browser.FieldType
		check     func(t *testing.T, got []Payload)
	}{
		{browser.FieldHidden, func(t *testing.T, got []Payload) {
			if len(got) != len(xssBasic) {
				t.Errorf("hidden got %d payloads, want basic set of %d", len(got), len(xssBasic))
			}
		}},
		{browser.FieldURL, func(t *testing.T, got []Payload) {
			for _, pl := range got {
				if !strings.Contains(pl.Value, "javascript:") && !strings.Contains(pl.Value, "location") {
					t.Errorf("url field payload %q is neither protocol nor location based", pl.Name)
				}
			}
		}},
		{browser.FieldEmail, func(t *testing.T, got []Payload) {
			if len(got) != 2 {
				t.Errorf("email got %d payloads, want 2", len(got))
			}
		}},
		{browser.FieldTextarea, func(t *testing.T, got []Payload) {
			want := len(xssBasic) + len(xssAdvanced) + len(xssHTML5)
			if len(got) != want {
				t.Errorf("textarea got %d payloads, want %d", len(got), want)
			}
		}},
		{browser.FieldText, func(t *testing.T, got []Payload) {
			if len(got) != len(allXSS()) {
				t.Errorf("text got %d payloads, want full set of %d", len(got), len(allXSS()))
			}
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.fieldType), func(t *testing.T) {
			tt.check(t, p.PayloadsFor(tt.fieldType))
		})
	}
}

func TestSQLiFieldTypePolicies(t *testing.T) {
	p := SQLiProvider{}

	if got := p.PayloadsFor(browser.FieldNumber); len(got) != 6 {
		t.Errorf("number got %d payloads, want 6 numeric ones", len(got))
	}

	pw := p.PayloadsFor(browser.FieldPassword)
	if len(pw) != len(sqliBasic)+len(sqliAuthBypass) {
		t.Errorf("password got %d payloads, want basic+auth bypass", len(pw))
	}

	if got := p.PayloadsFor(browser.FieldDate); len(got) != 2 {
		t.Errorf("date got %d payloads, want 2", len(got))
	}

	if got := p.PayloadsFor(browser.FieldText); len(got) != len(allSQLi()) {
		t.Errorf("text got %d payloads, want full set", len(got))
	}
}

func TestSSRFFieldTypePolicies(t *testing.T) {
	p := SSRFProvider{}

	if got := p.PayloadsFor(browser.FieldURL); len(got) != len(allSSRF()) {
		t.Errorf("url got %d payloads, want full set", len(got))
	}
	if got := p.PayloadsFor(browser.FieldFile); len(got) != len(ssrfLocalhost)+len(ssrfCloudMetadata) {
		t.Errorf("file got %d payloads, want localhost+cloud metadata", len(got))
	}
	if got := p.PayloadsFor(browser.FieldPassword); len(got) != len(ssrfLocalhost) {
		t.Errorf("password got %d payloads, want localhost only", len(got))
	}
}

func TestDefaultPayloadsFallback(t *testing.T) {
	c := &Catalog{}

	got := c.PayloadsForField(browser.Field{Type: browser.FieldNumber})
	if len(got) == 0 {
		t.Fatal("empty catalog must still return defaults")
	}
	if got[0].Name != "Zero" {
		t.Errorf("first default numeric payload = %q, want Zero", got[0].Name)
	}
}
