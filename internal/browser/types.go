package browser

// FieldType is the semantic input kind of a form field, used to select
// relevant payloads.
type FieldType string

// Known field types.
const (
	FieldText     FieldType = "text"
	FieldSearch   FieldType = "search"
	FieldURL      FieldType = "url"
	FieldTel      FieldType = "tel"
	FieldEmail    FieldType = "email"
	FieldNumber   FieldType = "number"
	FieldPassword FieldType = "password"
	FieldHidden   FieldType = "hidden"
	FieldButton   FieldType = "button"
	FieldSubmit   FieldType = "submit"
	FieldTextarea FieldType = "textarea"
	FieldFile     FieldType = "file"
	FieldDate     FieldType = "date"
	FieldUnknown  FieldType = "unknown"
)

// AllFieldTypes lists every known field type, in a stable order.
var AllFieldTypes = []FieldType{
	FieldText, FieldSearch, FieldURL, FieldTel, FieldEmail,
	FieldNumber, FieldPassword, FieldHidden, FieldButton, FieldSubmit,
	FieldTextarea, FieldFile, FieldDate, FieldUnknown,
}

// ParseFieldType maps a raw type attribute to a FieldType. Types the
// fuzzer has no payload policy for (checkbox, radio, select, color...)
// collapse to FieldUnknown.
func ParseFieldType(raw string) FieldType {
	t := FieldType(raw)
	for _, known := range AllFieldTypes {
		if t == known {
			return known
		}
	}
	return FieldUnknown
}

// Field is an injectable form field. Identity within its owning form is
// the selector.
type Field struct {
	Name     string    `json:"name"`
	ID       string    `json:"id"`
	Type     FieldType `json:"type"`
	Selector string    `json:"selector"`
	Required bool      `json:"required"`
}

// Label returns a human-readable name for the field.
func (f Field) Label() string {
	if f.Name != "" {
		return f.Name
	}
	if f.ID != "" {
		return f.ID
	}
	return f.Selector
}

// Form is a discovered form, owned by the page it was extracted from.
type Form struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Action        string   `json:"action"`
	Method        string   `json:"method"`
	Selector      string   `json:"selector"`
	Fields        []Field  `json:"fields"`
	SubmitTargets []string `json:"submit_targets"`
}

// Label returns a human-readable name for the form.
func (f Form) Label() string {
	if f.ID != "" {
		return f.ID
	}
	if f.Name != "" {
		return f.Name
	}
	return f.Selector
}

// ResponseRecord captures one form submission's response. Ephemeral:
// it exists only to be analyzed.
type ResponseRecord struct {
	Status  int               `json:"status"`
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers"`
	Body    string            `json:"body"`
}
