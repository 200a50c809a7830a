package report

import (
	"encoding/json"
	"io"
)

// JSONWriter renders the result as indented JSON.
type JSONWriter struct {
	w io.Writer
}

// NewJSONWriter creates a JSON report writer.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

// Write marshals the whole result.
func (j *JSONWriter) Write(result *Result) error {
	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
