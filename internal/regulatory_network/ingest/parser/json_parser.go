package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ParseJSONBytes decodes a raw JSON document into a generic value, keeping numbers as
// json.Number so the schema validator sees them unrounded.
func ParseJSONBytes(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("parse json: trailing data after document")
	}
	return v, nil
}
