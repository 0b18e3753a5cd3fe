package distribution

import (
	"encoding/json"
	"fmt"
)

// MarshalDocument serializes a Document to indented JSON bytes.
func MarshalDocument(doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("cannot marshal nil Document")
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal Document to JSON: %w", err)
	}

	return data, nil
}

// UnmarshalDocument deserializes a Document from JSON bytes.
func UnmarshalDocument(data []byte) (*Document, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("cannot unmarshal empty data")
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON to Document: %w", err)
	}

	return &doc, nil
}
