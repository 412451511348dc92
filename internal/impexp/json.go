package impexp

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/havanahub/investors/internal/models"
)

// WriteJSON writes the whole document, indented by two spaces.
func WriteJSON(w io.Writer, doc *models.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

// ParseJSON decodes an uploaded document. The result is meant to replace the
// current document wholesale; only the JSON shape is checked.
func ParseJSON(data []byte) (*models.Document, error) {
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	doc.Normalize()
	return &doc, nil
}
