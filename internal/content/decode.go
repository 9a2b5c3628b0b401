package content

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format is the serialization of a content document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor guesses the format from a path or URL and an optional
// content type. JSON is the default.
func FormatFor(source, contentType string) Format {
	if ct := strings.ToLower(contentType); strings.Contains(ct, "yaml") {
		return FormatYAML
	}
	clean := source
	if i := strings.IndexAny(clean, "?#"); i >= 0 {
		clean = clean[:i]
	}
	switch strings.ToLower(path.Ext(clean)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ErrEmptyDocument is returned for a body with no content.
var ErrEmptyDocument = errors.New("content document is empty")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode parses and validates a content document. Unknown fields are
// ignored; a document without a name is rejected.
func Decode(data []byte, format Format) (*Document, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, ErrEmptyDocument
	}

	var doc Document
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatJSON, "":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported content format %q", format)
	}

	if err := Validate(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks the document's required fields.
func Validate(doc *Document) error {
	if doc == nil {
		return ErrEmptyDocument
	}
	doc.Name = strings.TrimSpace(doc.Name)
	if err := validate.Struct(doc); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid content document: field %s failed %q", verrs[0].Field(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid content document: %w", err)
	}
	return nil
}
