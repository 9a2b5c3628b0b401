package content

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Text is an optional scalar field. Content files often write values such
// as a GPA or a graduation year as numbers, so Text accepts strings,
// numbers and booleans and keeps their literal spelling.
type Text string

// String returns the literal value.
func (t Text) String() string { return string(t) }

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*t = ""
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	case data[0] == '{' || data[0] == '[':
		return fmt.Errorf("expected scalar, got %s", kindOf(data[0]))
	default:
		*t = Text(data)
		return nil
	}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Text) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected scalar for text field", node.Line)
	}
	if node.Tag == "!!null" {
		*t = ""
		return nil
	}
	*t = Text(node.Value)
	return nil
}

// Texts is a list of Text values. Tag and bullet lists decode through it so
// an entry written as a number or boolean keeps its literal spelling
// instead of failing the document.
type Texts []string

// UnmarshalJSON implements json.Unmarshaler.
func (ts *Texts) UnmarshalJSON(data []byte) error {
	var items []Text
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*ts = fromTexts(items)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (ts *Texts) UnmarshalYAML(node *yaml.Node) error {
	var items []Text
	if err := node.Decode(&items); err != nil {
		return err
	}
	*ts = fromTexts(items)
	return nil
}

func fromTexts(items []Text) Texts {
	if items == nil {
		return nil
	}
	out := make(Texts, len(items))
	for i, t := range items {
		out[i] = string(t)
	}
	return out
}

func kindOf(b byte) string {
	if b == '{' {
		return "object"
	}
	return "array"
}
