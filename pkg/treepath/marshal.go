package treepath

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalText writes the absolute rendering.
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.AbsoluteString()), nil
}

// UnmarshalText normalizes text into p.
func (p *Path) UnmarshalText(text []byte) error {
	*p = Path{segments: NormalizeString(string(text))}
	return nil
}

// UnmarshalJSON accepts a JSON string or an array of strings.
func (p *Path) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var elements []string
		if err := json.Unmarshal(data, &elements); err != nil {
			return fmt.Errorf("treepath: decode json array: %w", err)
		}
		*p = From(elements...)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("treepath: decode json: %w", err)
	}
	*p = From(s)
	return nil
}

// MarshalYAML writes the absolute rendering as a scalar.
func (p Path) MarshalYAML() (any, error) {
	return p.AbsoluteString(), nil
}

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (p *Path) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*p = From(node.Value)
		return nil
	case yaml.SequenceNode:
		var elements []string
		if err := node.Decode(&elements); err != nil {
			return fmt.Errorf("treepath: decode yaml sequence: %w", err)
		}
		*p = From(elements...)
		return nil
	}
	return fmt.Errorf("%w: yaml node at line %d is not a scalar or sequence",
		ErrInvalidArgument, node.Line)
}

// Unmarshal normalizes text into a P. It is the read half of marshalling for
// flavors that do not embed Path.
func Unmarshal[P Flavor[P]](text string) P {
	return build[P](NormalizeString(text))
}
