package llm

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a JSON Schema the model output must satisfy. It is compiled
// once, on first use.
type Schema struct {
	// Name is used as the tool or schema name by backends that need one.
	Name        string
	Description string
	Definition  map[string]any

	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

// NewSchema returns a Schema for def.
func NewSchema(name, description string, def map[string]any) *Schema {
	return &Schema{Name: name, Description: description, Definition: def}
}

// Validate checks raw against the schema and returns a KindInvalidResponse
// error on failure.
func (s *Schema) Validate(raw json.RawMessage) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return invalid(raw, "not JSON: %w", err)
	}

	compiled, err := s.compile()
	if err != nil {
		return invalid(raw, "schema %s: %w", s.Name, err)
	}
	if err := compiled.Validate(doc); err != nil {
		return invalid(raw, "%w", err)
	}
	return nil
}

// JSON returns the definition as JSON bytes.
func (s *Schema) JSON() ([]byte, error) {
	return json.Marshal(s.Definition)
}

func (s *Schema) compile() (*jsonschema.Schema, error) {
	s.once.Do(func() {
		// The compiler wants decoded JSON values, not Go maps with typed
		// slices, so round-trip the definition.
		b, err := s.JSON()
		if err != nil {
			s.err = err
			return
		}
		var def any
		if err := json.Unmarshal(b, &def); err != nil {
			s.err = err
			return
		}

		url := fmt.Sprintf("mem://%s.json", s.Name)
		c := jsonschema.NewCompiler()
		if err := c.AddResource(url, def); err != nil {
			s.err = err
			return
		}
		s.compiled, s.err = c.Compile(url)
	})
	return s.compiled, s.err
}
