package templatedef

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed definition_schema.json
var definitionSchemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("definition_schema.json",
			strings.NewReader(definitionSchemaJSON)); err != nil {
			schemaErr = fmt.Errorf("loading definition schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile("definition_schema.json")
	})
	return schema, schemaErr
}

// Validate checks a raw definition document against the JSON schema and
// returns a descriptive error for the first violation found.
func Validate(raw []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}

	var doc interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("template definition is not valid JSON: %w", err)
	}

	if err := s.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			leaf := ve
			for len(leaf.Causes) > 0 {
				leaf = leaf.Causes[0]
			}
			loc := leaf.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			return fmt.Errorf("template definition invalid at %s: %s", loc, leaf.Message)
		}
		return fmt.Errorf("template definition invalid: %w", err)
	}
	return nil
}

// ParseValidated validates then parses in one step.
func ParseValidated(raw []byte) (*CardDefinition, error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}
	return Parse(raw)
}
