package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const listSchemaJSON = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "todo"],
		"properties": {
			"id":   {"type": "integer", "minimum": 1},
			"todo": {"type": "string"},
			"done": {"type": "boolean"}
		}
	}
}`

var listSchema = jsonschema.MustCompileString("tada://schema/todos.json", listSchemaJSON)

// Encode serializes the list the way it is kept in the slot.
func Encode(items []Item) ([]byte, error) {
	if items == nil {
		items = []Item{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// Decode parses slot contents. Anything that is not a list of well-formed
// items is an error. A missing done flag reads as false; repeated ids are
// kept as they are.
func Decode(b []byte) ([]Item, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if err := listSchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}

	var items []Item
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}
