package tables

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/canonica/canonica/internal/model"
)

// Load reads an entity-table snapshot from a YAML file
func Load(path string) (model.Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Tables{}, fmt.Errorf("read tables file: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return model.Tables{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a YAML document into the six entity tables. Unknown fields
// are rejected so typos in a model file surface as load errors instead of
// silently dropped data.
func Parse(data []byte) (model.Tables, error) {
	var t model.Tables
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		if err == io.EOF {
			return model.Tables{}, fmt.Errorf("empty tables document")
		}
		return model.Tables{}, err
	}
	return t, nil
}
