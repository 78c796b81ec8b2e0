package contracts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"github.com/alex-potenzzia/inmovilla-api-client/schemas"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SearchRequest - ключ схемы тела POST /search.
const SearchRequest = "search-request"

// Validator хранит скомпилированные схемы входящих HTTP-контрактов.
type Validator struct {
	schemas map[string]*jsonschema.Schema
}

// NewValidator компилирует все схемы из schemas/http.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	var paths []string
	err := fs.WalkDir(schemas.SchemasFS, "http", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		data, err := schemas.SchemasFS.ReadFile(path)
		if err != nil {
			return err
		}
		if err := compiler.AddResource(path, bytes.NewReader(data)); err != nil {
			return fmt.Errorf("failed to add schema resource %s: %w", path, err)
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error loading schema resources: %w", err)
	}

	v := &Validator{schemas: make(map[string]*jsonschema.Schema, len(paths))}
	for _, path := range paths {
		schema, err := compiler.Compile(path)
		if err != nil {
			return nil, fmt.Errorf("could not compile schema %s: %w", path, err)
		}
		v.schemas[keyFromPath(path)] = schema
	}
	return v, nil
}

// keyFromPath: "http/search-request.json" -> "search-request"
func keyFromPath(path string) string {
	return strings.TrimSuffix(strings.TrimPrefix(path, "http/"), ".json")
}

// Validate проверяет тело запроса по схеме с ключом key.
func (v *Validator) Validate(key string, body []byte) error {
	schema, ok := v.schemas[key]
	if !ok {
		return fmt.Errorf("schema %q not found", key)
	}

	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("request body is not a valid JSON: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return nil
}
