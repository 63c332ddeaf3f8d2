package openapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every structural or schema error found in a document.
var ErrInvalid = errors.New("invalid OpenAPI document")

const resourceURL = "https://contracts.schemas.local/openapi.json"

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML or JSON OpenAPI document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	doc.raw = normalize(raw)

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks the document structure, resolves every $ref and compiles
// each component schema as JSON Schema.
func (d *Document) Validate() error {
	var problems []string

	if !strings.HasPrefix(d.OpenAPI, "3.") {
		problems = append(problems, fmt.Sprintf("openapi version %q is not 3.x", d.OpenAPI))
	}
	if d.Info.Title == "" {
		problems = append(problems, "info.title is required")
	}
	if d.Info.Version == "" {
		problems = append(problems, "info.version is required")
	}

	for _, name := range d.SchemaNames() {
		s := d.Components.Schemas[name]
		if s == nil {
			problems = append(problems, fmt.Sprintf("components.schemas.%s is empty", name))
			continue
		}
		d.walkRefs(s, "components.schemas."+name, &problems)
	}

	seen := make(map[string]string)
	for _, r := range d.Routes() {
		id := r.Operation.OperationID
		if id == "" {
			continue
		}
		if prev, dup := seen[id]; dup {
			problems = append(problems, fmt.Sprintf("operationId %q used by both %s and %s", id, prev, r.Pattern()))
		}
		seen[id] = r.Pattern()
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}

	return d.compileSchemas()
}

func (d *Document) walkRefs(s *Schema, at string, problems *[]string) {
	if s == nil {
		return
	}
	if s.Ref != "" {
		if _, _, err := d.Resolve(s.Ref); err != nil {
			*problems = append(*problems, fmt.Sprintf("%s: %v", at, err))
		}
	}
	for _, p := range s.PropertyNames() {
		d.walkRefs(s.Properties[p], at+".properties."+p, problems)
	}
	d.walkRefs(s.Items, at+".items", problems)
	if s.AdditionalProperties != nil {
		d.walkRefs(s.AdditionalProperties.Schema, at+".additionalProperties", problems)
	}
	for i, sub := range s.AllOf {
		d.walkRefs(sub, fmt.Sprintf("%s.allOf[%d]", at, i), problems)
	}
	for i, sub := range s.OneOf {
		d.walkRefs(sub, fmt.Sprintf("%s.oneOf[%d]", at, i), problems)
	}
	for i, sub := range s.AnyOf {
		d.walkRefs(sub, fmt.Sprintf("%s.anyOf[%d]", at, i), problems)
	}
}

// compileSchemas compiles every component schema against the JSON Schema
// draft matching the OpenAPI version (3.1: 2020-12, 3.0: draft 4).
func (d *Document) compileSchemas() error {
	if d.raw == nil || len(d.Components.Schemas) == 0 {
		return nil
	}
	data, err := json.Marshal(d.raw)
	if err != nil {
		return fmt.Errorf("%w: encode as JSON: %v", ErrInvalid, err)
	}

	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft4
	if d.IsV31() {
		c.Draft = jsonschema.Draft2020
	}
	if err := c.AddResource(resourceURL, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	for _, name := range d.SchemaNames() {
		if _, err := c.Compile(resourceURL + "#/components/schemas/" + name); err != nil {
			return fmt.Errorf("%w: components.schemas.%s: %v", ErrInvalid, name, err)
		}
	}
	return nil
}

// normalize converts YAML-decoded maps with non-string keys (e.g. unquoted
// response codes) into JSON-compatible values.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	default:
		return v
	}
}
