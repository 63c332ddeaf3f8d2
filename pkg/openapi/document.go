// Package openapi loads the API schema document that drives type generation.
//
// Only the subset of OpenAPI 3.0/3.1 the generator consumes is modelled:
// info, servers, operation IDs and component schemas.
package openapi

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// SchemaRefPrefix is the only $ref form the generator resolves.
const SchemaRefPrefix = "#/components/schemas/"

// Document is a parsed OpenAPI document.
type Document struct {
	OpenAPI    string               `yaml:"openapi" json:"openapi"`
	Info       Info                 `yaml:"info" json:"info"`
	Servers    []Server             `yaml:"servers,omitempty" json:"servers,omitempty"`
	Paths      map[string]*PathItem `yaml:"paths,omitempty" json:"paths,omitempty"`
	Components Components           `yaml:"components,omitempty" json:"components,omitempty"`

	raw any
}

// Info is the document's info block.
type Info struct {
	Title       string `yaml:"title" json:"title"`
	Version     string `yaml:"version" json:"version"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Server is one entry of the servers block.
type Server struct {
	URL         string `yaml:"url" json:"url"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Components holds reusable definitions.
type Components struct {
	Schemas map[string]*Schema `yaml:"schemas,omitempty" json:"schemas,omitempty"`
}

// PathItem holds the operations of one path.
type PathItem struct {
	Get     *Operation `yaml:"get,omitempty" json:"get,omitempty"`
	Put     *Operation `yaml:"put,omitempty" json:"put,omitempty"`
	Post    *Operation `yaml:"post,omitempty" json:"post,omitempty"`
	Delete  *Operation `yaml:"delete,omitempty" json:"delete,omitempty"`
	Options *Operation `yaml:"options,omitempty" json:"options,omitempty"`
	Head    *Operation `yaml:"head,omitempty" json:"head,omitempty"`
	Patch   *Operation `yaml:"patch,omitempty" json:"patch,omitempty"`
}

// Operation is a single API operation.
type Operation struct {
	OperationID string   `yaml:"operationId,omitempty" json:"operationId,omitempty"`
	Summary     string   `yaml:"summary,omitempty" json:"summary,omitempty"`
	Tags        []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// Route is an operation bound to its method and path.
type Route struct {
	Method    string
	Path      string
	Operation *Operation
}

// Pattern returns the route in net/http ServeMux form, e.g. "GET /tasks/{id}".
func (r Route) Pattern() string {
	return r.Method + " " + r.Path
}

// Routes returns every operation in the document ordered by path, then method.
func (d *Document) Routes() []Route {
	paths := make([]string, 0, len(d.Paths))
	for p := range d.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var routes []Route
	for _, p := range paths {
		item := d.Paths[p]
		if item == nil {
			continue
		}
		for _, m := range []struct {
			method string
			op     *Operation
		}{
			{http.MethodGet, item.Get},
			{http.MethodPost, item.Post},
			{http.MethodPut, item.Put},
			{http.MethodPatch, item.Patch},
			{http.MethodDelete, item.Delete},
			{http.MethodHead, item.Head},
			{http.MethodOptions, item.Options},
		} {
			if m.op != nil {
				routes = append(routes, Route{Method: m.method, Path: p, Operation: m.op})
			}
		}
	}
	return routes
}

// SchemaNames returns the component schema names in sorted order.
func (d *Document) SchemaNames() []string {
	names := make([]string, 0, len(d.Components.Schemas))
	for n := range d.Components.Schemas {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the component schema a local $ref points to.
func (d *Document) Resolve(ref string) (string, *Schema, error) {
	if !strings.HasPrefix(ref, SchemaRefPrefix) {
		return "", nil, fmt.Errorf("unsupported $ref %q: only %s<name> is supported", ref, SchemaRefPrefix)
	}
	name := strings.TrimPrefix(ref, SchemaRefPrefix)
	s, ok := d.Components.Schemas[name]
	if !ok || s == nil {
		return "", nil, fmt.Errorf("unresolved $ref %q", ref)
	}
	return name, s, nil
}

// IsV31 reports whether the document declares OpenAPI 3.1.
func (d *Document) IsV31() bool {
	return strings.HasPrefix(d.OpenAPI, "3.1")
}

// Schema is the subset of an OpenAPI schema object used by the generator.
type Schema struct {
	Ref                  string                `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Type                 TypeSet               `yaml:"type,omitempty" json:"type,omitempty"`
	Format               string                `yaml:"format,omitempty" json:"format,omitempty"`
	Description          string                `yaml:"description,omitempty" json:"description,omitempty"`
	Enum                 []any                 `yaml:"enum,omitempty" json:"enum,omitempty"`
	Properties           map[string]*Schema    `yaml:"properties,omitempty" json:"properties,omitempty"`
	Required             []string              `yaml:"required,omitempty" json:"required,omitempty"`
	Items                *Schema               `yaml:"items,omitempty" json:"items,omitempty"`
	AdditionalProperties *AdditionalProperties `yaml:"additionalProperties,omitempty" json:"additionalProperties,omitempty"`
	AllOf                []*Schema             `yaml:"allOf,omitempty" json:"allOf,omitempty"`
	OneOf                []*Schema             `yaml:"oneOf,omitempty" json:"oneOf,omitempty"`
	AnyOf                []*Schema             `yaml:"anyOf,omitempty" json:"anyOf,omitempty"`
	Nullable             bool                  `yaml:"nullable,omitempty" json:"nullable,omitempty"`
}

// IsRequired reports whether prop is listed in the schema's required set.
func (s *Schema) IsRequired(prop string) bool {
	for _, r := range s.Required {
		if r == prop {
			return true
		}
	}
	return false
}

// PrimaryType returns the first non-null type, or "" when none is declared.
func (s *Schema) PrimaryType() string {
	for _, t := range s.Type {
		if t != "null" {
			return t
		}
	}
	return ""
}

// IsNullable reports whether null is an allowed value, in either the 3.0
// (nullable: true) or the 3.1 (type: [T, "null"]) spelling.
func (s *Schema) IsNullable() bool {
	if s.Nullable {
		return true
	}
	for _, t := range s.Type {
		if t == "null" {
			return true
		}
	}
	return false
}

// PropertyNames returns the property names in sorted order.
func (s *Schema) PropertyNames() []string {
	names := make([]string, 0, len(s.Properties))
	for n := range s.Properties {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// TypeSet holds the schema type, written either as a string or a list.
type TypeSet []string

// UnmarshalYAML accepts `type: string` and `type: [string, "null"]`.
func (t *TypeSet) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*t = TypeSet{s}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*t = TypeSet(list)
		return nil
	default:
		return fmt.Errorf("line %d: type must be a string or a list of strings", node.Line)
	}
}

// AdditionalProperties is either a boolean or a schema.
type AdditionalProperties struct {
	Allowed bool
	Schema  *Schema
}

// UnmarshalYAML accepts `additionalProperties: false` and a schema mapping.
func (a *AdditionalProperties) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&a.Allowed)
	case yaml.MappingNode:
		a.Allowed = true
		a.Schema = &Schema{}
		return node.Decode(a.Schema)
	default:
		return fmt.Errorf("line %d: additionalProperties must be a boolean or a schema", node.Line)
	}
}
