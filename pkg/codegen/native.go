package codegen

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/hagerehiwotlabs/contracts/pkg/failure"
	"github.com/hagerehiwotlabs/contracts/pkg/openapi"
)

// NativeTransformer emits Go type declarations for an OpenAPI document
// without any external tooling. Output depends only on the schema bytes,
// the schema's base name and Package.
type NativeTransformer struct {
	// Package is the package clause of the generated file.
	Package string
}

// Name implements Transformer.
func (n *NativeTransformer) Name() string { return "native" }

// Transform implements Transformer.
func (n *NativeTransformer) Transform(_ context.Context, schemaPath string, schema []byte) ([]byte, error) {
	doc, err := openapi.Parse(schema)
	if err != nil {
		return nil, failure.Wrap(failure.UpstreamTool, failure.ReasonSchemaInvalid,
			"schema document is malformed", err).
			WithValue("schema", schemaPath)
	}

	pkg := n.Package
	if pkg == "" {
		pkg = DefaultPackage
	}

	e := &emitter{doc: doc, declared: make(map[string]bool)}
	src, err := e.file(pkg, filepath.Base(schemaPath))
	if err != nil {
		return nil, failure.Wrap(failure.UpstreamTool, failure.ReasonSchemaInvalid,
			"schema cannot be expressed as Go declarations", err).
			WithValue("schema", schemaPath)
	}
	return src, nil
}

type emitter struct {
	doc      *openapi.Document
	body     bytes.Buffer
	declared map[string]bool
	usesTime bool
}

// declare reserves a package-level identifier. Inline types are named
// <Parent><Field>, so they can collide with components.
func (e *emitter) declare(name string) error {
	if e.declared[name] {
		return fmt.Errorf("%s declared twice", name)
	}
	e.declared[name] = true
	return nil
}

func (e *emitter) file(pkg, source string) ([]byte, error) {
	if err := e.declare("SchemaVersion"); err != nil {
		return nil, err
	}
	for _, name := range e.doc.SchemaNames() {
		if err := e.component(name, e.doc.Components.Schemas[name]); err != nil {
			return nil, err
		}
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, "// Code generated by contracts generate from %s. DO NOT EDIT.\n\n", source)
	fmt.Fprintf(&out, "package %s\n\n", pkg)
	if e.usesTime {
		out.WriteString("import \"time\"\n\n")
	}

	out.WriteString("// SchemaVersion is the info.version of the schema document.\n")
	fmt.Fprintf(&out, "const SchemaVersion = %s\n\n", strconv.Quote(e.doc.Info.Version))

	var routes []openapi.Route
	for _, r := range e.doc.Routes() {
		if r.Operation.OperationID != "" {
			routes = append(routes, r)
		}
	}
	for _, r := range routes {
		if err := e.declare("Route" + goName(r.Operation.OperationID)); err != nil {
			return nil, fmt.Errorf("route for operation %s: %w", r.Operation.OperationID, err)
		}
	}
	if len(routes) > 0 {
		out.WriteString("// Routes declared by the schema document, as net/http ServeMux patterns.\n")
		out.WriteString("const (\n")
		for _, r := range routes {
			fmt.Fprintf(&out, "\tRoute%s = %s\n", goName(r.Operation.OperationID), strconv.Quote(r.Pattern()))
		}
		out.WriteString(")\n\n")
	}

	out.Write(e.body.Bytes())
	return out.Bytes(), nil
}

// component emits the declaration for a top-level component schema.
func (e *emitter) component(name string, s *openapi.Schema) error {
	typeName := goName(name)

	switch {
	case s.Ref != "":
		target, _, err := e.doc.Resolve(s.Ref)
		if err != nil {
			return err
		}
		if err := e.declare(typeName); err != nil {
			return err
		}
		e.comment(typeName, name, s.Description)
		fmt.Fprintf(&e.body, "type %s = %s\n\n", typeName, goName(target))
		return nil
	case isStruct(s):
		return e.structType(typeName, name, s)
	case isStringEnum(s):
		return e.enumType(typeName, name, s)
	default:
		if err := e.declare(typeName); err != nil {
			return err
		}
		expr, err := e.typeExpr(s, typeName)
		if err != nil {
			return err
		}
		e.comment(typeName, name, s.Description)
		fmt.Fprintf(&e.body, "type %s %s\n\n", typeName, expr)
		return nil
	}
}

type field struct {
	prop     string
	schema   *openapi.Schema
	required bool
}

// structType emits a struct and then any inline object types it needs.
func (e *emitter) structType(typeName, schemaName string, s *openapi.Schema) error {
	if err := e.declare(typeName); err != nil {
		return err
	}

	fields := make(map[string]field)
	if err := e.collectFields(s, fields, 0); err != nil {
		return fmt.Errorf("%s: %w", schemaName, err)
	}
	props := make([]string, 0, len(fields))
	for p := range fields {
		props = append(props, p)
	}
	sort.Strings(props)

	// Field types are resolved before writing so nested declarations land
	// after the parent struct.
	type line struct {
		f    field
		name string
		expr string
	}
	lines := make([]line, 0, len(props))
	var nested []func() error
	fieldNames := make(map[string]string, len(props))
	for _, p := range props {
		f := fields[p]
		fieldName := goName(p)
		if prev, ok := fieldNames[fieldName]; ok {
			return fmt.Errorf("%s: field %s declared twice (properties %q and %q)",
				schemaName, fieldName, prev, p)
		}
		fieldNames[fieldName] = p
		nestedName := typeName + fieldName
		expr, deferred, err := e.fieldExpr(f.schema, nestedName)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", schemaName, p, err)
		}
		if deferred != nil {
			nested = append(nested, deferred)
		}
		lines = append(lines, line{f: f, name: fieldName, expr: expr})
	}

	e.comment(typeName, schemaName, s.Description)
	fmt.Fprintf(&e.body, "type %s struct {\n", typeName)
	for _, l := range lines {
		for _, d := range descriptionLines(l.f.schema.Description) {
			e.body.WriteString("\t" + commentLine(d))
		}
		expr := l.expr
		tag := l.f.prop
		optional := !l.f.required || l.f.schema.IsNullable()
		if optional && pointerable(expr) {
			expr = "*" + expr
		}
		if !l.f.required {
			tag += ",omitempty"
		}
		fmt.Fprintf(&e.body, "\t%s %s `json:%s`\n", l.name, expr, strconv.Quote(tag))
	}
	e.body.WriteString("}\n\n")

	for _, fn := range nested {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}

// collectFields flattens allOf members and own properties into fields.
func (e *emitter) collectFields(s *openapi.Schema, fields map[string]field, depth int) error {
	if depth > 32 {
		return fmt.Errorf("allOf nesting too deep")
	}
	for _, sub := range s.AllOf {
		target := sub
		if sub.Ref != "" {
			_, resolved, err := e.doc.Resolve(sub.Ref)
			if err != nil {
				return err
			}
			target = resolved
		}
		if err := e.collectFields(target, fields, depth+1); err != nil {
			return err
		}
	}
	for _, p := range s.PropertyNames() {
		req := s.IsRequired(p)
		if prev, ok := fields[p]; ok && prev.required {
			req = true
		}
		fields[p] = field{prop: p, schema: s.Properties[p], required: req}
	}
	for _, p := range s.Required {
		if f, ok := fields[p]; ok {
			f.required = true
			fields[p] = f
		}
	}
	return nil
}

// fieldExpr returns the Go type of a property. Inline objects and enums get
// a named declaration, returned as a deferred emit.
func (e *emitter) fieldExpr(s *openapi.Schema, nestedName string) (string, func() error, error) {
	if s.Ref == "" {
		switch {
		case isStruct(s):
			return nestedName, func() error { return e.structType(nestedName, nestedName, s) }, nil
		case isStringEnum(s):
			return nestedName, func() error { return e.enumType(nestedName, nestedName, s) }, nil
		case s.PrimaryType() == "array" && s.Items != nil && s.Items.Ref == "" && (isStruct(s.Items) || isStringEnum(s.Items)):
			itemName := nestedName + "Item"
			_, deferred, err := e.fieldExpr(s.Items, itemName)
			if err != nil {
				return "", nil, err
			}
			return "[]" + itemName, deferred, nil
		}
	}
	expr, err := e.typeExpr(s, nestedName)
	return expr, nil, err
}

// typeExpr maps a schema to a Go type expression. Inline objects that reach
// here have no properties and become maps.
func (e *emitter) typeExpr(s *openapi.Schema, ctxName string) (string, error) {
	if s == nil {
		return "any", nil
	}
	if s.Ref != "" {
		target, _, err := e.doc.Resolve(s.Ref)
		if err != nil {
			return "", err
		}
		return goName(target), nil
	}

	switch s.PrimaryType() {
	case "string":
		switch s.Format {
		case "date-time":
			e.usesTime = true
			return "time.Time", nil
		case "binary", "byte":
			return "[]byte", nil
		}
		return "string", nil
	case "integer":
		if s.Format == "int32" {
			return "int32", nil
		}
		return "int64", nil
	case "number":
		if s.Format == "float" {
			return "float32", nil
		}
		return "float64", nil
	case "boolean":
		return "bool", nil
	case "array":
		if s.Items == nil {
			return "[]any", nil
		}
		inner, err := e.typeExpr(s.Items, ctxName+"Item")
		if err != nil {
			return "", err
		}
		return "[]" + inner, nil
	case "object", "":
		if ap := s.AdditionalProperties; ap != nil && ap.Schema != nil {
			inner, err := e.typeExpr(ap.Schema, ctxName+"Value")
			if err != nil {
				return "", err
			}
			return "map[string]" + inner, nil
		}
		if s.PrimaryType() == "object" {
			return "map[string]any", nil
		}
		return "any", nil
	default:
		return "", fmt.Errorf("unsupported schema type %q", s.PrimaryType())
	}
}

// enumType emits a named string type and one constant per value. A null
// value (nullable enums) has no constant.
func (e *emitter) enumType(typeName, schemaName string, s *openapi.Schema) error {
	if err := e.declare(typeName); err != nil {
		return err
	}

	var consts bytes.Buffer
	for _, v := range s.Enum {
		str, ok := v.(string)
		if !ok {
			continue
		}
		suffix := goName(str)
		if str == "" {
			suffix = "Empty"
		}
		name := typeName + suffix
		if err := e.declare(name); err != nil {
			return fmt.Errorf("%s value %q: %w", schemaName, str, err)
		}
		fmt.Fprintf(&consts, "\t%s %s = %s\n", name, typeName, strconv.Quote(str))
	}

	e.comment(typeName, schemaName, s.Description)
	fmt.Fprintf(&e.body, "type %s string\n\n", typeName)
	fmt.Fprintf(&e.body, "// Values of %s.\n", typeName)
	e.body.WriteString("const (\n")
	e.body.Write(consts.Bytes())
	e.body.WriteString(")\n\n")
	return nil
}

func (e *emitter) comment(typeName, schemaName, description string) {
	fmt.Fprintf(&e.body, "// %s defines model for %s.\n", typeName, schemaName)
	for _, d := range descriptionLines(description) {
		e.body.WriteString(commentLine(d))
	}
}

func descriptionLines(desc string) []string {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return nil
	}
	lines := strings.Split(desc, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t\r")
	}
	return lines
}

func commentLine(text string) string {
	if text == "" {
		return "//\n"
	}
	return "// " + text + "\n"
}

func isStruct(s *openapi.Schema) bool {
	if s.Ref != "" {
		return false
	}
	t := s.PrimaryType()
	return (t == "object" || t == "") && (len(s.Properties) > 0 || len(s.AllOf) > 0)
}

// isStringEnum reports whether s enumerates strings. Enums holding other
// values are typed by typeExpr without constants.
func isStringEnum(s *openapi.Schema) bool {
	if s.Ref != "" || len(s.Enum) == 0 {
		return false
	}
	if t := s.PrimaryType(); t != "string" && t != "" {
		return false
	}
	strs := 0
	for _, v := range s.Enum {
		switch v.(type) {
		case string:
			strs++
		case nil:
		default:
			return false
		}
	}
	return strs > 0
}

// pointerable reports whether an optional field of this type should be a
// pointer. Slices, maps and interfaces already have a usable zero value.
func pointerable(expr string) bool {
	return !strings.HasPrefix(expr, "[]") && !strings.HasPrefix(expr, "map[") && expr != "any"
}
