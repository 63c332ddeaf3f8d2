// Package codegen turns the schema document into Go type declarations and
// stamps them with the schema's fingerprint.
//
// Generation is destructive and idempotent: the output file is overwritten,
// and an unchanged schema always yields byte-identical output.
package codegen

import (
	"context"
	"errors"
	"go/format"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hagerehiwotlabs/contracts/pkg/failure"
	"github.com/hagerehiwotlabs/contracts/pkg/fingerprint"
)

// DefaultPackage is the package clause used when none is configured.
const DefaultPackage = "generated"

// Transformer converts schema bytes into type declaration source.
type Transformer interface {
	// Name identifies the transformer in logs.
	Name() string
	// Transform returns the declarations for the schema at schemaPath.
	Transform(ctx context.Context, schemaPath string, schema []byte) ([]byte, error)
}

// Generator runs a Transformer and writes the stamped result.
type Generator struct {
	Transformer Transformer
	// Format runs go/format over the stamped output.
	Format bool
	Logger *slog.Logger
}

// Result describes one generation run.
type Result struct {
	SchemaPath string `json:"schema_path"`
	OutputPath string `json:"output_path"`
	Hash       string `json:"hash"`
	Bytes      int    `json:"bytes"`
}

// New returns a generator using the native transformer with formatting on.
func New(pkg string, logger *slog.Logger) *Generator {
	return &Generator{
		Transformer: &NativeTransformer{Package: pkg},
		Format:      true,
		Logger:      logger,
	}
}

func (g *Generator) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}

// Generate reads schemaPath, transforms it, embeds its fingerprint and
// overwrites outPath.
func (g *Generator) Generate(ctx context.Context, schemaPath, outPath string) (*Result, error) {
	log := g.logger().With("schema", schemaPath, "output", outPath)

	schema, err := os.ReadFile(schemaPath)
	if err != nil {
		fe := failure.Wrap(failure.MissingInput, failure.ReasonSchemaMissing,
			"cannot read schema document", err).
			WithValue("schema", schemaPath)
		if errors.Is(err, fs.ErrNotExist) {
			fe.Message = "schema document not found"
		}
		return nil, fe
	}

	t := g.Transformer
	if t == nil {
		t = &NativeTransformer{}
	}
	log.Debug("transforming schema", "transformer", t.Name(), "size", len(schema))

	src, err := t.Transform(ctx, schemaPath, schema)
	if err != nil {
		if _, ok := failure.As(err); ok {
			return nil, err
		}
		return nil, failure.Wrap(failure.UpstreamTool, failure.ReasonGeneratorFailed,
			"type generation failed", err)
	}

	hash := fingerprint.Sum(schema)
	out := fingerprint.Stamp(src, hash)
	log.Debug("schema fingerprint computed", "hash", hash)

	if g.Format {
		formatted, err := format.Source(out)
		if err != nil {
			return nil, failure.Wrap(failure.UpstreamTool, failure.ReasonFormatFailed,
				"generated output could not be formatted", err)
		}
		out = formatted
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0750); err != nil {
		return nil, err
	}
	if err := os.WriteFile(outPath, out, 0644); err != nil { //nolint:gosec // generated source is world-readable
		return nil, err
	}
	log.Debug("generated types written", "bytes", len(out))

	return &Result{
		SchemaPath: schemaPath,
		OutputPath: outPath,
		Hash:       hash,
		Bytes:      len(out),
	}, nil
}
