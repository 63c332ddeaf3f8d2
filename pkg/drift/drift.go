// Package drift checks that the committed generated types were produced
// from the current schema document.
package drift

import (
	"errors"
	"io/fs"
	"os"

	"github.com/hagerehiwotlabs/contracts/pkg/failure"
	"github.com/hagerehiwotlabs/contracts/pkg/fingerprint"
)

// RegenerateHint is attached to failures fixed by running the generator.
const RegenerateHint = "run: contracts generate"

// Result is a passing drift check.
type Result struct {
	SchemaPath string `json:"schema_path"`
	TypesPath  string `json:"types_path"`
	Hash       string `json:"hash"`
}

// Validate recomputes the schema fingerprint and compares it with the one
// embedded in the generated types. It never writes.
func Validate(schemaPath, typesPath string) (*Result, error) {
	schemaHash, err := fingerprint.SumFile(schemaPath)
	if err != nil {
		return nil, readFailure(err, failure.ReasonSchemaMissing, "schema document not found",
			"cannot read schema document").WithValue("schema", schemaPath)
	}

	types, err := os.ReadFile(typesPath)
	if err != nil {
		return nil, readFailure(err, failure.ReasonTypesNotGenerated, "types not generated",
			"cannot read generated types").
			WithValue("types", typesPath).
			WithHint(RegenerateHint)
	}

	embedded, err := fingerprint.Extract(types)
	switch {
	case errors.Is(err, fingerprint.ErrMarkerMissing):
		return nil, failure.Wrap(failure.Format, failure.ReasonHashMarkerMissing,
			"generated types are missing the embedded fingerprint", err).
			WithValue("types", typesPath).
			WithHint(RegenerateHint)
	case errors.Is(err, fingerprint.ErrMarkerDuplicate):
		return nil, failure.Wrap(failure.Format, failure.ReasonHashMarkerDuplicate,
			"generated types carry more than one fingerprint", err).
			WithValue("types", typesPath).
			WithHint(RegenerateHint)
	case err != nil:
		return nil, err
	}

	if embedded != schemaHash {
		return nil, failure.New(failure.Consistency, failure.ReasonSchemaDrift,
			"schema changed without regenerating types").
			WithValue("schema hash", schemaHash).
			WithValue("types hash", embedded).
			WithHint(RegenerateHint)
	}

	return &Result{SchemaPath: schemaPath, TypesPath: typesPath, Hash: schemaHash}, nil
}

// readFailure classifies a read error: a missing file is missing input,
// anything else is reported under the same code with the cause attached.
func readFailure(err error, code, notFound, unreadable string) *failure.Error {
	msg := unreadable
	if errors.Is(err, fs.ErrNotExist) {
		msg = notFound
	}
	return failure.Wrap(failure.MissingInput, code, msg, err)
}
