package drift

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hagerehiwotlabs/contracts/pkg/failure"
	"github.com/hagerehiwotlabs/contracts/pkg/fingerprint"
)

const schemaBody = "openapi: 3.0.3\ninfo: {title: Tasks, version: 1.0.0}\n"

type fixture struct {
	schema string
	types  string
}

func newFixture(t *testing.T, schema string, types []byte) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		schema: filepath.Join(dir, "openapi.yaml"),
		types:  filepath.Join(dir, "types_gen.go"),
	}
	require.NoError(t, os.WriteFile(f.schema, []byte(schema), 0600))
	if types != nil {
		require.NoError(t, os.WriteFile(f.types, types, 0600))
	}
	return f
}

func stamped(schema string) []byte {
	return fingerprint.Stamp([]byte("package generated\n"), fingerprint.Sum([]byte(schema)))
}

func TestValidate_InSync(t *testing.T) {
	f := newFixture(t, schemaBody, stamped(schemaBody))

	res, err := Validate(f.schema, f.types)
	require.NoError(t, err)
	assert.Equal(t, fingerprint.Sum([]byte(schemaBody)), res.Hash)
	assert.Equal(t, f.types, res.TypesPath)
}

func TestValidate_ReadOnly(t *testing.T) {
	f := newFixture(t, schemaBody, stamped(schemaBody+"# old\n"))
	before, err := os.ReadFile(f.types)
	require.NoError(t, err)

	_, err = Validate(f.schema, f.types)
	require.Error(t, err)

	after, err := os.ReadFile(f.types)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestValidate_Drift(t *testing.T) {
	f := newFixture(t, schemaBody+"# edited\n", stamped(schemaBody))

	_, err := Validate(f.schema, f.types)
	require.Error(t, err)
	assert.ErrorIs(t, err, failure.Consistency)
	assert.Equal(t, failure.ReasonSchemaDrift, failure.CodeOf(err))

	fe, ok := failure.As(err)
	require.True(t, ok)
	require.Len(t, fe.Values, 2)
	assert.Equal(t, fingerprint.Sum([]byte(schemaBody+"# edited\n")), fe.Values[0].Value)
	assert.Equal(t, fingerprint.Sum([]byte(schemaBody)), fe.Values[1].Value)
	assert.Equal(t, RegenerateHint, fe.Hint)
}

func TestValidate_UppercaseMarkerMatches(t *testing.T) {
	hash := strings.ToUpper(fingerprint.Sum([]byte(schemaBody)))
	f := newFixture(t, schemaBody, []byte(fingerprint.Marker(hash)+"\npackage generated\n"))

	_, err := Validate(f.schema, f.types)
	require.NoError(t, err)
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name  string
		types []byte
		kind  failure.Kind
		code  string
	}{
		{
			name:  "not generated",
			types: nil,
			kind:  failure.MissingInput,
			code:  failure.ReasonTypesNotGenerated,
		},
		{
			name:  "marker missing",
			types: []byte("package generated\n"),
			kind:  failure.Format,
			code:  failure.ReasonHashMarkerMissing,
		},
		{
			name: "marker duplicated",
			types: []byte(fingerprint.Marker(fingerprint.Sum([]byte(schemaBody))) + "\n" +
				fingerprint.Marker(fingerprint.Sum([]byte(schemaBody))) + "\npackage generated\n"),
			kind: failure.Format,
			code: failure.ReasonHashMarkerDuplicate,
		},
		{
			name:  "empty file",
			types: []byte{},
			kind:  failure.Format,
			code:  failure.ReasonHashMarkerMissing,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, schemaBody, tt.types)

			_, err := Validate(f.schema, f.types)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.NotErrorIs(t, err, failure.Consistency)
			assert.Equal(t, tt.code, failure.CodeOf(err))
		})
	}
}

func TestValidate_MissingSchema(t *testing.T) {
	dir := t.TempDir()
	types := filepath.Join(dir, "types_gen.go")
	require.NoError(t, os.WriteFile(types, stamped(schemaBody), 0600))

	_, err := Validate(filepath.Join(dir, "openapi.yaml"), types)
	require.Error(t, err)
	assert.ErrorIs(t, err, failure.MissingInput)
	assert.Equal(t, failure.ReasonSchemaMissing, failure.CodeOf(err))
	assert.Contains(t, err.Error(), "schema document not found")
}

func TestValidate_NotGeneratedHint(t *testing.T) {
	f := newFixture(t, schemaBody, nil)

	_, err := Validate(f.schema, f.types)
	fe, ok := failure.As(err)
	require.True(t, ok)
	assert.Equal(t, "types not generated", fe.Message)
	assert.Equal(t, RegenerateHint, fe.Hint)
}
