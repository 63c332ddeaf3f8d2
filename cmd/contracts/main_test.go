package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hagerehiwotlabs/contracts/pkg/conform"
	"github.com/hagerehiwotlabs/contracts/pkg/fingerprint"
)

const testSchema = `openapi: 3.0.3
info: {title: Tasks, version: 1.0.0}
paths:
  /health:
    get:
      operationId: getHealth
components:
  schemas:
    HealthResponse:
      type: object
      required: [status]
      properties:
        status: {type: string}
`

// newProject lays out a minimal contracts checkout and points the CLI at it.
func newProject(t *testing.T) string {
	t.Helper()
	for _, k := range []string{
		"CONTRACTS_MANIFEST", "CONTRACTS_SCHEMA", "CONTRACTS_TYPES", "CONTRACTS_PACKAGE",
		"CONTRACTS_CHANGELOG", "CONTRACTS_GENERATOR", "CONTRACTS_FORMAT", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
	root := t.TempDir()
	t.Setenv("CONTRACTS_ROOT", root)

	writeFile(t, filepath.Join(root, "api", "openapi.yaml"), testSchema)
	writeFile(t, filepath.Join(root, "contracts.yaml"), "version: 1.0.0\n")
	writeFile(t, filepath.Join(root, "CHANGELOG.md"), "# Changelog\n\n## [1.0.0] - 2026-01-01\n")
	return root
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
}

func run(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := Run(append([]string{"contracts"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestGenerateThenValidate(t *testing.T) {
	root := newProject(t)

	code, out, errOut := run("generate")
	require.Equal(t, 0, code, errOut)
	hash := fingerprint.Sum([]byte(testSchema))
	assert.Contains(t, out, "✅ Types generated")
	assert.Contains(t, out, "OpenAPI Hash: "+hash)

	data, err := os.ReadFile(filepath.Join(root, "pkg", "contracts", "generated", "types_gen.go"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "type HealthResponse struct")

	code, out, errOut = run("validate-changes")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "✅ Contract changes validated")
	assert.Contains(t, out, hash)
}

func TestValidateChanges_Drift(t *testing.T) {
	root := newProject(t)
	code, _, _ := run("generate")
	require.Equal(t, 0, code)

	writeFile(t, filepath.Join(root, "api", "openapi.yaml"), testSchema+"servers: [{url: /api/v1}]\n")

	code, _, errOut := run("validate-changes")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "[SCHEMA_DRIFT]")
	assert.Contains(t, errOut, "schema hash: ")
	assert.Contains(t, errOut, "types hash: "+fingerprint.Sum([]byte(testSchema)))
	assert.Contains(t, errOut, "Fix: run: contracts generate")
}

func TestValidateChanges_NotGenerated(t *testing.T) {
	newProject(t)

	code, _, errOut := run("validate-changes")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "❌ Types not generated [TYPES_NOT_GENERATED]")
}

func TestGenerate_MissingSchema(t *testing.T) {
	root := newProject(t)
	require.NoError(t, os.Remove(filepath.Join(root, "api", "openapi.yaml")))

	code, _, errOut := run("generate")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "[SCHEMA_MISSING]")
}

func TestGenerate_ExternalGeneratorFailure(t *testing.T) {
	newProject(t)
	t.Setenv("CONTRACTS_GENERATOR", "contracts-no-such-generator {schema}")

	code, out, errOut := run("generate")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "contracts-no-such-generator")
	assert.Contains(t, errOut, "[GENERATOR_FAILED]")
}

func TestGenerate_ExternalGeneratorRelativeRoot(t *testing.T) {
	root := newProject(t)
	t.Chdir(filepath.Dir(root))
	t.Setenv("CONTRACTS_GENERATOR", "cat {schema}")
	t.Setenv("CONTRACTS_FORMAT", "false")
	typesPath := filepath.Join(root, "pkg", "contracts", "generated", "types_gen.go")

	t.Run("env", func(t *testing.T) {
		t.Setenv("CONTRACTS_ROOT", filepath.Base(root))
		code, _, errOut := run("generate")
		require.Equal(t, 0, code, errOut)

		data, err := os.ReadFile(typesPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), "openapi: 3.0.3")
		assert.Contains(t, string(data), fingerprint.Marker(fingerprint.Sum([]byte(testSchema))))
	})

	t.Run("flag", func(t *testing.T) {
		require.NoError(t, os.Remove(typesPath))
		t.Setenv("CONTRACTS_ROOT", "")
		code, _, errOut := run("-root", filepath.Base(root), "generate")
		require.Equal(t, 0, code, errOut)
		assert.FileExists(t, typesPath)

		code, out, errOut := run("-root="+filepath.Base(root), "validate-changes")
		require.Equal(t, 0, code, errOut)
		assert.Contains(t, out, "✅ Contract changes validated")
	})
}

func TestCheckVersion(t *testing.T) {
	root := newProject(t)

	code, out, errOut := run("check-version")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "✅ Version 1.0.0 correctly documented in CHANGELOG.md")

	writeFile(t, filepath.Join(root, "contracts.yaml"), "version: 1.0.1\n")
	code, _, errOut = run("check-version")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "[VERSION_MISMATCH]")
	assert.Contains(t, errOut, "manifest: 1.0.1")
	assert.Contains(t, errOut, "changelog: 1.0.0")

	writeFile(t, filepath.Join(root, "CHANGELOG.md"), "# Changelog\n")
	code, _, errOut = run("check-version")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "[CHANGELOG_VERSION_MISSING]")
}

func TestCheckCoverage(t *testing.T) {
	root := newProject(t)

	code, out, errOut := run("check-coverage")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "skipped, no report")

	writeFile(t, filepath.Join(root, "coverage.out"), "mode: set\nx.go:1.1,2.2 1 1\nx.go:3.1,4.2 1 0\n")
	code, out, errOut = run("check-coverage")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "❌ statements: 50.00% (min: 80%)")
	assert.Contains(t, errOut, "[COVERAGE_BELOW_THRESHOLD]")
}

func TestCheck(t *testing.T) {
	newProject(t)
	code, _, _ := run("generate")
	require.Equal(t, 0, code)

	code, out, errOut := run("check")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "✅ PASS  GX_SCHEMA_DRIFT")
	assert.Contains(t, out, "✅ PASS  GX_VERSION")
	assert.NotContains(t, out, "GX_COVERAGE")
	assert.Contains(t, out, "Result: ✅ PASS (2 gates)")
}

func TestCheck_JSONAndOutput(t *testing.T) {
	newProject(t)
	outDir := filepath.Join(t.TempDir(), "reports")

	code, out, _ := run("check", "-profile", "ci", "-json", "-output", outDir)
	assert.Equal(t, 1, code, "types were never generated")

	var report conform.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, conform.ProfileCI, report.Profile)
	require.Len(t, report.GateResults, 3)
	assert.Equal(t, []string{"TYPES_NOT_GENERATED"}, report.GateResults[0].Reasons)

	require.NoError(t, conform.VerifyReport(filepath.Join(outDir, report.RunID)))
}

func TestCheck_BadProfile(t *testing.T) {
	newProject(t)
	code, _, errOut := run("check", "-profile", "enterprise")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unknown profile")
}

func TestUsage(t *testing.T) {
	code, out, _ := run("help")
	assert.Equal(t, 0, code)
	for _, c := range commands {
		assert.Contains(t, out, c.name)
	}

	code, _, errOut := run("deploy")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Unknown command: deploy")

	code, _, _ = run()
	assert.Equal(t, 1, code)

	code, out, _ = run("-h")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "-root DIR")

	code, _, errOut = run("-root")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "flag needs an argument")

	code, _, _ = run("-root", ".")
	assert.Equal(t, 1, code)

	code, _, errOut = run("check-version", "--strict")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "takes no arguments")
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	newLogger("debug", &buf).Debug("visible")
	assert.Contains(t, buf.String(), "visible")

	buf.Reset()
	newLogger("nonsense", &buf).Debug("hidden")
	assert.Empty(t, buf.String())
}
