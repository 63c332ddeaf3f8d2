package gates

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hagerehiwotlabs/contracts/pkg/config"
	"github.com/hagerehiwotlabs/contracts/pkg/conform"
	"github.com/hagerehiwotlabs/contracts/pkg/coverage"
	"github.com/hagerehiwotlabs/contracts/pkg/fingerprint"
)

var fixedClock = func() time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
}

const schemaBody = "openapi: 3.0.3\ninfo: {title: Tasks, version: 1.0.0}\n"

// project lays out a consistent contracts checkout in a temp dir.
func project(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := &config.Config{
		Root:          root,
		ManifestPath:  filepath.Join(root, "contracts.yaml"),
		SchemaPath:    filepath.Join(root, "api", "openapi.yaml"),
		TypesPath:     filepath.Join(root, "generated", "types_gen.go"),
		ChangelogPath: filepath.Join(root, "CHANGELOG.md"),
		Coverage: []coverage.Target{
			{Name: "contracts", Report: filepath.Join(root, "coverage.out"), Enforce: true},
		},
	}
	write(t, cfg.SchemaPath, schemaBody)
	write(t, cfg.TypesPath, string(fingerprint.Stamp([]byte("package generated\n"), fingerprint.Sum([]byte(schemaBody)))))
	write(t, cfg.ManifestPath, "version: 1.0.0\n")
	write(t, cfg.ChangelogPath, "# Changelog\n\n## [1.0.0] - 2026-01-01\n")
	return cfg
}

func write(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
}

func runContext(cfg *config.Config) *conform.RunContext {
	return &conform.RunContext{RunID: "run-test", Profile: conform.ProfileCI, Config: cfg, Clock: fixedClock}
}
