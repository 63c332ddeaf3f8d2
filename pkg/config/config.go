// Package config resolves where the contracts inputs and outputs live.
//
// Values come from, in increasing precedence: built-in defaults, the
// manifest (contracts.yaml) and CONTRACTS_* environment variables. A .env
// file in the working directory is loaded into the environment first.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/hagerehiwotlabs/contracts/pkg/coverage"
)

// Defaults, relative to the root.
const (
	DefaultManifest  = "contracts.yaml"
	DefaultSchema    = "api/openapi.yaml"
	DefaultTypes     = "pkg/contracts/generated/types_gen.go"
	DefaultPackage   = "generated"
	DefaultChangelog = "CHANGELOG.md"
	DefaultCoverage  = "coverage.out"
	DefaultLogLevel  = "INFO"
)

// Config is the resolved configuration. Root is absolute and every other
// path is joined with it unless it was absolute already.
type Config struct {
	Root          string
	ManifestPath  string
	SchemaPath    string
	TypesPath     string
	Package       string
	ChangelogPath string
	// Generator is an external command line; empty selects the native
	// transformer.
	Generator string
	Format    bool
	LogLevel  string
	Coverage  []coverage.Target
}

// Manifest is the subset of contracts.yaml read as configuration. The
// version key is read separately by the release check.
type Manifest struct {
	Schema    string           `yaml:"schema"`
	Output    string           `yaml:"output"`
	Package   string           `yaml:"package"`
	Changelog string           `yaml:"changelog"`
	Generator string           `yaml:"generator"`
	Format    *bool            `yaml:"format"`
	Coverage  []CoverageTarget `yaml:"coverage"`
}

// CoverageTarget is a coverage entry in the manifest.
type CoverageTarget struct {
	Name      string  `yaml:"name"`
	Report    string  `yaml:"report"`
	Enforce   *bool   `yaml:"enforce"`
	Threshold float64 `yaml:"threshold"`
}

// Load builds the configuration. A missing manifest is not an error; a
// malformed one is.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom is Load with an explicit project root. An empty root falls back
// to CONTRACTS_ROOT and then to the working directory.
func LoadFrom(root string) (*Config, error) {
	_ = godotenv.Load()

	if root == "" {
		root = os.Getenv("CONTRACTS_ROOT")
	}
	if root == "" {
		root = "."
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("CONTRACTS_ROOT: %w", err)
	}

	manifestPath := os.Getenv("CONTRACTS_MANIFEST")
	if manifestPath == "" {
		manifestPath = DefaultManifest
	}
	manifestPath = resolve(root, manifestPath)

	m, err := LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	format := true
	if m.Format != nil {
		format = *m.Format
	}
	if v := os.Getenv("CONTRACTS_FORMAT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("CONTRACTS_FORMAT: %w", err)
		}
		format = b
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = DefaultLogLevel
	}

	cfg := &Config{
		Root:          root,
		ManifestPath:  manifestPath,
		SchemaPath:    resolve(root, pick("CONTRACTS_SCHEMA", m.Schema, DefaultSchema)),
		TypesPath:     resolve(root, pick("CONTRACTS_TYPES", m.Output, DefaultTypes)),
		Package:       pick("CONTRACTS_PACKAGE", m.Package, DefaultPackage),
		ChangelogPath: resolve(root, pick("CONTRACTS_CHANGELOG", m.Changelog, DefaultChangelog)),
		Generator:     pick("CONTRACTS_GENERATOR", m.Generator, ""),
		Format:        format,
		LogLevel:      logLevel,
	}

	targets := m.Coverage
	if len(targets) == 0 {
		targets = []CoverageTarget{{Name: "contracts", Report: DefaultCoverage}}
	}
	for _, t := range targets {
		enforce := true
		if t.Enforce != nil {
			enforce = *t.Enforce
		}
		name := t.Name
		if name == "" {
			name = t.Report
		}
		cfg.Coverage = append(cfg.Coverage, coverage.Target{
			Name:      name,
			Report:    resolve(root, t.Report),
			Enforce:   enforce,
			Threshold: t.Threshold,
		})
	}

	return cfg, nil
}

// LoadManifest reads the configuration keys of a manifest. A missing file
// yields an empty manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load manifest %q: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %q: %w", path, err)
	}
	return &m, nil
}

func pick(env, manifest, def string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	if manifest != "" {
		return manifest
	}
	return def
}

func resolve(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
