// Package release checks that the declared contracts version is documented
// as the latest changelog entry and is a valid semantic version.
package release

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/hagerehiwotlabs/contracts/pkg/failure"
)

// headingRe matches a changelog entry heading such as
// "## [1.2.3] - 2024-01-01". The bracketed token is taken as written and
// validated later, so "## [v1.2]" still yields "v1.2".
var headingRe = regexp.MustCompile(`(?m)^## \[([^\]\r\n]+)\]`)

// unreleased is the heading of pending changes.
const unreleased = "unreleased"

// Result is a passing version check.
type Result struct {
	ManifestPath  string `json:"manifest_path"`
	ChangelogPath string `json:"changelog_path"`
	Version       string `json:"version"`
}

type manifest struct {
	Version yaml.Node `yaml:"version"`
}

// ReadManifestVersion returns the top-level "version" of a YAML or JSON
// manifest, verbatim as written.
func ReadManifestVersion(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", readFailure(err, failure.ReasonManifestMissing, "manifest").
			WithValue("manifest", path)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return "", failure.Wrap(failure.Format, failure.ReasonManifestVersionMissing,
			"manifest is not valid YAML or JSON", err).
			WithValue("manifest", path)
	}
	if m.Version.Kind != yaml.ScalarNode || m.Version.Value == "" {
		return "", failure.New(failure.Format, failure.ReasonManifestVersionMissing,
			"no version found in manifest").
			WithValue("manifest", path)
	}
	return m.Version.Value, nil
}

// LatestChangelogVersion returns the version of the first released heading
// in the changelog. Headings are not sorted; the topmost one wins.
func LatestChangelogVersion(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", readFailure(err, failure.ReasonChangelogMissing, "changelog").
			WithValue("changelog", path)
	}

	for _, m := range headingRe.FindAllSubmatch(data, -1) {
		v := strings.TrimSpace(string(m[1]))
		if v == "" || strings.EqualFold(v, unreleased) {
			continue
		}
		return v, nil
	}
	return "", failure.New(failure.Format, failure.ReasonChangelogVersionMissing,
		"no version found in changelog").
		WithValue("changelog", path).
		WithHint("add a \"## [X.Y.Z] - YYYY-MM-DD\" entry")
}

// ValidateVersion reports whether v is a strict semantic version
// (MAJOR.MINOR.PATCH, no "v" prefix).
func ValidateVersion(v string) error {
	if _, err := semver.StrictNewVersion(v); err != nil {
		return failure.Wrap(failure.MalformedValue, failure.ReasonVersionInvalid,
			"version is not valid semver", err).
			WithValue("version", v)
	}
	return nil
}

// Check compares the manifest version with the latest changelog entry and
// then validates it as semver.
func Check(manifestPath, changelogPath string) (*Result, error) {
	declared, err := ReadManifestVersion(manifestPath)
	if err != nil {
		return nil, err
	}
	documented, err := LatestChangelogVersion(changelogPath)
	if err != nil {
		return nil, err
	}

	if declared != documented {
		return nil, failure.New(failure.Consistency, failure.ReasonVersionMismatch,
			"version mismatch between manifest and changelog").
			WithValue("manifest", declared).
			WithValue("changelog", documented).
			WithHint(fmt.Sprintf("add a \"## [%s]\" entry to the changelog or set the manifest version to %s",
				declared, documented))
	}

	if err := ValidateVersion(declared); err != nil {
		return nil, err
	}

	return &Result{ManifestPath: manifestPath, ChangelogPath: changelogPath, Version: declared}, nil
}

func readFailure(err error, code, what string) *failure.Error {
	msg := "cannot read " + what
	if errors.Is(err, fs.ErrNotExist) {
		msg = what + " not found"
	}
	return failure.Wrap(failure.MissingInput, code, msg, err)
}
