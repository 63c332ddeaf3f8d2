package conform

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gowebpki/jcs"

	"github.com/hagerehiwotlabs/contracts/pkg/fingerprint"
)

// Report file names inside a run directory.
const (
	ReportFile    = "report.json"
	ChecksumFile  = "report.json.sha256"
	checksumSplit = "  "
)

// CanonicalJSON returns the RFC 8785 form of the report.
func CanonicalJSON(report *Report) ([]byte, error) {
	raw, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("canonicalize report: %w", err)
	}
	return canonical, nil
}

// WriteReport writes the canonical report and a sha256sum-style sidecar
// to dir/<run id>/ and returns the report path.
func WriteReport(dir string, report *Report) (string, error) {
	data, err := CanonicalJSON(report)
	if err != nil {
		return "", err
	}

	runDir := filepath.Join(dir, report.RunID)
	if err := os.MkdirAll(runDir, 0750); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	path := filepath.Join(runDir, ReportFile)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", err
	}

	sum := fingerprint.Sum(data) + checksumSplit + ReportFile + "\n"
	if err := os.WriteFile(filepath.Join(runDir, ChecksumFile), []byte(sum), 0600); err != nil {
		return "", err
	}
	return path, nil
}

// VerifyReport checks a written report against its sidecar checksum.
func VerifyReport(runDir string) error {
	data, err := os.ReadFile(filepath.Join(runDir, ReportFile))
	if err != nil {
		return fmt.Errorf("read %s: %w", ReportFile, err)
	}
	sidecar, err := os.ReadFile(filepath.Join(runDir, ChecksumFile))
	if err != nil {
		return fmt.Errorf("read %s: %w", ChecksumFile, err)
	}

	want, _, ok := strings.Cut(strings.TrimSpace(string(sidecar)), checksumSplit)
	if !ok {
		return fmt.Errorf("%s: malformed checksum line", ChecksumFile)
	}
	if got := fingerprint.Sum(data); got != want {
		return fmt.Errorf("%s hash mismatch: got %s, want %s", ReportFile, got, want)
	}
	return nil
}
