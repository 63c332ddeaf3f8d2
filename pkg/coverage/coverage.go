// Package coverage enforces minimum test coverage per target.
//
// A target's report is either a Go cover profile (go test -coverprofile)
// or an Istanbul coverage-summary.json. Targets whose report does not exist
// are skipped.
package coverage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/cover"

	"github.com/hagerehiwotlabs/contracts/pkg/failure"
)

// DefaultThreshold is the minimum percentage applied when a target sets none.
const DefaultThreshold = 80.0

// Istanbul summary metrics, in report order.
var istanbulMetrics = []string{"lines", "functions", "branches", "statements"}

// Target is one coverage report to check.
type Target struct {
	Name   string `json:"name"`
	Report string `json:"report"`
	// Enforce makes a below-threshold metric fail the check. Unenforced
	// targets are report-only.
	Enforce   bool    `json:"enforce"`
	Threshold float64 `json:"threshold"`
}

func (t Target) threshold() float64 {
	if t.Threshold > 0 {
		return t.Threshold
	}
	return DefaultThreshold
}

// Metric is one measured coverage dimension.
type Metric struct {
	Name    string  `json:"name"`
	Covered int     `json:"covered"`
	Total   int     `json:"total"`
	Pct     float64 `json:"pct"`
	Passed  bool    `json:"passed"`
}

// TargetResult is the outcome for one target.
type TargetResult struct {
	Target    Target   `json:"target"`
	Threshold float64  `json:"threshold"`
	Skipped   bool     `json:"skipped"`
	Metrics   []Metric `json:"metrics,omitempty"`
}

// Failing returns the metrics below threshold.
func (r TargetResult) Failing() []Metric {
	var out []Metric
	for _, m := range r.Metrics {
		if !m.Passed {
			out = append(out, m)
		}
	}
	return out
}

// Report is the outcome of a coverage check.
type Report struct {
	Targets []TargetResult `json:"targets"`
}

// Check reads every target's report and compares each metric with the
// target's threshold. The report is returned even when the check fails.
func Check(targets []Target) (*Report, error) {
	report := &Report{}
	var below []string

	for _, t := range targets {
		res := TargetResult{Target: t, Threshold: t.threshold()}

		metrics, err := ReadReport(t.Report)
		if errors.Is(err, fs.ErrNotExist) {
			res.Skipped = true
			report.Targets = append(report.Targets, res)
			continue
		}
		if err != nil {
			return report, err
		}

		for i := range metrics {
			metrics[i].Passed = metrics[i].Pct >= res.Threshold
			if !metrics[i].Passed && t.Enforce {
				below = append(below, fmt.Sprintf("%s %s %.2f%%", t.Name, metrics[i].Name, metrics[i].Pct))
			}
		}
		res.Metrics = metrics
		report.Targets = append(report.Targets, res)
	}

	if len(below) > 0 {
		return report, failure.New(failure.Consistency, failure.ReasonCoverageThreshold,
			"coverage below threshold").
			WithValue("failing", strings.Join(below, ", ")).
			WithHint("add tests to raise coverage")
	}
	return report, nil
}

// ReadReport parses a coverage report. Files ending in .json are read as
// Istanbul summaries, anything else as a Go cover profile. A missing file
// yields an error matching fs.ErrNotExist.
func ReadReport(path string) ([]Metric, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, failure.Wrap(failure.MissingInput, failure.ReasonCoverageReportMissing,
			"coverage report not found", err).
			WithValue("report", path)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return readIstanbul(path)
	}
	return readProfile(path)
}

func readProfile(path string) ([]Metric, error) {
	profiles, err := cover.ParseProfiles(path)
	if err != nil {
		return nil, invalidReport(path, err)
	}

	var covered, total int
	for _, p := range profiles {
		for _, b := range p.Blocks {
			total += b.NumStmt
			if b.Count > 0 {
				covered += b.NumStmt
			}
		}
	}
	return []Metric{{Name: "statements", Covered: covered, Total: total, Pct: percent(covered, total)}}, nil
}

type istanbulCount struct {
	Total   int             `json:"total"`
	Covered int             `json:"covered"`
	Pct     json.RawMessage `json:"pct"`
}

type istanbulSummary struct {
	Total map[string]istanbulCount `json:"total"`
}

func readIstanbul(path string) ([]Metric, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, invalidReport(path, err)
	}
	var summary istanbulSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, invalidReport(path, err)
	}

	metrics := make([]Metric, 0, len(istanbulMetrics))
	for _, name := range istanbulMetrics {
		c, ok := summary.Total[name]
		if !ok {
			return nil, invalidReport(path, fmt.Errorf("total.%s missing", name))
		}
		// pct is the string "Unknown" when nothing was measured.
		var pct float64
		if err := json.Unmarshal(c.Pct, &pct); err != nil {
			pct = percent(c.Covered, c.Total)
		}
		metrics = append(metrics, Metric{Name: name, Covered: c.Covered, Total: c.Total, Pct: pct})
	}
	return metrics, nil
}

func percent(covered, total int) float64 {
	if total == 0 {
		return 100
	}
	return float64(covered) * 100 / float64(total)
}

func invalidReport(path string, err error) error {
	return failure.Wrap(failure.Format, failure.ReasonCoverageReportInvalid,
		"coverage report is malformed", err).
		WithValue("report", path)
}
