package coverage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hagerehiwotlabs/contracts/pkg/failure"
)

const profile = `mode: set
github.com/hagerehiwotlabs/contracts/pkg/drift/drift.go:26.60,28.16 2 1
github.com/hagerehiwotlabs/contracts/pkg/drift/drift.go:28.16,31.3 1 1
github.com/hagerehiwotlabs/contracts/pkg/drift/drift.go:33.2,34.16 2 0
github.com/hagerehiwotlabs/contracts/pkg/release/release.go:40.60,42.16 5 1
`

func summary(pct string) string {
	return `{"total": {
  "lines": {"total": 10, "covered": 9, "skipped": 0, "pct": 90},
  "statements": {"total": 10, "covered": 9, "skipped": 0, "pct": 90},
  "functions": {"total": 4, "covered": 3, "skipped": 0, "pct": ` + pct + `},
  "branches": {"total": 0, "covered": 0, "skipped": 0, "pct": "Unknown"}
}}`
}

func write(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestReadReport_GoProfile(t *testing.T) {
	metrics, err := ReadReport(write(t, "coverage.out", profile))
	require.NoError(t, err)
	require.Len(t, metrics, 1)

	assert.Equal(t, "statements", metrics[0].Name)
	assert.Equal(t, 8, metrics[0].Covered)
	assert.Equal(t, 10, metrics[0].Total)
	assert.InDelta(t, 80.0, metrics[0].Pct, 0.001)
}

func TestReadReport_Istanbul(t *testing.T) {
	metrics, err := ReadReport(write(t, "coverage-summary.json", summary("75")))
	require.NoError(t, err)

	names := make([]string, 0, len(metrics))
	for _, m := range metrics {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"lines", "functions", "branches", "statements"}, names)
	assert.InDelta(t, 75.0, metrics[1].Pct, 0.001)
	assert.InDelta(t, 100.0, metrics[2].Pct, 0.001, "unknown pct with no branches counts as covered")
}

func TestReadReport_Malformed(t *testing.T) {
	for name, body := range map[string]string{
		"summary.json": `{"total": `,
		"partial.json": `{"total": {"lines": {"total": 1, "covered": 1, "pct": 100}}}`,
		"coverage.out": "mode: set\nnot a block\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ReadReport(write(t, name, body))
			require.Error(t, err)
			assert.ErrorIs(t, err, failure.Format)
			assert.Equal(t, failure.ReasonCoverageReportInvalid, failure.CodeOf(err))
		})
	}
}

func TestCheck_Passing(t *testing.T) {
	report, err := Check([]Target{
		{Name: "contracts", Report: write(t, "coverage.out", profile), Enforce: true},
	})
	require.NoError(t, err)
	require.Len(t, report.Targets, 1)
	assert.Equal(t, DefaultThreshold, report.Targets[0].Threshold)
	assert.Empty(t, report.Targets[0].Failing())
}

func TestCheck_BelowThresholdEnforced(t *testing.T) {
	report, err := Check([]Target{
		{Name: "frontend", Report: write(t, "coverage-summary.json", summary("75")), Enforce: true},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, failure.Consistency)
	assert.Equal(t, failure.ReasonCoverageThreshold, failure.CodeOf(err))
	assert.Contains(t, err.Error(), "frontend functions 75.00%")

	require.NotNil(t, report)
	failing := report.Targets[0].Failing()
	require.Len(t, failing, 1)
	assert.Equal(t, "functions", failing[0].Name)
}

func TestCheck_ReportOnlyTargetNeverFails(t *testing.T) {
	report, err := Check([]Target{
		{Name: "contracts", Report: write(t, "coverage-summary.json", summary("10"))},
	})
	require.NoError(t, err)
	assert.Len(t, report.Targets[0].Failing(), 1)
}

func TestCheck_CustomThreshold(t *testing.T) {
	_, err := Check([]Target{
		{Name: "contracts", Report: write(t, "coverage.out", profile), Enforce: true, Threshold: 85},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, failure.Consistency)
}

func TestCheck_MissingReportSkipped(t *testing.T) {
	report, err := Check([]Target{
		{Name: "backend", Report: filepath.Join(t.TempDir(), "coverage.out"), Enforce: true},
	})
	require.NoError(t, err)
	require.Len(t, report.Targets, 1)
	assert.True(t, report.Targets[0].Skipped)
	assert.Empty(t, report.Targets[0].Metrics)
}

func TestCheck_MalformedReportStops(t *testing.T) {
	_, err := Check([]Target{
		{Name: "frontend", Report: write(t, "coverage-summary.json", "[]"), Enforce: true},
	})
	require.Error(t, err)
	assert.Equal(t, failure.ReasonCoverageReportInvalid, failure.CodeOf(err))
}
