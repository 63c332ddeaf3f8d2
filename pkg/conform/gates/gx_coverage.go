package gates

import (
	"github.com/hagerehiwotlabs/contracts/pkg/conform"
	"github.com/hagerehiwotlabs/contracts/pkg/coverage"
)

// GXCoverage checks configured coverage reports against their thresholds.
// Targets without a report are skipped and counted.
type GXCoverage struct{}

func (g *GXCoverage) ID() string   { return conform.GateCoverage }
func (g *GXCoverage) Name() string { return "Test Coverage Thresholds" }

func (g *GXCoverage) Run(ctx *conform.RunContext) *conform.GateResult {
	result := conform.NewResult(g.ID())

	report, err := coverage.Check(ctx.Config.Coverage)
	if report != nil {
		for _, t := range report.Targets {
			if t.Skipped {
				result.Metrics.Counts["targets_skipped"]++
				continue
			}
			result.Metrics.Counts["targets_checked"]++
			result.EvidencePaths = append(result.EvidencePaths, t.Target.Report)
		}
		result.Detail("targets", report.Targets)
	}
	if err != nil {
		failWith(result, err)
	}
	return result
}
