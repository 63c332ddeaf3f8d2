package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/hagerehiwotlabs/contracts/pkg/coverage"
)

// runCheckCoverage implements `contracts check-coverage`.
func runCheckCoverage(env *cliEnv, _ []string, stdout, stderr io.Writer) int {
	_, _ = fmt.Fprintln(stdout, "🔍 Checking test coverage thresholds...")

	report, err := coverage.Check(env.cfg.Coverage)
	if report != nil {
		printCoverageReport(stdout, report)
	}
	if err != nil {
		printFailure(stderr, err)
		return 1
	}

	_, _ = fmt.Fprintln(stdout, "✅ All coverage thresholds met")
	return 0
}

func printCoverageReport(w io.Writer, report *coverage.Report) {
	for _, t := range report.Targets {
		mode := "enforced"
		if !t.Target.Enforce {
			mode = "report only"
		}
		_, _ = fmt.Fprintf(w, "\n%s (%s):\n", t.Target.Name, mode)
		if t.Skipped {
			_, _ = fmt.Fprintf(w, "  skipped, no report at %s\n", t.Target.Report)
			continue
		}
		for _, m := range t.Metrics {
			icon := "✅"
			if !m.Passed {
				icon = "❌"
			}
			_, _ = fmt.Fprintf(w, "  %s %s: %.2f%% (min: %.0f%%)\n", icon, m.Name, m.Pct, t.Threshold)
		}
	}
	_, _ = fmt.Fprintln(w, "\n"+strings.Repeat("=", 50))
}
