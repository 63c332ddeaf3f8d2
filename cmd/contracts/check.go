package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/hagerehiwotlabs/contracts/pkg/conform"
	"github.com/hagerehiwotlabs/contracts/pkg/conform/gates"
)

// runCheck implements `contracts check`.
func runCheck(env *cliEnv, args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("check", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var (
		profile    string
		outputDir  string
		jsonOutput bool
		gateFilter multiFlag
	)

	cmd.StringVar(&profile, "profile", string(conform.ProfileContracts), "Gate profile: CONTRACTS or CI")
	cmd.StringVar(&outputDir, "output", "", "Write the canonical JSON report under this directory")
	cmd.BoolVar(&jsonOutput, "json", false, "Output report as JSON to stdout")
	cmd.Var(&gateFilter, "gate", "Run only specific gate(s) (repeatable)")

	if err := cmd.Parse(args); err != nil {
		return 1
	}
	if cmd.NArg() > 0 {
		_, _ = fmt.Fprintf(stderr, "Error: unexpected arguments: %v\n", cmd.Args())
		return 1
	}

	profileID, err := conform.ParseProfile(profile)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	engine := gates.DefaultEngine().WithLogger(env.logger)
	report, err := engine.Run(&conform.RunOptions{
		Profile:    profileID,
		GateFilter: []string(gateFilter),
		Config:     env.cfg,
		OutputDir:  outputDir,
	})
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: check run failed: %v\n", err)
		return 1
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(report, "", "  ")
		_, _ = fmt.Fprintln(stdout, string(data))
	} else {
		printCheckReport(stdout, report)
	}

	if !report.Pass {
		return 1
	}
	return 0
}

func printCheckReport(w io.Writer, report *conform.Report) {
	_, _ = fmt.Fprintf(w, "Contracts Check Report\n")
	_, _ = fmt.Fprintf(w, "──────────────────────\n")
	_, _ = fmt.Fprintf(w, "Run ID:    %s\n", report.RunID)
	_, _ = fmt.Fprintf(w, "Profile:   %s\n", report.Profile)
	_, _ = fmt.Fprintf(w, "Timestamp: %s\n", report.Timestamp.Format("2006-01-02T15:04:05Z"))
	_, _ = fmt.Fprintf(w, "Duration:  %s\n\n", report.Duration)

	for _, gr := range report.GateResults {
		status := "✅ PASS"
		if !gr.Pass {
			status = "❌ FAIL"
		}
		_, _ = fmt.Fprintf(w, "  %s  %s", status, gr.GateID)
		if len(gr.Reasons) > 0 {
			_, _ = fmt.Fprintf(w, "  [%s]", gr.Reasons[0])
			if len(gr.Reasons) > 1 {
				_, _ = fmt.Fprintf(w, " (+%d more)", len(gr.Reasons)-1)
			}
		}
		_, _ = fmt.Fprintln(w)
		if msg, ok := gr.Details["error"].(string); ok {
			_, _ = fmt.Fprintf(w, "           %s\n", msg)
		}
	}

	_, _ = fmt.Fprintln(w)
	if report.Path != "" {
		_, _ = fmt.Fprintf(w, "Report:    %s\n", report.Path)
	}
	if report.Pass {
		_, _ = fmt.Fprintf(w, "Result: ✅ PASS (%d gates)\n", len(report.GateResults))
	} else {
		failed := 0
		for _, gr := range report.GateResults {
			if !gr.Pass {
				failed++
			}
		}
		_, _ = fmt.Fprintf(w, "Result: ❌ FAIL (%d/%d gates failed)\n", failed, len(report.GateResults))
	}
}

// multiFlag allows repeatable flag values (e.g. -gate GX_VERSION -gate GX_COVERAGE).
type multiFlag []string

func (f *multiFlag) String() string { return fmt.Sprintf("%v", *f) }
func (f *multiFlag) Set(value string) error {
	*f = append(*f, value)
	return nil
}
