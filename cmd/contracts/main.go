// Command contracts keeps the generated API types in sync with the schema
// document and checks the contract release metadata.
//
// Exit codes:
//
//	0 = success
//	1 = any failure, including usage errors
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/hagerehiwotlabs/contracts/pkg/config"
	"github.com/hagerehiwotlabs/contracts/pkg/failure"
)

func main() {
	os.Exit(Run(os.Args, os.Stdout, os.Stderr))
}

// command is one subcommand. Its environment is resolved before it runs.
type command struct {
	name    string
	summary string
	flags   bool // accepts flags; the others take no arguments
	run     func(env *cliEnv, args []string, stdout, stderr io.Writer) int
}

var commands = []command{
	{name: "generate", summary: "Generate Go types from the schema and stamp its fingerprint", run: runGenerate},
	{name: "validate-changes", summary: "Fail if the schema changed without regenerating types", run: runValidateChanges},
	{name: "check-version", summary: "Fail if the manifest version is not the latest changelog entry", run: runCheckVersion},
	{name: "check-coverage", summary: "Fail if enforced coverage reports are below threshold", run: runCheckCoverage},
	{name: "check", summary: "Run contract gates (-profile, -json, -output, -gate)", flags: true, run: runCheck},
}

// cliEnv is the resolved configuration and logger shared by commands.
type cliEnv struct {
	cfg    *config.Config
	logger *slog.Logger
}

// Run is the entrypoint for testing.
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		printUsage(stderr)
		return 1
	}

	global := flag.NewFlagSet("contracts", flag.ContinueOnError)
	global.SetOutput(io.Discard)
	root := global.String("root", "", "Project root (default: CONTRACTS_ROOT or the working directory)")
	if err := global.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(stdout)
			return 0
		}
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		printUsage(stderr)
		return 1
	}
	args = append([]string{args[0]}, global.Args()...)
	if len(args) < 2 {
		printUsage(stderr)
		return 1
	}

	name := args[1]
	switch name {
	case "help", "--help", "-h":
		printUsage(stdout)
		return 0
	}

	for _, c := range commands {
		if c.name != name {
			continue
		}
		if !c.flags && len(args) > 2 {
			_, _ = fmt.Fprintf(stderr, "Error: %s takes no arguments\n", name)
			return 1
		}
		env, err := loadEnv(*root, stderr)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "❌ Configuration error: %v\n", err)
			return 1
		}
		return c.run(env, args[2:], stdout, stderr)
	}

	_, _ = fmt.Fprintf(stderr, "Unknown command: %s\n", name)
	printUsage(stderr)
	return 1
}

func loadEnv(root string, logOut io.Writer) (*cliEnv, error) {
	cfg, err := config.LoadFrom(root)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg.LogLevel, logOut)
	logger.Debug("configuration loaded",
		"root", cfg.Root,
		"schema", cfg.SchemaPath,
		"types", cfg.TypesPath,
		"manifest", cfg.ManifestPath,
		"changelog", cfg.ChangelogPath)
	return &cliEnv{cfg: cfg, logger: logger}, nil
}

// newLogger builds a text logger at level; an unknown level means INFO.
func newLogger(level string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// printFailure writes a classified failure as the ❌ line, its values and
// the fix hint.
func printFailure(w io.Writer, err error) {
	fe, ok := failure.As(err)
	if !ok {
		_, _ = fmt.Fprintf(w, "❌ %v\n", err)
		return
	}
	_, _ = fmt.Fprintf(w, "❌ %s [%s]\n", upperFirst(fe.Message), fe.Code)
	for _, v := range fe.Values {
		_, _ = fmt.Fprintf(w, "   %s: %s\n", v.Name, v.Value)
	}
	if fe.Err != nil {
		_, _ = fmt.Fprintf(w, "   cause: %v\n", fe.Err)
	}
	if fe.Hint != "" {
		_, _ = fmt.Fprintf(w, "   Fix: %s\n", fe.Hint)
	}
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func printUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Usage: contracts [-root DIR] <command> [flags]")
	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, "Commands:")
	for _, c := range commands {
		_, _ = fmt.Fprintf(w, "  %-18s %s\n", c.name, c.summary)
	}
	_, _ = fmt.Fprintf(w, "  %-18s %s\n", "help", "Show this help")
	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, "Configuration: contracts.yaml and CONTRACTS_* environment variables (.env is loaded).")
}
