package main

import (
	"fmt"
	"io"

	"github.com/hagerehiwotlabs/contracts/pkg/drift"
)

// runValidateChanges implements `contracts validate-changes`.
func runValidateChanges(env *cliEnv, _ []string, stdout, stderr io.Writer) int {
	_, _ = fmt.Fprintln(stdout, "🔍 Validating contract changes...")

	res, err := drift.Validate(env.cfg.SchemaPath, env.cfg.TypesPath)
	if err != nil {
		printFailure(stderr, err)
		return 1
	}

	_, _ = fmt.Fprintln(stdout, "✅ Contract changes validated")
	_, _ = fmt.Fprintf(stdout, "   OpenAPI Hash: %s\n", res.Hash)
	return 0
}
