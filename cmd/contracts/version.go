package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/hagerehiwotlabs/contracts/pkg/release"
)

// runCheckVersion implements `contracts check-version`.
func runCheckVersion(env *cliEnv, _ []string, stdout, stderr io.Writer) int {
	res, err := release.Check(env.cfg.ManifestPath, env.cfg.ChangelogPath)
	if err != nil {
		printFailure(stderr, err)
		return 1
	}

	_, _ = fmt.Fprintf(stdout, "✅ Version %s correctly documented in %s\n",
		res.Version, filepath.Base(res.ChangelogPath))
	return 0
}
