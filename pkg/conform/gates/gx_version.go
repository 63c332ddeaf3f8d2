package gates

import (
	"github.com/hagerehiwotlabs/contracts/pkg/conform"
	"github.com/hagerehiwotlabs/contracts/pkg/release"
)

// GXVersion checks that the manifest version is the latest changelog entry
// and is valid semver.
type GXVersion struct{}

func (g *GXVersion) ID() string   { return conform.GateVersion }
func (g *GXVersion) Name() string { return "Version / Changelog Consistency" }

func (g *GXVersion) Run(ctx *conform.RunContext) *conform.GateResult {
	result := conform.NewResult(g.ID())
	cfg := ctx.Config

	res, err := release.Check(cfg.ManifestPath, cfg.ChangelogPath)
	if err != nil {
		failWith(result, err)
		return result
	}

	result.EvidencePaths = append(result.EvidencePaths, res.ManifestPath, res.ChangelogPath)
	result.Detail("version", res.Version)
	return result
}
