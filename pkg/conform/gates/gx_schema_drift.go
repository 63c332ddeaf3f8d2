package gates

import (
	"github.com/hagerehiwotlabs/contracts/pkg/conform"
	"github.com/hagerehiwotlabs/contracts/pkg/drift"
)

// GXSchemaDrift checks that the committed generated types carry the
// fingerprint of the current schema document.
type GXSchemaDrift struct{}

func (g *GXSchemaDrift) ID() string   { return conform.GateSchemaDrift }
func (g *GXSchemaDrift) Name() string { return "Schema / Generated Types Drift" }

func (g *GXSchemaDrift) Run(ctx *conform.RunContext) *conform.GateResult {
	result := conform.NewResult(g.ID())
	cfg := ctx.Config

	res, err := drift.Validate(cfg.SchemaPath, cfg.TypesPath)
	if err != nil {
		failWith(result, err)
		return result
	}

	result.EvidencePaths = append(result.EvidencePaths, res.SchemaPath, res.TypesPath)
	result.Metrics.Counts["fingerprints_matched"] = 1
	result.Detail("hash", res.Hash)
	return result
}
