package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/hagerehiwotlabs/contracts/pkg/codegen"
)

// runGenerate implements `contracts generate`.
func runGenerate(env *cliEnv, _ []string, stdout, stderr io.Writer) int {
	cfg := env.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen := &codegen.Generator{
		Transformer: &codegen.NativeTransformer{Package: cfg.Package},
		Format:      cfg.Format,
		Logger:      env.logger,
	}
	if cfg.Generator != "" {
		x, err := codegen.ParseCommand(cfg.Generator)
		if err != nil {
			printFailure(stderr, err)
			return 1
		}
		x.Dir = cfg.Root
		gen.Transformer = x
	}

	_, _ = fmt.Fprintf(stdout, "🔄 Generating types from %s (%s)\n", cfg.SchemaPath, gen.Transformer.Name())

	res, err := gen.Generate(ctx, cfg.SchemaPath, cfg.TypesPath)
	if err != nil {
		printFailure(stderr, err)
		return 1
	}

	_, _ = fmt.Fprintf(stdout, "✅ Types generated: %s\n", res.OutputPath)
	_, _ = fmt.Fprintf(stdout, "   OpenAPI Hash: %s\n", res.Hash)
	return 0
}
