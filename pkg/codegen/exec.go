package codegen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/hagerehiwotlabs/contracts/pkg/failure"
)

// SchemaPlaceholder in an ExecTransformer command is replaced by the schema
// path. Without it the path is appended as the last argument.
const SchemaPlaceholder = "{schema}"

// ExecTransformer runs an external schema-to-types tool and takes its
// standard output as the generated declarations, e.g.
//
//	oapi-codegen -generate types -package generated {schema}
type ExecTransformer struct {
	Program string
	Args    []string
	// Dir is the working directory of the tool; empty means the current one.
	Dir string
}

// ParseCommand splits a whitespace-separated command line into an
// ExecTransformer. Shell quoting is not interpreted.
func ParseCommand(command string) (*ExecTransformer, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, errors.New("empty generator command")
	}
	return &ExecTransformer{Program: fields[0], Args: fields[1:]}, nil
}

// Name implements Transformer.
func (x *ExecTransformer) Name() string { return x.Program }

// Transform implements Transformer.
func (x *ExecTransformer) Transform(ctx context.Context, schemaPath string, _ []byte) ([]byte, error) {
	args := make([]string, 0, len(x.Args)+1)
	substituted := false
	for _, a := range x.Args {
		if strings.Contains(a, SchemaPlaceholder) {
			a = strings.ReplaceAll(a, SchemaPlaceholder, schemaPath)
			substituted = true
		}
		args = append(args, a)
	}
	if !substituted {
		args = append(args, schemaPath)
	}

	cmd := exec.CommandContext(ctx, x.Program, args...)
	cmd.Dir = x.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		commandLine := strings.Join(append([]string{x.Program}, args...), " ")
		fe := failure.Wrap(failure.UpstreamTool, failure.ReasonGeneratorFailed,
			"type generation failed", err).
			WithValue("command", commandLine)

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			fe.WithValue("exit code", strconv.Itoa(exitErr.ExitCode()))
		}
		if diag := strings.TrimSpace(stderr.String()); diag != "" {
			fe.WithValue("stderr", diag)
		}
		return nil, fe
	}

	if stdout.Len() == 0 {
		return nil, failure.New(failure.UpstreamTool, failure.ReasonGeneratorFailed,
			fmt.Sprintf("%s produced no output", x.Program))
	}
	return stdout.Bytes(), nil
}
