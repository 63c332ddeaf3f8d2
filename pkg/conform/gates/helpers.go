package gates

import (
	"github.com/hagerehiwotlabs/contracts/pkg/conform"
	"github.com/hagerehiwotlabs/contracts/pkg/failure"
)

// failWith records err on result under its reason code.
func failWith(result *conform.GateResult, err error) {
	result.Fail(failure.CodeOf(err))
	result.Detail("error", err.Error())
	if fe, ok := failure.As(err); ok && fe.Hint != "" {
		result.Detail("hint", fe.Hint)
	}
}
