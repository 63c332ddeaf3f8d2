// Package gates provides the gate implementations and a default registry.
package gates

import "github.com/hagerehiwotlabs/contracts/pkg/conform"

// DefaultEngine returns an engine pre-loaded with all gates in canonical
// registration order (schema drift, version, coverage).
func DefaultEngine() *conform.Engine {
	e := conform.NewEngine()

	e.RegisterGate(&GXSchemaDrift{})
	e.RegisterGate(&GXVersion{})
	e.RegisterGate(&GXCoverage{})

	return e
}
