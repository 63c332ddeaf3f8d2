// Package conform runs the contract gates in a fixed order and assembles a
// report of their outcomes.
package conform

import (
	"log/slog"
	"time"

	"github.com/hagerehiwotlabs/contracts/pkg/config"
)

// Gate is the interface every contract gate must implement.
type Gate interface {
	// ID returns the stable gate identifier (e.g. "GX_SCHEMA_DRIFT").
	ID() string

	// Name returns a human-readable name.
	Name() string

	// Run executes the gate check against the given RunContext.
	// All failures are expressed via GateResult.
	Run(ctx *RunContext) *GateResult
}

// GateResult is the outcome of one gate.
type GateResult struct {
	GateID        string         `json:"gate_id"`
	Pass          bool           `json:"pass"`
	Reasons       []string       `json:"reasons"`
	EvidencePaths []string       `json:"evidence_paths"`
	Metrics       GateMetrics    `json:"metrics"`
	Details       map[string]any `json:"details,omitempty"`
}

// NewResult returns a passing result for gateID with empty slices.
func NewResult(gateID string) *GateResult {
	return &GateResult{
		GateID:        gateID,
		Pass:          true,
		Reasons:       []string{},
		EvidencePaths: []string{},
		Metrics:       GateMetrics{Counts: make(map[string]int)},
	}
}

// Fail marks the result as failed with reason.
func (r *GateResult) Fail(reason string) {
	r.Pass = false
	r.Reasons = append(r.Reasons, reason)
}

// Detail records a key in Details.
func (r *GateResult) Detail(key string, value any) {
	if r.Details == nil {
		r.Details = make(map[string]any)
	}
	r.Details[key] = value
}

// GateMetrics captures timing and count data per gate.
type GateMetrics struct {
	DurationMs int64          `json:"duration_ms"`
	Counts     map[string]int `json:"counts,omitempty"`
}

// RunContext provides the runtime context for gate execution.
type RunContext struct {
	RunID   string
	Profile ProfileID
	Config  *config.Config
	Clock   func() time.Time
	Logger  *slog.Logger
}
