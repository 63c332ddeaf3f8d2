package conform

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hagerehiwotlabs/contracts/pkg/config"
)

// Engine runs registered gates deterministically and assembles a report.
type Engine struct {
	gates   map[string]Gate
	ordered []string // gate execution order
	clock   func() time.Time
	logger  *slog.Logger
}

// NewEngine creates a new engine.
func NewEngine() *Engine {
	return &Engine{
		gates:   make(map[string]Gate),
		ordered: make([]string, 0),
		clock:   time.Now,
		logger:  slog.Default(),
	}
}

// WithClock overrides the clock for deterministic testing.
func (e *Engine) WithClock(clock func() time.Time) *Engine {
	e.clock = clock
	return e
}

// WithLogger sets the logger handed to gates.
func (e *Engine) WithLogger(logger *slog.Logger) *Engine {
	if logger != nil {
		e.logger = logger
	}
	return e
}

// RegisterGate adds a gate to the engine.
// Gates are run in registration order.
func (e *Engine) RegisterGate(g Gate) {
	id := g.ID()
	if _, exists := e.gates[id]; !exists {
		e.ordered = append(e.ordered, id)
	}
	e.gates[id] = g
}

// Gates returns the registered gates in execution order.
func (e *Engine) Gates() []Gate {
	out := make([]Gate, 0, len(e.ordered))
	for _, id := range e.ordered {
		out = append(out, e.gates[id])
	}
	return out
}

// Report is the top-level result of a run.
type Report struct {
	RunID       string        `json:"run_id"`
	Profile     ProfileID     `json:"profile"`
	Timestamp   time.Time     `json:"timestamp"`
	Pass        bool          `json:"pass"`
	GateResults []*GateResult `json:"gate_results"`
	Duration    time.Duration `json:"duration"`
	// Path is where the report was written, if anywhere.
	Path string `json:"-"`
}

// RunOptions configures a run.
type RunOptions struct {
	Profile    ProfileID
	GateFilter []string // if non-empty, only run these gates
	Config     *config.Config
	OutputDir  string // if set, the report is written under OutputDir/<run id>
}

// Run executes the gates selected by opts.
func (e *Engine) Run(opts *RunOptions) (*Report, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("run options: config is required")
	}
	start := e.clock()
	runID := "run-" + uuid.New().String()

	requiredGates, err := e.resolveGates(opts)
	if err != nil {
		return nil, err
	}

	ctx := &RunContext{
		RunID:   runID,
		Profile: opts.Profile,
		Config:  opts.Config,
		Clock:   e.clock,
		Logger:  e.logger.With("run_id", runID),
	}

	results := make([]*GateResult, 0, len(requiredGates))
	allPass := true
	for _, gateID := range requiredGates {
		g, ok := e.gates[gateID]
		if !ok {
			// Missing gate is a hard fail
			results = append(results, &GateResult{
				GateID:        gateID,
				Pass:          false,
				Reasons:       []string{ReasonGateNotRegistered},
				EvidencePaths: []string{},
			})
			allPass = false
			continue
		}

		gateStart := e.clock()
		result := runGate(g, ctx)
		result.Metrics.DurationMs = e.clock().Sub(gateStart).Milliseconds()
		ctx.Logger.Debug("gate finished", "gate", gateID, "pass", result.Pass, "reasons", result.Reasons)

		results = append(results, result)
		if !result.Pass {
			allPass = false
		}
	}

	report := &Report{
		RunID:       runID,
		Profile:     opts.Profile,
		Timestamp:   start.UTC(),
		Pass:        allPass,
		GateResults: results,
		Duration:    e.clock().Sub(start),
	}

	if opts.OutputDir != "" {
		path, err := WriteReport(opts.OutputDir, report)
		if err != nil {
			return report, fmt.Errorf("failed to write report: %w", err)
		}
		report.Path = path
	}

	return report, nil
}

// runGate converts a gate panic into a failed result.
func runGate(g Gate, ctx *RunContext) (result *GateResult) {
	defer func() {
		if r := recover(); r != nil {
			ctx.Logger.Error("gate panicked", "gate", g.ID(), "panic", r)
			result = NewResult(g.ID())
			result.Fail(ReasonGatePanic)
			result.Detail("panic", fmt.Sprint(r))
		}
	}()
	result = g.Run(ctx)
	if result == nil {
		result = NewResult(g.ID())
		result.Fail(ReasonGatePanic)
		result.Detail("panic", "gate returned no result")
	}
	return result
}

// resolveGates returns the gate IDs to run based on options.
func (e *Engine) resolveGates(opts *RunOptions) ([]string, error) {
	if len(opts.GateFilter) > 0 {
		return opts.GateFilter, nil
	}

	profileGates := GatesForProfile(opts.Profile)
	if profileGates == nil {
		return nil, fmt.Errorf("no gates to run for profile %q", opts.Profile)
	}

	// Intersect profile gates with registered gates, preserving registration order
	required := make(map[string]bool, len(profileGates))
	for _, g := range profileGates {
		required[g] = true
	}

	result := make([]string, 0, len(profileGates))
	for _, g := range e.ordered {
		if required[g] {
			result = append(result, g)
		}
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("no gates to run for profile %q", opts.Profile)
	}
	return result, nil
}
