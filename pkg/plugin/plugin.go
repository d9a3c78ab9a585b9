package plugin

import (
	"github.com/ib-77/bitbench/pkg/bits"
	"github.com/ib-77/bitbench/pkg/progress"
)

// Plugin is the part of the capability contract shared by operators and
// analyzers.
type Plugin interface {
	Name() string
	// DefaultState is used when an action is started without configuration.
	DefaultState() State
	// CanRecallState reports whether state is a complete, well-formed
	// configuration for this plugin.
	CanRecallState(state State) bool
}

// Operator transforms zero or more input containers into output containers.
//
// Operate runs on a worker goroutine. Inputs are frozen; an operator clones
// before mutating. It must poll p.Cancelled() at every unit of work and
// return a cancellation result as soon as it is set.
type Operator interface {
	Plugin
	MinInputs(state State) int
	MaxInputs(state State) int
	Operate(inputs []*bits.Container, state State, p *progress.Progress) OperatorResult
}

// Analyzer inspects a single container and reports on it. The same rules as
// Operator apply to Analyze.
type Analyzer interface {
	Plugin
	Analyze(input *bits.Container, state State, p *progress.Progress) AnalyzerResult
}
