package plugin

import (
	"github.com/ib-77/bitbench/pkg/bits"
	"github.com/ib-77/bitbench/pkg/rop"
)

// OperatorOutput is the payload of a successful operator action: the output
// containers plus the state that produced them.
type OperatorOutput struct {
	Containers []*bits.Container
	State      State
}

// AnalyzerOutput is the payload of a successful analyzer action.
type AnalyzerOutput struct {
	Report     map[string]any
	Highlights []bits.Range
	State      State
}

type (
	OperatorResult = rop.Result[OperatorOutput]
	AnalyzerResult = rop.Result[AnalyzerOutput]
)

// OperatorSuccess freezes the outputs and echoes a copy of state.
func OperatorSuccess(containers []*bits.Container, state State) OperatorResult {
	for _, c := range containers {
		c.Freeze()
	}
	return rop.Success(OperatorOutput{
		Containers: containers,
		State:      state.Clone(),
	})
}

func AnalyzerSuccess(report map[string]any, highlights []bits.Range, state State) AnalyzerResult {
	return rop.Success(AnalyzerOutput{
		Report:     report,
		Highlights: highlights,
		State:      state.Clone(),
	})
}

func OperatorError(err error) OperatorResult {
	return rop.Fail[OperatorOutput](err)
}

func AnalyzerError(err error) AnalyzerResult {
	return rop.Fail[AnalyzerOutput](err)
}
