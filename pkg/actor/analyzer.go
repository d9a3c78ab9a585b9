package actor

import (
	"context"

	"github.com/ib-77/bitbench/pkg/action"
	"github.com/ib-77/bitbench/pkg/bits"
	"github.com/ib-77/bitbench/pkg/plugin"
	"github.com/ib-77/bitbench/pkg/progress"
)

// AnalyzerActor runs one analyzer invocation at a time.
type AnalyzerActor struct {
	*base[plugin.AnalyzerOutput]
}

func NewAnalyzerActor(manager *action.Manager, exec action.Executor, opts ...Option) *AnalyzerActor {
	return &AnalyzerActor{base: newBase[plugin.AnalyzerOutput]("analyzer", manager, exec, opts)}
}

// Act follows the same contract as OperatorActor.Act with an arity of
// exactly one container.
func (a *AnalyzerActor) Act(ctx context.Context, an plugin.Analyzer, input *bits.Container,
	state plugin.State) (*action.Watcher[plugin.AnalyzerOutput], error) {

	var in call
	name, inputs := "<nil>", 0
	if an != nil {
		name = an.Name()
	}
	if input != nil {
		inputs = 1
	}

	return a.dispatch(ctx, name, inputs,
		func() error {
			res := validateAnalyzer(ctx, an, input, state)
			in = res.Result()
			if !res.IsSuccess() {
				return res.Err()
			}
			return nil
		},
		func(p *progress.Progress) plugin.AnalyzerResult {
			return an.Analyze(in.inputs[0], in.state, p)
		})
}
