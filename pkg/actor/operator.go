package actor

import (
	"context"

	"github.com/ib-77/bitbench/pkg/action"
	"github.com/ib-77/bitbench/pkg/bits"
	"github.com/ib-77/bitbench/pkg/plugin"
	"github.com/ib-77/bitbench/pkg/progress"
)

// OperatorActor runs one operator invocation at a time on an executor and
// publishes its result to subscribers.
type OperatorActor struct {
	*base[plugin.OperatorOutput]
}

func NewOperatorActor(manager *action.Manager, exec action.Executor, opts ...Option) *OperatorActor {
	return &OperatorActor{base: newBase[plugin.OperatorOutput]("operator", manager, exec, opts)}
}

// Act validates the call and dispatches op to the executor. It returns as
// soon as the computation is scheduled. Validation failures and ErrBusy are
// returned synchronously and nothing is dispatched.
//
// Inputs are frozen for the rest of their life; an empty state is replaced
// by op.DefaultState(). Cancelling ctx requests cancellation of the action.
func (a *OperatorActor) Act(ctx context.Context, op plugin.Operator, inputs []*bits.Container,
	state plugin.State) (*action.Watcher[plugin.OperatorOutput], error) {

	var in call
	name := "<nil>"
	if op != nil {
		name = op.Name()
	}

	return a.dispatch(ctx, name, len(inputs),
		func() error {
			res := validateOperator(ctx, op, inputs, state)
			in = res.Result()
			if !res.IsSuccess() {
				return res.Err()
			}
			return nil
		},
		func(p *progress.Progress) plugin.OperatorResult {
			return op.Operate(in.inputs, in.state, p)
		})
}
