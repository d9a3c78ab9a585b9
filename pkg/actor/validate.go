package actor

import (
	"context"
	"fmt"

	"github.com/ib-77/bitbench/pkg/bits"
	"github.com/ib-77/bitbench/pkg/plugin"
	"github.com/ib-77/bitbench/pkg/rop"
	"github.com/ib-77/bitbench/pkg/rop/chain"
)

// call is the validated input of one invocation.
type call struct {
	state  plugin.State
	inputs []*bits.Container
}

func validateOperator(ctx context.Context, op plugin.Operator, inputs []*bits.Container,
	state plugin.State) rop.Result[call] {

	if op == nil {
		return rop.Invalid[call](rop.Validationf("no operator supplied"))
	}
	name := op.Name()

	c := chain.Map(chain.FromValue(ctx, call{state: state, inputs: inputs}), withDefaultState(op)).
		Check(recallable(op)).
		Check(func(_ context.Context, in call) (bool, string) {
			minIn, maxIn := op.MinInputs(in.state), op.MaxInputs(in.state)
			if n := len(in.inputs); n < minIn || n > maxIn {
				return false, fmt.Sprintf("%s requires %s input containers, got %d", name, arity(minIn, maxIn), n)
			}
			return true, ""
		}).
		Check(func(_ context.Context, in call) (bool, string) {
			for i, c := range in.inputs {
				if c == nil {
					return false, fmt.Sprintf("%s: input container %d is nil", name, i)
				}
			}
			return true, ""
		})
	return chain.Map(c, freeze).Result()
}

func validateAnalyzer(ctx context.Context, an plugin.Analyzer, input *bits.Container,
	state plugin.State) rop.Result[call] {

	if an == nil {
		return rop.Invalid[call](rop.Validationf("no analyzer supplied"))
	}
	if input == nil {
		return rop.Invalid[call](rop.Validationf("%s requires exactly 1 input container, got 0", an.Name()))
	}

	c := chain.Map(chain.FromValue(ctx, call{state: state, inputs: []*bits.Container{input}}), withDefaultState(an)).
		Check(recallable(an))
	return chain.Map(c, freeze).Result()
}

func withDefaultState(p plugin.Plugin) func(context.Context, call) call {
	return func(_ context.Context, in call) call {
		if in.state.IsEmpty() {
			in.state = p.DefaultState()
		}
		return in
	}
}

func recallable(p plugin.Plugin) func(context.Context, call) (bool, string) {
	return func(_ context.Context, in call) (bool, string) {
		if !p.CanRecallState(in.state) {
			return false, p.Name() + ": invalid plugin state"
		}
		return true, ""
	}
}

// freeze makes the inputs immutable for the rest of their life and detaches
// the state from the caller's copy.
func freeze(_ context.Context, in call) call {
	frozen := make([]*bits.Container, len(in.inputs))
	for i, c := range in.inputs {
		frozen[i] = c.Freeze()
	}
	return call{state: in.state.Clone(), inputs: frozen}
}

func arity(minIn, maxIn int) string {
	if minIn == maxIn {
		return fmt.Sprintf("exactly %d", minIn)
	}
	return fmt.Sprintf("between %d and %d", minIn, maxIn)
}
