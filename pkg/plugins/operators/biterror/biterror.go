// Package biterror implements the "Bit Error" operator, which injects bit
// errors into a container at a configured bit error rate (BER).
//
// The rate is error_coeff * 10^error_exp. Two distributions are supported:
//
//   - periodic: every floor(1/BER)-th bit is flipped, starting at index
//     floor(1/BER)-1
//   - gaussian: floor(L*BER) bits are flipped around a window that slides
//     across the input, with normally distributed offsets
package biterror

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/ib-77/bitbench/pkg/bits"
	"github.com/ib-77/bitbench/pkg/plugin"
	"github.com/ib-77/bitbench/pkg/progress"
	"github.com/ib-77/bitbench/pkg/rop"
)

const Name = "Bit Error"

const (
	KeyCoeff = "error_coeff"
	KeyExp   = "error_exp"
	KeyType  = "error_type"
	KeySeed  = "seed"

	TypePeriodic = "periodic"
	TypeGaussian = "gaussian"
)

type BitError struct{}

var _ plugin.Operator = (*BitError)(nil)

func New() *BitError {
	return &BitError{}
}

func (*BitError) Name() string {
	return Name
}

func (*BitError) DefaultState() plugin.State {
	return plugin.State{
		KeyCoeff: 1.0,
		KeyExp:   -2,
		KeyType:  TypePeriodic,
	}
}

func (*BitError) CanRecallState(state plugin.State) bool {
	_, err := parseConfig(state)
	return err == nil
}

func (*BitError) MinInputs(plugin.State) int {
	return 1
}

func (*BitError) MaxInputs(plugin.State) int {
	return 1
}

func (*BitError) Operate(inputs []*bits.Container, state plugin.State, p *progress.Progress) plugin.OperatorResult {
	if len(inputs) != 1 {
		return plugin.OperatorError(rop.Validationf("Requires a single bit container as input"))
	}
	cfg, err := parseConfig(state)
	if err != nil {
		return plugin.OperatorError(err)
	}

	input := inputs[0]
	output := input.Bits().Clone()

	var flip func(*bits.BitArray, config, *progress.Progress) error
	if cfg.kind == TypeGaussian {
		flip = gaussian
	} else {
		flip = periodic
	}
	if err := flip(output, cfg, p); err != nil {
		return plugin.OperatorError(err)
	}

	name := fmt.Sprintf("%ge%d BER <- %s", cfg.coeff, cfg.exp, input.Name())
	return plugin.OperatorSuccess([]*bits.Container{bits.NewContainer(name, output)}, state)
}

type config struct {
	coeff float64
	exp   int
	kind  string
	seed  uint64
}

func (c config) ber() float64 {
	return c.coeff * math.Pow(10, float64(c.exp))
}

func parseConfig(state plugin.State) (config, error) {
	var cfg config
	var ok bool

	if cfg.coeff, ok = state.Float(KeyCoeff); !ok {
		return cfg, rop.Validationf("%s must be a number", KeyCoeff)
	}
	if cfg.exp, ok = state.Int(KeyExp); !ok {
		return cfg, rop.Validationf("%s must be an integer", KeyExp)
	}
	cfg.kind = TypePeriodic
	if state.Has(KeyType) {
		kind, _ := state.String(KeyType)
		if kind != TypePeriodic && kind != TypeGaussian {
			return cfg, rop.Validationf("%s must be %q or %q", KeyType, TypePeriodic, TypeGaussian)
		}
		cfg.kind = kind
	}
	if state.Has(KeySeed) {
		seed, ok := state.Int(KeySeed)
		if !ok || seed < 0 {
			return cfg, rop.Validationf("%s must be a non-negative integer", KeySeed)
		}
		cfg.seed = uint64(seed)
	}

	// floor(1/BER) must be at least 1 and finite.
	if ber := cfg.ber(); !(ber > 0 && ber < 1) || math.IsNaN(ber) {
		return cfg, rop.Validationf("bit error rate %ge%d must be in (0, 1)", cfg.coeff, cfg.exp)
	}
	return cfg, nil
}

func periodic(out *bits.BitArray, cfg config, p *progress.Progress) error {
	if p.Cancelled() {
		return rop.ErrCancelled
	}

	length := out.Len()
	// 1/BER can exceed the int64 range for tiny rates; such a step never
	// fits in the input, so nothing is flipped.
	skip := math.Floor(1 / cfg.ber())
	if skip > float64(length) {
		p.SetProgress(length, length)
		return nil
	}
	step := int64(skip)

	for i := step - 1; i < length; i += step {
		out.Flip(i)

		p.SetProgress(i, length)
		if p.Cancelled() {
			return rop.ErrCancelled
		}
	}
	return nil
}

func gaussian(out *bits.BitArray, cfg config, p *progress.Progress) error {
	if p.Cancelled() {
		return rop.ErrCancelled
	}

	length := out.Len()
	flips := int64(math.Floor(float64(length) * cfg.ber()))
	if flips == 0 {
		return nil
	}

	incr := length / flips
	window := length / 2
	mean := float64(window) / 2
	stddev := float64(window) / 6 // empirical rule: the window spans ±3σ
	rng := rand.New(rand.NewPCG(cfg.seed, cfg.seed^0x9e3779b97f4a7c15))

	for k := int64(0); k < flips; k++ {
		idx := int64(math.Round(rng.NormFloat64()*stddev+mean)) % length
		if idx < 0 {
			idx += length
		}
		out.Flip(idx)
		mean += float64(incr)

		p.SetProgress(k+1, flips)
		if p.Cancelled() {
			return rop.ErrCancelled
		}
	}
	return nil
}
