// Package bitcount implements an analyzer that counts set and clear bits.
package bitcount

import (
	"github.com/ib-77/bitbench/pkg/bits"
	"github.com/ib-77/bitbench/pkg/plugin"
	"github.com/ib-77/bitbench/pkg/progress"
	"github.com/ib-77/bitbench/pkg/rop"
)

const Name = "Bit Count"

// blockSize is the number of bits processed between two cancellation polls.
const blockSize = 1024

type BitCount struct{}

var _ plugin.Analyzer = (*BitCount)(nil)

func New() *BitCount {
	return &BitCount{}
}

func (*BitCount) Name() string {
	return Name
}

func (*BitCount) DefaultState() plugin.State {
	return plugin.State{}
}

func (*BitCount) CanRecallState(plugin.State) bool {
	return true
}

func (*BitCount) Analyze(input *bits.Container, state plugin.State, p *progress.Progress) plugin.AnalyzerResult {
	arr := input.Bits()
	length := arr.Len()

	var ones int64
	for start := int64(0); start < length; start += blockSize {
		end := min(start+blockSize, length)
		for i := start; i < end; i++ {
			if arr.At(i) {
				ones++
			}
		}

		p.SetProgress(end, length)
		if p.Cancelled() {
			return plugin.AnalyzerError(rop.ErrCancelled)
		}
	}

	density := 0.0
	if length > 0 {
		density = float64(ones) / float64(length)
	}
	return plugin.AnalyzerSuccess(map[string]any{
		"bits":    length,
		"ones":    ones,
		"zeros":   length - ones,
		"density": density,
	}, nil, state)
}
