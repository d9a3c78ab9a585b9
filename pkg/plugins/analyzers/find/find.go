// Package find implements an analyzer that highlights every occurrence of a
// bit pattern.
package find

import (
	"github.com/ib-77/bitbench/pkg/bits"
	"github.com/ib-77/bitbench/pkg/plugin"
	"github.com/ib-77/bitbench/pkg/progress"
	"github.com/ib-77/bitbench/pkg/rop"
)

const (
	Name       = "Find"
	KeyPattern = "pattern"
)

type Find struct{}

var _ plugin.Analyzer = (*Find)(nil)

func New() *Find {
	return &Find{}
}

func (*Find) Name() string {
	return Name
}

func (*Find) DefaultState() plugin.State {
	return plugin.State{KeyPattern: "1"}
}

func (*Find) CanRecallState(state plugin.State) bool {
	_, err := pattern(state)
	return err == nil
}

// Analyze reports overlapping matches; the token is polled once per
// candidate start position.
func (*Find) Analyze(input *bits.Container, state plugin.State, p *progress.Progress) plugin.AnalyzerResult {
	needle, err := pattern(state)
	if err != nil {
		return plugin.AnalyzerError(err)
	}

	hay := input.Bits()
	n, m := hay.Len(), needle.Len()

	var found []bits.Range
	for start := int64(0); start+m <= n; start++ {
		match := true
		for j := int64(0); j < m; j++ {
			if hay.At(start+j) != needle.At(j) {
				match = false
				break
			}
		}
		if match {
			found = append(found, bits.Range{Start: start, End: start + m})
		}

		p.SetProgress(start+1, n-m+1)
		if p.Cancelled() {
			return plugin.AnalyzerError(rop.ErrCancelled)
		}
	}

	return plugin.AnalyzerSuccess(map[string]any{
		"pattern": needle.String(),
		"matches": len(found),
	}, found, state)
}

func pattern(state plugin.State) (*bits.BitArray, error) {
	s, ok := state.String(KeyPattern)
	if !ok || s == "" {
		return nil, rop.Validationf("%s must be a non-empty string of 0 and 1", KeyPattern)
	}
	arr, err := bits.Parse(s)
	if err != nil {
		return nil, rop.Validationf("%s: %v", KeyPattern, err)
	}
	return arr, nil
}
