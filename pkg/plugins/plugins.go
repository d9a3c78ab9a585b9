// Package plugins wires the built-in analyzers and operators into a
// plugin.Registry.
package plugins

import (
	"github.com/ib-77/bitbench/pkg/plugin"
	"github.com/ib-77/bitbench/pkg/plugins/analyzers/bitcount"
	"github.com/ib-77/bitbench/pkg/plugins/analyzers/find"
	"github.com/ib-77/bitbench/pkg/plugins/operators/biterror"
)

// Default returns a registry holding every built-in plugin.
func Default() *plugin.Registry {
	r := plugin.NewRegistry()
	// Names are distinct constants, so registration cannot collide.
	_ = r.RegisterOperator(func() plugin.Operator { return biterror.New() })
	_ = r.RegisterAnalyzer(func() plugin.Analyzer { return bitcount.New() })
	_ = r.RegisterAnalyzer(func() plugin.Analyzer { return find.New() })
	return r
}
