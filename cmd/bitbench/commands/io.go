package commands

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"

	"github.com/ib-77/bitbench/pkg/action"
	"github.com/ib-77/bitbench/pkg/bits"
	"github.com/ib-77/bitbench/pkg/plugin"
	"github.com/ib-77/bitbench/pkg/progress"
)

func loadContainer(path string, bitLen int64) (*bits.Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if bitLen == 0 {
		bitLen = -1
	}
	arr, err := bits.FromBytes(data, bitLen)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return bits.NewContainer(filepath.Base(path), arr), nil
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func writeContainer(dir string, index int, c *bits.Container) (string, error) {
	name := fmt.Sprintf("%02d_%s.bin", index, unsafeName.ReplaceAllString(c.Name(), "_"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, c.Bits().Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing output: %w", err)
	}
	return path, nil
}

// loadState reads the plugin state from a JSON string or file; both empty
// means the plugin default.
func loadState(inline, file string) (plugin.State, error) {
	switch {
	case inline != "" && file != "":
		return nil, fmt.Errorf("--state and --state-file are mutually exclusive")
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading state file: %w", err)
		}
		return plugin.ParseState(data)
	default:
		return plugin.ParseState([]byte(inline))
	}
}

// cancelOnInterrupt cancels every action in m on the first Ctrl+C. The
// returned func stops listening.
func cancelOnInterrupt(m *action.Manager) func() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	quit := make(chan struct{})
	go func() {
		select {
		case <-sig:
			m.CancelAll()
		case <-quit:
		}
	}()
	return func() {
		signal.Stop(sig)
		close(quit)
	}
}

// renderProgress prints snapshots until the stream closes.
func renderProgress(w io.Writer, updates <-chan progress.Snapshot) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for s := range updates {
			fmt.Fprintf(w, "\r%6.2f%% (%d/%d)", s.Percent, s.Current, s.Total)
		}
		fmt.Fprintln(w)
	}()
	return done
}
