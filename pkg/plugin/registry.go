package plugin

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrUnknownPlugin   = errors.New("plugin: unknown plugin")
	ErrDuplicatePlugin = errors.New("plugin: duplicate plugin name")
)

// Factory returns a fresh instance with default configuration.
type Factory[P Plugin] func() P

// Registry maps plugin names to factories. Safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	operators map[string]Factory[Operator]
	analyzers map[string]Factory[Analyzer]
}

func NewRegistry() *Registry {
	return &Registry{
		operators: make(map[string]Factory[Operator]),
		analyzers: make(map[string]Factory[Analyzer]),
	}
}

// RegisterOperator records f under the name reported by the instance it
// builds.
func (r *Registry) RegisterOperator(f Factory[Operator]) error {
	name := f().Name()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.operators[name]; ok {
		return fmt.Errorf("%w: operator %q", ErrDuplicatePlugin, name)
	}
	r.operators[name] = f
	return nil
}

func (r *Registry) RegisterAnalyzer(f Factory[Analyzer]) error {
	name := f().Name()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.analyzers[name]; ok {
		return fmt.Errorf("%w: analyzer %q", ErrDuplicatePlugin, name)
	}
	r.analyzers[name] = f
	return nil
}

func (r *Registry) NewOperator(name string) (Operator, error) {
	r.mu.RLock()
	f, ok := r.operators[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: operator %q", ErrUnknownPlugin, name)
	}
	return f(), nil
}

func (r *Registry) NewAnalyzer(name string) (Analyzer, error) {
	r.mu.RLock()
	f, ok := r.analyzers[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: analyzer %q", ErrUnknownPlugin, name)
	}
	return f(), nil
}

// Operators returns registered operator names, sorted.
func (r *Registry) Operators() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.operators)
}

func (r *Registry) Analyzers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.analyzers)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
