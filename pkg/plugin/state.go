package plugin

import (
	"encoding/json"
	"fmt"
	"math"
)

// State is the opaque configuration blob passed verbatim between a host and
// a plugin. Values follow encoding/json conventions: numbers are float64,
// nested objects are map[string]any.
type State map[string]any

// ParseState decodes a JSON object. Empty input yields an empty state.
func ParseState(data []byte) (State, error) {
	s := State{}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing plugin state: %w", err)
	}
	return s, nil
}

func (s State) JSON() ([]byte, error) {
	if s == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s)
}

// Clone deep-copies nested maps and slices.
func (s State) Clone() State {
	if s == nil {
		return State{}
	}
	out := make(State, len(s))
	for k, v := range s {
		out[k] = cloneValue(v)
	}
	return out
}

func (s State) IsEmpty() bool {
	return len(s) == 0
}

func (s State) Has(key string) bool {
	_, ok := s[key]
	return ok
}

func (s State) Float(key string) (float64, bool) {
	switch v := s[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// Int reads an integral number. Fractional values are rejected.
func (s State) Int(key string) (int, bool) {
	switch v := s[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	}
	f, ok := s.Float(key)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func (s State) String(key string) (string, bool) {
	v, ok := s[key].(string)
	return v, ok
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return map[string]any(State(t).Clone())
	case State:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
