package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseState(t *testing.T) {
	t.Parallel()

	s, err := ParseState(nil)
	require.NoError(t, err)
	assert.True(t, s.IsEmpty())

	s, err = ParseState([]byte(`{"error_coeff": 2.5, "error_exp": -3, "error_type": "periodic"}`))
	require.NoError(t, err)

	coeff, ok := s.Float("error_coeff")
	assert.True(t, ok)
	assert.Equal(t, 2.5, coeff)

	exp, ok := s.Int("error_exp")
	assert.True(t, ok)
	assert.Equal(t, -3, exp)

	typ, ok := s.String("error_type")
	assert.True(t, ok)
	assert.Equal(t, "periodic", typ)

	_, err = ParseState([]byte(`[1, 2]`))
	assert.Error(t, err)
}

func TestState_Accessors(t *testing.T) {
	t.Parallel()

	s := State{"f": 1.5, "i": 4, "s": "x"}

	_, ok := s.Int("f")
	assert.False(t, ok, "fractional values are not integers")

	_, ok = s.Float("s")
	assert.False(t, ok)

	_, ok = s.String("i")
	assert.False(t, ok)

	assert.True(t, s.Has("i"))
	assert.False(t, s.Has("missing"))
}

func TestState_CloneIsDeep(t *testing.T) {
	t.Parallel()

	s := State{
		"nested": map[string]any{"k": 1.0},
		"list":   []any{1.0, map[string]any{"x": "y"}},
	}
	c := s.Clone()

	c["nested"].(map[string]any)["k"] = 2.0
	c["list"].([]any)[1].(map[string]any)["x"] = "z"

	assert.Equal(t, 1.0, s["nested"].(map[string]any)["k"])
	assert.Equal(t, "y", s["list"].([]any)[1].(map[string]any)["x"])

	var empty State
	assert.NotNil(t, empty.Clone())
}

func TestState_JSON(t *testing.T) {
	t.Parallel()

	var empty State
	data, err := empty.JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))

	data, err = State{"seed": 7.0}.JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"seed": 7}`, string(data))
}
