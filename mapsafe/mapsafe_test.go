package mapsafe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	m := map[string]any{
		"trees":  500,
		"rate":   0.3,
		"levels": []any{"a", "b"},
		"name":   "ranger",
		"frac":   2.5,
		"mixed":  []any{"a", 1},
	}

	assert.Equal(t, 500, Get(m, "trees", 0))
	assert.Equal(t, 500.0, Get(m, "trees", 0.0))
	assert.Equal(t, 0.3, Get(m, "rate", 0.0))
	assert.Equal(t, []string{"a", "b"}, Get(m, "levels", []string(nil)))
	assert.Equal(t, "ranger", Get(m, "name", ""))

	// Fallbacks.
	assert.Equal(t, 7, Get(m, "frac", 7))
	assert.Equal(t, 7, Get(m, "missing", 7))
	assert.Equal(t, "x", Get(m, "trees", "x"))
	assert.Equal(t, []string{"z"}, Get(m, "mixed", []string{"z"}))
}

func TestNumber(t *testing.T) {
	for _, v := range []any{int8(3), int16(3), int32(3), int64(3), uint(3), uint8(3), uint16(3), uint32(3), uint64(3), float32(3), 3, 3.0} {
		f, ok := Number(v)
		assert.True(t, ok, "%T", v)
		assert.Equal(t, 3.0, f, "%T", v)
	}

	_, ok := Number("3")
	assert.False(t, ok)
}

func TestFloat(t *testing.T) {
	f, ok := Float(map[string]any{"level": 95}, "level")
	assert.True(t, ok)
	assert.Equal(t, 95.0, f)

	_, ok = Float(map[string]any{}, "level")
	assert.False(t, ok)
}

func TestStrings(t *testing.T) {
	assert.Equal(t, []string{"x"}, Strings(map[string]any{"k": []string{"x"}}, "k"))
	assert.Nil(t, Strings(map[string]any{"k": "x"}, "k"))
	assert.Nil(t, Strings(nil, "k"))
}
