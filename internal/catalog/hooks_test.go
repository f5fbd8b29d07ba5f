package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassLabels(t *testing.T) {
	args := map[string]any{"levels": []any{"setosa", "versicolor", "virginica"}}

	out, err := ClassLabels([]int{2, 0, 1}, args)
	require.NoError(t, err)
	assert.Equal(t, []string{"virginica", "setosa", "versicolor"}, out)

	_, err = ClassLabels([]int{3}, args)
	assert.ErrorContains(t, err, "out of range")

	_, err = ClassLabels([]string{"a"}, args)
	assert.ErrorContains(t, err, "expected []int")

	_, err = ClassLabels([]int{0}, nil)
	assert.ErrorContains(t, err, "levels")
}

func TestProbabilityTable(t *testing.T) {
	args := map[string]any{"levels": []string{"no", "yes"}}

	out, err := ProbabilityTable([][]float64{{0.25, 0.75}, {1, 0}}, args)
	require.NoError(t, err)
	assert.Equal(t, []map[string]float64{
		{"no": 0.25, "yes": 0.75},
		{"no": 1, "yes": 0},
	}, out)

	_, err = ProbabilityTable([][]float64{{1}}, args)
	assert.ErrorContains(t, err, "has 1 columns, want 2")
}

func TestDefaultHooks(t *testing.T) {
	hooks := DefaultHooks()
	assert.Contains(t, hooks, "class_labels")
	assert.Contains(t, hooks, "probability_table")
}
