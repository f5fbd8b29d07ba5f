package catalog

import (
	"fmt"

	"github.com/ekisa-team/modelcap/internal/model"
	"github.com/ekisa-team/modelcap/mapsafe"
)

// Hooks maps hook names used in catalog documents to implementations.
type Hooks map[string]model.Hook

// DefaultHooks returns the hooks every loader knows.
func DefaultHooks() Hooks {
	return Hooks{
		"class_labels":      ClassLabels,
		"probability_table": ProbabilityTable,
	}
}

// ClassLabels turns zero-based class indices into labels taken from args["levels"].
func ClassLabels(value any, args map[string]any) (any, error) {
	levels, err := levelsArg(args)
	if err != nil {
		return nil, err
	}
	indices, ok := value.([]int)
	if !ok {
		return nil, fmt.Errorf("class_labels: expected []int, got %T", value)
	}

	labels := make([]string, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= len(levels) {
			return nil, fmt.Errorf("class_labels: index %d out of range for %d levels", idx, len(levels))
		}
		labels[i] = levels[idx]
	}
	return labels, nil
}

// ProbabilityTable turns a row-per-observation probability matrix into one map per observation
// keyed by the class levels in args["levels"].
func ProbabilityTable(value any, args map[string]any) (any, error) {
	levels, err := levelsArg(args)
	if err != nil {
		return nil, err
	}
	matrix, ok := value.([][]float64)
	if !ok {
		return nil, fmt.Errorf("probability_table: expected [][]float64, got %T", value)
	}

	out := make([]map[string]float64, len(matrix))
	for i, row := range matrix {
		if len(row) != len(levels) {
			return nil, fmt.Errorf("probability_table: row %d has %d columns, want %d", i, len(row), len(levels))
		}
		probs := make(map[string]float64, len(row))
		for j, p := range row {
			probs[levels[j]] = p
		}
		out[i] = probs
	}
	return out, nil
}

func levelsArg(args map[string]any) ([]string, error) {
	levels := mapsafe.Strings(args, "levels")
	if len(levels) == 0 {
		return nil, fmt.Errorf("hook requires a non-empty levels argument")
	}
	return levels, nil
}
