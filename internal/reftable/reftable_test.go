package reftable

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	input := "# models provided outside the core package\n" +
		"model\tengine\tmode\tpkg\n" +
		"rand_forest\tranger\tclassification\t\n" +
		"rand_forest\tpartykit\tcensored regression\tcensored\n" +
		"bag_tree\trpart\tregression\tbaguette\n"

	table, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())

	assert.Equal(t, []Row{
		{Model: "rand_forest", Engine: "ranger", Mode: "classification"},
		{Model: "rand_forest", Engine: "partykit", Mode: "censored regression", Package: "censored"},
	}, table.ForModel("rand_forest"))
	assert.Empty(t, table.ForModel("linear_reg"))
}

func TestParse_OptionalPackageColumn(t *testing.T) {
	table, err := Parse(strings.NewReader("engine\tmode\tmodel\nlm\tregression\tlinear_reg\n"))
	require.NoError(t, err)
	assert.Equal(t, []Row{{Model: "linear_reg", Engine: "lm", Mode: "regression"}}, table.Rows())
}

func TestParse_Malformed(t *testing.T) {
	tests := map[string]string{
		"empty":          "",
		"missing column": "model\tengine\npkg\tlm\n",
		"blank mode":     "model\tengine\tmode\tpkg\nlinear_reg\tlm\t\t\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(input))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestDefault(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)
	assert.NotZero(t, table.Len())

	again, err := Default()
	require.NoError(t, err)
	assert.Same(t, table, again)

	var external []Row
	for _, row := range table.Rows() {
		if row.Package != "" {
			external = append(external, row)
		}
	}
	assert.NotEmpty(t, external)
}

func TestLoad_Cached(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.tsv")
	require.NoError(t, os.WriteFile(path, []byte("model\tengine\tmode\tpkg\nsvm_linear\tLiblineaR\tclassification\t\n"), 0o644))

	first, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Len())

	// The file is read once per process.
	require.NoError(t, os.WriteFile(path, []byte("model\tengine\tmode\tpkg\n"), 0o644))
	second, err := Load(path)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.tsv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
