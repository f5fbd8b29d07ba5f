package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekisa-team/modelcap/internal/model"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestModelsListsBuiltinCatalog(t *testing.T) {
	out, err := run(t, "models")
	require.NoError(t, err)

	for _, name := range []string{"linear_reg", "logistic_reg", "rand_forest", "boost_tree", "survival_reg"} {
		assert.Contains(t, out, name)
	}
}

func TestShow(t *testing.T) {
	out, err := run(t, "show", "linear_reg")
	require.NoError(t, err)
	assert.Contains(t, out, `Information for "linear_reg"`)
	assert.Contains(t, out, "glmnet")

	_, err = run(t, "show", "no_such_model")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestCheck(t *testing.T) {
	out, err := run(t, "check", "rand_forest", "--mode", "classification", "--engine", "ranger")
	require.NoError(t, err)
	assert.Contains(t, out, "ok: rand_forest")

	_, err = run(t, "check", "linear_reg", "--mode", "classification", "--engine", "lm")
	assert.ErrorIs(t, err, model.ErrIncompatible)
}

func TestValidateExtension(t *testing.T) {
	out, err := run(t, "validate", filepath.Join("testdata", "extension.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "ok: testdata")
}

func TestSchema(t *testing.T) {
	out, err := run(t, "schema")
	require.NoError(t, err)
	assert.Contains(t, out, `"models"`)

	out, err = run(t, "schema", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "modelcap configuration")

	_, err = run(t, "schema", "nope")
	assert.Error(t, err)
}

func TestPlan(t *testing.T) {
	out, err := run(t, "plan", "linear_reg", "--mode", "regression", "--engine", "glmnet", "--arg", "penalty=0.01", "--engine-arg", "nlambda=50")
	require.NoError(t, err)
	assert.Contains(t, out, "lambda: 0.01")
	assert.Contains(t, out, "nlambda: 50")
	assert.Contains(t, out, "family: gaussian")
	assert.Contains(t, out, "packages:")

	_, err = run(t, "plan", "linear_reg", "--mode", "regression", "--engine", "glmnet", "--arg", "penalty=10")
	assert.Error(t, err)
}

func TestParseAssignments(t *testing.T) {
	got, err := parseAssignments([]string{"trees=500", "rate=0.3", "verbose=false", "objective=reg:squarederror"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"trees":     500,
		"rate":      0.3,
		"verbose":   false,
		"objective": "reg:squarederror",
	}, got)

	_, err = parseAssignments([]string{"=1"})
	assert.Error(t, err)
	_, err = parseAssignments([]string{"trees"})
	assert.Error(t, err)
}
