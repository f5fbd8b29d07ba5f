package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numericPredict(fun string) PredictModule {
	return PredictModule{
		Func: Call{Func: fun},
		Args: map[string]any{"object": "object$fit", "newdata": "new_data"},
	}
}

func TestLookup_Fit(t *testing.T) {
	reg := newToy(t)
	require.NoError(t, reg.RegisterFit("toy_model", ModeRegression, "lm", lmFit))

	row, err := reg.Fit("toy_model", ModeRegression, "lm")
	require.NoError(t, err)
	assert.Equal(t, lmFit.Func, row.Func)

	_, err = reg.Fit("toy_model", ModeClassification, "lm")
	assert.ErrorIs(t, err, ErrNotRegistered)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestLookup_PredictByType(t *testing.T) {
	reg := newToy(t)

	_, err := reg.PredictByType("toy_model", PredictNumeric)
	assert.ErrorIs(t, err, ErrNoPredict)

	require.NoError(t, reg.RegisterPredict("toy_model", ModeRegression, "lm", PredictNumeric, numericPredict("predict")))
	require.NoError(t, reg.RegisterPredict("toy_model", ModeRegression, "lm", PredictRaw, numericPredict("predict")))

	rows, err := reg.PredictByType("toy_model", PredictNumeric)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, PredictNumeric, rows[0].Type)

	_, err = reg.PredictByType("toy_model", PredictQuantile)
	assert.ErrorIs(t, err, ErrNoPredictType)
	assert.NotErrorIs(t, err, ErrNoPredict)

	_, err = reg.PredictByType("nope", PredictNumeric)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookup_Predict(t *testing.T) {
	reg := newToy(t)
	require.NoError(t, reg.RegisterEngine("toy_model", ModeRegression, "glmnet"))
	require.NoError(t, reg.RegisterPredict("toy_model", ModeRegression, "lm", PredictNumeric, numericPredict("predict")))
	require.NoError(t, reg.RegisterPredict("toy_model", ModeRegression, "glmnet", PredictNumeric, numericPredict("predict.glmnet")))

	row, err := reg.Predict("toy_model", ModeRegression, "glmnet", PredictNumeric)
	require.NoError(t, err)
	assert.Equal(t, "predict.glmnet", row.Func.Func)

	_, err = reg.Predict("toy_model", ModeClassification, "glmnet", PredictNumeric)
	assert.ErrorIs(t, err, ErrNotRegistered)
}

func TestLookup_EncodingsDefault(t *testing.T) {
	reg := newToy(t)
	require.NoError(t, reg.RegisterMode("toy_model", ModeClassification))
	require.NoError(t, reg.RegisterEngine("toy_model", ModeClassification, "glmnet"))

	encs, err := reg.Encodings("toy_model")
	require.NoError(t, err)
	assert.True(t, encs.Derived)
	assert.Equal(t, []EncodingRow{
		{Model: "toy_model", Engine: "lm", Mode: ModeRegression, Encoding: DefaultEncoding},
		{Model: "toy_model", Engine: "glmnet", Mode: ModeClassification, Encoding: DefaultEncoding},
	}, encs.Rows)

	for _, row := range encs.Rows {
		assert.Equal(t, IndicatorsTraditional, row.PredictorIndicators)
		assert.True(t, row.ComputeIntercept)
		assert.True(t, row.RemoveIntercept)
		assert.False(t, row.AllowSparseX)
	}
}

func TestLookup_AccessorsReturnCopies(t *testing.T) {
	reg := newToy(t)

	engines, err := reg.Engines("toy_model")
	require.NoError(t, err)
	engines[0].Engine = "mutated"

	models := reg.Models()
	models[0] = "mutated"

	engines, _ = reg.Engines("toy_model")
	assert.Equal(t, "lm", engines[0].Engine)
	assert.Equal(t, []string{"toy_model"}, reg.Models())
}
