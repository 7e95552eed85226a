package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/ftlinear/pkg/errors"
)

func TestNewDataset(t *testing.T) {
	records := []Record{{Feature: 240000, Target: 3650}, {Feature: 139800, Target: 3800}}
	ds, err := NewDataset(records)
	require.NoError(t, err)

	// 元のスライスを変更してもDatasetは変わらない
	records[0].Feature = 0
	assert.Equal(t, 240000.0, ds.At(0).Feature)
	assert.Equal(t, 2, ds.Len())

	got := ds.Records()
	got[1].Target = 0
	assert.Equal(t, 3800.0, ds.At(1).Target)

	assert.Equal(t, 139800.0, ds.Features().AtVec(1))
	assert.Equal(t, 3650.0, ds.Targets().AtVec(0))

	lo, hi := ds.FeatureRange()
	assert.Equal(t, 139800.0, lo)
	assert.Equal(t, 240000.0, hi)
}

func TestNewDataset_Empty(t *testing.T) {
	_, err := NewDataset(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	var dataErr *errors.DataError
	assert.True(t, errors.As(err, &dataErr))
}

func TestTrainingConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       TrainingConfig
		wantParam string
	}{
		{name: "defaults", cfg: DefaultTrainingConfig()},
		{name: "zero learning rate", cfg: TrainingConfig{LearningRate: 0, Iterations: 10, Batch: 1}, wantParam: "learning_rate"},
		{name: "negative learning rate", cfg: TrainingConfig{LearningRate: -0.1, Iterations: 10, Batch: 1}, wantParam: "learning_rate"},
		{name: "NaN learning rate", cfg: TrainingConfig{LearningRate: math.NaN(), Iterations: 10, Batch: 1}, wantParam: "learning_rate"},
		{name: "zero iterations", cfg: TrainingConfig{LearningRate: 0.1, Iterations: 0, Batch: 1}, wantParam: "iterations"},
		{name: "zero batch", cfg: TrainingConfig{LearningRate: 0.1, Iterations: 10, Batch: 0}, wantParam: "batch"},
		{name: "batch above iterations is not an error", cfg: TrainingConfig{LearningRate: 0.1, Iterations: 5, Batch: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantParam == "" {
				assert.NoError(t, err)
				return
			}
			var cfgErr *errors.ConfigError
			require.True(t, errors.As(err, &cfgErr), "expected ConfigError, got %v", err)
			assert.Equal(t, tt.wantParam, cfgErr.ParamName)
		})
	}
}

func TestTrainingConfig_NormalizeAndPasses(t *testing.T) {
	cfg, clamped := TrainingConfig{LearningRate: 0.1, Iterations: 5, Batch: 50}.Normalize()
	assert.True(t, clamped)
	assert.Equal(t, 5, cfg.Batch)
	assert.Equal(t, 1, cfg.PassesPerBatch())

	cfg, clamped = TrainingConfig{LearningRate: 0.1, Iterations: 100, Batch: 7}.Normalize()
	assert.False(t, clamped)
	assert.Equal(t, 14, cfg.PassesPerBatch())
	assert.Equal(t, 98, cfg.TotalPasses())
}

func TestParameters(t *testing.T) {
	assert.Equal(t, Parameters{Theta0: 0, Theta1: 0}, DefaultParameters())
	assert.True(t, Parameters{Theta0: 6331.8, Theta1: -1106.0}.IsFinite())
	assert.NoError(t, Parameters{Theta0: 1, Theta1: 2}.Validate())

	bad := Parameters{Theta0: math.Inf(-1), Theta1: 0}
	assert.False(t, bad.IsFinite())
	var instab *errors.NumericalInstabilityError
	assert.True(t, errors.As(bad.Validate(), &instab))
}
