package model

import (
	"math"

	"github.com/YuminosukeSato/ftlinear/pkg/errors"
)

// Defaults used by the CLI and the interactive menu.
const (
	DefaultLearningRate = 0.1
	DefaultIterations   = 100
	DefaultBatch        = 10
)

// TrainingConfig holds the gradient descent hyperparameters and the number
// of batches (progress/checkpoint points) the passes are split into.
type TrainingConfig struct {
	LearningRate float64 `json:"learning_rate"`
	Iterations   int     `json:"iterations"`
	Batch        int     `json:"batch"`
}

// DefaultTrainingConfig returns learning rate 0.1, 100 iterations, 10 batches.
func DefaultTrainingConfig() TrainingConfig {
	return TrainingConfig{
		LearningRate: DefaultLearningRate,
		Iterations:   DefaultIterations,
		Batch:        DefaultBatch,
	}
}

// Validate returns a ConfigError for non-positive or non-finite values.
func (c TrainingConfig) Validate() error {
	if math.IsNaN(c.LearningRate) || math.IsInf(c.LearningRate, 0) || c.LearningRate <= 0 {
		return errors.NewConfigError("learning_rate", "must be a positive finite number", c.LearningRate)
	}
	if c.Iterations <= 0 {
		return errors.NewConfigError("iterations", "must be positive", c.Iterations)
	}
	if c.Batch <= 0 {
		return errors.NewConfigError("batch", "must be positive", c.Batch)
	}
	return nil
}

// Normalize clamps Batch to Iterations when it is larger. The returned
// flag reports whether the clamp happened.
func (c TrainingConfig) Normalize() (TrainingConfig, bool) {
	if c.Batch > c.Iterations {
		c.Batch = c.Iterations
		return c, true
	}
	return c, false
}

// PassesPerBatch is Iterations / Batch; the remainder is dropped.
func (c TrainingConfig) PassesPerBatch() int {
	if c.Batch <= 0 {
		return 0
	}
	return c.Iterations / c.Batch
}

// TotalPasses is the number of passes a session actually performs.
func (c TrainingConfig) TotalPasses() int {
	return c.Batch * c.PassesPerBatch()
}
