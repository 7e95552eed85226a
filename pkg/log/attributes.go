// Package log defines standard attribute keys for training and inference.
//
// The keys follow a hierarchical naming convention (e.g. "ml.operation",
// "training.iteration") so log lines can be filtered the same way across
// packages.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the model type. Always "LinearRegression" here.
	ModelNameKey = "model.name"

	// EstimatorIDKey identifies a single training session (a UUID).
	EstimatorIDKey = "estimator.id"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "score", "reset"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package emitted the record.
	ComponentKey = "ml.component"
)

// Data Shape
const (
	// SamplesKey indicates the number of records in the dataset.
	SamplesKey = "data.samples"

	// PathKey is the file backing a store.
	PathKey = "data.path"
)

// Training progress and metrics
const (
	// BatchKey is the 1-based index of a completed training batch (0 is the baseline).
	BatchKey = "training.batch"

	// BatchesKey is the number of batches in the session.
	BatchesKey = "training.batches"

	// IterationKey is the cumulative number of gradient descent passes.
	IterationKey = "training.iteration"

	// LossKey records the diagnostic metric reported after a batch.
	LossKey = "metrics.loss"

	// R2ScoreKey records the coefficient of determination.
	R2ScoreKey = "metrics.r2_score"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Hyperparameters
const (
	// LearningRateKey records the learning rate of gradient descent.
	LearningRateKey = "hyperparams.learning_rate"

	// IterationsKey records the requested number of passes.
	IterationsKey = "hyperparams.iterations"
)

// Parameters
const (
	Theta0Key = "params.theta0"
	Theta1Key = "params.theta1"
)

// Error context
const (
	// StacktraceKey contains the stack trace of a logged error.
	StacktraceKey = "stacktrace"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"
	OperationReset   = "reset"
)
