// Package ftlinear predicts a car's price from its mileage with a
// univariate linear regression trained by batch gradient descent.
//
// The mileage is standardized with the mean and population standard
// deviation of the training data, and the hypothesis
//
//	price = theta1 * (km - mean) / std + theta0
//
// is fitted by full-batch gradient descent with simultaneous updates. The
// two parameters are the only state kept between runs; they live in a
// two-field CSV record and are saved after every completed batch.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/ftlinear/core/model"
//	    "github.com/YuminosukeSato/ftlinear/storage/csvstore"
//	    "github.com/YuminosukeSato/ftlinear/training"
//	)
//
//	func main() {
//	    svc := training.NewService(
//	        csvstore.NewDatasetFile("data.csv"),
//	        csvstore.NewWeightFile("weights.csv"),
//	    )
//
//	    cfg := model.TrainingConfig{LearningRate: 0.1, Iterations: 1000, Batch: 10}
//	    if _, err := svc.Train(context.Background(), cfg, true); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    price, err := svc.PredictPrice(42000)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("%.0f\n", price)
//	}
//
// # Packages
//
//   - core/model: records, datasets, parameters, training configuration, store contracts
//   - preprocessing: z-score scaler
//   - metrics: regression metrics on gonum vectors (MSE, MAE, R², accuracy)
//   - linear: hypothesis, diagnostic metric, R², gradient descent, least squares reference
//   - training: batched training session, progress sinks, Service entry points
//   - storage/csvstore: CSV dataset and atomic CSV weight stores
//   - report: terminal tables, live progress table, PNG charts
//   - pkg/errors: error kinds and warnings on cockroachdb/errors
//   - pkg/log: structured logging on zerolog
//
// The ftlr command (cmd/ftlr) exposes all of this as subcommands and as an
// interactive menu.
//
// # Diagnostic metric
//
// linear.MeanSquaredError, which is reported after every batch, returns the
// mean absolute error. The name is kept so that reported values stay
// comparable with earlier runs; linear.SquaredError returns the squared one.
package ftlinear
