package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/YuminosukeSato/ftlinear/core/model"
	"github.com/YuminosukeSato/ftlinear/pkg/errors"
	"github.com/YuminosukeSato/ftlinear/pkg/log"
	"github.com/YuminosukeSato/ftlinear/report"
	"github.com/YuminosukeSato/ftlinear/training"
)

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

func runTrain(ctx context.Context, a *app, args []string) error {
	cfg := model.DefaultTrainingConfig()
	fs := a.flagSet("train")
	fs.Float64Var(&cfg.LearningRate, "lr", cfg.LearningRate, "learning rate")
	fs.IntVar(&cfg.Iterations, "iterations", cfg.Iterations, "number of gradient descent passes")
	fs.IntVar(&cfg.Batch, "batch", cfg.Batch, "number of batches (progress rows and checkpoints)")
	reset := fs.Bool("reset", false, "start from theta0 = theta1 = 0 instead of the stored weights")
	quiet := fs.Bool("quiet", false, "do not print the progress table")
	history := fs.String("history", "", "write the metric history chart to this PNG file")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	return a.train(ctx, cfg, *reset, *quiet, *history)
}

func (a *app) train(ctx context.Context, cfg model.TrainingConfig, reset, quiet bool, historyPath string) error {
	var opts []training.Option
	if !quiet {
		opts = append(opts, training.WithSink(report.NewProgressTable(a.out)))
	}

	res, err := a.svc.Train(ctx, cfg, reset, opts...)
	if err != nil {
		if res != nil && errors.Is(err, context.Canceled) {
			fmt.Fprintf(a.out, "\nInterrupted after %d passes. The last completed batch is saved.\n", res.Passes)
		}
		return err
	}

	fmt.Fprintln(a.out)
	if res.BatchClamped {
		fmt.Fprintf(a.out, "Batch lowered from %d to %d: it cannot exceed iterations.\n", cfg.Batch, res.Config.Batch)
	}
	fmt.Fprintf(a.out, "Trained %d passes in %d batches.\n", res.Passes, res.Config.Batch)
	if !res.Params.IsFinite() {
		fmt.Fprintln(a.out, "The weights diverged. Lower the learning rate and train again with -reset.")
	}
	if err := report.WriteWeights(a.out, res.Params); err != nil {
		return err
	}

	if historyPath != "" {
		p, err := report.HistoryChart(res.History)
		if err != nil {
			return err
		}
		if err := report.SavePNG(historyPath, p); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Wrote %s\n", historyPath)
	}
	return nil
}

func runPredict(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("predict")
	km := fs.Float64("km", 0, "mileage in km (prompted when omitted)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "km" {
			set = true
		}
	})
	if !set {
		v, err := a.in.float("Enter the number of kilometers: ", 0, false, checkMileage)
		if err != nil {
			return err
		}
		*km = v
	} else if reason := mileageProblem(*km); reason != "" {
		return errors.NewConfigError("km", reason, *km)
	}
	return a.predict(*km)
}

func (a *app) predict(km float64) error {
	price, err := a.svc.PredictPrice(km)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "The estimated price is: %s\n", report.FormatPrice(price))
	return nil
}

func runReset(_ context.Context, a *app, args []string) error {
	if err := parseFlags(a.flagSet("reset"), args); err != nil {
		return err
	}
	return a.reset()
}

func (a *app) reset() error {
	if err := a.svc.ResetWeights(); err != nil {
		return err
	}
	return report.WriteWeights(a.out, model.DefaultParameters())
}

func runWeights(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("weights")
	asJSON := fs.Bool("json", false, "print the weights with the scaler statistics as JSON")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *asJSON {
		reg, _, err := a.svc.Model()
		if err != nil {
			return err
		}
		return reg.ExportJSON(a.out)
	}
	return a.showWeights()
}

func (a *app) showWeights() error {
	p, err := a.svc.Weights()
	if err != nil {
		return err
	}
	return report.WriteWeights(a.out, p)
}

func runCompare(_ context.Context, a *app, args []string) error {
	if err := parseFlags(a.flagSet("compare"), args); err != nil {
		return err
	}
	return a.compare()
}

func (a *app) compare() error {
	rows, err := a.svc.Compare()
	if err != nil {
		return err
	}
	return report.WriteComparison(a.out, rows)
}

func runPrecision(_ context.Context, a *app, args []string) error {
	if err := parseFlags(a.flagSet("precision"), args); err != nil {
		return err
	}
	return a.precision()
}

func (a *app) precision() error {
	reg, ds, err := a.svc.Model()
	if err != nil {
		return err
	}
	r2, err := reg.Score(ds)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "The model's precision (R²) is: %s%%\n", report.PrecisionPercent(r2))
	return nil
}

func runEvaluate(_ context.Context, a *app, args []string) error {
	if err := parseFlags(a.flagSet("evaluate"), args); err != nil {
		return err
	}
	ev, err := a.svc.Evaluate()
	if err != nil {
		return err
	}
	return report.WriteEvaluation(a.out, ev)
}

func runPlot(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("plot")
	out := fs.String("o", "regression.png", "output PNG file")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	return a.plot(*out)
}

func (a *app) plot(path string) error {
	reg, ds, err := a.svc.Model()
	if err != nil {
		return err
	}
	p, err := report.RegressionChart(ds, reg)
	if err != nil {
		return err
	}
	if err := report.SavePNG(path, p); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Wrote %s (%s)\n", path, reg)
	a.logger.Info("Chart written", log.PathKey, path)
	return nil
}
