package main

import (
	"context"
	"fmt"
	"io"

	"github.com/YuminosukeSato/ftlinear/core/model"
	"github.com/YuminosukeSato/ftlinear/pkg/errors"
	"github.com/YuminosukeSato/ftlinear/report"
)

var menuOptions = []string{
	"Predict price",
	"Train model",
	"Reset weights",
	"Show weights",
	"Show comparison",
	"Show graph",
	"Show precision",
	"Show training parameters",
	"Edit training parameters",
	"Reset training parameters",
}

func runMenu(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("menu")
	chart := fs.String("o", "regression.png", "PNG file written by \"Show graph\"")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	return a.menu(ctx, *chart)
}

// menu loops until "q" or end of input. The training parameters live in
// this loop only; they are not persisted.
func (a *app) menu(ctx context.Context, chartPath string) error {
	cfg := model.DefaultTrainingConfig()

	for {
		if err := ctx.Err(); err != nil {
			return errors.WithStack(err)
		}

		fmt.Fprintln(a.out)
		if err := report.WriteMenu(a.out, menuOptions); err != nil {
			return err
		}
		choice, err := a.in.line("\nPick an option (q to quit)\n> ")
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out)

		switch choice {
		case "q", "quit", "exit":
			return nil
		case "1":
			err = a.menuPredict()
		case "2":
			err = a.train(ctx, cfg, false, false, "")
		case "3":
			err = a.reset()
		case "4":
			err = a.showWeights()
		case "5":
			err = a.compare()
		case "6":
			err = a.plot(chartPath)
		case "7":
			err = a.precision()
		case "8":
			err = report.WriteConfig(a.out, cfg)
		case "9":
			cfg, err = a.editConfig(cfg)
		case "10":
			cfg = model.DefaultTrainingConfig()
			fmt.Fprintln(a.out, "Training parameters were reset to default values.")
			fmt.Fprintln(a.out)
			err = report.WriteConfig(a.out, cfg)
		default:
			fmt.Fprintln(a.out, "Invalid option. Please try again.")
		}

		switch {
		case err == io.EOF:
			return nil
		case errors.Is(err, context.Canceled):
			return err
		case err != nil:
			a.logger.Debug("Menu action failed", "error", err.Error())
			fmt.Fprintln(a.out, "Error:", err)
		}

		if _, err := a.in.line("\nPress Enter to continue..."); err == io.EOF {
			return nil
		}
	}
}

func (a *app) menuPredict() error {
	km, err := a.in.float("Enter the number of kilometers: ", 0, false, checkMileage)
	if err != nil {
		return err
	}
	return a.predict(km)
}

// editConfig asks for each parameter; an empty answer keeps the current
// value. The result is validated before it replaces cfg.
func (a *app) editConfig(cfg model.TrainingConfig) (model.TrainingConfig, error) {
	next := cfg
	var err error

	fmt.Fprintf(a.out, "Current learning rate: %v\n", cfg.LearningRate)
	if next.LearningRate, err = a.in.float("New => ", cfg.LearningRate, true, checkLearningRate); err != nil {
		return cfg, err
	}
	fmt.Fprintf(a.out, "\nCurrent iterations: %d\n", cfg.Iterations)
	if next.Iterations, err = a.in.integer("New => ", cfg.Iterations); err != nil {
		return cfg, err
	}
	fmt.Fprintf(a.out, "\nCurrent batch: %d\n", cfg.Batch)
	if next.Batch, err = a.in.integer("New => ", cfg.Batch); err != nil {
		return cfg, err
	}

	if err := next.Validate(); err != nil {
		return cfg, err
	}
	fmt.Fprintln(a.out)
	return next, report.WriteConfig(a.out, next)
}

