// Command ftlr trains and queries a mileage → price linear regression.
//
//	ftlr train -lr 0.1 -iterations 1000 -batch 10
//	ftlr predict -km 42000
//	ftlr menu
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"

	"github.com/YuminosukeSato/ftlinear/pkg/errors"
	"github.com/YuminosukeSato/ftlinear/pkg/log"
	"github.com/YuminosukeSato/ftlinear/storage/csvstore"
	"github.com/YuminosukeSato/ftlinear/training"
)

// app holds what every command needs. There is no other process state.
type app struct {
	in     *prompter
	out    io.Writer
	errOut io.Writer

	data    *csvstore.DatasetFile
	weights *csvstore.WeightFile
	svc     *training.Service
	logger  log.Logger
}

type command struct {
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"train":     {"train the model by batch gradient descent", runTrain},
		"predict":   {"predict the price for a mileage", runPredict},
		"reset":     {"reset the weights to 0", runReset},
		"weights":   {"show the stored weights", runWeights},
		"compare":   {"compare predictions with the dataset", runCompare},
		"precision": {"show R² as a percentage", runPrecision},
		"evaluate":  {"show all metrics and the least squares optimum", runEvaluate},
		"plot":      {"write the dataset and regression line as a PNG", runPlot},
		"menu":      {"interactive menu", runMenu},
	}
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		// 2回目の割り込みで即座に終了する
		<-ctx.Done()
		stop()
	}()

	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return
	}
	fmt.Fprintln(os.Stderr, "ftlr:", err)
	stop()
	os.Exit(exitCode(err))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, rest, err := parseGlobal(args, stderr)
	if err != nil {
		return err
	}
	if err := log.Setup(opts.logConfig(stderr)); err != nil {
		return err
	}

	name := "menu"
	if len(rest) > 0 {
		name, rest = rest[0], rest[1:]
	}
	cmd, ok := commands[name]
	if !ok {
		return errors.NewConfigError("command", "unknown command, run ftlr -h", name)
	}

	a := newApp(opts, stdin, stdout, stderr)
	a.logger.Debug("Command started", log.OperationKey, name)
	return cmd.run(ctx, a, rest)
}

func newApp(opts globalOptions, stdin io.Reader, stdout, stderr io.Writer) *app {
	data := csvstore.NewDatasetFile(opts.dataPath)
	weights := csvstore.NewWeightFile(opts.weightsPath)
	logger := log.GetLoggerWithName("ftlr")
	return &app{
		in:      newPrompter(bufio.NewReader(stdin), stdout),
		out:     stdout,
		errOut:  stderr,
		data:    data,
		weights: weights,
		svc:     training.NewService(data, weights, training.WithServiceLogger(log.GetLoggerWithName("training"))),
		logger:  logger,
	}
}

// parseFlags turns flag errors other than -h into a ConfigError.
func parseFlags(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return errors.NewConfigError(fs.Name(), err.Error(), args)
}

// exitCode is 2 for usage and configuration errors, 130 for an interrupt
// and 1 otherwise.
func exitCode(err error) int {
	var cfgErr *errors.ConfigError
	switch {
	case errors.As(err, &cfgErr):
		return 2
	case errors.Is(err, context.Canceled):
		return 130
	default:
		return 1
	}
}
