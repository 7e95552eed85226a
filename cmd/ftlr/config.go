package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/YuminosukeSato/ftlinear/pkg/log"
	"github.com/YuminosukeSato/ftlinear/storage/csvstore"
)

// Environment variables providing defaults for the global flags.
const (
	envData      = "FTLR_DATA"
	envWeights   = "FTLR_WEIGHTS"
	envLogLevel  = "FTLR_LOG_LEVEL"
	envLogFormat = "FTLR_LOG_FORMAT"
)

type globalOptions struct {
	dataPath    string
	weightsPath string
	logLevel    string
	logFormat   string
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

// parseGlobal parses the flags in front of the subcommand and returns the
// remaining arguments.
func parseGlobal(args []string, stderr io.Writer) (globalOptions, []string, error) {
	var opts globalOptions

	fs := flag.NewFlagSet("ftlr", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.dataPath, "data", envOr(envData, csvstore.DefaultDatasetPath), "dataset CSV with km and price columns ($"+envData+")")
	fs.StringVar(&opts.weightsPath, "weights", envOr(envWeights, csvstore.DefaultWeightsPath), "weights CSV ($"+envWeights+")")
	fs.StringVar(&opts.logLevel, "log-level", envOr(envLogLevel, "warn"), "debug, info, warn or error ($"+envLogLevel+")")
	fs.StringVar(&opts.logFormat, "log-format", envOr(envLogFormat, string(log.FormatConsole)), "console or json ($"+envLogFormat+")")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: ftlr [global flags] <command> [flags]")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Commands:")
		for _, name := range commandNames() {
			fmt.Fprintf(stderr, "  %-10s %s\n", name, commands[name].summary)
		}
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Global flags:")
		fs.PrintDefaults()
	}

	if err := parseFlags(fs, args); err != nil {
		return opts, nil, err
	}
	return opts, fs.Args(), nil
}

func (o globalOptions) logConfig(stderr io.Writer) log.Config {
	return log.Config{
		Level:  o.logLevel,
		Format: log.Format(o.logFormat),
		Output: stderr,
	}
}
