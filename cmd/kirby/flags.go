// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports --version, --verbose, --log-file, --config, and one optional file argument

package main

import (
	"flag"
	"fmt"
	"io"
)

type cliArgs struct {
	version bool
	verbose bool
	logFile string
	config  string
	file    string
}

func parseFlags(argv []string, stderr io.Writer) (cliArgs, error) {
	var args cliArgs

	fs := flag.NewFlagSet("kirby", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: kirby [flags] [file]")
		fs.PrintDefaults()
	}

	fs.BoolVar(&args.version, "version", false, "Show version and exit")
	fs.BoolVar(&args.verbose, "verbose", false, "Log at debug level")
	fs.StringVar(&args.logFile, "log-file", "", "Write logs to this file")
	fs.StringVar(&args.config, "config", "", "Read settings from this YAML file only")

	if err := fs.Parse(argv); err != nil {
		return cliArgs{}, err
	}
	switch rest := fs.Args(); len(rest) {
	case 0:
	case 1:
		args.file = rest[0]
	default:
		return cliArgs{}, fmt.Errorf("expected at most one file, got %d", len(rest))
	}
	return args, nil
}
