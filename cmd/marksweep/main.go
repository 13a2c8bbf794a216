// ABOUTME: Entry point of the marksweep command line tool
// ABOUTME: Wires configuration, logging and the demo, inspect and dumpconfig commands

package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/slog"

	"github.com/prateek/marksweep"
	"github.com/prateek/marksweep/internal/config"
	"github.com/prateek/marksweep/internal/logging"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	stackCapacityFlag = &cli.IntFlag{
		Name:  "stack-capacity",
		Usage: "maximum number of roots",
	}
	baselineFlag = &cli.IntFlag{
		Name:  "baseline-threshold",
		Usage: "live count that triggers the first collection",
	}
	maxObjectsFlag = &cli.IntFlag{
		Name:  "max-objects",
		Usage: "live value limit, 0 for unbounded",
	}
	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "debug, info, warn or error",
	}
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "disable coloured output",
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:    "marksweep",
		Usage:   "mark-and-sweep collector playground",
		Version: marksweep.Version,
		Flags: []cli.Flag{
			configFlag,
			stackCapacityFlag,
			baselineFlag,
			maxObjectsFlag,
			logLevelFlag,
			noColorFlag,
		},
		Commands: []*cli.Command{
			demoCommand,
			inspectCommand,
			dumpconfigCommand,
		},
	}
}

var dumpconfigCommand = &cli.Command{
	Name:   "dumpconfig",
	Usage:  "print the effective configuration as TOML",
	Action: dumpconfig,
}

func dumpconfig(ctx *cli.Context) error {
	cfg, err := settings(ctx)
	if err != nil {
		return err
	}
	return cfg.Write(ctx.App.Writer)
}

// settings loads the config file, if any, and applies flag overrides
func settings(ctx *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := ctx.String(configFlag.Name); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if ctx.IsSet(stackCapacityFlag.Name) {
		cfg.StackCapacity = ctx.Int(stackCapacityFlag.Name)
	}
	if ctx.IsSet(baselineFlag.Name) {
		cfg.BaselineThreshold = ctx.Int(baselineFlag.Name)
	}
	if ctx.IsSet(maxObjectsFlag.Name) {
		cfg.MaxObjects = ctx.Int(maxObjectsFlag.Name)
	}
	if ctx.IsSet(logLevelFlag.Name) {
		cfg.LogLevel = ctx.String(logLevelFlag.Name)
	}
	if ctx.Bool(noColorFlag.Name) {
		cfg.Color = false
	}
	return cfg, cfg.Validate()
}

// newLogger logs to stderr when running for real and to the app's error
// writer when it has been redirected
func newLogger(ctx *cli.Context, level slog.Level) *slog.Logger {
	var w io.Writer = ctx.App.ErrWriter
	if w == nil || w == os.Stderr {
		w = logging.Stderr()
	}
	return logging.New(w, level)
}

// fatalf reports a failed command and exits
func fatalf(format string, args ...interface{}) {
	w := io.MultiWriter(os.Stdout, os.Stderr)
	if runtime.GOOS == "windows" {
		w = os.Stdout
	} else {
		outf, _ := os.Stdout.Stat()
		errf, _ := os.Stderr.Stat()
		if outf != nil && errf != nil && os.SameFile(outf, errf) {
			w = os.Stderr
		}
	}
	fmt.Fprintf(w, "Fatal: "+format+"\n", args...)
	os.Exit(1)
}

func main() {
	if !logging.IsTerminal(os.Stdout) {
		color.NoColor = true
	}
	if err := newApp().Run(os.Args); err != nil {
		fatalf("%v", err)
	}
}
