// SPDX-License-Identifier: EPL-2.0

// Command lissajous generates, saves, plays and plots Lissajous figures,
// draws a vectorscope of existing stereo files, and serves figures over
// HTTP.
//
// Usage:
//
//	lissajous generate [flags]
//	lissajous save   [flags] [file.wav]
//	lissajous play   [flags]
//	lissajous plot   [flags] [-o file]
//	lissajous scope  [flags] [-o file] input
//	lissajous convert [flags] input output.wav
//	lissajous serve  [flags]
//
// Every flag can also be set from a config file (--config) or a
// LISSAJOUS_* environment variable.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ik5/lissajous/internal/config"
	_ "github.com/ik5/lissajous/plot/vgplot"
)

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, env *env, args []string) error
	// extra defines command specific flags.
	extra func(fs *pflag.FlagSet)
}

// env is what a command runs with.
type env struct {
	cfg    *config.Config
	flags  *pflag.FlagSet
	logger *zap.Logger
	stdout io.Writer
}

var commands = []command{
	{name: "generate", usage: "print the figure's frame count, duration and peak", run: runGenerate},
	{name: "save", usage: "write the figure to a WAV file", run: runSave},
	{name: "play", usage: "play the figure on the default audio device", run: runPlay},
	{name: "plot", usage: "render the figure as an image or text", run: runPlot, extra: outputFlag},
	{name: "scope", usage: "render a stereo audio file as an X/Y trace", run: runScope, extra: outputFlag},
	{name: "convert", usage: "decode an audio file, resample it to --rate and write WAV", run: runConvert},
	{name: "serve", usage: "serve figures over HTTP", run: runServe},
}

func outputFlag(fs *pflag.FlagSet) {
	fs.StringP("output", "o", "", `output file, "-" for stdout`)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	os.Exit(code)
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: lissajous <command> [flags] [args]")
	fmt.Fprintln(w)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-9s %s\n", c.name, c.usage)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, `run "lissajous <command> --help" for the command's flags`)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	var cmd *command
	for i := range commands {
		if commands[i].name == args[0] {
			cmd = &commands[i]
		}
	}
	if cmd == nil {
		if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
			usage(stdout)
			return 0
		}
		fmt.Fprintf(stderr, "lissajous: unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}

	fs := config.Flags(cmd.name)
	fs.SetOutput(stderr)
	if cmd.extra != nil {
		cmd.extra(fs)
	}
	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintf(stderr, "lissajous: %v\n", err)
		return 2
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintf(stderr, "lissajous: %v\n", err)
		return 2
	}
	defer logger.Sync()

	e := &env{cfg: cfg, flags: fs, logger: logger.Named(cmd.name), stdout: stdout}
	if err := cmd.run(ctx, e, fs.Args()); err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		e.logger.Error("failed", zap.Error(err))
		fmt.Fprintf(stderr, "lissajous %s: %v\n", cmd.name, err)
		return 1
	}

	return 0
}
