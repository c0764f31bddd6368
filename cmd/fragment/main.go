package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/goliatone/go-fragment/pkg/processor"
)

// CLI is the top-level command-line interface.
type CLI struct {
	LogLevel string `help:"Log level" name:"log-level" default:"warn" enum:"debug,info,warn,error"`

	Render   renderCmd   `cmd:"" help:"Render a template with values"`
	Describe describeCmd `cmd:"" help:"Print the part descriptors of a template"`
}

// env carries what commands need besides their own flags.
type env struct {
	ctx      context.Context
	logger   *slog.Logger
	registry *processor.Registry
	stdin    io.Reader
	stdout   io.Writer
	prompter prompter
}

func main() {
	var cli CLI
	ktx := kong.Parse(&cli,
		kong.Name("fragment"),
		kong.Description("Compile {{key}} templates and render them with values."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true, Summary: true}),
	)

	e := &env{
		ctx:      context.Background(),
		logger:   newLogger(os.Stderr, cli.LogLevel),
		registry: processor.NewDefaultRegistry(),
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		prompter: surveyPrompter{},
	}
	ktx.FatalIfErrorf(ktx.Run(e))
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
