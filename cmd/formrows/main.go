package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/goliatone/go-formrows/pkg/renderers/tui"
)

// Globals are shared by every subcommand.
type Globals struct {
	Lang      string   `help:"Language used for localized values" default:"it"`
	ConfigDir string   `help:"Directory with editor configuration overrides (YAML or JSON)" type:"existingdir"`
	Countries []string `help:"ISO country codes the place lookup is limited to" default:"IT"`
	Debug     bool     `help:"Enable debug logging"`
}

// CLI is the formrows command tree.
type CLI struct {
	Globals `embed:""`

	NormalizeURL normalizeURLCmd `cmd:"" name:"normalize-url" help:"Print the canonical GeoNames URL for ids or place URLs"`
	Render       renderCmd       `cmd:"" help:"Render an editor as HTML for a stored value"`
	Extract      extractCmd      `cmd:"" help:"Decode a posted form and print the recomputed hidden value"`
	Add          addCmd          `cmd:"" help:"Add rows to an editor value interactively"`
}

// env carries the process streams so commands can be driven from tests.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	driver tui.PromptDriver
	logger *slog.Logger
}

func main() {
	e := &env{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	if err := run(os.Args[1:], e); err != nil {
		fmt.Fprintln(os.Stderr, "formrows:", err)
		os.Exit(1)
	}
}

func run(args []string, e *env) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("formrows"),
		kong.Description("Render, decode and edit repeated-row metadata fields."),
		kong.Writers(e.stdout, e.stderr),
		kong.UsageOnError(),
	)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(e.stderr, &slog.HandlerOptions{Level: level}))
	}
	if e.driver == nil {
		e.driver = tui.NewSurveyDriver(e.stderr)
	}

	return kctx.Run(&cli.Globals, e)
}
