package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/goliatone/go-formrows/components/places"
	"github.com/goliatone/go-formrows/pkg/orchestrator"
	"github.com/goliatone/go-formrows/pkg/render"
	"github.com/goliatone/go-formrows/pkg/renderers/tui"
	"github.com/goliatone/go-formrows/pkg/renderers/vanilla"
)

type normalizeURLCmd struct {
	Values []string `arg:"" name:"value" help:"GeoNames ids or place URLs"`
}

func (c *normalizeURLCmd) Run(_ *Globals, e *env) error {
	invalid := 0
	for _, raw := range c.Values {
		canonical, ok := places.NormalizeURL(raw)
		if !ok {
			invalid++
			e.logger.Warn("not a GeoNames place", "value", raw)
			continue
		}
		fmt.Fprintln(e.stdout, canonical)
	}
	if invalid > 0 {
		return fmt.Errorf("%d value(s) could not be normalized", invalid)
	}
	return nil
}

// ValueSource reads the stored editor value from a flag or a file.
type ValueSource struct {
	Value     string `help:"Stored editor value (JSON array or legacy notation)"`
	ValueFile string `help:"Read the stored editor value from a file" type:"existingfile"`
}

func (v ValueSource) read() (string, error) {
	if v.ValueFile == "" {
		return v.Value, nil
	}
	raw, err := os.ReadFile(v.ValueFile)
	if err != nil {
		return "", fmt.Errorf("read value: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

type renderCmd struct {
	ValueSource `embed:""`

	Editor string `arg:"" help:"Editor key, e.g. conforms_to"`
	Action string `help:"Wrap the editor in a form posting to this action"`
	Output string `short:"o" help:"Output file (stdout if empty)" type:"path"`
}

func (c *renderCmd) Run(g *Globals, e *env) error {
	value, err := c.read()
	if err != nil {
		return err
	}
	gen, err := newOrchestrator(g, e, nil)
	if err != nil {
		return err
	}
	out, err := gen.Generate(context.Background(), orchestrator.Request{
		Editor:        c.Editor,
		Value:         value,
		Lang:          g.Lang,
		RenderOptions: render.RenderOptions{Action: c.Action},
	})
	if err != nil {
		return err
	}
	return writeOutput(e, c.Output, out)
}

type extractCmd struct {
	ValueSource `embed:""`

	Editor  string `arg:"" help:"Editor key, e.g. conforms_to"`
	Form    string `help:"URL-encoded form body; read from stdin when empty"`
	Records bool   `help:"Print the extracted records indented instead of the hidden value"`
}

func (c *extractCmd) Run(g *Globals, e *env) error {
	value, err := c.read()
	if err != nil {
		return err
	}
	body := c.Form
	if body == "" {
		raw, err := io.ReadAll(e.stdin)
		if err != nil {
			return fmt.Errorf("read form: %w", err)
		}
		body = strings.TrimSpace(string(raw))
	}
	form, err := url.ParseQuery(body)
	if err != nil {
		return fmt.Errorf("parse form: %w", err)
	}

	gen, err := newOrchestrator(g, e, nil)
	if err != nil {
		return err
	}
	result, err := gen.Submit(context.Background(), orchestrator.Request{
		Editor: c.Editor,
		Value:  value,
		Lang:   g.Lang,
		Form:   form,
	})
	if err != nil {
		return err
	}
	if result.Action.Kind != "" {
		e.logger.Debug("applied editing action", "editor", c.Editor, "action", result.Action.Kind)
	}
	if !c.Records {
		_, err = fmt.Fprintln(e.stdout, result.Value)
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(result.Value), "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = e.stdout.Write(buf.Bytes())
	return err
}

type addCmd struct {
	ValueSource `embed:""`

	Editor  string `arg:"" help:"Editor key, e.g. creator"`
	Format  string `help:"Output format" enum:"json,form,pretty" default:"json"`
	MaxRows int    `help:"Stop after adding this many rows (0 = ask until declined)" default:"0"`
	Output  string `short:"o" help:"Output file (stdout if empty)" type:"path"`
}

func (c *addCmd) Run(g *Globals, e *env) error {
	value, err := c.read()
	if err != nil {
		return err
	}
	prompter, err := tui.New(
		tui.WithPromptDriver(e.driver),
		tui.WithOutputFormat(tui.OutputFormat(c.Format)),
		tui.WithMaxRows(c.MaxRows),
		tui.WithTheme(tui.Theme{ErrorPrefix: "! "}),
		tui.WithLogger(e.logger),
	)
	if err != nil {
		return err
	}
	gen, err := newOrchestrator(g, e, prompter)
	if err != nil {
		return err
	}
	out, err := gen.Generate(context.Background(), orchestrator.Request{
		Editor:   c.Editor,
		Value:    value,
		Lang:     g.Lang,
		Renderer: prompter.Name(),
	})
	if errors.Is(err, tui.ErrAborted) {
		return errors.New("aborted, nothing written")
	}
	if err != nil {
		return err
	}
	if c.Format != "pretty" {
		out = append(out, '\n')
	}
	return writeOutput(e, c.Output, out)
}

// newOrchestrator wires the vanilla renderer, plus extra when given, and the
// place widget limited to the configured countries.
func newOrchestrator(g *Globals, e *env, extra render.Renderer) (*orchestrator.Orchestrator, error) {
	registry := render.NewRegistry()
	html, err := vanilla.New(vanilla.WithLogger(e.logger))
	if err != nil {
		return nil, err
	}
	registry.MustRegister(html)
	if extra != nil {
		if err := registry.Register(extra); err != nil {
			return nil, err
		}
	}

	widget, err := places.New(places.WithCountries(g.Countries...)).Widget()
	if err != nil {
		return nil, err
	}

	opts := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(html.Name()),
		orchestrator.WithPlaces(widget),
		orchestrator.WithLogger(e.logger),
	}
	if g.ConfigDir != "" {
		opts = append(opts, orchestrator.WithConfigFS(os.DirFS(g.ConfigDir)))
	}
	return orchestrator.New(opts...), nil
}

func writeOutput(e *env, path string, out []byte) error {
	if path == "" {
		_, err := e.stdout.Write(out)
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	e.logger.Info("output written", "path", path, "bytes", len(out))
	return nil
}
