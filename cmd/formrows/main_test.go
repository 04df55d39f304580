package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formrows/pkg/renderers/tui"
)

type scriptedDriver struct {
	confirm []bool
	inputs  []string
}

func (d *scriptedDriver) Input(context.Context, tui.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	val := d.inputs[0]
	d.inputs = d.inputs[1:]
	return val, nil
}

func (d *scriptedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	if len(d.confirm) == 0 {
		return false, tui.ErrAborted
	}
	val := d.confirm[0]
	d.confirm = d.confirm[1:]
	return val, nil
}

func (d *scriptedDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	return -1, errors.New("no select scripted")
}

func (d *scriptedDriver) MultiSelect(context.Context, tui.SelectConfig) ([]int, error) {
	return nil, errors.New("no multiselect scripted")
}

func (d *scriptedDriver) TextArea(context.Context, tui.TextAreaConfig) (string, error) {
	return "", errors.New("no textarea scripted")
}

func (d *scriptedDriver) Info(context.Context, string) error { return nil }

func newTestEnv(stdin string, driver tui.PromptDriver) (*env, *bytes.Buffer) {
	var stdout bytes.Buffer
	return &env{
		stdin:  strings.NewReader(stdin),
		stdout: &stdout,
		stderr: io.Discard,
		driver: driver,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, &stdout
}

func TestNormalizeURL(t *testing.T) {
	e, stdout := newTestEnv("", nil)
	if err := run([]string{"normalize-url", "3169070", "https://geonames.org/2643743/london.html"}, e); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "http://www.geonames.org/3169070\nhttp://www.geonames.org/2643743\n"
	if diff := cmp.Diff(want, stdout.String()); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}

	e, _ = newTestEnv("", nil)
	if err := run([]string{"normalize-url", "rome"}, e); err == nil {
		t.Fatalf("expected invalid value to fail")
	}
}

func TestExtract_ReadsFormFromStdin(t *testing.T) {
	form := url.Values{
		"creator[__rows]":                {"", "0"},
		"creator[0][creator_name]":       {"Ada"},
		"creator[0][creator_identifier]": {"IT-1"},
	}
	e, stdout := newTestEnv(form.Encode(), nil)
	if err := run([]string{"extract", "creator"}, e); err != nil {
		t.Fatalf("run: %v", err)
	}

	var got []map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", stdout.String(), err)
	}
	want := []map[string]any{{
		"creator_name":       map[string]any{"it": "Ada"},
		"creator_identifier": "IT-1",
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_WritesOutputFile(t *testing.T) {
	dir := t.TempDir()
	valueFile := filepath.Join(dir, "value.json")
	if err := os.WriteFile(valueFile, []byte(`[{"identifier":"ISO-19115"}]`), 0o644); err != nil {
		t.Fatalf("write value: %v", err)
	}
	output := filepath.Join(dir, "out.html")

	e, stdout := newTestEnv("", nil)
	if err := run([]string{"render", "conforms_to", "--value-file", valueFile, "-o", output}, e); err != nil {
		t.Fatalf("run: %v", err)
	}
	if stdout.Len() != 0 {
		t.Fatalf("expected nothing on stdout, got %q", stdout.String())
	}
	html, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	for _, want := range []string{`data-module="conforms-to"`, `value="ISO-19115"`} {
		if !strings.Contains(string(html), want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
}

func TestAdd_AppendsPromptedRow(t *testing.T) {
	driver := &scriptedDriver{
		confirm: []bool{true, false},
		inputs:  []string{"Grace", "IT-2"},
	}
	e, stdout := newTestEnv("", driver)
	stored := `[{"creator_name":{"it":"Ada"},"creator_identifier":"IT-1"}]`
	if err := run([]string{"add", "creator", "--value", stored}, e); err != nil {
		t.Fatalf("run: %v", err)
	}

	var got []map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", stdout.String(), err)
	}
	want := []map[string]any{
		{"creator_name": map[string]any{"it": "Ada"}, "creator_identifier": "IT-1"},
		{"creator_name": map[string]any{"it": "Grace"}, "creator_identifier": "IT-2"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestAdd_AbortWritesNothing(t *testing.T) {
	e, stdout := newTestEnv("", &scriptedDriver{})
	err := run([]string{"add", "creator"}, e)
	if err == nil || !strings.Contains(err.Error(), "aborted") {
		t.Fatalf("expected abort error, got %v", err)
	}
	if stdout.Len() != 0 {
		t.Fatalf("expected no output, got %q", stdout.String())
	}
}

func TestRun_UnknownEditor(t *testing.T) {
	e, _ := newTestEnv("", nil)
	if err := run([]string{"render", "unknown"}, e); err == nil {
		t.Fatalf("expected unknown editor to fail")
	}
}
