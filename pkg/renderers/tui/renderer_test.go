package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formrows/pkg/fieldsets"
	"github.com/goliatone/go-formrows/pkg/model"
	"github.com/goliatone/go-formrows/pkg/render"
	"github.com/goliatone/go-formrows/pkg/rows"
	"github.com/goliatone/go-formrows/pkg/subthemes"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	textAreas    []string
	infoMessages []string
	validated    []string
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int
	textPos      int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	for s.inputPos < len(s.inputs) {
		val := s.inputs[s.inputPos]
		s.inputPos++
		if cfg.Validator != nil {
			if err := cfg.Validator(val); err != nil {
				s.validated = append(s.validated, val)
				continue
			}
		}
		return val, nil
	}
	return "", errors.New("no input scripted")
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, _ SelectConfig) ([]int, error) {
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func newEditor(t *testing.T, set rows.FieldSet, value string) *rows.Editor {
	t.Helper()
	editor, err := rows.New(set, rows.WithLang("it"))
	if err != nil {
		t.Fatalf("new editor: %v", err)
	}
	editor.Initialize(value)
	return editor
}

func decode(t *testing.T, raw []byte) []map[string]any {
	t.Helper()
	var out []map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return out
}

func TestRender_ConformsToRow(t *testing.T) {
	driver := &stubDriver{
		confirm:   []bool{true, false},
		inputs:    []string{"ISO-19115", "Metadati", "not a url", "https://example.org/doc", ""},
		textAreas: []string{"  Standard  "},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	editor := newEditor(t, fieldsets.NewConformsTo(), "")

	out, err := r.Render(context.Background(), editor, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := []map[string]any{{
		"identifier":             "ISO-19115",
		"title":                  map[string]any{"it": "Metadati"},
		"description":            map[string]any{"it": "Standard"},
		"referenceDocumentation": []any{"https://example.org/doc"},
	}}
	if diff := cmp.Diff(want, decode(t, out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"not a url"}, driver.validated); diff != "" {
		t.Fatalf("validation mismatch (-want +got):\n%s", diff)
	}
	if editor.Value() != string(out) {
		t.Fatalf("expected editor value to be refreshed, got %q", editor.Value())
	}
}

func TestRender_ThemeRefreshesSubthemes(t *testing.T) {
	table, err := subthemes.NewTable(
		subthemes.Theme{ID: "AGRI", Subthemes: []subthemes.Subtheme{{URI: "urn:agri:1", Label: "one"}, {URI: "urn:agri:2", Label: "two"}}},
	)
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	driver := &stubDriver{
		confirm:   []bool{true, false},
		selectIdx: []int{0},
		multiIdx:  [][]int{{1}},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	editor := newEditor(t, fieldsets.NewTheme(table), "")

	out, err := r.Render(context.Background(), editor, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := []map[string]any{{"theme": "AGRI", "subthemes": []any{"urn:agri:2"}}}
	if diff := cmp.Diff(want, decode(t, out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_KeepsExistingRowsAndReportsErrors(t *testing.T) {
	driver := &stubDriver{confirm: []bool{false}}
	r, err := New(WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "! "}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	stored := `[{"temporal_start":"2020-01-01","temporal_end":"2019-01-01"}]`
	editor := newEditor(t, fieldsets.NewTemporalCoverage(), stored)

	out, err := r.Render(context.Background(), editor, render.RenderOptions{
		Errors: map[string][]string{"temporal_coverage.0.temporal_end": {"end before start"}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff(decode(t, []byte(stored)), decode(t, out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}

	joined := strings.Join(driver.infoMessages, "\n")
	for _, want := range []string{"Temporal coverage: 1 row(s)", "temporal_end=2019-01-01", "! ", "end before start"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in messages:\n%s", want, joined)
		}
	}
}

func TestRender_DateValidationAndMaxRows(t *testing.T) {
	driver := &stubDriver{
		confirm: []bool{true, true},
		inputs:  []string{"01/02/2020", "2020-02-01", ""},
	}
	r, err := New(WithPromptDriver(driver), WithMaxRows(1), WithOutputFormat(OutputFormatFormURLEncoded))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	editor := newEditor(t, fieldsets.NewTemporalCoverage(), "")

	out, err := r.Render(context.Background(), editor, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if driver.confirmPos != 1 {
		t.Fatalf("expected a single add prompt, got %d", driver.confirmPos)
	}
	want := "temporal_coverage=%5B%7B%22temporal_end%22%3A%22%22%2C%22temporal_start%22%3A%222020-02-01%22%7D%5D"
	if string(out) != want {
		t.Fatalf("unexpected form output %q", out)
	}
	if r.ContentType() != "application/x-www-form-urlencoded" {
		t.Fatalf("unexpected content type %q", r.ContentType())
	}
}

func TestRender_GeonamesInputIsNormalized(t *testing.T) {
	if got := normalizeInput(fieldWithFormat("geonames"), " https://geonames.org/3169070/rome.html "); got != "http://www.geonames.org/3169070" {
		t.Fatalf("unexpected normalized value %q", got)
	}
	validate := validatorFor(fieldWithFormat("geonames"))
	if err := validate("rome"); err == nil {
		t.Fatalf("expected invalid place to fail validation")
	}
	if err := validate(""); err != nil {
		t.Fatalf("empty input should pass: %v", err)
	}
}

func fieldWithFormat(format string) model.Field {
	return model.Field{Name: "place", Type: model.FieldTypeString, Format: format}
}

func TestRender_AbortPropagates(t *testing.T) {
	driver := &stubDriver{}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	editor := newEditor(t, fieldsets.NewCreator(), "")
	if _, err := r.Render(context.Background(), editor, render.RenderOptions{}); err == nil {
		t.Fatalf("expected error when the driver runs out of answers")
	}
	if _, err := r.Render(context.Background(), nil, render.RenderOptions{}); err == nil {
		t.Fatalf("expected error for nil editor")
	}
}

func TestNew_RejectsUnknownFormat(t *testing.T) {
	if _, err := New(WithOutputFormat("yaml")); err == nil {
		t.Fatalf("expected unknown output format to fail")
	}
}
