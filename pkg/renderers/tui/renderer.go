package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-formrows/components/places"
	"github.com/goliatone/go-formrows/pkg/model"
	"github.com/goliatone/go-formrows/pkg/record"
	"github.com/goliatone/go-formrows/pkg/render"
	"github.com/goliatone/go-formrows/pkg/rows"
)

const dateLayout = "2006-01-02"

// Renderer implements render.Renderer for terminal sessions. Instead of
// markup it walks the user through adding rows to the editor and returns the
// recomputed hidden value.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	maxRows      int
	theme        Theme
	logger       *slog.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       NewSurveyDriver(nil),
		outputFormat: OutputFormatJSON,
		logger:       slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unknown output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render lists the existing rows, prompts for new ones until the user stops,
// and serializes the extracted editor value.
func (r *Renderer) Render(ctx context.Context, editor *rows.Editor, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if editor == nil {
		return nil, errors.New("tui: editor is nil")
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	label := firstNonEmpty(opts.Label, editor.RowTemplate().Label, editor.Name())
	if err := r.summarize(ctx, editor, label, render.MapErrorPayload(editor.Name(), opts.Errors)); err != nil {
		return nil, err
	}

	added := 0
	for r.maxRows == 0 || added < r.maxRows {
		more, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Add a %s row?", strings.ToLower(label)),
			Default: editor.Len() == 0,
		})
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
		if err := r.PromptRow(ctx, editor); err != nil {
			return nil, err
		}
		added++
	}

	value := editor.Extract()
	r.logger.Debug("tui session finished", "editor", editor.Name(), "added", added, "rows", editor.Len())
	return r.serialize(editor, value)
}

// PromptRow appends one blank row and fills its controls in template order.
// Choice controls are applied through the editor so dependent controls (the
// subthemes of a theme) refresh before they are asked.
func (r *Renderer) PromptRow(ctx context.Context, editor *rows.Editor) error {
	row := editor.AppendBlank("")
	cfg := editor.Config()
	for _, field := range editor.RowTemplate().Fields {
		name := cfg.InputName(field.Name)
		if group := row.List(name); group != nil {
			items, err := r.promptList(ctx, field)
			if err != nil {
				return err
			}
			group.Items = append(group.Items, items...)
			continue
		}
		ctl := row.Control(name)
		if ctl == nil {
			continue
		}
		if err := r.promptControl(ctx, editor, row, ctl); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) promptControl(ctx context.Context, editor *rows.Editor, row *rows.Row, ctl *rows.Control) error {
	switch ctl.Kind {
	case rows.ControlSelect:
		value, err := r.promptChoice(ctx, ctl)
		if err != nil {
			return err
		}
		editor.Change(row.ID, ctl.Name, value)
	case rows.ControlMultiSelect:
		if len(ctl.Options) == 0 {
			return nil
		}
		idx, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message:  displayLabel(ctl.Field),
			Options:  optionLabels(ctl.Options),
			Help:     ctl.Field.Description,
			PageSize: 12,
		})
		if err != nil {
			return err
		}
		ctl.Selected = valuesFromIndices(ctl.Options, idx)
	default:
		value, err := r.promptText(ctx, ctl.Field, ctl.Localized, ctl.Lang)
		if err != nil {
			return err
		}
		ctl.Value = value
	}
	return nil
}

func (r *Renderer) promptChoice(ctx context.Context, ctl *rows.Control) (string, error) {
	if len(ctl.Options) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoOptions, ctl.Name)
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      displayLabel(ctl.Field),
		Options:      optionLabels(ctl.Options),
		DefaultIndex: -1,
		Help:         ctl.Field.Description,
		PageSize:     12,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(ctl.Options) {
		return "", nil
	}
	return ctl.Options[idx].Value, nil
}

func (r *Renderer) promptText(ctx context.Context, field model.Field, localized bool, lang string) (string, error) {
	message := displayLabel(field)
	if localized && lang != "" {
		message = fmt.Sprintf("%s [%s]", message, lang)
	}
	if strings.EqualFold(field.UIHints["widget"], "textarea") {
		value, err := r.driver.TextArea(ctx, TextAreaConfig{Message: message, Help: displayHelp(field)})
		return strings.TrimSpace(value), err
	}
	value, err := r.driver.Input(ctx, InputConfig{
		Message:   message,
		Help:      displayHelp(field),
		Validator: validatorFor(field),
	})
	if err != nil {
		return "", err
	}
	return normalizeInput(field, value), nil
}

// promptList asks for items until an empty answer.
func (r *Renderer) promptList(ctx context.Context, field model.Field) ([]string, error) {
	var items []string
	for {
		value, err := r.driver.Input(ctx, InputConfig{
			Message:   fmt.Sprintf("%s #%d (empty to finish)", displayLabel(field), len(items)+1),
			Help:      displayHelp(field),
			Validator: validatorFor(field),
		})
		if err != nil {
			return nil, err
		}
		value = normalizeInput(field, value)
		if value == "" {
			return items, nil
		}
		items = append(items, value)
	}
}

func (r *Renderer) summarize(ctx context.Context, editor *rows.Editor, label string, mapping render.ErrorMapping) error {
	if err := r.info(ctx, fmt.Sprintf("%s: %d row(s)", label, editor.Len())); err != nil {
		return err
	}
	for _, msg := range mapping.Editor {
		if err := r.fail(ctx, msg); err != nil {
			return err
		}
	}
	records := editor.Records()
	aligned := len(records) == editor.Len()
	for idx, row := range editor.Rows() {
		line := fmt.Sprintf("  %d.", idx+1)
		if aligned {
			line = fmt.Sprintf("%s %s", line, summarizeRecord(records[idx], editor.Lang()))
		}
		if row.HasClass(rows.ErrorClass) {
			line += " (!)"
		}
		if err := r.info(ctx, line); err != nil {
			return err
		}
		for _, msg := range mapping.RowMessages(idx) {
			if err := r.fail(ctx, "     "+msg); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) fail(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.ErrorPrefix+msg)
}

func (r *Renderer) serialize(editor *rows.Editor, value string) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(url.Values{editor.Name(): {value}}.Encode()), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		for idx, rec := range editor.Records() {
			fmt.Fprintf(&b, "%d. %s\n", idx+1, summarizeRecord(rec, editor.Lang()))
		}
		return []byte(b.String()), nil
	default:
		return []byte(value), nil
	}
}

func validatorFor(field model.Field) func(string) error {
	switch strings.ToLower(field.Format) {
	case "date":
		return func(raw string) error {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				return nil
			}
			if _, err := time.Parse(dateLayout, raw); err != nil {
				return errors.New("expected a date as YYYY-MM-DD")
			}
			return nil
		}
	case "url":
		return func(raw string) error {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				return nil
			}
			u, err := url.Parse(raw)
			if err != nil || u.Scheme == "" || u.Host == "" {
				return errors.New("expected an absolute URL")
			}
			return nil
		}
	case "geonames":
		return func(raw string) error {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				return nil
			}
			if _, ok := places.NormalizeURL(raw); !ok {
				return errors.New("expected a GeoNames id or URL")
			}
			return nil
		}
	}
	return nil
}

func normalizeInput(field model.Field, raw string) string {
	value := strings.TrimSpace(raw)
	if strings.EqualFold(field.Format, "geonames") {
		if normalized, ok := places.NormalizeURL(value); ok {
			return normalized
		}
	}
	return value
}

func summarizeRecord(rec record.Record, lang string) string {
	parts := make([]string, 0, len(rec))
	for _, key := range rec.Keys() {
		if text := describeValue(rec[key], lang); text != "" {
			parts = append(parts, key+"="+text)
		}
	}
	if len(parts) == 0 {
		return "(empty)"
	}
	return strings.Join(parts, ", ")
}

func describeValue(value any, lang string) string {
	switch v := value.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, " ")
	case record.LocalizedText:
		if text, ok := v[lang]; ok {
			return text
		}
		langs := make([]string, 0, len(v))
		for code := range v {
			langs = append(langs, code)
		}
		sort.Strings(langs)
		texts := make([]string, 0, len(langs))
		for _, code := range langs {
			texts = append(texts, v[code])
		}
		return strings.Join(texts, " / ")
	case record.Record:
		return "{" + summarizeRecord(v, lang) + "}"
	case map[string]any:
		return "{" + summarizeRecord(record.Record(v), lang) + "}"
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			items = append(items, describeValue(item, lang))
		}
		return strings.Join(items, " ")
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func displayHelp(field model.Field) string {
	if field.Description != "" {
		return field.Description
	}
	return field.Placeholder
}

func optionLabels(options []model.Option) []string {
	out := make([]string, len(options))
	for i, opt := range options {
		out[i] = firstNonEmpty(strings.TrimSpace(opt.Label), opt.Value)
	}
	return out
}

func valuesFromIndices(options []model.Option, indices []int) []string {
	out := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(options) {
			out = append(out, options[idx].Value)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
