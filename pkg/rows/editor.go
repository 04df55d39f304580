package rows

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/goliatone/go-formrows/pkg/model"
	"github.com/goliatone/go-formrows/pkg/record"
)

// Target identifies the element a remove control belongs to. Group and Item
// name a list item inside the row; an empty Group targets the row itself.
type Target struct {
	RowID string
	Group string
	Item  int
}

// Option customises an Editor.
type Option func(*Editor)

// WithLang sets the language used for localized controls.
func WithLang(lang string) Option {
	return func(e *Editor) {
		e.lang = strings.TrimSpace(lang)
	}
}

// WithErrorFlags marks row positions flagged by server-side validation.
func WithErrorFlags(flags map[int]bool) Option {
	return func(e *Editor) {
		e.flags = make(map[int]bool, len(flags))
		for idx, flagged := range flags {
			e.flags[idx] = flagged
		}
	}
}

// WithLogger overrides the logger. Nil keeps slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithBindings shares a bind registry between editors on the same page.
func WithBindings(bindings *Bindings) Option {
	return func(e *Editor) {
		if bindings != nil {
			e.bindings = bindings
		}
	}
}

// WithContainerIDs overrides the template and container element ids. Empty
// values keep the field set defaults.
func WithContainerIDs(templateID, containerID string) Option {
	return func(e *Editor) {
		if id := strings.TrimSpace(templateID); id != "" {
			e.cfg.TemplateID = id
		}
		if id := strings.TrimSpace(containerID); id != "" {
			e.cfg.ContainerID = id
		}
	}
}

// WithRemoveScope overrides what a remove control deletes.
func WithRemoveScope(scope RemoveScope) Option {
	return func(e *Editor) {
		if scope == RemoveItem || scope == RemoveRow {
			e.cfg.RemoveScope = scope
		}
	}
}

// WithDecorators adjusts the row template (labels, widget hints) before the
// template row is built.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(e *Editor) {
		e.decorators = append(e.decorators, decorators...)
	}
}

// Editor holds the rows of one repeatable-row widget and the hidden value
// they serialise into.
type Editor struct {
	set      FieldSet
	cfg      Config
	template *Row
	rows     []*Row
	value    string
	lang     string
	flags    map[int]bool
	logger   *slog.Logger
	bindings *Bindings
	seq      int

	blueprint  model.RowTemplate
	decorators []model.Decorator
}

// New constructs an editor for the given field set.
func New(set FieldSet, opts ...Option) (*Editor, error) {
	if set == nil {
		return nil, errors.New("rows: field set is required")
	}
	cfg := set.Config().WithDefaults()
	if cfg.Key == "" {
		return nil, errors.New("rows: field set key is required")
	}

	e := &Editor{
		set:    set,
		cfg:    cfg,
		logger: slog.Default(),
		value:  "[]",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	if e.bindings == nil {
		e.bindings = NewBindings()
	}
	e.blueprint = set.Template()
	for _, decorator := range e.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(&e.blueprint); err != nil {
			return nil, fmt.Errorf("rows: decorate %s template: %w", cfg.Key, err)
		}
	}
	e.template = newTemplateRow(e.cfg, e.blueprint)
	return e, nil
}

func (e *Editor) Name() string { return e.cfg.Key }

func (e *Editor) Config() Config { return e.cfg }

func (e *Editor) FieldSet() FieldSet { return e.set }

func (e *Editor) Lang() string { return e.lang }

// Value returns the current hidden input value.
func (e *Editor) Value() string { return e.value }

// RowTemplate returns the decorated blueprint the template row was built
// from, in field order.
func (e *Editor) RowTemplate() model.RowTemplate { return e.blueprint.Clone() }

// Template returns the template row. Callers must treat it as read-only.
func (e *Editor) Template() *Row { return e.template }

// Rows returns the visible rows in order.
func (e *Editor) Rows() []*Row {
	return slices.Clone(e.rows)
}

// Len returns the number of visible rows.
func (e *Editor) Len() int { return len(e.rows) }

// Row returns the visible row with the given id.
func (e *Editor) Row(id string) *Row {
	for _, row := range e.rows {
		if row.ID == id {
			return row
		}
	}
	return nil
}

// Flagged reports whether the row at index carries an external error flag.
func (e *Editor) Flagged(index int) bool {
	return e.flags[index]
}

// Initialize replaces the rows with one row per record decoded from value.
// Malformed values produce zero rows.
func (e *Editor) Initialize(value string) {
	e.value = value
	e.rows = nil
	e.seq = 0

	records := e.set.Load(value)
	if len(records) == 0 && strings.TrimSpace(value) != "" {
		if _, err := record.ParseStrict(value); err != nil {
			e.logger.Debug("discarding unreadable editor value", "editor", e.cfg.Key, "error", err)
		}
	}

	for idx, rec := range records {
		row := e.appendRow(rec)
		e.set.ValidateRow(row, idx, e.flags[idx])
	}
}

// AddRow clones the template, populates it from values, and appends it.
func (e *Editor) AddRow(values record.Record) *Row {
	return e.appendRow(values)
}

func (e *Editor) appendRow(values record.Record) *Row {
	if values == nil {
		values = record.Record{}
	}
	row := e.template.clone(e.nextID())
	row.Data = values.Clone()
	e.set.PopulateRow(row, values, e.lang)
	e.rows = append(e.rows, row)
	return row
}

// AppendBlank appends an unpopulated template clone under id, used when rows
// are rebuilt from a submission. An empty id allocates the next one.
func (e *Editor) AppendBlank(id string) *Row {
	id = strings.TrimSpace(id)
	if id == "" || id == TemplateRowID || e.Row(id) != nil {
		id = e.nextID()
	} else if n, err := strconv.Atoi(id); err == nil && n >= e.seq {
		e.seq = n + 1
	}
	row := e.template.clone(id)
	row.Data = record.Record{}
	for _, ctl := range row.Controls {
		if ctl.Localized {
			ctl.Lang = e.lang
		}
	}
	e.rows = append(e.rows, row)
	return row
}

// Reset drops every visible row without touching the hidden value.
func (e *Editor) Reset() {
	e.rows = nil
	e.seq = 0
}

func (e *Editor) nextID() string {
	id := strconv.Itoa(e.seq)
	e.seq++
	for e.Row(id) != nil {
		id = strconv.Itoa(e.seq)
		e.seq++
	}
	return id
}

// Remove deletes the element targeted by t according to the remove scope.
// Unknown targets are ignored.
func (e *Editor) Remove(t Target) bool {
	idx := slices.IndexFunc(e.rows, func(row *Row) bool { return row.ID == t.RowID })
	if idx < 0 {
		return false
	}
	if t.Group != "" && e.cfg.RemoveScope != RemoveRow {
		return e.rows[idx].List(t.Group).Remove(t.Item)
	}
	e.rows = slices.Delete(e.rows, idx, idx+1)
	return true
}

// AddListItem appends value to the list group of the given row.
func (e *Editor) AddListItem(rowID, group, value string) bool {
	row := e.Row(rowID)
	if row == nil {
		return false
	}
	list := row.List(group)
	if list == nil {
		return false
	}
	list.Add(value)
	return true
}

// Change sets the value of a control and lets the field set react.
func (e *Editor) Change(rowID, name, value string) bool {
	row := e.Row(rowID)
	ctl := row.Control(name)
	if ctl == nil {
		return false
	}
	ctl.Value = value
	if handler, ok := e.set.(ChangeHandler); ok {
		handler.ControlChanged(row, name, e.lang)
	}
	return true
}

// Refresh recomputes derived control state of row when the field set
// supports it.
func (e *Editor) Refresh(row *Row) {
	if row == nil {
		return
	}
	if refresher, ok := e.set.(Refresher); ok {
		refresher.RefreshRow(row, e.lang)
	}
}

// Records collects one record per visible row, merged with the stored row
// data, then filtered by the field set.
func (e *Editor) Records() []record.Record {
	out := make([]record.Record, 0, len(e.rows))
	for _, row := range e.rows {
		if row.Template {
			continue
		}
		out = append(out, e.extractRow(row))
	}
	return e.set.FinalizeRecords(out)
}

// Extract recomputes the hidden value from the visible rows and returns it.
func (e *Editor) Extract() string {
	e.value = record.Serialize(e.Records())
	return e.value
}

func (e *Editor) extractRow(row *Row) record.Record {
	acc := record.Record{}
	for _, ctl := range row.Controls {
		e.set.ExtractField(acc, e.cfg.FieldName(ctl.Name), ctl, e.lang)
	}
	for _, group := range row.Lists {
		field := e.cfg.FieldName(group.Name)
		items := make([]string, 0, len(group.Items))
		for _, item := range group.Items {
			if strings.TrimSpace(item) != "" {
				items = append(items, item)
			}
		}
		if len(items) > 0 {
			acc[field] = items
			continue
		}
		if _, stored := row.Data[field]; stored {
			acc[field] = []string{}
		}
	}
	return record.Merge(row.Data, acc)
}

// Bind marks the add control of containerID as wired. An empty id uses the
// editor container. It returns false when the container was already bound.
func (e *Editor) Bind(containerID string) bool {
	if containerID == "" {
		containerID = e.cfg.ContainerID
	}
	return e.bindings.Bind(containerID)
}
