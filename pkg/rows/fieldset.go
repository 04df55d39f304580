package rows

import (
	"github.com/goliatone/go-formrows/pkg/model"
	"github.com/goliatone/go-formrows/pkg/record"
)

// FieldSet supplies the behaviour of one editor kind. The editor calls the
// hooks in this order: Load on initialize, PopulateRow for every row,
// ValidateRow for rows loaded from the stored value, ExtractField for every
// control on extraction, then FinalizeRecords on the collected records.
type FieldSet interface {
	Name() string
	Config() Config
	Template() model.RowTemplate
	Load(raw string) []record.Record
	PopulateRow(row *Row, rec record.Record, lang string)
	ExtractField(acc record.Record, field string, ctl *Control, lang string)
	FinalizeRecords(records []record.Record) []record.Record
	ValidateRow(row *Row, index int, flagged bool)
}

// ChangeHandler is implemented by field sets whose controls depend on another
// control of the same row.
type ChangeHandler interface {
	ControlChanged(row *Row, name string, lang string)
}

// Refresher is implemented by field sets that recompute derived control state
// (such as dependent options) after a row is rebuilt from a submission.
type Refresher interface {
	RefreshRow(row *Row, lang string)
}

// Base implements the generic field set behaviour driven by Config.
type Base struct {
	Cfg  Config
	Tmpl model.RowTemplate
}

// NewBase normalises cfg and binds it to the template.
func NewBase(cfg Config, tmpl model.RowTemplate) Base {
	if tmpl.Key == "" {
		tmpl.Key = cfg.Key
	}
	return Base{Cfg: cfg.WithDefaults(), Tmpl: tmpl}
}

func (b Base) Name() string { return b.Cfg.Key }

func (b Base) Config() Config { return b.Cfg }

func (b Base) Template() model.RowTemplate { return b.Tmpl.Clone() }

// Load parses the stored JSON array.
func (b Base) Load(raw string) []record.Record {
	return record.Parse(raw)
}

// PopulateRow fills every control and list group from rec.
func (b Base) PopulateRow(row *Row, rec record.Record, lang string) {
	PopulateControls(b.Cfg, row, rec, lang)
}

// ExtractField writes the control value into acc.
func (b Base) ExtractField(acc record.Record, field string, ctl *Control, lang string) {
	ExtractValue(acc, field, ctl, lang)
}

func (b Base) FinalizeRecords(records []record.Record) []record.Record {
	return records
}

// ValidateRow adds ErrorClass to flagged rows.
func (b Base) ValidateRow(row *Row, _ int, flagged bool) {
	if flagged {
		row.AddClass(ErrorClass)
	}
}

// PopulateControls applies the generic population rules: localized controls
// show the text for lang, multi-selects restore the stored list, list groups
// become one item per entry, and every other control shows the scalar.
func PopulateControls(cfg Config, row *Row, rec record.Record, lang string) {
	for _, ctl := range row.Controls {
		PopulateControl(ctl, rec, cfg.FieldName(ctl.Name), lang)
	}
	for _, group := range row.Lists {
		group.Items = append([]string(nil), rec.Strings(cfg.FieldName(group.Name))...)
	}
}

// PopulateControl fills one control from the value stored under field.
func PopulateControl(ctl *Control, rec record.Record, field, lang string) {
	switch {
	case ctl.Localized:
		ctl.Lang = lang
		if plain, ok := rec[field].(string); ok {
			ctl.Value = plain
			return
		}
		ctl.Value = rec.Localized(field).Get(lang)
	case ctl.Kind == ControlMultiSelect:
		ctl.Selected = append([]string(nil), rec.Strings(field)...)
	default:
		ctl.Value = rec.String(field)
	}
}

// ExtractValue applies the generic extraction rules to acc. An empty
// localized control records an empty text for its language, which
// record.Merge treats as a removal. Multi-selects always emit their (possibly
// empty) list and scalars always emit a key.
func ExtractValue(acc record.Record, field string, ctl *Control, lang string) {
	switch {
	case ctl.Localized:
		text := acc.Localized(field).Clone()
		if text == nil {
			text = record.LocalizedText{}
		}
		if _, set := text[lang]; set && ctl.Value == "" {
			return
		}
		text[lang] = ctl.Value
		acc[field] = text
	case ctl.Kind == ControlMultiSelect:
		selected := make([]string, 0, len(ctl.Selected))
		for _, value := range ctl.Selected {
			if value != "" {
				selected = append(selected, value)
			}
		}
		acc[field] = selected
	default:
		acc[field] = ctl.Value
	}
}
