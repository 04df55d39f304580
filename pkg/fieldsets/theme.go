package fieldsets

import (
	"strings"

	"github.com/goliatone/go-formrows/pkg/model"
	"github.com/goliatone/go-formrows/pkg/record"
	"github.com/goliatone/go-formrows/pkg/rows"
	"github.com/goliatone/go-formrows/pkg/subthemes"
)

const (
	ThemeKey = "theme"

	themeField    = "theme"
	subthemeField = "subthemes"
)

// Theme edits theme/subtheme pairs. Subtheme options depend on the selected
// theme and come from the injected table.
type Theme struct {
	rows.Base
	table *subthemes.Table
}

// NewTheme returns the theme field set backed by table. A nil table offers no
// themes.
func NewTheme(table *subthemes.Table) *Theme {
	if table == nil {
		table, _ = subthemes.NewTable()
	}
	return &Theme{
		table: table,
		Base: rows.NewBase(rows.Config{
			Key:    ThemeKey,
			Prefix: "theme_",
		}, model.RowTemplate{
			Label: "Theme",
			Fields: []model.Field{
				{Name: themeField, Type: model.FieldTypeChoice, Label: "Theme", Options: table.ThemeOptions("")},
				{Name: subthemeField, Type: model.FieldTypeMultiChoice, Label: "Subthemes"},
			},
		}),
	}
}

// Table returns the subtheme lookup.
func (t *Theme) Table() *subthemes.Table { return t.table }

// Load reads the JSON form and the legacy "{A,B}" / "A,B" theme lists.
func (t *Theme) Load(raw string) []record.Record {
	records, err := record.ParseStrict(raw)
	if err == nil {
		return records
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, `{"`) {
		return []record.Record{}
	}
	trimmed = strings.Trim(trimmed, "{}")
	out := make([]record.Record, 0, 2)
	for _, token := range strings.Split(trimmed, ",") {
		theme := strings.TrimSpace(token)
		if theme == "" {
			continue
		}
		out = append(out, record.Record{themeField: theme, subthemeField: []string{}})
	}
	return out
}

// PopulateRow selects the stored theme and restores the stored subthemes that
// belong to it.
func (t *Theme) PopulateRow(row *rows.Row, rec record.Record, lang string) {
	themeCtl, subCtl := t.controls(row)
	if themeCtl == nil || subCtl == nil {
		t.Base.PopulateRow(row, rec, lang)
		return
	}
	themeCtl.Value = subthemes.NormalizeTheme(rec.String(themeField))
	themeCtl.Options = t.table.ThemeOptions(lang)
	subCtl.Selected = rec.Strings(subthemeField)
	t.RefreshRow(row, lang)
}

// ChangeTheme selects theme and resets the subtheme selection. Subthemes
// selected under the previous theme are never carried over, even when the
// new theme offers the same ids.
func (t *Theme) ChangeTheme(row *rows.Row, theme, lang string) {
	themeCtl, subCtl := t.controls(row)
	if themeCtl == nil || subCtl == nil {
		return
	}
	themeCtl.Value = subthemes.NormalizeTheme(theme)
	subCtl.Selected = nil
	subCtl.Options = t.table.Options(themeCtl.Value, lang)
	if row.Data != nil {
		row.Data[themeField] = themeCtl.Value
	}
}

// ControlChanged resets the subthemes when the theme control changes.
func (t *Theme) ControlChanged(row *rows.Row, name, lang string) {
	if t.Cfg.FieldName(name) != themeField {
		return
	}
	if ctl := row.Control(name); ctl != nil {
		t.ChangeTheme(row, ctl.Value, lang)
	}
}

// RefreshRow reloads the subtheme options for the current theme and keeps
// only the selected ids the theme offers. A theme that differs from the one in
// the stored row data drops the selection, as ChangeTheme does.
func (t *Theme) RefreshRow(row *rows.Row, lang string) {
	themeCtl, subCtl := t.controls(row)
	if themeCtl == nil || subCtl == nil {
		return
	}
	if len(themeCtl.Options) == 0 {
		themeCtl.Options = t.table.ThemeOptions(lang)
	}
	if stored := row.Data.String(themeField); stored != "" && subthemes.NormalizeTheme(stored) != themeCtl.Value {
		subCtl.Selected = nil
	}
	subCtl.Options = t.table.Options(themeCtl.Value, lang)
	subCtl.Selected = t.table.Filter(themeCtl.Value, subCtl.Selected)
}

func (t *Theme) controls(row *rows.Row) (*rows.Control, *rows.Control) {
	return row.Control(t.Cfg.InputName(themeField)), row.Control(t.Cfg.InputName(subthemeField))
}
