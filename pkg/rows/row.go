package rows

import (
	"slices"

	"github.com/goliatone/go-formrows/pkg/model"
	"github.com/goliatone/go-formrows/pkg/record"
)

// ControlKind identifies how a control holds its value.
type ControlKind string

const (
	ControlInput       ControlKind = "input"
	ControlSelect      ControlKind = "select"
	ControlMultiSelect ControlKind = "multiselect"
)

// ErrorClass marks rows flagged by server-side validation.
const ErrorClass = "error"

// Control is a single named input inside a row.
type Control struct {
	// Name is the name attribute, including the configured prefix.
	Name      string
	Kind      ControlKind
	Value     string
	Selected  []string
	Options   []model.Option
	Localized bool
	Lang      string
	Field     model.Field
	// Display is a readable label for Value, set by lookups such as place
	// resolution. It is never extracted.
	Display string
}

// Empty reports whether the control carries no value.
func (c *Control) Empty() bool {
	if c == nil {
		return true
	}
	if c.Kind == ControlMultiSelect {
		return len(c.Selected) == 0
	}
	return c.Value == ""
}

// IsSelected reports whether value is part of the control selection.
func (c *Control) IsSelected(value string) bool {
	if c == nil {
		return false
	}
	if c.Kind == ControlMultiSelect {
		return slices.Contains(c.Selected, value)
	}
	return c.Value == value
}

func (c *Control) clone() *Control {
	out := *c
	out.Selected = slices.Clone(c.Selected)
	out.Options = slices.Clone(c.Options)
	out.Field = c.Field.Clone()
	return &out
}

// ListGroup is a repeated sub-template inside a row, such as a list of
// reference documentation URLs.
type ListGroup struct {
	Name  string
	Field model.Field
	Items []string
}

// Add appends an item to the group.
func (g *ListGroup) Add(value string) {
	g.Items = append(g.Items, value)
}

// Remove deletes the item at idx. Out of range indexes are ignored.
func (g *ListGroup) Remove(idx int) bool {
	if g == nil || idx < 0 || idx >= len(g.Items) {
		return false
	}
	g.Items = slices.Delete(g.Items, idx, idx+1)
	return true
}

func (g *ListGroup) clone() *ListGroup {
	out := *g
	out.Items = slices.Clone(g.Items)
	out.Field = g.Field.Clone()
	return &out
}

// Row is one repeated entry. The template row keeps Template set; live rows
// never do.
type Row struct {
	ID       string
	Template bool
	Controls []*Control
	Lists    []*ListGroup
	// Data holds the record the row was populated from. It is merged under
	// the extracted values so fields without a control are preserved.
	Data    record.Record
	Classes []string
}

// Control returns the control with the given name attribute.
func (r *Row) Control(name string) *Control {
	if r == nil {
		return nil
	}
	for _, ctl := range r.Controls {
		if ctl.Name == name {
			return ctl
		}
	}
	return nil
}

// List returns the list group with the given name attribute.
func (r *Row) List(name string) *ListGroup {
	if r == nil {
		return nil
	}
	for _, group := range r.Lists {
		if group.Name == name {
			return group
		}
	}
	return nil
}

// AddClass appends cls once.
func (r *Row) AddClass(cls string) {
	if cls == "" || r.HasClass(cls) {
		return
	}
	r.Classes = append(r.Classes, cls)
}

// RemoveClass drops cls when present.
func (r *Row) RemoveClass(cls string) {
	r.Classes = slices.DeleteFunc(r.Classes, func(existing string) bool {
		return existing == cls
	})
}

// HasClass reports whether cls is set on the row.
func (r *Row) HasClass(cls string) bool {
	return slices.Contains(r.Classes, cls)
}

// clone duplicates the row under a new id and strips the template marker.
func (r *Row) clone(id string) *Row {
	out := &Row{
		ID:       id,
		Controls: make([]*Control, len(r.Controls)),
		Lists:    make([]*ListGroup, len(r.Lists)),
		Data:     r.Data.Clone(),
		Classes:  slices.Clone(r.Classes),
	}
	for idx, ctl := range r.Controls {
		out.Controls[idx] = ctl.clone()
	}
	for idx, group := range r.Lists {
		out.Lists[idx] = group.clone()
	}
	return out
}

// newTemplateRow builds the template row from the field set blueprint.
func newTemplateRow(cfg Config, template model.RowTemplate) *Row {
	row := &Row{ID: TemplateRowID, Template: true}
	for _, field := range template.Fields {
		name := cfg.InputName(field.Name)
		switch field.Type {
		case model.FieldTypeList:
			row.Lists = append(row.Lists, &ListGroup{Name: name, Field: field.Clone()})
		case model.FieldTypeChoice:
			row.Controls = append(row.Controls, &Control{
				Name:    name,
				Kind:    ControlSelect,
				Options: slices.Clone(field.Options),
				Field:   field.Clone(),
			})
		case model.FieldTypeMultiChoice:
			row.Controls = append(row.Controls, &Control{
				Name:    name,
				Kind:    ControlMultiSelect,
				Options: slices.Clone(field.Options),
				Field:   field.Clone(),
			})
		default:
			row.Controls = append(row.Controls, &Control{
				Name:      name,
				Kind:      ControlInput,
				Localized: cfg.IsLocalized(field.Name),
				Field:     field.Clone(),
			})
		}
	}
	return row
}
