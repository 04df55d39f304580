package vanilla

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formrows/pkg/formbind"
	"github.com/goliatone/go-formrows/pkg/model"
	"github.com/goliatone/go-formrows/pkg/render"
	"github.com/goliatone/go-formrows/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-formrows/pkg/rows"
)

const defaultAddItemLabel = "Add"

type formView struct {
	Action       string               `json:"action"`
	Class        string               `json:"class"`
	HiddenFields []render.HiddenField `json:"hiddenFields,omitempty"`
	Editors      []string             `json:"editors"`
	Stylesheets  []string             `json:"stylesheets,omitempty"`
	Scripts      []scriptView         `json:"scripts,omitempty"`
	InlineStyles string               `json:"inlineStyles,omitempty"`
}

type scriptView struct {
	Src    string            `json:"src,omitempty"`
	Type   string            `json:"type,omitempty"`
	Inline string            `json:"inline,omitempty"`
	Async  bool              `json:"async"`
	Defer  bool              `json:"defer"`
	Attrs  map[string]string `json:"attrs,omitempty"`
}

type editorView struct {
	ID         string    `json:"id"`
	Key        string    `json:"key"`
	Module     string    `json:"module"`
	Label      string    `json:"label"`
	Value      string    `json:"value"`
	Class      string    `json:"class"`
	RowsName   string    `json:"rowsName"`
	AddName    string    `json:"addName"`
	TemplateID string    `json:"templateId"`
	Template   rowView   `json:"template"`
	Rows       []rowView `json:"rows"`
	Messages   []string  `json:"messages,omitempty"`
}

type rowView struct {
	ID          string   `json:"id"`
	RowID       string   `json:"rowId"`
	Class       string   `json:"class"`
	RowsName    string   `json:"rowsName"`
	DataName    string   `json:"dataName"`
	DataValue   string   `json:"dataValue"`
	RemoveName  string   `json:"removeName"`
	RemoveValue string   `json:"removeValue"`
	Controls    []string `json:"controls"`
	Messages    []string `json:"messages,omitempty"`
}

func scriptViews(scripts []components.Script) []scriptView {
	if len(scripts) == 0 {
		return nil
	}
	out := make([]scriptView, 0, len(scripts))
	for _, script := range scripts {
		scriptType := script.Type
		if script.Module && scriptType == "" {
			scriptType = "module"
		}
		out = append(out, scriptView{
			Src:    script.Src,
			Type:   scriptType,
			Inline: script.Inline,
			Async:  script.Async,
			Defer:  script.Defer,
			Attrs:  script.Attrs,
		})
	}
	return out
}

func (r *Renderer) buildEditorView(editor *rows.Editor, options render.RenderOptions) (editorView, []string, error) {
	cfg := editor.Config()
	key := editor.Name()
	mapping := render.MapErrorPayload(key, options.Errors)

	view := editorView{
		ID:         cfg.ContainerID,
		Key:        key,
		Module:     strings.ReplaceAll(key, "_", "-"),
		Label:      firstNonEmpty(options.Label, editor.RowTemplate().Label, key),
		Value:      editor.Value(),
		Class:      string(ClassEditor),
		RowsName:   formbind.RowsName(key),
		AddName:    formbind.ActionName(key, formbind.ActionAdd),
		TemplateID: cfg.TemplateID,
		Messages:   mapping.Editor,
	}

	used := make(map[string]struct{})
	tmplRow, err := r.buildRowView(editor, editor.Template(), nil, nil, false, used)
	if err != nil {
		return editorView{}, nil, err
	}
	view.Template = tmplRow

	flags := mapping.Flags()
	view.Rows = make([]rowView, 0, editor.Len())
	for idx, row := range editor.Rows() {
		rv, err := r.buildRowView(editor, row, mapping.RowMessages(idx), mapping.Fields[idx], flags[idx], used)
		if err != nil {
			return editorView{}, nil, err
		}
		view.Rows = append(view.Rows, rv)
	}

	names := make([]string, 0, len(used))
	for name := range used {
		names = append(names, name)
	}
	return view, names, nil
}

func (r *Renderer) buildRowView(editor *rows.Editor, row *rows.Row, messages []string, fieldMessages map[string][]string, flagged bool, used map[string]struct{}) (rowView, error) {
	key := editor.Name()
	classes := []string{string(ClassRow)}
	classes = append(classes, row.Classes...)
	if row.Template {
		classes = append(classes, string(ClassTemplate))
	}
	if flagged {
		classes = append(classes, rows.ErrorClass)
	}

	view := rowView{
		ID:          controlID(key + "[" + row.ID + "]"),
		RowID:       row.ID,
		Class:       classList(classes...),
		RowsName:    formbind.RowsName(key),
		DataName:    formbind.DataName(key, row.ID),
		RemoveName:  formbind.ActionName(key, formbind.ActionRemove),
		RemoveValue: formbind.TargetValue(rows.Target{RowID: row.ID}),
		Messages:    messages,
	}
	if len(row.Data) > 0 {
		data, err := json.Marshal(row.Data)
		if err != nil {
			return rowView{}, fmt.Errorf("vanilla renderer: encode row %q data: %w", row.ID, err)
		}
		view.DataValue = string(data)
	}

	cfg := editor.Config()
	_, changes := editor.FieldSet().(rows.ChangeHandler)
	for _, field := range editor.RowTemplate().Fields {
		name := cfg.InputName(field.Name)
		var control components.ControlView
		if group := row.List(name); group != nil {
			control = listControlView(key, row.ID, group)
		} else if ctl := row.Control(name); ctl != nil {
			control = scalarControlView(key, row.ID, ctl)
			if changes && ctl.Kind == rows.ControlSelect {
				control.ChangeName = formbind.ActionName(key, formbind.ActionChange)
				control.ChangeValue = formbind.PairValue(row.ID, ctl.Name)
			}
		} else {
			continue
		}
		control.Messages = fieldMessages[field.Name]

		html, component, err := r.renderControl(field, control)
		if err != nil {
			return rowView{}, err
		}
		used[component] = struct{}{}
		view.Controls = append(view.Controls, html)
	}
	return view, nil
}

func fieldView(field model.Field, name string) components.ControlView {
	return components.ControlView{
		ID:          controlID(name),
		Name:        name,
		Label:       firstNonEmpty(field.Label, field.Name),
		Description: field.Description,
		Placeholder: field.Placeholder,
	}
}

func scalarControlView(key, rowID string, ctl *rows.Control) components.ControlView {
	view := fieldView(ctl.Field, formbind.ControlName(key, rowID, ctl.Name))
	view.Value = ctl.Value
	view.Display = ctl.Display
	if ctl.Localized {
		view.Lang = ctl.Lang
	}
	if len(ctl.Options) > 0 {
		view.Options = make([]components.OptionView, 0, len(ctl.Options))
		for _, opt := range ctl.Options {
			view.Options = append(view.Options, components.OptionView{
				Value:    opt.Value,
				Label:    firstNonEmpty(opt.Label, opt.Value),
				Selected: ctl.IsSelected(opt.Value),
			})
		}
	}
	return view
}

func listControlView(key, rowID string, group *rows.ListGroup) components.ControlView {
	name := formbind.ListName(key, rowID, group.Name)
	view := fieldView(group.Field, name)
	view.AddName = formbind.ActionName(key, formbind.ActionAddItem)
	view.AddValue = formbind.PairValue(rowID, group.Name)
	view.AddLabel = firstNonEmpty(group.Field.UIHints["addLabel"], defaultAddItemLabel)
	if strings.EqualFold(group.Field.Format, "url") {
		view.InputType = "url"
	}
	view.Items = make([]components.ItemView, 0, len(group.Items))
	for idx, item := range group.Items {
		view.Items = append(view.Items, components.ItemView{
			ID:          view.ID + "-" + strconv.Itoa(idx),
			Value:       item,
			RemoveName:  formbind.ActionName(key, formbind.ActionRemove),
			RemoveValue: formbind.TargetValue(rows.Target{RowID: rowID, Group: group.Name, Item: idx}),
		})
	}
	return view
}

// renderControl resolves the component for field and renders control with
// it. Unknown components fall back to the plain input.
func (r *Renderer) renderControl(field model.Field, control components.ControlView) (string, string, error) {
	name := r.widgets.Resolve(field)
	descriptor, ok := r.components.Descriptor(name)
	if !ok {
		r.logger.Debug("vanilla renderer: unknown component, using input", "component", name, "field", field.Name)
		name = components.NameInput
		descriptor, ok = r.components.Descriptor(name)
		if !ok {
			return "", "", fmt.Errorf("vanilla renderer: component %q not registered", name)
		}
	}
	control.Component = name

	var buf bytes.Buffer
	err := descriptor.Renderer(&buf, control, components.ComponentData{
		Template: r.templates,
		Config:   r.config,
	})
	if err != nil {
		return "", "", fmt.Errorf("vanilla renderer: render %q control %q: %w", name, field.Name, err)
	}
	return buf.String(), name, nil
}
