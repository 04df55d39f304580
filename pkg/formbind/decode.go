package formbind

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-formrows/pkg/record"
	"github.com/goliatone/go-formrows/pkg/rows"
)

// ActionKind names an editing action requested by a submit button.
type ActionKind string

const (
	ActionNone    ActionKind = ""
	ActionAdd     ActionKind = "add"
	ActionAddItem ActionKind = "add_item"
	ActionRemove  ActionKind = "remove"
	ActionChange  ActionKind = "change"
)

// actionOrder is the precedence used when a submission carries several
// action fields.
var actionOrder = []ActionKind{ActionAdd, ActionAddItem, ActionRemove, ActionChange}

// ErrNotSubmitted reports a form that carries neither the editor rows nor
// its hidden value.
var ErrNotSubmitted = errors.New("formbind: editor not present in submission")

// Action describes the editing action decoded from a submission.
type Action struct {
	Kind    ActionKind
	Target  rows.Target
	Control string
	// Applied is false when the action referenced an unknown row or group.
	Applied bool
}

// Pending reports whether the submission asked for an editing action rather
// than a final save.
func (a Action) Pending() bool {
	return a.Kind != ActionNone
}

// Decode rebuilds the editor rows from form and applies at most one editing
// action. When the form carries only the hidden value (a client that
// maintained the JSON itself), the editor is initialised from it instead.
func Decode(editor *rows.Editor, form url.Values) (Action, error) {
	if editor == nil {
		return Action{}, errors.New("formbind: editor is required")
	}
	key := editor.Name()

	ids, rowMode := form[RowsName(key)]
	if !rowMode {
		if _, ok := form[key]; !ok {
			return Action{}, fmt.Errorf("%w: %s", ErrNotSubmitted, key)
		}
		editor.Initialize(form.Get(key))
		return decodeAction(editor, form), nil
	}

	editor.Reset()
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || id == rows.TemplateRowID {
			continue
		}
		row := editor.AppendBlank(id)
		fillRow(editor, row, id, form)
		editor.Refresh(row)
	}

	return decodeAction(editor, form), nil
}

func fillRow(editor *rows.Editor, row *rows.Row, postedID string, form url.Values) {
	key := editor.Name()
	for _, ctl := range row.Controls {
		values := form[ControlName(key, postedID, ctl.Name)]
		if ctl.Kind == rows.ControlMultiSelect {
			ctl.Selected = ctl.Selected[:0]
			for _, value := range values {
				if value = SanitizeText(value); value != "" {
					ctl.Selected = append(ctl.Selected, value)
				}
			}
			continue
		}
		if len(values) > 0 {
			ctl.Value = SanitizeText(values[0])
		}
	}
	for _, group := range row.Lists {
		items := form[ListName(key, postedID, group.Name)]
		group.Items = make([]string, 0, len(items))
		for _, item := range items {
			group.Items = append(group.Items, SanitizeText(item))
		}
	}
	if data, ok := decodeData(form.Get(DataName(key, postedID))); ok {
		row.Data = data
	}
}

// decodeData reads the stored row record. Malformed data is ignored.
func decodeData(raw string) (record.Record, bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, false
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil || data == nil {
		return nil, false
	}
	return record.Record(data).Clone(), true
}

func decodeAction(editor *rows.Editor, form url.Values) Action {
	key := editor.Name()
	for _, kind := range actionOrder {
		value, ok := form[ActionName(key, kind)]
		if !ok {
			continue
		}
		action := Action{Kind: kind}
		raw := ""
		if len(value) > 0 {
			raw = value[0]
		}
		applyAction(editor, &action, raw)
		return action
	}
	return Action{}
}

func applyAction(editor *rows.Editor, action *Action, raw string) {
	switch action.Kind {
	case ActionAdd:
		row := editor.AddRow(nil)
		action.Target = rows.Target{RowID: row.ID}
		action.Applied = true
	case ActionAddItem:
		rowID, group, ok := parsePair(raw)
		if !ok {
			return
		}
		action.Target = rows.Target{RowID: rowID, Group: group}
		action.Applied = editor.AddListItem(rowID, group, "")
	case ActionRemove:
		target, ok := ParseTarget(raw)
		if !ok {
			return
		}
		action.Target = target
		action.Applied = editor.Remove(target)
	case ActionChange:
		rowID, control, ok := parsePair(raw)
		if !ok {
			return
		}
		action.Target = rows.Target{RowID: rowID}
		action.Control = control
		ctl := editor.Row(rowID).Control(control)
		if ctl == nil {
			return
		}
		action.Applied = editor.Change(rowID, control, ctl.Value)
	}
}
