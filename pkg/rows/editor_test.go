package rows_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formrows/pkg/model"
	"github.com/goliatone/go-formrows/pkg/record"
	"github.com/goliatone/go-formrows/pkg/rows"
)

func documentSet() rows.Base {
	return rows.NewBase(rows.Config{
		Key:       "documents",
		Prefix:    "doc_",
		Localized: []string{"title"},
		Lists:     []string{"links"},
	}, model.RowTemplate{
		Fields: []model.Field{
			{Name: "identifier", Type: model.FieldTypeString},
			{Name: "title", Type: model.FieldTypeString},
			{Name: "links", Type: model.FieldTypeList},
		},
	})
}

func newEditor(t *testing.T, set rows.FieldSet, opts ...rows.Option) *rows.Editor {
	t.Helper()
	editor, err := rows.New(set, opts...)
	if err != nil {
		t.Fatalf("new editor: %v", err)
	}
	return editor
}

func decode(t *testing.T, raw string) any {
	t.Helper()
	var out any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	return out
}

func TestNew_RequiresFieldSet(t *testing.T) {
	if _, err := rows.New(nil); err == nil {
		t.Fatalf("expected error for nil field set")
	}
}

func TestEditor_TemplateRowCarriesPrefixedNames(t *testing.T) {
	editor := newEditor(t, documentSet())
	tmpl := editor.Template()
	if !tmpl.Template {
		t.Fatalf("template row must keep its marker")
	}
	if tmpl.Control("doc_identifier") == nil || tmpl.Control("doc_title") == nil {
		t.Fatalf("expected prefixed controls, got %#v", tmpl.Controls)
	}
	if !tmpl.Control("doc_title").Localized {
		t.Fatalf("title must be localized")
	}
	if tmpl.List("doc_links") == nil {
		t.Fatalf("expected list group doc_links")
	}
}

func TestEditor_InitializeMalformedValueYieldsNoRows(t *testing.T) {
	for _, raw := range []string{"", "{", `{"identifier":"x"}`} {
		editor := newEditor(t, documentSet())
		editor.Initialize(raw)
		if editor.Len() != 0 {
			t.Fatalf("Initialize(%q) produced %d rows", raw, editor.Len())
		}
		if got := editor.Extract(); got != "[]" {
			t.Fatalf("Extract after %q = %q, want []", raw, got)
		}
	}
}

func TestEditor_RoundTrip(t *testing.T) {
	raw := `[{"identifier":"ISO-19115","title":{"en":"Metadata"},"links":["http://a","http://b"]},{"identifier":"","title":{"en":"Other"}}]`
	editor := newEditor(t, documentSet(), rows.WithLang("en"))
	editor.Initialize(raw)

	if editor.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", editor.Len())
	}
	if diff := cmp.Diff(decode(t, raw), decode(t, editor.Extract())); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEditor_ExtractKeepsHiddenFieldsAndOtherLanguages(t *testing.T) {
	editor := newEditor(t, documentSet(), rows.WithLang("en"))
	editor.Initialize(`[{"identifier":"x","title":{"it":"Titolo","en":"Title"},"uri":"http://example.org/x"}]`)

	row := editor.Rows()[0]
	row.Control("doc_title").Value = "New title"

	want := decode(t, `[{"identifier":"x","title":{"it":"Titolo","en":"New title"},"uri":"http://example.org/x"}]`)
	if diff := cmp.Diff(want, decode(t, editor.Extract())); diff != "" {
		t.Fatalf("extract mismatch (-want +got):\n%s", diff)
	}
}

func TestEditor_ExtractSkipsEmptyLocalizedAndListValues(t *testing.T) {
	editor := newEditor(t, documentSet(), rows.WithLang("it"))
	row := editor.AddRow(nil)
	row.List("doc_links").Add("")
	row.List("doc_links").Add("http://a")

	want := decode(t, `[{"identifier":"","links":["http://a"]}]`)
	if diff := cmp.Diff(want, decode(t, editor.Extract())); diff != "" {
		t.Fatalf("extract mismatch (-want +got):\n%s", diff)
	}
}

func TestEditor_ClearingLocalizedTextRemovesLanguage(t *testing.T) {
	editor := newEditor(t, documentSet(), rows.WithLang("it"))
	editor.Initialize(`[{"identifier":"x","title":{"it":"Titolo","en":"Title"}},{"identifier":"y","title":{"it":"Solo"}}]`)

	for _, row := range editor.Rows() {
		row.Control("doc_title").Value = ""
	}

	want := decode(t, `[{"identifier":"x","title":{"en":"Title"}},{"identifier":"y"}]`)
	if diff := cmp.Diff(want, decode(t, editor.Extract())); diff != "" {
		t.Fatalf("extract mismatch (-want +got):\n%s", diff)
	}
}

func TestEditor_ClearingStoredListEmitsEmptyList(t *testing.T) {
	editor := newEditor(t, documentSet())
	editor.Initialize(`[{"identifier":"x","links":["http://a"]}]`)
	editor.Remove(rows.Target{RowID: editor.Rows()[0].ID, Group: "doc_links", Item: 0})

	want := decode(t, `[{"identifier":"x","links":[]}]`)
	if diff := cmp.Diff(want, decode(t, editor.Extract())); diff != "" {
		t.Fatalf("extract mismatch (-want +got):\n%s", diff)
	}
}

func TestEditor_AddAndRemoveRows(t *testing.T) {
	editor := newEditor(t, documentSet())
	editor.Initialize(`[{"identifier":"a"}]`)

	row := editor.AddRow(record.Record{"identifier": "b"})
	if editor.Len() != 2 {
		t.Fatalf("expected 2 rows after add, got %d", editor.Len())
	}
	if row.Template {
		t.Fatalf("added row must not carry the template marker")
	}
	if got := row.Control("doc_identifier").Value; got != "b" {
		t.Fatalf("expected populated identifier, got %q", got)
	}

	if editor.Remove(rows.Target{RowID: "missing"}) {
		t.Fatalf("unknown target must be a no-op")
	}
	if !editor.Remove(rows.Target{RowID: row.ID}) {
		t.Fatalf("expected row removal")
	}
	if editor.Len() != 1 {
		t.Fatalf("expected 1 row after remove, got %d", editor.Len())
	}
}

func TestEditor_RemoveScope(t *testing.T) {
	raw := `[{"identifier":"a","links":["x","y"]}]`

	itemScoped := newEditor(t, documentSet())
	itemScoped.Initialize(raw)
	id := itemScoped.Rows()[0].ID
	if !itemScoped.Remove(rows.Target{RowID: id, Group: "doc_links", Item: 0}) {
		t.Fatalf("expected list item removal")
	}
	if itemScoped.Len() != 1 {
		t.Fatalf("item scope must keep the row")
	}
	if diff := cmp.Diff([]string{"y"}, itemScoped.Row(id).List("doc_links").Items); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}

	set := documentSet()
	set.Cfg.RemoveScope = rows.RemoveRow
	rowScoped := newEditor(t, set)
	rowScoped.Initialize(raw)
	rowScoped.Remove(rows.Target{RowID: rowScoped.Rows()[0].ID, Group: "doc_links", Item: 0})
	if rowScoped.Len() != 0 {
		t.Fatalf("row scope must delete the whole row")
	}
}

func TestEditor_AddListItem(t *testing.T) {
	editor := newEditor(t, documentSet())
	row := editor.AddRow(nil)
	if !editor.AddListItem(row.ID, "doc_links", "http://a") {
		t.Fatalf("expected list item to be added")
	}
	if editor.AddListItem(row.ID, "unknown", "x") {
		t.Fatalf("unknown group must be rejected")
	}
	if diff := cmp.Diff([]string{"http://a"}, row.List("doc_links").Items); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestEditor_ErrorFlagsMarkRows(t *testing.T) {
	editor := newEditor(t, documentSet(), rows.WithErrorFlags(map[int]bool{1: true}))
	editor.Initialize(`[{"identifier":"a"},{"identifier":"b"}]`)

	got := editor.Rows()
	if got[0].HasClass(rows.ErrorClass) {
		t.Fatalf("row 0 must not be flagged")
	}
	if !got[1].HasClass(rows.ErrorClass) {
		t.Fatalf("row 1 must be flagged")
	}
}

func TestEditor_AppendBlankAdvancesIDs(t *testing.T) {
	editor := newEditor(t, documentSet())
	editor.AppendBlank("7")
	row := editor.AddRow(nil)
	if row.ID != "8" {
		t.Fatalf("expected next id 8, got %q", row.ID)
	}
	dup := editor.AppendBlank("7")
	if dup.ID == "7" {
		t.Fatalf("duplicate ids must be reallocated")
	}
}

func TestEditor_BindOnce(t *testing.T) {
	shared := rows.NewBindings()
	first := newEditor(t, documentSet(), rows.WithBindings(shared))
	second := newEditor(t, documentSet(), rows.WithBindings(shared))

	if !first.Bind("") {
		t.Fatalf("first bind must succeed")
	}
	if second.Bind("") {
		t.Fatalf("second bind of the same container must be rejected")
	}
	if !second.Bind("other_container") {
		t.Fatalf("different container must bind")
	}
}

func TestEditor_OverridesAndDecorators(t *testing.T) {
	relabel := model.DecoratorFunc(func(tmpl *model.RowTemplate) error {
		for idx := range tmpl.Fields {
			if tmpl.Fields[idx].Name == "title" {
				tmpl.Fields[idx].Label = "Titolo"
			}
		}
		return nil
	})
	editor := newEditor(t, documentSet(),
		rows.WithContainerIDs("docs_tpl", ""),
		rows.WithRemoveScope(rows.RemoveRow),
		rows.WithDecorators(relabel),
	)

	cfg := editor.Config()
	if cfg.TemplateID != "docs_tpl" || cfg.ContainerID != "documents_container" {
		t.Fatalf("unexpected ids %q %q", cfg.TemplateID, cfg.ContainerID)
	}
	if cfg.RemoveScope != rows.RemoveRow {
		t.Fatalf("remove scope not applied: %q", cfg.RemoveScope)
	}
	if got := editor.Template().Control("doc_title").Field.Label; got != "Titolo" {
		t.Fatalf("decorated label not applied, got %q", got)
	}
	if got := editor.RowTemplate().Fields[1].Label; got != "Titolo" {
		t.Fatalf("row template not decorated, got %q", got)
	}
}

func TestEditor_DecoratorErrorFailsConstruction(t *testing.T) {
	failing := model.DecoratorFunc(func(*model.RowTemplate) error {
		return errors.New("bad config")
	})
	if _, err := rows.New(documentSet(), rows.WithDecorators(failing)); err == nil {
		t.Fatalf("expected decorator error")
	}
}
