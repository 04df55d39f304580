package config_test

import (
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formrows/pkg/config"
	"github.com/goliatone/go-formrows/pkg/fieldsets"
	"github.com/goliatone/go-formrows/pkg/model"
	"github.com/goliatone/go-formrows/pkg/rows"
)

func loadStore(t *testing.T, dir string) *config.Store {
	t.Helper()
	store, err := config.LoadFS(os.DirFS("testdata/" + dir))
	if err != nil {
		t.Fatalf("load %s: %v", dir, err)
	}
	return store
}

func TestLoadFS_JSONAndYAML(t *testing.T) {
	store := loadStore(t, "basic")
	if diff := cmp.Diff([]string{"creator", "temporal_coverage"}, store.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	creator, ok := store.Editor("creator")
	if !ok {
		t.Fatalf("creator editor missing")
	}
	if creator.Label != "Autori" || creator.ContainerID != "creators" {
		t.Fatalf("unexpected creator config %#v", creator)
	}
	if creator.Fields["creator_name"].Widget != "textarea" {
		t.Fatalf("widget not parsed: %#v", creator.Fields)
	}

	temporal, _ := store.Editor("temporal_coverage")
	if temporal.RemoveScope != "row" {
		t.Fatalf("remove scope not normalised: %q", temporal.RemoveScope)
	}
	if temporal.Source != "more.yaml" {
		t.Fatalf("unexpected source %q", temporal.Source)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	if _, err := config.LoadFS(os.DirFS("testdata/duplicate")); err == nil || !strings.Contains(err.Error(), "duplicate editor") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if _, err := config.LoadFS(os.DirFS("testdata/invalid")); err == nil || !strings.Contains(err.Error(), "removeScope") {
		t.Fatalf("expected scope error, got %v", err)
	}
}

func TestLoadFS_NilIsEmpty(t *testing.T) {
	store, err := config.LoadFS(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}
}

func TestLoad_Reader(t *testing.T) {
	if _, err := config.Load(strings.NewReader("   "), "blank.yaml"); err == nil {
		t.Fatalf("expected empty file error")
	}
	if _, err := config.Load(strings.NewReader("editors: [unclosed"), "broken.yaml"); err == nil {
		t.Fatalf("expected parse error")
	}
	store, err := config.Load(strings.NewReader("editors:\n  theme:\n    label: Temi\n"), "inline.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if editor, ok := store.Editor("theme"); !ok || editor.Label != "Temi" {
		t.Fatalf("unexpected editor %#v", editor)
	}
}

func TestEmbeddedDefaultsMatchFieldSets(t *testing.T) {
	store, err := config.LoadFS(config.EmbeddedFS())
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	registry := fieldsets.Default(nil)
	for _, key := range store.Keys() {
		set, err := registry.Get(key)
		if err != nil {
			t.Fatalf("embedded config names unknown editor %q", key)
		}
		if _, err := rows.New(set, store.EditorOptions(key)...); err != nil {
			t.Fatalf("editor %q: %v", key, err)
		}
	}
}

func TestEditor_DecorateAndOptions(t *testing.T) {
	store := loadStore(t, "basic")
	editor, err := rows.New(fieldsets.NewCreator(), store.EditorOptions("creator")...)
	if err != nil {
		t.Fatalf("new editor: %v", err)
	}

	tmpl := editor.RowTemplate()
	if tmpl.Label != "Autori" {
		t.Fatalf("label not applied: %q", tmpl.Label)
	}
	want := model.Field{
		Name:    "creator_name",
		Type:    model.FieldTypeString,
		Label:   "Nome",
		UIHints: map[string]string{"rows": "2", "widget": "textarea"},
	}
	if diff := cmp.Diff(want, tmpl.Fields[0]); diff != "" {
		t.Fatalf("field mismatch (-want +got):\n%s", diff)
	}
	if editor.Config().ContainerID != "creators" {
		t.Fatalf("container id not applied: %q", editor.Config().ContainerID)
	}

	bad := config.Editor{Key: "creator", Fields: map[string]config.FieldConfig{"missing": {Label: "x"}}}
	if err := bad.Decorate(&tmpl); err == nil {
		t.Fatalf("expected unknown field error")
	}
	if opts := store.EditorOptions("unknown"); opts != nil {
		t.Fatalf("unknown editor should yield no options")
	}
}
