package fieldsets_test

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formrows/pkg/fieldsets"
	"github.com/goliatone/go-formrows/pkg/model"
	"github.com/goliatone/go-formrows/pkg/record"
	"github.com/goliatone/go-formrows/pkg/rows"
	"github.com/goliatone/go-formrows/pkg/subthemes"
	"github.com/goliatone/go-formrows/pkg/testsupport"
)

func editorFor(t *testing.T, set rows.FieldSet, opts ...rows.Option) *rows.Editor {
	t.Helper()
	editor, err := rows.New(set, opts...)
	if err != nil {
		t.Fatalf("new editor: %v", err)
	}
	return editor
}

func TestRoundTrip(t *testing.T) {
	table, err := subthemes.NewTable(subthemes.Theme{
		ID:        "ENVI",
		Subthemes: []subthemes.Subtheme{{URI: "urn:env:a"}, {URI: "urn:env:b", Depth: 1}},
	})
	if err != nil {
		t.Fatalf("table: %v", err)
	}

	cases := []struct {
		name string
		set  rows.FieldSet
		raw  string
	}{
		{
			name: "conforms to",
			set:  fieldsets.NewConformsTo(),
			raw:  `[{"identifier":"ISO-19115","title":{"it":"Titolo","en":"Title"},"description":{"it":"Descrizione"},"referenceDocumentation":["http://a","http://b"]}]`,
		},
		{
			name: "alternate identifier",
			set:  fieldsets.NewAlternateIdentifier(),
			raw:  `[{"identifier":"ALT-1","agent":{"agent_name":{"it":"Ente"},"agent_identifier":"IPA-1"}},{"identifier":"ALT-2","agent":{"agent_identifier":"IPA-2"}}]`,
		},
		{
			name: "creator",
			set:  fieldsets.NewCreator(),
			raw:  `[{"creator_name":{"it":"Regione","en":"Region"},"creator_identifier":"r_toscan"}]`,
		},
		{
			name: "temporal coverage",
			set:  fieldsets.NewTemporalCoverage(),
			raw:  `[{"temporal_start":"2001-01-01","temporal_end":"2001-01-02"},{"temporal_start":"2002-01-01","temporal_end":""}]`,
		},
		{
			name: "theme",
			set:  fieldsets.NewTheme(table),
			raw:  `[{"theme":"ENVI","subthemes":["urn:env:b"]}]`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			editor := editorFor(t, tc.set, rows.WithLang("it"))
			editor.Initialize(tc.raw)
			testsupport.AssertJSON(t, tc.raw, editor.Extract())
		})
	}
}

func TestConformsTo_LegacyNotation(t *testing.T) {
	editor := editorFor(t, fieldsets.NewConformsTo(), rows.WithLang("it"))
	editor.Initialize("ABC,DEF")

	if editor.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", editor.Len())
	}
	if got := editor.Rows()[1].Control("conforms_to_identifier").Value; got != "DEF" {
		t.Fatalf("expected identifier DEF, got %q", got)
	}
	testsupport.AssertJSON(t, `[{"identifier":"ABC"},{"identifier":"DEF"}]`, editor.Extract())
}

func TestConformsTo_ReferenceDocumentationIsDeduplicated(t *testing.T) {
	editor := editorFor(t, fieldsets.NewConformsTo(), rows.WithLang("it"))
	editor.Initialize(`[{"identifier":"x","referenceDocumentation":["a"]}]`)

	row := editor.Rows()[0]
	editor.AddListItem(row.ID, "conforms_to_referenceDocumentation", "a")
	editor.AddListItem(row.ID, "conforms_to_referenceDocumentation", "b")

	testsupport.AssertJSON(t, `[{"identifier":"x","referenceDocumentation":["a","b"]}]`, editor.Extract())
}

func TestAlternateIdentifier_AgentInputsNest(t *testing.T) {
	editor := editorFor(t, fieldsets.NewAlternateIdentifier(), rows.WithLang("en"))
	row := editor.AddRow(nil)
	row.Control("alternate_identifier_identifier").Value = "ALT"
	row.Control("alternate_identifier_agent_name").Value = "Agency"
	row.Control("alternate_identifier_agent_identifier").Value = "AG-1"

	testsupport.AssertJSON(t, `[{"identifier":"ALT","agent":{"agent_name":{"en":"Agency"},"agent_identifier":"AG-1"}}]`, editor.Extract())
}

func TestAlternateIdentifier_PopulatesAgentControls(t *testing.T) {
	editor := editorFor(t, fieldsets.NewAlternateIdentifier(), rows.WithLang("it"))
	editor.Initialize(`[{"identifier":"ALT","agent":{"agent_name":{"it":"Ente","en":"Agency"},"agent_identifier":"AG"}}]`)

	row := editor.Rows()[0]
	if got := row.Control("alternate_identifier_agent_name").Value; got != "Ente" {
		t.Fatalf("expected localized agent name, got %q", got)
	}
	if got := row.Control("alternate_identifier_agent_identifier").Value; got != "AG" {
		t.Fatalf("expected agent identifier, got %q", got)
	}
}

func TestAlternateIdentifier_ClearedAgentNameIsDropped(t *testing.T) {
	editor := editorFor(t, fieldsets.NewAlternateIdentifier(), rows.WithLang("it"))
	editor.Initialize(`[{"identifier":"ALT","agent":{"agent_name":{"it":"Ente"},"agent_identifier":"AG"}}]`)

	editor.Rows()[0].Control("alternate_identifier_agent_name").Value = ""

	testsupport.AssertJSON(t, `[{"identifier":"ALT","agent":{"agent_identifier":"AG"}}]`, editor.Extract())
}

func TestCreator_KeepsOtherLanguages(t *testing.T) {
	editor := editorFor(t, fieldsets.NewCreator(), rows.WithLang("en"))
	editor.Initialize(`[{"creator_name":{"it":"Regione"},"creator_identifier":"r"}]`)

	row := editor.Rows()[0]
	if got := row.Control("creator_name").Value; got != "" {
		t.Fatalf("expected empty english name, got %q", got)
	}
	row.Control("creator_name").Value = "Region"

	testsupport.AssertJSON(t, `[{"creator_name":{"it":"Regione","en":"Region"},"creator_identifier":"r"}]`, editor.Extract())
}

func TestCreator_FixtureRoundTrip(t *testing.T) {
	want := testsupport.LoadRecords(t, filepath.Join("testdata", "creator.json"))

	editor := editorFor(t, fieldsets.NewCreator(), rows.WithLang("en"))
	editor.Initialize(record.Serialize(want))
	if editor.Len() != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), editor.Len())
	}
	testsupport.AssertJSON(t, record.Serialize(want), editor.Extract())
}

func TestTemporalCoverage_DropsBlankRanges(t *testing.T) {
	editor := editorFor(t, fieldsets.NewTemporalCoverage())
	editor.Initialize(`[{"temporal_start":"2001-01-01","temporal_end":""}]`)

	blank := editor.AddRow(nil)
	blank.Control("temporal_coverage_temporal_start").Value = "  "
	editor.AddRow(record.Record{"temporal_start": "", "temporal_end": "2003-01-01"})

	testsupport.AssertJSON(t, `[{"temporal_start":"2001-01-01","temporal_end":""},{"temporal_start":"","temporal_end":"2003-01-01"}]`, editor.Extract())
	if editor.Len() != 3 {
		t.Fatalf("filtering must not remove visible rows, got %d", editor.Len())
	}
}

func TestTemporalCoverage_FlagsErroneousRows(t *testing.T) {
	editor := editorFor(t, fieldsets.NewTemporalCoverage(), rows.WithErrorFlags(map[int]bool{0: true}))
	editor.Initialize(`[{"temporal_start":"2002-01-02","temporal_end":"2002-01-01"},{"temporal_start":"2001-01-01"}]`)

	got := editor.Rows()
	if !got[0].HasClass(rows.ErrorClass) || got[1].HasClass(rows.ErrorClass) {
		t.Fatalf("unexpected classes: %v / %v", got[0].Classes, got[1].Classes)
	}
}

func themeTable(t *testing.T) *subthemes.Table {
	t.Helper()
	table, err := subthemes.NewTable(
		subthemes.Theme{ID: "t1", Subthemes: []subthemes.Subtheme{{URI: "s1", Label: "one"}, {URI: "s2", Label: "two"}}},
		subthemes.Theme{ID: "t2", Subthemes: []subthemes.Subtheme{{URI: "s1", Label: "one"}, {URI: "s3", Label: "three"}}},
	)
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	return table
}

func TestTheme_PopulateRestoresOnlyValidSubthemes(t *testing.T) {
	editor := editorFor(t, fieldsets.NewTheme(themeTable(t)))
	editor.Initialize(`[{"theme":"t1","subthemes":["s2","s3"]}]`)

	row := editor.Rows()[0]
	subs := row.Control("theme_subthemes")
	if diff := cmp.Diff([]string{"s2"}, subs.Selected); diff != "" {
		t.Fatalf("selected mismatch (-want +got):\n%s", diff)
	}
	want := []model.Option{{Value: "s1", Label: "one"}, {Value: "s2", Label: "two"}}
	if diff := cmp.Diff(want, subs.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	testsupport.AssertJSON(t, `[{"theme":"t1","subthemes":["s2"]}]`, editor.Extract())
}

func TestTheme_ChangeResetsSelection(t *testing.T) {
	set := fieldsets.NewTheme(themeTable(t))
	editor := editorFor(t, set)
	editor.Initialize(`[{"theme":"t1","subthemes":["s1"]}]`)
	row := editor.Rows()[0]

	if !editor.Change(row.ID, "theme_theme", "t2") {
		t.Fatalf("expected change to apply")
	}

	subs := row.Control("theme_subthemes")
	if len(subs.Selected) != 0 {
		t.Fatalf("subthemes must be reset across theme changes, got %v", subs.Selected)
	}
	want := []model.Option{{Value: "s1", Label: "one"}, {Value: "s3", Label: "three"}}
	if diff := cmp.Diff(want, subs.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	testsupport.AssertJSON(t, `[{"theme":"t2","subthemes":[]}]`, editor.Extract())
}

func TestTheme_LegacyValues(t *testing.T) {
	set := fieldsets.NewTheme(themeTable(t))
	for _, raw := range []string{"{t1,t2}", "t1,t2"} {
		got := set.Load(raw)
		want := []record.Record{
			{"theme": "t1", "subthemes": []string{}},
			{"theme": "t2", "subthemes": []string{}},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("Load(%q) mismatch (-want +got):\n%s", raw, diff)
		}
	}
	if got := set.Load(`{"theme":"t1"}`); len(got) != 0 {
		t.Fatalf("JSON objects must not be read as legacy lists, got %#v", got)
	}
}

func TestDefaultRegistry(t *testing.T) {
	registry := fieldsets.Default(subthemes.MustDefault())

	want := []string{"alternate_identifier", "conforms_to", "creator", "temporal_coverage", "theme"}
	if diff := cmp.Diff(want, registry.List()); diff != "" {
		t.Fatalf("registry mismatch (-want +got):\n%s", diff)
	}
	if _, err := registry.Get("unknown"); err == nil {
		t.Fatalf("expected error for unknown field set")
	}
	if err := registry.Register(fieldsets.NewCreator()); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}
