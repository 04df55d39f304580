package components

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegistryDescriptorClone(t *testing.T) {
	reg := New()
	renderer := func(buf *bytes.Buffer, control ControlView, data ComponentData) error { return nil }

	if err := reg.Register("test", Descriptor{Renderer: renderer, Stylesheets: []string{"/a.css"}}); err != nil {
		t.Fatalf("register: %v", err)
	}

	desc, ok := reg.Descriptor("test")
	if !ok {
		t.Fatalf("descriptor not found")
	}
	desc.Stylesheets = append(desc.Stylesheets, "/mutated.css")

	original, _ := reg.Descriptor("test")
	if len(original.Stylesheets) != 1 || original.Stylesheets[0] != "/a.css" {
		t.Fatalf("registry descriptor mutated: %#v", original.Stylesheets)
	}
}

func TestRegistryAssetsDeduplicates(t *testing.T) {
	reg := NewDefaultRegistry()
	reg.MustRegister("rich-place", Descriptor{
		Renderer: placeRenderer,
		Scripts:  []Script{{Src: "/assets/formrows.js", Defer: true}},
	})

	_, scripts := reg.Assets([]string{NamePlace, "rich-place", NameInput})
	if len(scripts) != 1 {
		t.Fatalf("expected 1 unique script, got %d: %v", len(scripts), scripts)
	}
}

type recordingTemplate struct {
	name string
	data any
}

func (r *recordingTemplate) Render(name string, data any, out ...io.Writer) (string, error) {
	return r.RenderTemplate(name, data, out...)
}

func (r *recordingTemplate) RenderTemplate(name string, data any, _ ...io.Writer) (string, error) {
	r.name = name
	r.data = data
	return "<input>", nil
}

func (r *recordingTemplate) RenderString(string, any, ...io.Writer) (string, error) {
	return "", nil
}

func (r *recordingTemplate) RegisterFilter(string, func(any, any) (any, error)) error {
	return nil
}

func (r *recordingTemplate) GlobalContext(any) error { return nil }

func TestDefaultRegistry_DateAndPlace(t *testing.T) {
	reg := NewDefaultRegistry()
	tmpl := &recordingTemplate{}

	date, _ := reg.Descriptor(NameDate)
	var buf bytes.Buffer
	if err := date.Renderer(&buf, ControlView{Name: "start"}, ComponentData{Template: tmpl}); err != nil {
		t.Fatalf("render date: %v", err)
	}
	control := tmpl.data.(map[string]any)["control"].(ControlView)
	if control.InputType != "date" || !strings.HasSuffix(tmpl.name, "input.tmpl") {
		t.Fatalf("expected date input, got %q via %q", control.InputType, tmpl.name)
	}

	place, _ := reg.Descriptor(NamePlace)
	buf.Reset()
	err := place.Renderer(&buf, ControlView{Name: "geo"}, ComponentData{
		Template: tmpl,
		Config:   map[string]any{"placesEndpoint": "/places"},
	})
	if err != nil {
		t.Fatalf("render place: %v", err)
	}
	control = tmpl.data.(map[string]any)["control"].(ControlView)
	if control.Attrs["data-endpoint"] != "/places" || control.Attrs["data-place-lookup"] != "true" {
		t.Fatalf("unexpected place attributes: %#v", control.Attrs)
	}
	if _, ok := control.Attrs["data-resolved"]; ok {
		t.Fatalf("empty place must not report resolution: %#v", control.Attrs)
	}

	buf.Reset()
	err = place.Renderer(&buf, ControlView{Name: "geo", Value: "http://www.geonames.org/1", Display: "Roma, Italy"}, ComponentData{
		Template: tmpl,
	})
	if err != nil {
		t.Fatalf("render resolved place: %v", err)
	}
	control = tmpl.data.(map[string]any)["control"].(ControlView)
	want := map[string]string{
		"data-place-lookup": "true",
		"data-resolved":     "true",
		"data-label":        "Roma, Italy",
		"title":             "Roma, Italy",
	}
	if diff := cmp.Diff(want, control.Attrs); diff != "" {
		t.Fatalf("resolved place attributes mismatch (-want +got):\n%s", diff)
	}
}

func TestRegister_RequiresRenderer(t *testing.T) {
	if err := New().Register("broken", Descriptor{}); err == nil {
		t.Fatalf("expected error for nil renderer")
	}
}
