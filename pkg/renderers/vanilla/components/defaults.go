package components

import (
	"bytes"
	"fmt"
	"strconv"
)

const templatePrefix = "templates/components/"

// NewDefaultRegistry constructs a registry pre-populated with the built-in
// components used by the vanilla renderer.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(NameInput, Descriptor{
		Renderer: templateComponentRenderer(templatePrefix+"input.tmpl", ""),
	})
	registry.MustRegister(NameTextarea, Descriptor{
		Renderer: templateComponentRenderer(templatePrefix+"textarea.tmpl", ""),
	})
	registry.MustRegister(NameDate, Descriptor{
		Renderer: templateComponentRenderer(templatePrefix+"input.tmpl", "date"),
	})
	registry.MustRegister(NameURL, Descriptor{
		Renderer: templateComponentRenderer(templatePrefix+"input.tmpl", "url"),
	})
	registry.MustRegister(NameSelect, Descriptor{
		Renderer: templateComponentRenderer(templatePrefix+"select.tmpl", ""),
	})
	registry.MustRegister(NameMultiSelect, Descriptor{
		Renderer: templateComponentRenderer(templatePrefix+"multiselect.tmpl", ""),
	})
	registry.MustRegister(NameList, Descriptor{
		Renderer: templateComponentRenderer(templatePrefix+"list.tmpl", ""),
	})
	registry.MustRegister(NamePlace, Descriptor{
		Renderer: placeRenderer,
		Scripts: []Script{
			{Src: "/assets/formrows.js", Defer: true},
		},
	})

	return registry
}

// templateComponentRenderer renders templateName. A non-empty inputType is
// applied unless the control already carries one.
func templateComponentRenderer(templateName, inputType string) Renderer {
	return func(buf *bytes.Buffer, control ControlView, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}
		if control.InputType == "" {
			control.InputType = inputType
		}
		payload := map[string]any{
			"control": control,
			"config":  data.Config,
		}
		rendered, err := data.Template.RenderTemplate(templateName, payload)
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", templateName, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}

// placeRenderer renders a text input wired to the place lookup endpoint. The
// lookup URL comes from Config["placesEndpoint"]. A resolved stored place
// carries its display name in data-label and title.
func placeRenderer(buf *bytes.Buffer, control ControlView, data ComponentData) error {
	attrs := make(map[string]string, len(control.Attrs)+5)
	for key, value := range control.Attrs {
		attrs[key] = value
	}
	attrs["data-place-lookup"] = "true"
	if endpoint, ok := data.Config["placesEndpoint"].(string); ok && endpoint != "" {
		attrs["data-endpoint"] = endpoint
	}
	if control.Value != "" {
		attrs["data-resolved"] = strconv.FormatBool(control.Display != "")
	}
	if control.Display != "" {
		attrs["data-label"] = control.Display
		attrs["title"] = control.Display
	}
	control.Attrs = attrs
	if control.InputType == "" {
		control.InputType = "url"
	}
	return templateComponentRenderer(templatePrefix+"input.tmpl", "")(buf, control, data)
}
