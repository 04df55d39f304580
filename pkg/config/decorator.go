package config

import (
	"fmt"
	"maps"
	"strings"

	"github.com/goliatone/go-formrows/pkg/model"
	"github.com/goliatone/go-formrows/pkg/rows"
)

var _ model.Decorator = Editor{}

// Decorate applies the editor label and field overrides to tmpl. Configuring
// a field the template does not have is an error.
func (e Editor) Decorate(tmpl *model.RowTemplate) error {
	if tmpl == nil {
		return nil
	}
	if e.Label != "" {
		tmpl.Label = e.Label
	}
	for name, cfg := range e.Fields {
		idx := fieldIndex(tmpl.Fields, name)
		if idx < 0 {
			return fmt.Errorf("config: editor %q (file %s) configures unknown field %q", e.Key, e.Source, name)
		}
		tmpl.Fields[idx] = applyField(tmpl.Fields[idx], cfg)
	}
	return nil
}

// Options converts the configuration into editor options.
func (e Editor) Options() []rows.Option {
	opts := []rows.Option{rows.WithDecorators(e)}
	if e.TemplateID != "" || e.ContainerID != "" {
		opts = append(opts, rows.WithContainerIDs(e.TemplateID, e.ContainerID))
	}
	if e.RemoveScope != "" {
		opts = append(opts, rows.WithRemoveScope(rows.RemoveScope(e.RemoveScope)))
	}
	return opts
}

// EditorOptions returns the options configured for key, or nil.
func (s *Store) EditorOptions(key string) []rows.Option {
	editor, ok := s.Editor(key)
	if !ok {
		return nil
	}
	return editor.Options()
}

func fieldIndex(fields []model.Field, name string) int {
	for idx, field := range fields {
		if strings.EqualFold(field.Name, name) {
			return idx
		}
	}
	return -1
}

func applyField(field model.Field, cfg FieldConfig) model.Field {
	if cfg.Label != "" {
		field.Label = cfg.Label
	}
	if cfg.Description != "" {
		field.Description = cfg.Description
	}
	if cfg.Placeholder != "" {
		field.Placeholder = cfg.Placeholder
	}
	if len(cfg.UIHints) > 0 || cfg.Widget != "" {
		hints := maps.Clone(field.UIHints)
		if hints == nil {
			hints = make(map[string]string, len(cfg.UIHints)+1)
		}
		maps.Copy(hints, cfg.UIHints)
		if cfg.Widget != "" {
			hints["widget"] = cfg.Widget
		}
		field.UIHints = hints
	}
	if len(cfg.Metadata) > 0 {
		metadata := maps.Clone(field.Metadata)
		if metadata == nil {
			metadata = make(map[string]string, len(cfg.Metadata))
		}
		maps.Copy(metadata, cfg.Metadata)
		field.Metadata = metadata
	}
	return field
}
