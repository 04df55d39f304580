package config

import (
	"maps"
	"sort"
)

// Store keeps the parsed editor configurations. It is safe for concurrent
// readers when treated as immutable after construction.
type Store struct {
	editors map[string]Editor
}

// Editor customises one repeatable-row editor.
type Editor struct {
	Key         string
	Source      string
	Label       string
	TemplateID  string
	ContainerID string
	RemoveScope string
	Fields      map[string]FieldConfig
}

// FieldConfig customises how one row field is rendered.
type FieldConfig struct {
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Widget      string            `json:"widget,omitempty" yaml:"widget,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty" yaml:"uiHints,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Editor returns the configuration for key.
func (s *Store) Editor(key string) (Editor, bool) {
	if s == nil {
		return Editor{}, false
	}
	editor, ok := s.editors[key]
	return editor, ok
}

// Keys returns the configured editor keys in sorted order.
func (s *Store) Keys() []string {
	if s == nil {
		return nil
	}
	var keys []string
	for key := range s.editors {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Empty reports whether the store holds any editor.
func (s *Store) Empty() bool {
	return s == nil || len(s.editors) == 0
}

func cloneFieldConfig(cfg FieldConfig) FieldConfig {
	out := cfg
	out.UIHints = maps.Clone(cfg.UIHints)
	out.Metadata = maps.Clone(cfg.Metadata)
	return out
}
