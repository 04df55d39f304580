package rows

import (
	"slices"
	"strings"
)

// RemoveScope selects what a remove control deletes.
type RemoveScope string

const (
	// RemoveItem deletes the nearest enclosing element: a list item when the
	// target names one, otherwise the row.
	RemoveItem RemoveScope = "item"
	// RemoveRow always deletes the whole row.
	RemoveRow RemoveScope = "row"
)

// TemplateRowID is the id reserved for the template row.
const TemplateRowID = "__template"

// Config carries the declarative settings of a field set.
type Config struct {
	// Key is the hidden input name and the data-storage key.
	Key string `json:"key" yaml:"key"`
	// Prefix is stripped from input names during extraction.
	Prefix      string      `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Localized   []string    `json:"localized,omitempty" yaml:"localized,omitempty"`
	Lists       []string    `json:"lists,omitempty" yaml:"lists,omitempty"`
	Identifier  string      `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	TemplateID  string      `json:"templateId,omitempty" yaml:"templateId,omitempty"`
	ContainerID string      `json:"containerId,omitempty" yaml:"containerId,omitempty"`
	RemoveScope RemoveScope `json:"removeScope,omitempty" yaml:"removeScope,omitempty"`
}

// WithDefaults fills ids and scope derived from Key.
func (c Config) WithDefaults() Config {
	if c.TemplateID == "" {
		c.TemplateID = c.Key + "_template"
	}
	if c.ContainerID == "" {
		c.ContainerID = c.Key + "_container"
	}
	if c.RemoveScope == "" {
		c.RemoveScope = RemoveItem
	}
	return c
}

// FieldName strips the configured prefix from an input name.
func (c Config) FieldName(name string) string {
	if c.Prefix == "" {
		return name
	}
	return strings.TrimPrefix(name, c.Prefix)
}

// InputName adds the configured prefix to a field name.
func (c Config) InputName(field string) string {
	if c.Prefix == "" || strings.HasPrefix(field, c.Prefix) {
		return field
	}
	return c.Prefix + field
}

// IsLocalized reports whether field holds per-language text.
func (c Config) IsLocalized(field string) bool {
	return slices.Contains(c.Localized, c.FieldName(field))
}

// IsList reports whether field is a repeated list.
func (c Config) IsList(field string) bool {
	return slices.Contains(c.Lists, c.FieldName(field))
}
