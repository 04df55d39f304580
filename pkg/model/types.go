package model

// FieldType is the simplified enum for row control kinds.
type FieldType string

const (
	FieldTypeString      FieldType = "string"
	FieldTypeList        FieldType = "list"
	FieldTypeChoice      FieldType = "choice"
	FieldTypeMultiChoice FieldType = "multi-choice"
)

// Option is a selectable value for choice fields.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field models one control inside a repeated row. Struct fields are annotated
// so renderers can serialise them directly when needed.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Format      string            `json:"format,omitempty"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Description string            `json:"description,omitempty"`
	Options     []Option          `json:"options,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// RowTemplate is the blueprint cloned for every row of an editor.
type RowTemplate struct {
	Key      string            `json:"key"`
	Label    string            `json:"label,omitempty"`
	Fields   []Field           `json:"fields"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Field returns the template field with the given name.
func (t RowTemplate) Field(name string) (Field, bool) {
	for _, field := range t.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Clone deep copies the template so decorators can mutate freely.
func (t RowTemplate) Clone() RowTemplate {
	out := RowTemplate{
		Key:      t.Key,
		Label:    t.Label,
		Fields:   make([]Field, len(t.Fields)),
		Metadata: cloneStringMap(t.Metadata),
	}
	for idx, field := range t.Fields {
		out.Fields[idx] = field.Clone()
	}
	return out
}

// Clone deep copies a field.
func (f Field) Clone() Field {
	out := f
	if len(f.Options) > 0 {
		out.Options = append([]Option(nil), f.Options...)
	}
	out.UIHints = cloneStringMap(f.UIHints)
	out.Metadata = cloneStringMap(f.Metadata)
	return out
}

func cloneStringMap(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for key, value := range src {
		out[key] = value
	}
	return out
}
