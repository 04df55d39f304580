package config

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formrows/pkg/rows"
)

type documentFile struct {
	Editors map[string]editorFile `json:"editors" yaml:"editors"`
}

type editorFile struct {
	Label       string                 `json:"label" yaml:"label"`
	TemplateID  string                 `json:"templateId" yaml:"templateId"`
	ContainerID string                 `json:"containerId" yaml:"containerId"`
	RemoveScope string                 `json:"removeScope" yaml:"removeScope"`
	Fields      map[string]FieldConfig `json:"fields" yaml:"fields"`
}

// LoadFS walks fsys and parses every JSON/YAML configuration file. When fsys
// is nil or holds no configuration files, the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{editors: make(map[string]Editor)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isConfigFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
		return store.add(data, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Load parses a single document read from r. source names it in errors.
func Load(r io.Reader, source string) (*Store, error) {
	if r == nil {
		return nil, fmt.Errorf("config: missing reader")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", source, err)
	}
	store := &Store{editors: make(map[string]Editor)}
	if err := store.add(data, source); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) add(data []byte, source string) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}
	for rawKey, raw := range doc.Editors {
		key := strings.TrimSpace(rawKey)
		if key == "" {
			return fmt.Errorf("config: file %s defines an empty editor key", source)
		}
		if _, exists := s.editors[key]; exists {
			return fmt.Errorf("config: duplicate editor %q (file %s)", key, source)
		}
		editor, err := normaliseEditor(raw, key, source)
		if err != nil {
			return err
		}
		s.editors[key] = editor
	}
	return nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("config: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("config: parse %s: invalid JSON or YAML", source)
}

func normaliseEditor(raw editorFile, key, source string) (Editor, error) {
	scope := strings.ToLower(strings.TrimSpace(raw.RemoveScope))
	switch rows.RemoveScope(scope) {
	case "", rows.RemoveItem, rows.RemoveRow:
	default:
		return Editor{}, fmt.Errorf("config: editor %q (file %s) has unknown removeScope %q", key, source, raw.RemoveScope)
	}

	editor := Editor{
		Key:         key,
		Source:      source,
		Label:       strings.TrimSpace(raw.Label),
		TemplateID:  strings.TrimSpace(raw.TemplateID),
		ContainerID: strings.TrimSpace(raw.ContainerID),
		RemoveScope: scope,
		Fields:      make(map[string]FieldConfig, len(raw.Fields)),
	}
	for name, cfg := range raw.Fields {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return Editor{}, fmt.Errorf("config: editor %q (file %s) has an empty field name", key, source)
		}
		editor.Fields[trimmed] = cloneFieldConfig(cfg)
	}
	return editor, nil
}

func isConfigFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
