package subthemes

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/themes.yaml
var defaultThemes []byte

type document struct {
	Themes []themeDoc `yaml:"themes" json:"themes"`
}

type themeDoc struct {
	ID        string            `yaml:"id" json:"id"`
	Label     string            `yaml:"label" json:"label"`
	Labels    map[string]string `yaml:"labels" json:"labels"`
	Subthemes []subthemeDoc     `yaml:"subthemes" json:"subthemes"`
}

type subthemeDoc struct {
	URI      string            `yaml:"uri" json:"uri"`
	Label    string            `yaml:"label" json:"label"`
	Labels   map[string]string `yaml:"labels" json:"labels"`
	Children []subthemeDoc     `yaml:"children" json:"children"`
}

// Default returns the embedded table of EU data themes.
func Default() (*Table, error) {
	return Load(bytes.NewReader(defaultThemes))
}

// MustDefault panics when the embedded table cannot be parsed.
func MustDefault() *Table {
	table, err := Default()
	if err != nil {
		panic(err)
	}
	return table
}

// Load parses a YAML (or JSON, which YAML accepts) theme document.
func Load(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("subthemes: read: %w", err)
	}
	themes, err := parse(data, "document")
	if err != nil {
		return nil, err
	}
	return NewTable(themes...)
}

// LoadFS walks fsys and merges every .yaml, .yml, and .json theme document.
func LoadFS(fsys fs.FS) (*Table, error) {
	if fsys == nil {
		return NewTable()
	}
	var themes []Theme
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isThemeFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("subthemes: read %s: %w", path, err)
		}
		parsed, err := parse(data, path)
		if err != nil {
			return err
		}
		themes = append(themes, parsed...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewTable(themes...)
}

func parse(data []byte, source string) ([]Theme, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("subthemes: parse %s: %w", source, err)
	}
	out := make([]Theme, 0, len(doc.Themes))
	for _, raw := range doc.Themes {
		theme := Theme{
			ID:     raw.ID,
			Label:  raw.Label,
			Labels: raw.Labels,
		}
		theme.Subthemes = flatten(theme.Subthemes, raw.Subthemes, 0)
		out = append(out, theme)
	}
	return out, nil
}

func flatten(out []Subtheme, docs []subthemeDoc, depth int) []Subtheme {
	for _, doc := range docs {
		out = append(out, Subtheme{
			URI:    strings.TrimSpace(doc.URI),
			Label:  doc.Label,
			Labels: doc.Labels,
			Depth:  depth,
		})
		out = flatten(out, doc.Children, depth+1)
	}
	return out
}

func isThemeFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}
