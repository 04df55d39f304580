package subthemes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formrows/pkg/model"
)

// Subtheme is one flattened entry of a theme tree.
type Subtheme struct {
	URI    string
	Label  string
	Labels map[string]string
	Depth  int
}

// Name returns the label for lang, falling back to the default label.
func (s Subtheme) Name(lang string) string {
	if label := strings.TrimSpace(s.Labels[lang]); label != "" {
		return label
	}
	return s.Label
}

// Theme is a top-level theme and its flattened subthemes.
type Theme struct {
	ID        string
	Label     string
	Labels    map[string]string
	Subthemes []Subtheme
}

// Name returns the theme label for lang, falling back to the default label
// and then the id.
func (t Theme) Name(lang string) string {
	if label := strings.TrimSpace(t.Labels[lang]); label != "" {
		return label
	}
	if t.Label != "" {
		return t.Label
	}
	return t.ID
}

// Table is the read-only lookup from theme id to subthemes.
type Table struct {
	order  []string
	themes map[string]Theme
	index  map[string]map[string]struct{}
}

// NewTable builds a table from the given themes. Duplicate or empty theme
// ids are rejected.
func NewTable(themes ...Theme) (*Table, error) {
	table := &Table{
		themes: make(map[string]Theme, len(themes)),
		index:  make(map[string]map[string]struct{}, len(themes)),
	}
	for _, theme := range themes {
		id := NormalizeTheme(theme.ID)
		if id == "" {
			return nil, fmt.Errorf("subthemes: theme id is required")
		}
		if _, exists := table.themes[id]; exists {
			return nil, fmt.Errorf("subthemes: duplicate theme %q", id)
		}
		theme.ID = id
		uris := make(map[string]struct{}, len(theme.Subthemes))
		for _, sub := range theme.Subthemes {
			if strings.TrimSpace(sub.URI) == "" {
				return nil, fmt.Errorf("subthemes: theme %q has a subtheme without uri", id)
			}
			uris[sub.URI] = struct{}{}
		}
		table.themes[id] = theme
		table.index[id] = uris
		table.order = append(table.order, id)
	}
	sort.Strings(table.order)
	return table, nil
}

// NormalizeTheme reduces a theme URI to its trailing id, so
// "http://publications.europa.eu/resource/authority/data-theme/AGRI" and
// "AGRI" address the same theme.
func NormalizeTheme(theme string) string {
	theme = strings.TrimSpace(theme)
	if idx := strings.LastIndex(theme, "/"); idx >= 0 {
		theme = theme[idx+1:]
	}
	return theme
}

// Themes returns the themes ordered by id.
func (t *Table) Themes() []Theme {
	if t == nil {
		return nil
	}
	out := make([]Theme, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.themes[id])
	}
	return out
}

// Theme returns the theme with the given id or URI.
func (t *Table) Theme(id string) (Theme, bool) {
	if t == nil {
		return Theme{}, false
	}
	theme, ok := t.themes[NormalizeTheme(id)]
	return theme, ok
}

// ThemeOptions returns one option per theme labelled for lang.
func (t *Table) ThemeOptions(lang string) []model.Option {
	themes := t.Themes()
	out := make([]model.Option, 0, len(themes))
	for _, theme := range themes {
		out = append(out, model.Option{Value: theme.ID, Label: theme.Name(lang)})
	}
	return out
}

// Options returns the subtheme options of theme. Labels are indented with one
// dash per depth level. Unknown themes yield no options.
func (t *Table) Options(theme, lang string) []model.Option {
	entry, ok := t.Theme(theme)
	if !ok {
		return nil
	}
	out := make([]model.Option, 0, len(entry.Subthemes))
	for _, sub := range entry.Subthemes {
		out = append(out, model.Option{Value: sub.URI, Label: indent(sub.Name(lang), sub.Depth)})
	}
	return out
}

// Has reports whether uri is a subtheme of theme.
func (t *Table) Has(theme, uri string) bool {
	if t == nil {
		return false
	}
	uris, ok := t.index[NormalizeTheme(theme)]
	if !ok {
		return false
	}
	_, ok = uris[uri]
	return ok
}

// Filter keeps the uris that belong to theme, preserving their order.
func (t *Table) Filter(theme string, uris []string) []string {
	out := make([]string, 0, len(uris))
	for _, uri := range uris {
		if t.Has(theme, uri) {
			out = append(out, uri)
		}
	}
	return out
}

func indent(label string, depth int) string {
	if depth <= 0 {
		return label
	}
	return strings.Repeat("-", depth) + " " + label
}
