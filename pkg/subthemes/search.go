package subthemes

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Search returns the subthemes of theme whose label fuzzily matches query,
// best matches first. An empty query returns the subthemes in table order.
// A non-positive limit returns every match.
func (t *Table) Search(theme, query, lang string, limit int) []Subtheme {
	entry, ok := t.Theme(theme)
	if !ok {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return clip(append([]Subtheme(nil), entry.Subthemes...), limit)
	}

	names := make([]string, len(entry.Subthemes))
	for idx, sub := range entry.Subthemes {
		names[idx] = sub.Name(lang)
	}

	matches := fuzzy.Find(query, names)
	out := make([]Subtheme, 0, len(matches))
	for _, match := range matches {
		out = append(out, entry.Subthemes[match.Index])
	}
	return clip(out, limit)
}

func clip(list []Subtheme, limit int) []Subtheme {
	if limit > 0 && len(list) > limit {
		return list[:limit]
	}
	return list
}
