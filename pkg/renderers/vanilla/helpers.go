package vanilla

import (
	"strings"

	"github.com/goliatone/go-formrows/pkg/render/template/gotemplate"
)

func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "fr-" + gotemplate.DOMID(trimmed)
}

// classList joins classes, dropping blanks and duplicates.
func classList(classes ...string) string {
	seen := make(map[string]struct{}, len(classes))
	keep := make([]string, 0, len(classes))
	for _, value := range classes {
		for _, token := range strings.Fields(value) {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			keep = append(keep, token)
		}
	}
	return strings.Join(keep, " ")
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
