package gotemplate

import (
	"strings"

	"github.com/flosch/pongo2/v6"
)

func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
	if !pongo2.FilterExists("domid") {
		_ = pongo2.RegisterFilter("domid", filterDOMID)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterDOMID turns a form field name such as "theme[0][theme_theme]" into
// an element id ("theme-0-theme_theme").
func filterDOMID(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(DOMID(in.String())), nil
}

// DOMID converts a bracketed field name into a valid element id.
func DOMID(name string) string {
	replacer := strings.NewReplacer("[]", "", "][", "-", "[", "-", "]", "", " ", "-")
	return strings.Trim(replacer.Replace(strings.TrimSpace(name)), "-")
}
