package places

import (
	"regexp"
	"strings"
)

// CanonicalPrefix is the base of every stored place URL.
const CanonicalPrefix = "http://www.geonames.org/"

var (
	numericID = regexp.MustCompile(`^[0-9]+$`)
	placeURL  = regexp.MustCompile(`^https?://(?:www\.)?geonames\.org/([0-9]+)(?:/.*)?$`)
)

// NormalizeURL turns a bare GeoNames id or any geonames.org place URL into the
// canonical form http://www.geonames.org/<id>. Other input reports false.
func NormalizeURL(raw string) (string, bool) {
	id, ok := ParseID(raw)
	if !ok {
		return "", false
	}
	return CanonicalPrefix + id, true
}

// ParseID extracts the numeric GeoNames id from a bare id or a place URL.
func ParseID(raw string) (string, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", false
	}
	if numericID.MatchString(value) {
		return value, true
	}
	if match := placeURL.FindStringSubmatch(value); match != nil {
		return match[1], true
	}
	return "", false
}

// Place is one gazetteer entry.
type Place struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AdminName   string `json:"adminName,omitempty"`
	CountryName string `json:"countryName,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
}

// URL returns the canonical place URL.
func (p Place) URL() string {
	return CanonicalPrefix + p.ID
}

// DisplayName joins name, first-level admin name and country, skipping blank
// and repeated parts ("Roma, Lazio, Italy").
func (p Place) DisplayName() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{p.Name, p.AdminName, p.CountryName} {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if len(parts) > 0 && strings.EqualFold(parts[len(parts)-1], part) {
			continue
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}

// Option is the JSON shape consumed by the lookup input.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// AsOption converts p into a select option keyed by its canonical URL.
func (p Place) AsOption() Option {
	return Option{Value: p.URL(), Label: p.DisplayName()}
}
