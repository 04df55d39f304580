package places

import (
	"bufio"
	"context"
	"embed"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
)

//go:embed data/places.tsv
var dataFS embed.FS

const defaultListPath = "data/places.tsv"

var (
	defaultOnce   sync.Once
	defaultPlaces []Place
	defaultErr    error
)

// DefaultPlaces returns a copy of the embedded place list.
func DefaultPlaces() ([]Place, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultListPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		places, err := LoadPlaces(f)
		if err != nil {
			defaultErr = err
			return
		}
		defaultPlaces = places
	})

	if defaultErr != nil {
		return nil, defaultErr
	}
	return slices.Clone(defaultPlaces), nil
}

// LoadPlaces reads tab separated rows of id, name, admin name, country name
// and country code. Blank lines and lines starting with "#" are skipped; the
// first occurrence of an id wins.
func LoadPlaces(r io.Reader) ([]Place, error) {
	if r == nil {
		return nil, fmt.Errorf("places: missing reader")
	}

	scanner := bufio.NewScanner(r)
	places := make([]Place, 0, 256)
	seen := map[string]struct{}{}
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) < 2 {
			return nil, fmt.Errorf("places: line %d: expected at least id and name", lineNo)
		}
		id, ok := ParseID(cols[0])
		if !ok {
			return nil, fmt.Errorf("places: line %d: invalid id %q", lineNo, cols[0])
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		places = append(places, Place{
			ID:          id,
			Name:        strings.TrimSpace(cols[1]),
			AdminName:   column(cols, 2),
			CountryName: column(cols, 3),
			CountryCode: strings.ToUpper(column(cols, 4)),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(places, func(i, j int) bool {
		return places[i].Name < places[j].Name
	})
	return places, nil
}

func column(cols []string, idx int) string {
	if idx >= len(cols) {
		return ""
	}
	return strings.TrimSpace(cols[idx])
}

// Gazetteer is an offline Resolver over a fixed place list, optionally
// limited to a set of ISO country codes.
type Gazetteer struct {
	places []Place
	byID   map[string]int
	labels []string
}

var _ Resolver = (*Gazetteer)(nil)

// NewGazetteer indexes places. When countries is non-empty only places in
// those countries are kept.
func NewGazetteer(places []Place, countries ...string) *Gazetteer {
	allowed := make(map[string]struct{}, len(countries))
	for _, code := range countries {
		if code = strings.ToUpper(strings.TrimSpace(code)); code != "" {
			allowed[code] = struct{}{}
		}
	}

	g := &Gazetteer{byID: make(map[string]int, len(places))}
	for _, place := range places {
		if len(allowed) > 0 {
			if _, ok := allowed[strings.ToUpper(place.CountryCode)]; !ok {
				continue
			}
		}
		if _, dup := g.byID[place.ID]; dup {
			continue
		}
		g.byID[place.ID] = len(g.places)
		g.places = append(g.places, place)
		g.labels = append(g.labels, place.DisplayName())
	}
	return g
}

// DefaultGazetteer builds a gazetteer over the embedded place list.
func DefaultGazetteer(countries ...string) (*Gazetteer, error) {
	places, err := DefaultPlaces()
	if err != nil {
		return nil, fmt.Errorf("places: load default list: %w", err)
	}
	return NewGazetteer(places, countries...), nil
}

// Len reports the number of indexed places.
func (g *Gazetteer) Len() int {
	if g == nil {
		return 0
	}
	return len(g.places)
}

// Resolve accepts a bare id or any place URL.
func (g *Gazetteer) Resolve(ctx context.Context, id string) (Place, error) {
	if err := ctx.Err(); err != nil {
		return Place{}, err
	}
	parsed, ok := ParseID(id)
	if !ok {
		return Place{}, fmt.Errorf("places: invalid id %q", id)
	}
	idx, ok := g.byID[parsed]
	if !ok {
		return Place{}, fmt.Errorf("%w: %s", ErrNotFound, parsed)
	}
	return g.places[idx], nil
}

// Search fuzzily matches query against display names, best matches first.
// An empty query or non-positive limit yields no results.
func (g *Gazetteer) Search(ctx context.Context, query string, limit int) ([]Place, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" || limit <= 0 || g.Len() == 0 {
		return nil, nil
	}

	matches := fuzzy.Find(query, g.labels)
	out := make([]Place, 0, min(limit, len(matches)))
	for _, match := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, g.places[match.Index])
	}
	return out, nil
}
