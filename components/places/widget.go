package places

import (
	"context"
	"errors"
)

// Selection is the state a place input shows for a stored URL.
type Selection struct {
	URL      string `json:"url"`
	Label    string `json:"label"`
	Resolved bool   `json:"resolved"`
}

// Widget keeps a stored place URL in canonical form and resolves its display
// name.
type Widget struct {
	resolver Resolver
}

// NewWidget returns a widget backed by resolver. A nil resolver only
// normalises URLs.
func NewWidget(resolver Resolver) *Widget {
	return &Widget{resolver: resolver}
}

// Load describes stored. Invalid URLs and unknown places come back
// unresolved without an error; only resolver failures are reported.
func (w *Widget) Load(ctx context.Context, stored string) (Selection, error) {
	canonical, ok := NormalizeURL(stored)
	if !ok {
		return Selection{URL: stored}, nil
	}
	selection := Selection{URL: canonical}
	if w == nil || w.resolver == nil {
		return selection, nil
	}
	place, err := w.resolver.Resolve(ctx, canonical)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return selection, nil
		}
		return selection, err
	}
	selection.Label = place.DisplayName()
	selection.Resolved = true
	return selection, nil
}

// Select returns the value to store after the user picked raw. Input that is
// not a place id or URL leaves stored unchanged.
func (w *Widget) Select(stored, raw string) string {
	if canonical, ok := NormalizeURL(raw); ok {
		return canonical
	}
	return stored
}
