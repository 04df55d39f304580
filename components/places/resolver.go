package places

import (
	"context"
	"errors"
)

// ErrNotFound reports an id the resolver does not know.
var ErrNotFound = errors.New("places: place not found")

// Resolver looks places up by id or name.
type Resolver interface {
	Resolve(ctx context.Context, id string) (Place, error)
	Search(ctx context.Context, query string, limit int) ([]Place, error)
}
