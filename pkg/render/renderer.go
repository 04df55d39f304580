package render

import (
	"context"

	"github.com/goliatone/go-formrows/pkg/rows"
)

// Renderer converts an editor and its rows into a byte representation.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, editor *rows.Editor, options RenderOptions) ([]byte, error)
}

// FormRenderer is implemented by renderers that can place several editors in
// one form.
type FormRenderer interface {
	Renderer
	RenderForm(ctx context.Context, editors []*rows.Editor, options RenderOptions) ([]byte, error)
}
