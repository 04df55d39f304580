package formrows

import (
	"context"
	"net/url"

	"github.com/goliatone/go-formrows/pkg/orchestrator"
	"github.com/goliatone/go-formrows/pkg/render"
)

// RenderOptions describes per-request data renderers use to surface
// server-side validation errors and hidden fields.
type RenderOptions = render.RenderOptions

// Result aliases the single editor submission outcome.
type Result = orchestrator.Result

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders the editor named key for its stored value with the
// default renderer.
func GenerateHTML(ctx context.Context, key, value, lang string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Editor: key,
		Value:  value,
		Lang:   lang,
	})
}

// ExtractValue decodes a posted form for the editor named key and returns the
// recomputed hidden value. stored is used when the form only carries the
// hidden input.
func ExtractValue(ctx context.Context, key, stored, lang string, form url.Values, options ...orchestrator.Option) (string, error) {
	gen := orchestrator.New(options...)
	result, err := gen.Submit(ctx, orchestrator.Request{
		Editor: key,
		Value:  stored,
		Lang:   lang,
		Form:   form,
	})
	if err != nil {
		return "", err
	}
	return result.Value, nil
}
