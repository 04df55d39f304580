package render

// RenderOptions describe per-request data that renderers can use without
// mutating the editor.
type RenderOptions struct {
	// Errors carries server-side validation feedback keyed by field path, for
	// example "temporal_coverage.1.temporal_start". Use MapErrorPayload to
	// turn it into per-row messages.
	Errors map[string][]string
	// HiddenFields are emitted next to the editor (CSRF token, version).
	HiddenFields map[string]string
	// Label overrides the editor heading.
	Label string
	// Action is the form action used by standalone renders. Empty renders
	// only the editor fragment.
	Action string
}
