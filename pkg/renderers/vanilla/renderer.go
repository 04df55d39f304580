package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/goliatone/go-formrows/pkg/render"
	rendertemplate "github.com/goliatone/go-formrows/pkg/render/template"
	gotemplate "github.com/goliatone/go-formrows/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formrows/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-formrows/pkg/rows"
	"github.com/goliatone/go-formrows/pkg/widgets"
)

const (
	editorTemplate = "templates/editor.tmpl"
	formTemplate   = "templates/form.tmpl"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateDir      string
	templateRenderer rendertemplate.TemplateRenderer
	components       *components.Registry
	widgets          *widgets.Registry
	componentConfig  map[string]any
	defaultStyles    bool
	logger           *slog.Logger
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk. Templates
// missing from the directory fall back to the bundle set by WithTemplatesFS.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templateDir = path
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the control component registry. The
// renderer keeps a copy, so later changes to registry do not affect it.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.components = registry.Clone()
		}
	}
}

// WithWidgetRegistry replaces the registry that maps fields to components.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.widgets = registry
		}
	}
}

// WithComponentConfig passes settings to component renderers, for example
// "placesEndpoint".
func WithComponentConfig(values map[string]any) Option {
	return func(cfg *config) {
		if cfg.componentConfig == nil {
			cfg.componentConfig = make(map[string]any, len(values))
		}
		for key, value := range values {
			cfg.componentConfig[key] = value
		}
	}
}

// WithDefaultStyles inlines the bundled stylesheet into full form renders.
func WithDefaultStyles(enabled bool) Option {
	return func(cfg *config) {
		cfg.defaultStyles = enabled
	}
}

// WithLogger sets the logger used for render diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Renderer produces plain HTML that works without JavaScript: every editing
// action is a submit button decoded by formbind.
type Renderer struct {
	templates     rendertemplate.TemplateRenderer
	components    *components.Registry
	widgets       *widgets.Registry
	config        map[string]any
	defaultStyles bool
	logger        *slog.Logger
}

var _ render.FormRenderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), defaultStyles: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithBaseDir(cfg.templateDir),
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}
	if cfg.components == nil {
		cfg.components = components.NewDefaultRegistry()
	}
	if cfg.widgets == nil {
		cfg.widgets = widgets.NewRegistry()
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	return &Renderer{
		templates:     renderer,
		components:    cfg.components,
		widgets:       cfg.widgets,
		config:        cfg.componentConfig,
		defaultStyles: cfg.defaultStyles,
		logger:        cfg.logger,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the editor fragment. When options.Action is set the fragment
// is wrapped in a complete form.
func (r *Renderer) Render(ctx context.Context, editor *rows.Editor, options render.RenderOptions) ([]byte, error) {
	if editor == nil {
		return nil, fmt.Errorf("vanilla renderer: editor is nil")
	}
	if options.Action != "" {
		return r.RenderForm(ctx, []*rows.Editor{editor}, options)
	}
	html, _, err := r.renderEditor(editor, options)
	if err != nil {
		return nil, err
	}
	return []byte(html), nil
}

// RenderForm renders several editors inside one form with the hidden fields,
// submit button and component assets.
func (r *Renderer) RenderForm(_ context.Context, editors []*rows.Editor, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	fragments := make([]string, 0, len(editors))
	var used []string
	for _, editor := range editors {
		if editor == nil {
			continue
		}
		html, names, err := r.renderEditor(editor, options)
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, html)
		used = append(used, names...)
	}

	stylesheets, scripts := r.components.Assets(used)
	view := formView{
		Action:       options.Action,
		HiddenFields: render.SortedHiddenFields(options.HiddenFields),
		Editors:      fragments,
		Stylesheets:  stylesheets,
		Scripts:      scriptViews(scripts),
		Class:        string(ClassForm),
	}
	if r.defaultStyles {
		view.InlineStyles = defaultStylesheet()
	}

	result, err := r.templates.RenderTemplate(formTemplate, map[string]any{
		"form": view,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) renderEditor(editor *rows.Editor, options render.RenderOptions) (string, []string, error) {
	view, used, err := r.buildEditorView(editor, options)
	if err != nil {
		return "", nil, err
	}
	result, err := r.templates.RenderTemplate(editorTemplate, map[string]any{
		"editor": view,
	})
	if err != nil {
		return "", nil, fmt.Errorf("vanilla renderer: render editor %q: %w", editor.Name(), err)
	}
	return result, used, nil
}
