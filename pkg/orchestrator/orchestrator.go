package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"strings"

	"github.com/goliatone/go-formrows/components/places"
	"github.com/goliatone/go-formrows/pkg/config"
	"github.com/goliatone/go-formrows/pkg/fieldsets"
	"github.com/goliatone/go-formrows/pkg/formbind"
	"github.com/goliatone/go-formrows/pkg/model"
	"github.com/goliatone/go-formrows/pkg/record"
	"github.com/goliatone/go-formrows/pkg/render"
	"github.com/goliatone/go-formrows/pkg/renderers/vanilla"
	"github.com/goliatone/go-formrows/pkg/rows"
	"github.com/goliatone/go-formrows/pkg/subthemes"
	"github.com/goliatone/go-formrows/pkg/widgets"
)

const (
	defaultRendererName = "vanilla"
	placeFormat         = "geonames"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithFieldSets injects the field set registry. Defaults to
// fieldsets.Default over the subtheme table.
func WithFieldSets(registry *fieldsets.Registry) Option {
	return func(o *Orchestrator) {
		o.fieldSets = registry
	}
}

// WithSubthemes sets the table used by the default theme field set.
func WithSubthemes(table *subthemes.Table) Option {
	return func(o *Orchestrator) {
		o.subthemes = table
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithConfigFS supplies an fs.FS holding editor configuration documents. Pass
// nil to disable the embedded defaults.
func WithConfigFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.configFS = fsys
		o.configSpecified = true
	}
}

// WithConfigStore injects an already loaded configuration store.
func WithConfigStore(store *config.Store) Option {
	return func(o *Orchestrator) {
		o.configStore = store
		o.configSpecified = true
	}
}

// WithDecorators registers decorators that run against every row template
// after the configuration overrides.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithPlaces normalises submitted place fields (format "geonames") through
// widget and resolves stored place URLs to display names before rendering.
func WithPlaces(widget *places.Widget) Option {
	return func(o *Orchestrator) {
		o.places = widget
	}
}

// WithLogger sets the logger handed to editors.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the full pipeline from stored value to rendered
// editor and from submitted form back to the stored value. It applies
// defaults (vanilla renderer, embedded configuration, default field sets)
// while remaining open to dependency injection.
type Orchestrator struct {
	fieldSets       *fieldsets.Registry
	subthemes       *subthemes.Table
	registry        *render.Registry
	defaultRenderer string
	configFS        fs.FS
	configSpecified bool
	configStore     *config.Store
	decorators      []model.Decorator
	places          *places.Widget
	logger          *slog.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one editor render or submission.
type Request struct {
	// Editor names the field set ("conforms_to", "theme", ...).
	Editor string

	// Value is the stored hidden value the editor starts from.
	Value string

	// Lang selects the language of localized controls.
	Lang string

	// Form carries the posted values for Submit.
	Form url.Values

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// RenderOptions carries per-request data such as server-side errors and
	// hidden fields.
	RenderOptions render.RenderOptions
}

// Result is the outcome of a submission.
type Result struct {
	// Value is the recomputed hidden value.
	Value   string
	Records []record.Record
	// Action is the editing action the submission carried. When
	// Action.Pending() the caller should show Output again instead of saving.
	Action formbind.Action
	Output []byte
}

// FormRequest describes several editors rendered into one form.
type FormRequest struct {
	Editors       []string
	Values        map[string]string
	Lang          string
	Form          url.Values
	Renderer      string
	RenderOptions render.RenderOptions
}

// FormResult is the outcome of a multi-editor submission.
type FormResult struct {
	Values  map[string]string
	Records map[string][]record.Record
	Actions map[string]formbind.Action
	Output  []byte
}

// Pending reports whether any editor requested an editing action.
func (r FormResult) Pending() bool {
	for _, action := range r.Actions {
		if action.Pending() {
			return true
		}
	}
	return false
}

// Generate renders the editor named by req for its stored value.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}
	editor, err := o.NewEditor(req.Editor, req.Lang, req.RenderOptions, nil)
	if err != nil {
		return nil, err
	}
	editor.Initialize(req.Value)
	o.resolvePlaces(ctx, editor)
	return o.render(ctx, req.Renderer, editor, req.RenderOptions)
}

// Submit decodes the posted form, applies its editing action, recomputes the
// hidden value and renders the editor again.
func (o *Orchestrator) Submit(ctx context.Context, req Request) (Result, error) {
	if err := o.ready(ctx); err != nil {
		return Result{}, err
	}
	editor, err := o.NewEditor(req.Editor, req.Lang, req.RenderOptions, nil)
	if err != nil {
		return Result{}, err
	}
	editor.Initialize(req.Value)

	action, err := formbind.Decode(editor, req.Form)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: decode %s: %w", editor.Name(), err)
	}
	o.normalisePlaces(editor)
	o.resolvePlaces(ctx, editor)

	result := Result{
		Value:   editor.Extract(),
		Records: editor.Records(),
		Action:  action,
	}
	result.Output, err = o.render(ctx, req.Renderer, editor, req.RenderOptions)
	if err != nil {
		return Result{}, err
	}
	return result, nil
}

// GenerateForm renders every requested editor inside one form.
func (o *Orchestrator) GenerateForm(ctx context.Context, req FormRequest) ([]byte, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}
	editors, err := o.formEditors(req)
	if err != nil {
		return nil, err
	}
	for _, editor := range editors {
		editor.Initialize(req.Values[editor.Name()])
		o.resolvePlaces(ctx, editor)
	}
	return o.renderForm(ctx, req.Renderer, editors, req.RenderOptions)
}

// SubmitForm decodes every requested editor from the posted form. Editors
// missing from the submission keep their stored value.
func (o *Orchestrator) SubmitForm(ctx context.Context, req FormRequest) (FormResult, error) {
	if err := o.ready(ctx); err != nil {
		return FormResult{}, err
	}
	editors, err := o.formEditors(req)
	if err != nil {
		return FormResult{}, err
	}

	result := FormResult{
		Values:  make(map[string]string, len(editors)),
		Records: make(map[string][]record.Record, len(editors)),
		Actions: make(map[string]formbind.Action, len(editors)),
	}
	for _, editor := range editors {
		key := editor.Name()
		editor.Initialize(req.Values[key])
		action, err := formbind.Decode(editor, req.Form)
		switch {
		case errors.Is(err, formbind.ErrNotSubmitted):
			o.logger.Debug("editor missing from submission, keeping stored value", "editor", key)
		case err != nil:
			return FormResult{}, fmt.Errorf("orchestrator: decode %s: %w", key, err)
		}
		o.normalisePlaces(editor)
		o.resolvePlaces(ctx, editor)
		result.Values[key] = editor.Extract()
		result.Records[key] = editor.Records()
		result.Actions[key] = action
	}

	result.Output, err = o.renderForm(ctx, req.Renderer, editors, req.RenderOptions)
	if err != nil {
		return FormResult{}, err
	}
	return result, nil
}

// NewEditor builds an editor for key with the configured overrides. Error
// flags come from options.Errors. bindings may be nil.
func (o *Orchestrator) NewEditor(key, lang string, options render.RenderOptions, bindings *rows.Bindings) (*rows.Editor, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, errors.New("orchestrator: editor name is required")
	}
	set, err := o.fieldSets.Get(key)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}

	opts := []rows.Option{
		rows.WithLang(lang),
		rows.WithLogger(o.logger),
		rows.WithBindings(bindings),
	}
	if flags := render.MapErrorPayload(key, options.Errors).Flags(); len(flags) > 0 {
		opts = append(opts, rows.WithErrorFlags(flags))
	}
	opts = append(opts, o.configStore.EditorOptions(key)...)
	if len(o.decorators) > 0 {
		opts = append(opts, rows.WithDecorators(o.decorators...))
	}

	editor, err := rows.New(set, opts...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: editor %s: %w", key, err)
	}
	return editor, nil
}

func (o *Orchestrator) formEditors(req FormRequest) ([]*rows.Editor, error) {
	if len(req.Editors) == 0 {
		return nil, errors.New("orchestrator: at least one editor is required")
	}
	bindings := rows.NewBindings()
	editors := make([]*rows.Editor, 0, len(req.Editors))
	for _, key := range req.Editors {
		editor, err := o.NewEditor(key, req.Lang, req.RenderOptions, bindings)
		if err != nil {
			return nil, err
		}
		if !editor.Bind("") {
			return nil, fmt.Errorf("orchestrator: editor container %q requested twice", editor.Config().ContainerID)
		}
		editors = append(editors, editor)
	}
	return editors, nil
}

// normalisePlaces rewrites place controls to canonical GeoNames URLs.
// Unparseable input keeps the previously stored value.
func (o *Orchestrator) normalisePlaces(editor *rows.Editor) {
	if o.places == nil {
		return
	}
	cfg := editor.Config()
	for _, row := range editor.Rows() {
		for _, ctl := range row.Controls {
			if !strings.EqualFold(ctl.Field.Format, placeFormat) || ctl.Value == "" {
				continue
			}
			ctl.Value = o.places.Select(row.Data.String(cfg.FieldName(ctl.Name)), ctl.Value)
		}
	}
}

// resolvePlaces fills the display name of place controls holding a stored
// URL. Resolver failures are logged and leave the control unresolved.
func (o *Orchestrator) resolvePlaces(ctx context.Context, editor *rows.Editor) {
	if o.places == nil {
		return
	}
	for _, row := range editor.Rows() {
		for _, ctl := range row.Controls {
			if !strings.EqualFold(ctl.Field.Format, placeFormat) || ctl.Value == "" {
				continue
			}
			selection, err := o.places.Load(ctx, ctl.Value)
			if err != nil {
				o.logger.Warn("place lookup failed", "editor", editor.Name(), "value", ctl.Value, "error", err)
				continue
			}
			if selection.Resolved {
				ctl.Display = selection.Label
			}
		}
	}
}

func (o *Orchestrator) ready(ctx context.Context) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return o.initialiseErr
}

func (o *Orchestrator) render(ctx context.Context, name string, editor *rows.Editor, options render.RenderOptions) ([]byte, error) {
	renderer, err := o.rendererFor(name)
	if err != nil {
		return nil, err
	}
	output, err := renderer.Render(ctx, editor, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

func (o *Orchestrator) renderForm(ctx context.Context, name string, editors []*rows.Editor, options render.RenderOptions) ([]byte, error) {
	renderer, err := o.rendererFor(name)
	if err != nil {
		return nil, err
	}
	formRenderer, ok := renderer.(render.FormRenderer)
	if !ok {
		return nil, fmt.Errorf("orchestrator: renderer %q cannot render forms", renderer.Name())
	}
	output, err := formRenderer.RenderForm(ctx, editors, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render form: %w", err)
	}
	return output, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.fieldSets == nil {
		table := o.subthemes
		if table == nil {
			loaded, err := subthemes.Default()
			if err != nil {
				o.initialiseErr = fmt.Errorf("orchestrator: load subthemes: %w", err)
				return
			}
			table = loaded
		}
		o.fieldSets = fieldsets.Default(table)
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New(vanilla.WithLogger(o.logger))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry.MustRegister(renderer)
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	o.decorators = append(o.decorators, widgets.NewRegistry())
	o.ensureConfig()
}

func (o *Orchestrator) ensureConfig() {
	if o.configStore != nil {
		return
	}
	if !o.configSpecified && o.configFS == nil {
		o.configFS = config.EmbeddedFS()
	}
	store, err := config.LoadFS(o.configFS)
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: load editor config: %w", err)
		return
	}
	o.configStore = store
}
