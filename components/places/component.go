package places

import "net/http"

// Component wraps the place handler, its configuration and routing helpers.
type Component struct {
	opts Options
}

// New constructs a component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	return &Component{opts: NewOptions(fns...)}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Handler returns a net/http handler for place queries.
func (c *Component) Handler() http.Handler {
	if c == nil {
		return Handler()
	}
	return HandlerWithOptions(c.opts)
}

// Widget returns a widget sharing the component resolver. Without an
// explicit resolver the default gazetteer is used.
func (c *Component) Widget() (*Widget, error) {
	opts := c.Options()
	if opts.Resolver != nil {
		return NewWidget(opts.Resolver), nil
	}
	gazetteer, err := DefaultGazetteer(opts.Countries...)
	if err != nil {
		return nil, err
	}
	return NewWidget(gazetteer), nil
}

// RegisterRoutes registers the component handler under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if c == nil {
		return RegisterRoutes(mux, basePath)
	}
	return RegisterRoutesWithOptions(mux, basePath, c.opts)
}

// Endpoint returns the lookup URL the place input should call.
func (c *Component) Endpoint(basePath string) string {
	return mountPath(basePath, c.Options().RoutePath)
}
