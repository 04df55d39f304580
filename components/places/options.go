package places

import (
	"net/http"
	"slices"
)

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath    string
	SearchParam  string
	IDParam      string
	LimitParam   string
	DefaultLimit int
	MaxLimit     int
	// Countries limits the default gazetteer to ISO country codes.
	Countries []string
	Guard     GuardFunc

	Resolver Resolver
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:    "/api/places",
		SearchParam:  "q",
		IDParam:      "id",
		LimitParam:   "limit",
		DefaultLimit: 10,
		MaxLimit:     50,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 10
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 50
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/places"
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.IDParam == "" {
		opts.IDParam = "id"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	opts.Countries = slices.Clone(opts.Countries)
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SearchParam = name
	}
}

func WithIDParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.IDParam = name
	}
}

func WithLimitParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LimitParam = name
	}
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLimit = limit
	}
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxLimit = limit
	}
}

// WithCountries restricts the default gazetteer, mirroring the
// geonames.limits.countries setting of the host application.
func WithCountries(codes ...string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Countries = slices.Clone(codes)
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithResolver(resolver Resolver) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Resolver = resolver
	}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
