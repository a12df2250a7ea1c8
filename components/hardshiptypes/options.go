package hardshiptypes

import "github.com/goliatone/go-hardship/pkg/model"

type EmptySearchMode string

const (
	EmptySearchNone EmptySearchMode = "none"
	EmptySearchAll  EmptySearchMode = "all"
)

// DefaultRoutePath is where the web server mounts the handler.
const DefaultRoutePath = "/api/hardship-types"

// Option is one selectable entry.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Options struct {
	SearchParam     string
	LimitParam      string
	MaxLimit        int
	EmptySearchMode EmptySearchMode

	Categories []model.Category
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		SearchParam:     "q",
		LimitParam:      "limit",
		MaxLimit:        len(model.Categories()),
		EmptySearchMode: EmptySearchAll,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn != nil {
			fn(&opts)
		}
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	if opts.EmptySearchMode == "" {
		opts.EmptySearchMode = EmptySearchAll
	}
	if opts.Categories == nil {
		opts.Categories = model.Categories()
	} else {
		opts.Categories = append([]model.Category{}, opts.Categories...)
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = len(opts.Categories)
	}
	return opts
}

func WithEmptySearchMode(mode EmptySearchMode) OptionFn {
	return func(o *Options) { o.EmptySearchMode = mode }
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) { o.MaxLimit = limit }
}

// WithCategories restricts the served set. Invalid categories are skipped.
func WithCategories(categories ...model.Category) OptionFn {
	return func(o *Options) {
		o.Categories = o.Categories[:0:0]
		for _, c := range categories {
			if c.Valid() {
				o.Categories = append(o.Categories, c)
			}
		}
	}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 || limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
