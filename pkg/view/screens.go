package view

import (
	"io"

	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-hardship/pkg/theme"
)

// ThemeView is the theme data exposed to every template as "theme".
type ThemeView struct {
	Name       string `json:"name"`
	Variant    string `json:"variant,omitempty"`
	Style      string `json:"style"`
	Stylesheet string `json:"stylesheet,omitempty"`
}

// NewThemeView flattens renderer configuration for templates.
func NewThemeView(cfg *gotheme.RendererConfig) ThemeView {
	if cfg == nil {
		return ThemeView{}
	}
	v := ThemeView{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		Style:   theme.CSSVarsStyle(cfg.CSSVars),
	}
	if cfg.AssetURL != nil {
		v.Stylesheet = cfg.AssetURL(theme.AssetStylesheet)
	}
	return v
}

// Screens renders the application screens with a fixed theme.
type Screens struct {
	engine    *Engine
	templates map[string]string
}

// NewScreens binds engine to the theme described by cfg.
func NewScreens(engine *Engine, cfg *gotheme.RendererConfig) (*Screens, error) {
	templates := theme.DefaultTemplates()
	if cfg != nil {
		for key, name := range cfg.Partials {
			if name != "" {
				templates[key] = name
			}
		}
	}
	if err := engine.GlobalContext(map[string]any{"theme": NewThemeView(cfg)}); err != nil {
		return nil, err
	}
	return &Screens{engine: engine, templates: templates}, nil
}

// Home renders the landing screen.
func (s *Screens) Home(w io.Writer) error {
	return s.engine.Render(w, s.templates[theme.TemplateHome], map[string]any{
		"title": "Hardship Management",
	})
}

// List renders the list shell in its loading state. The entries fragment is
// fetched separately.
func (s *Screens) List(w io.Writer, entriesURL string) error {
	return s.engine.Render(w, s.templates[theme.TemplateList], map[string]any{
		"title":       "List of hardships",
		"list":        LoadingList(),
		"entries_url": entriesURL,
	})
}

// Entries renders the list fragment for a completed fetch.
func (s *Screens) Entries(w io.Writer, list ListView) error {
	return s.engine.Render(w, s.templates[theme.TemplateEntries], map[string]any{
		"list": list,
	})
}

// Lookup renders the edit-lookup screen.
func (s *Screens) Lookup(w io.Writer, v LookupView) error {
	return s.engine.Render(w, s.templates[theme.TemplateLookup], map[string]any{
		"title":  "Edit Hardship",
		"lookup": v,
	})
}

// Form renders the create/edit screen.
func (s *Screens) Form(w io.Writer, v FormView) error {
	return s.engine.Render(w, s.templates[theme.TemplateForm], map[string]any{
		"title": v.Title,
		"form":  v,
	})
}
