package theme

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	gotheme "github.com/goliatone/go-theme"
)

var (
	// ErrUnknownTheme is returned when no manifest carries the requested name.
	ErrUnknownTheme = errors.New("theme: unknown theme")
	// ErrUnknownVariant is returned when the manifest lacks the variant.
	ErrUnknownVariant = errors.New("theme: unknown variant")
)

type manifestRegistry interface {
	Register(manifest *gotheme.Manifest) error
}

// Provider keeps registered manifests and implements gotheme.ThemeSelector.
type Provider struct {
	mu          sync.RWMutex
	registry    manifestRegistry
	manifests   map[string]*gotheme.Manifest
	defaultName string
}

var _ gotheme.ThemeSelector = (*Provider)(nil)

// NewProvider registers manifests. With none supplied it registers Navy. The
// first manifest becomes the default.
func NewProvider(manifests ...*gotheme.Manifest) (*Provider, error) {
	if len(manifests) == 0 {
		manifests = []*gotheme.Manifest{Navy()}
	}
	p := &Provider{
		registry:  gotheme.NewRegistry(),
		manifests: make(map[string]*gotheme.Manifest, len(manifests)),
	}
	for _, manifest := range manifests {
		if err := p.Register(manifest); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Register adds a manifest.
func (p *Provider) Register(manifest *gotheme.Manifest) error {
	if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
		return errors.New("theme: manifest name is required")
	}
	if err := p.registry.Register(manifest); err != nil {
		return fmt.Errorf("theme: register %s: %w", manifest.Name, err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.manifests[manifest.Name] = manifest
	if p.defaultName == "" {
		p.defaultName = manifest.Name
	}
	return nil
}

// Names lists registered theme names in order.
func (p *Provider) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, 0, len(p.manifests))
	for name := range p.manifests {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Select picks a manifest and variant. An empty name selects the default
// theme; an empty variant selects the base palette.
func (p *Provider) Select(name, variant string, _ ...gotheme.QueryOption) (*gotheme.Selection, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	name = strings.TrimSpace(name)
	if name == "" {
		name = p.defaultName
	}
	manifest, ok := p.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	variant = strings.TrimSpace(variant)
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %q in theme %q", ErrUnknownVariant, variant, name)
		}
	}
	return &gotheme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// Resolve selects a theme and flattens it into renderer configuration.
func (p *Provider) Resolve(name, variant string) (*gotheme.RendererConfig, error) {
	selection, err := p.Select(name, variant)
	if err != nil {
		return nil, err
	}
	return Config(selection), nil
}

// Config merges the base manifest with the selected variant. Template keys
// missing from both fall back to DefaultTemplates.
func Config(selection *gotheme.Selection) *gotheme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return &gotheme.RendererConfig{Partials: DefaultTemplates()}
	}
	manifest := selection.Manifest
	tokens := mergeMaps(manifest.Tokens, nil)
	partials := mergeMaps(DefaultTemplates(), manifest.Templates)
	files := mergeMaps(manifest.Assets.Files, nil)
	prefix := manifest.Assets.Prefix

	if v, ok := manifest.Variants[selection.Variant]; ok {
		tokens = mergeMaps(tokens, v.Tokens)
		partials = mergeMaps(partials, v.Templates)
		files = mergeMaps(files, v.Assets.Files)
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
	}

	return &gotheme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Tokens:   tokens,
		CSSVars:  CSSVars(tokens),
		Partials: partials,
		AssetURL: assetResolver(prefix, files),
	}
}

// CSSVars derives custom property names from token keys.
func CSSVars(tokens map[string]string) map[string]string {
	if len(tokens) == 0 {
		return nil
	}
	out := make(map[string]string, len(tokens))
	for key, value := range tokens {
		key = strings.TrimPrefix(strings.TrimSpace(key), "--")
		if key == "" {
			continue
		}
		out["--"+key] = value
	}
	return out
}

// CSSVarsStyle renders vars as a stable declaration list for a :root rule.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(sanitizeCSSValue(vars[key]))
		b.WriteByte(';')
	}
	return b.String()
}

func sanitizeCSSValue(value string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>':
			return -1
		}
		return r
	}, strings.TrimSpace(value))
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	return func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if strings.HasPrefix(file, "http://") || strings.HasPrefix(file, "https://") || strings.HasPrefix(file, "/") {
			return file
		}
		if prefix == "" {
			return file
		}
		return path.Join(prefix, file)
	}
}

func mergeMaps(base, override map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(override))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range override {
		if strings.TrimSpace(value) == "" {
			continue
		}
		out[key] = value
	}
	return out
}
