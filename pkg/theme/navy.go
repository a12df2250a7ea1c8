package theme

import gotheme "github.com/goliatone/go-theme"

const (
	// DefaultName is the theme applied when configuration names none.
	DefaultName = "navy"
	// VariantLight swaps the dark surfaces for light ones.
	VariantLight = "light"
)

// Template keys a manifest may override.
const (
	TemplateHome    = "screens.home"
	TemplateList    = "screens.list"
	TemplateEntries = "screens.entries"
	TemplateLookup  = "screens.lookup"
	TemplateForm    = "screens.form"
)

// AssetStylesheet names the optional stylesheet asset.
const AssetStylesheet = "screens.stylesheet"

// DefaultTemplates maps template keys to the embedded screen templates.
func DefaultTemplates() map[string]string {
	return map[string]string{
		TemplateHome:    "home.tpl",
		TemplateList:    "list.tpl",
		TemplateEntries: "entries.tpl",
		TemplateLookup:  "lookup.tpl",
		TemplateForm:    "form.tpl",
	}
}

// Navy returns the dark navy palette used across every screen.
func Navy() *gotheme.Manifest {
	return &gotheme.Manifest{
		Name:    DefaultName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"color-primary":            "#415A77",
			"color-primary-contrast":   "#E0E1DD",
			"color-primary-hover":      "#344A66",
			"color-secondary":          "#778DA9",
			"color-secondary-contrast": "#0D1B2A",
			"color-background":         "#0D1B2A",
			"color-paper":              "#1B263B",
			"color-divider":            "#1B263B",
			"color-text":               "#E0E1DD",
			"color-text-secondary":     "#778DA9",
			"color-error":              "#F28B82",
			"color-success":            "#81C995",
			"font-family":              "Roboto, Arial, sans-serif",
			"heading-weight":           "500",
		},
		Templates: DefaultTemplates(),
		Variants: map[string]gotheme.Variant{
			VariantLight: {
				Tokens: map[string]string{
					"color-background":     "#E0E1DD",
					"color-paper":          "#FFFFFF",
					"color-divider":        "#C9CDD3",
					"color-text":           "#0D1B2A",
					"color-text-secondary": "#415A77",
				},
			},
		},
	}
}
