// Package theme registers the go-theme manifests used by the hardship screens
// and resolves a (theme, variant) pair into the renderer configuration the
// view engine consumes: merged tokens, CSS custom properties, template
// overrides, and an asset URL resolver.
package theme
