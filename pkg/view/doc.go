// Package view renders the hardship screens with pongo2 templates.
//
// Engine wraps a pongo2 template set loaded from an fs.FS (normally
// hardship.TemplatesFS). Screens binds an Engine to a resolved theme and
// exposes one method per screen, each taking a plain view model built from
// form or record data.
package view
