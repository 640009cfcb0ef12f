// Package renderer wires html/template into echo
package renderer

import (
	"html/template"
	"io"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"
)

// TemplateRenderer implements echo.Renderer
type TemplateRenderer struct {
	Templates map[string]*template.Template
}

// New creates a TemplateRenderer with the browser UI pre-parsed from
// viewsDir (base layout + page).
func New(viewsDir string) *TemplateRenderer {
	r := &TemplateRenderer{
		Templates: make(map[string]*template.Template),
	}
	r.Templates["browser"] = template.Must(template.ParseFiles(
		filepath.Join(viewsDir, "layouts", "base.html"),
		filepath.Join(viewsDir, "pages", "browser.html"),
	))
	return r
}

// Render renders a template document
func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := t.Templates[name]
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "Template not found: "+name)
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}
