package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/dashboard.html
var templatesFS embed.FS

var pageTmpl = template.Must(template.New("dashboard.html").
	Funcs(template.FuncMap{"marker": Marker}).
	ParseFS(templatesFS, "templates/dashboard.html"))

// Page is the single-page HTML view. Dashboard is nil when loading failed;
// Error then carries the message shown in its place.
type Page struct {
	Dashboard   *Dashboard
	Error       string
	FormAction  string
	TemplateURL string

	theme Theme
}

// NewPage prepares a page rendered with th.
func NewPage(th Theme) *Page {
	return &Page{theme: th, FormAction: "/"}
}

func (p *Page) Lang() string { return p.theme.Language }
func (p *Page) Labels() Labels { return p.theme.Labels }
func (p *Page) Palette() Palette { return p.theme.Palette }

// Render writes the page as HTML.
func (p *Page) Render(w io.Writer) error {
	if err := pageTmpl.Execute(w, p); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// HTML renders the dashboard as a standalone page without upload links.
func (d *Dashboard) HTML(w io.Writer) error {
	p := NewPage(d.theme)
	p.Dashboard = d
	return p.Render(w)
}
