// Package web renders the HTML pages of the front end.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinic-web/internal/core/present"
	"github.com/clinicdesk/clinic-web/internal/core/service"
	"github.com/clinicdesk/clinic-web/internal/core/view"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData is what the "page" template renders.
type PageData struct {
	service.Page
	// NotificationMillis is the time left on the notification, driving the
	// client-side auto-hide.
	NotificationMillis int64
}

// NewPageData prepares p for rendering as of now.
func NewPageData(p service.Page, now time.Time) PageData {
	d := PageData{Page: p}
	if p.Notification != nil {
		d.NotificationMillis = p.Notification.Remaining(now).Milliseconds()
	}
	return d
}

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	templates *template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"field":        field,
		"hidden":       hidden,
		"isAddPatient": func(k present.ModalKind) bool { return k == present.ModalAddPatient },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

func field(fields map[string]string, name string) string {
	return fields[name]
}

// hidden returns the "hidden" class for every section node but the visible one.
func hidden(nodes []view.SectionNode, section string) string {
	for _, n := range nodes {
		if string(n.Section) == section && n.Visible {
			return ""
		}
	}
	return "hidden"
}
