package httpserver

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/klimata/riskboard/internal/server/session"
)

//go:embed templates/*.html
var templatesFS embed.FS

// renderer adapts html/template to echo's Renderer interface. Templates are
// embedded so the binary stays self-contained.
type renderer struct {
	t *template.Template
}

func newRenderer() (*renderer, error) {
	t, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &renderer{t: t}, nil
}

func (r *renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	return r.t.ExecuteTemplate(w, name, data)
}

// viewData is what every page template receives.
type viewData struct {
	Title         string
	Authenticated bool
	Username      string
	Flash         session.Flash
	FlashError    bool
}

func newViewData(title string, st session.State, flash session.Flash) viewData {
	return viewData{
		Title:         title,
		Authenticated: st.Authenticated,
		Username:      st.Username,
		Flash:         flash,
		FlashError:    flash.Level == session.FlashError,
	}
}
