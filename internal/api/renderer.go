package api

import (
	"io"

	"github.com/bookexplorer/bookexplorer/internal/view"
	"github.com/labstack/echo/v4"
)

type templateRenderer struct {
	templates *view.Templates
}

func (r *templateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.Render(w, name, data)
}
