package handler

import (
	"path/filepath"

	"github.com/labstack/echo/v4"
)

// PageHandler serves the prebuilt single-page-app shell. Access control for
// the page routes happens in the edge middleware before this runs.
type PageHandler struct {
	index string
}

func NewPageHandler(webRoot string) *PageHandler {
	return &PageHandler{index: filepath.Join(webRoot, "index.html")}
}

// Shell handles GET /login, /register and /dashboard/*.
func (h *PageHandler) Shell(c echo.Context) error {
	return c.File(h.index)
}
