// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// pageHandler serves the embedded entry page.
type pageHandler struct{}

// newPageHandler creates a new page handler.
func newPageHandler() *pageHandler {
	return &pageHandler{}
}

// HandlePage handles GET / requests with the embedded single-page form.
func (h *pageHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	// http.ServeFileFS requires Go 1.22; serving "/" through FileServer is
	// equivalent here since pageFS contains only index.html.
	http.FileServer(http.FS(pageFS)).ServeHTTP(w, r)
}
