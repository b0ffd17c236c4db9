package http

import (
	"net/http"

	"github.com/MKhiriev/go-photo-share/internal/app"
)

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	writeDetail(w, app.MsgNotFound, http.StatusNotFound)
}

// methodNotAllowed answers 405 in the same JSON shape as every other error.
func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeDetail(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
