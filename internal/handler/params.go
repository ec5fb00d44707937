package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/yjym33/travelLog-Backend/internal/model"
)

// parseID extracts a positive int64 URL parameter.
func parseID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

// parsePage reads ?page= and ?limit= with the usual defaults and clamps.
func parsePage(r *http.Request, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return model.NormalizePage(page, limit, defaultLimit)
}
