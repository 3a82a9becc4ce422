package httpapi

import (
	"net/http"
	"strconv"
)

func limitParam(r *http.Request) int {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return limit
}

func (h *Handler) topToday(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Analytics.TopToday(r.Context(), limitParam(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) topAllTime(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Analytics.TopAllTime(r.Context(), limitParam(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
