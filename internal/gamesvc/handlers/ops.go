package handlers

import (
	"net/http"
)

func (h *Handler) OpsHealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.opsService.Health(r.Context()); err != nil {
		h.CreateFailure(w, r, err)
		return
	}
	h.CreateResponse(w, map[string]string{"database": "ok"})
}

func (h *Handler) OpsStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.opsService.Stats(r.Context())
	if err != nil {
		h.CreateFailure(w, r, err)
		return
	}
	h.CreateResponse(w, stats)
}
