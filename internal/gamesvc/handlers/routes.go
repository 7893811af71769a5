package handlers

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) SetRoutes(r chi.Router) {
	// player endpoints keep the historical paths; GET query strings and POST
	// form bodies are both accepted
	r.Route("/api/player", func(r chi.Router) {
		getOrPost(r, "/add_player", h.AddPlayerHandler)
		getOrPost(r, "/get_player_id", h.GetPlayerIDHandler)
		getOrPost(r, "/get_or_add_game", h.GetOrAddGameHandler)
		getOrPost(r, "/add_move", h.AddMoveHandler)
		getOrPost(r, "/finish_game", h.FinishGameHandler)
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", h.HealthHandler)

		if h.tokenAuth == nil {
			return
		}

		// Secure routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(h.tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Get("/ops/health", h.OpsHealthHandler)
			r.Get("/ops/stats", h.OpsStatsHandler)
		})
	})
}

// InitAuth enables the ops routes. Without a secret they are not mounted.
func (h *Handler) InitAuth(secret string) {
	if secret == "" {
		log.Warn("JWT_SECRET_KEY not set, ops routes disabled")
		return
	}
	h.tokenAuth = jwtauth.New("HS256", []byte(secret), nil)
}

func getOrPost(r chi.Router, pattern string, fn http.HandlerFunc) {
	r.Get(pattern, fn)
	r.Post(pattern, fn)
}
