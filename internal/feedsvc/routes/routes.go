package routes

import (
	"github.com/avvvet/ternarii-services/internal/feedsvc/handlers"
	"github.com/avvvet/ternarii-services/internal/feedsvc/ws"
	"github.com/go-chi/chi"
)

func SetRoutes(r chi.Router, ws *ws.Ws, instanceId string) {
	h := handlers.NewHandler(ws, instanceId)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/ws", h.HandleWebSocket)
		r.Get("/health", h.HealthHandler)
	})
}
