package api

import (
	"net/http"

	"github.com/bin-buddy/Bin-Buddy-Repository/internal/api/handlers"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/ports"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies the HTTP layer is wired with. Photos may be nil, in which
// case the upload endpoint is not registered.
type Deps struct {
	Clients     *services.ClientRegistry
	Zones       *services.ZoneAssignment
	Planner     *services.RoutePlanner
	Photos      ports.PhotoStore
	CORSOrigins []string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	clientHandler := &handlers.ClientHandler{Registry: deps.Clients}
	zoneHandler := &handlers.ZoneHandler{Zones: deps.Zones}
	routeHandler := &handlers.RouteHandler{Planner: deps.Planner}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /zones", zoneHandler.List)
	mux.HandleFunc("POST /assign", zoneHandler.Assign)

	mux.HandleFunc("GET /clients", clientHandler.List)
	mux.HandleFunc("GET /clients/{id}", clientHandler.Get)
	mux.HandleFunc("PUT /clients/{id}", clientHandler.Update)

	mux.HandleFunc("GET /routes/{worker}", routeHandler.Route)

	if deps.Photos != nil {
		photoHandler := &handlers.PhotoHandler{Registry: deps.Clients, Store: deps.Photos}
		mux.HandleFunc("POST /clients/{id}/photo", photoHandler.Upload)
	}

	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return chain(mux,
		requestIDMiddleware,
		loggingMiddleware,
		recoveryMiddleware,
		corsMiddleware(origins),
	)
}
