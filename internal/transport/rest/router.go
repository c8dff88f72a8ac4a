package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/peopleops/hr-management/internal/transport"
	"github.com/peopleops/hr-management/internal/transport/middleware"
)

// RegisterRoutes wires the global middleware stack, the health endpoints
// and the GraphQL endpoint onto the router. All domain operations live
// behind /graphql, so there is no per-route auth here: the bearer token is
// extracted globally and each GraphQL field enforces its own allow-list.
func RegisterRoutes(router *chi.Mux, db *sql.DB, graphqlHandler http.Handler, logger *slog.Logger) {
	base := transport.NewBaseHandler(logger)
	healthHandler := NewHealthHandler(base, db)

	router.Use(middleware.RequestID)
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.Logging(logger))
	router.Use(middleware.BearerToken)

	router.Get("/ping", healthHandler.Ping)
	router.Get("/healthz", healthHandler.Check)

	router.Handle("/graphql", graphqlHandler)
}
