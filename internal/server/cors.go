package server

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/gokatarajesh/trivia-api/internal/config"
)

// corsMiddleware applies the configured cross-origin policy. Preflight requests
// are answered with 204 without reaching the routes.
func corsMiddleware(cfg config.CORS) func(http.Handler) http.Handler {
	middleware := cors.New(cors.Options{
		AllowedOrigins:       cfg.AllowedOrigins,
		AllowedMethods:       cfg.AllowedMethods,
		AllowedHeaders:       cfg.AllowedHeaders,
		MaxAge:               cfg.MaxAge,
		OptionsSuccessStatus: http.StatusNoContent,
	})
	return middleware.Handler
}
