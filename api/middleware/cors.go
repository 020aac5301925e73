package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/angelmondragon/astrosocial-backend/pkg/config"
)

// devOrigins are the local frontend dev servers (vite and next).
var devOrigins = []string{
	"http://127.0.0.1:5173",
	"http://localhost:5173",
	"http://127.0.0.1:3000",
	"http://localhost:3000",
}

// CORS applies the origin allow-list. Scripts may read the request id and the
// idempotent replay marker.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = devOrigins
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Origin", "X-Requested-With", IdempotencyHeader, RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader, ReplayHeader},
		AllowCredentials: true,
		MaxAge:           600,
	})
}
