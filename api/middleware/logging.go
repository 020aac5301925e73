package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/angelmondragon/astrosocial-backend/pkg/logger"
	"github.com/angelmondragon/astrosocial-backend/pkg/metrics"
)

const healthPrefix = "/health/"

// Logging records request metrics and writes one request.complete entry per
// request. Health checks are measured but not logged.
func Logging(logg *logger.Logger, rec *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			quiet := logg == nil || strings.HasPrefix(r.URL.Path, healthPrefix)
			if !quiet {
				ctx = logg.WithFields(ctx, logger.Fields{"method": r.Method, "path": r.URL.Path})
				logg.Debug(ctx, "request.start")
			}

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			started := time.Now()
			next.ServeHTTP(ww, r.WithContext(ctx))
			elapsed := time.Since(started)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := routePattern(r)
			rec.Observe(r.Method, route, status, elapsed)
			if quiet {
				return
			}
			logg.Info(logg.WithFields(ctx, logger.Fields{
				"route":       route,
				"status":      status,
				"bytes":       ww.BytesWritten(),
				"duration_ms": elapsed.Milliseconds(),
			}), "request.complete")
		})
	}
}

// routePattern is the matched chi pattern, e.g. /api/users/getById/{id}, so
// metrics do not get one series per id. Unmatched requests fall back to the path.
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if pattern := rc.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}
