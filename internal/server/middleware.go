package server

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/rshade/pagedtable/internal/logging"
)

// requestLogger attaches a trace-scoped logger to the request context and
// logs each completed request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		traceID := logging.GetOrGenerateTraceID(r.Context())

		ctx := logging.ContextWithTraceID(r.Context(), traceID)
		ctx = s.logger.WithContext(ctx)

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		log := logging.FromContext(ctx)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
