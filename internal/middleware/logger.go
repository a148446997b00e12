package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const maxRequestIDLen = 64

// requestInfo is shared down the chain so inner middleware can annotate the log line.
type requestInfo struct {
	client string
}

// Logger tags every request with an id and logs one line when it completes.
// An incoming X-Request-Id is reused, otherwise a new UUID is assigned.
// The id is read back with chimw.GetReqID.
func Logger(next http.Handler) http.Handler {
	return assignRequestID(chimw.RequestID(logRequest(next)))
}

// assignRequestID replaces a missing or oversized id with a UUID before
// chimw.RequestID copies the header into the context.
func assignRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(chimw.RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			r.Header.Set(chimw.RequestIDHeader, uuid.NewString())
		}
		next.ServeHTTP(w, r)
	})
}

func logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := chimw.GetReqID(r.Context())
		w.Header().Set(chimw.RequestIDHeader, id)

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		info := &requestInfo{}
		ctx := context.WithValue(r.Context(), requestInfoKey, info)
		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		attrs := []any{
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		}
		if info.client != "" {
			attrs = append(attrs, "client", info.client)
		}

		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		slog.Log(ctx, level, "request", attrs...)
	})
}
