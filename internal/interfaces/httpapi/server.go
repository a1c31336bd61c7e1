package httpapi

import (
	"log/slog"
	"net/http"
)

func NewRouter(handler *Handler, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", handler.Index)
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("POST /webhook", handler.Webhook)
	mux.HandleFunc("POST /tv", handler.ManualTV)

	return RequestTracing(RequestLogging(logger, recoverPanic(logger, mux)))
}

func recoverPanic(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeText(ctx, w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
