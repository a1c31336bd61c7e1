package httpapi

import (
	"context"
	"net/http"

	sonic "github.com/bytedance/sonic"
)

// The webhook caller is GroupMe's delivery worker: it ignores response
// bodies, so responses here are plain text acknowledgements, not API
// envelopes.

func writeText(ctx context.Context, w http.ResponseWriter, status int, body string) {
	_, span := startSpan(ctx, "httpapi.writeText")
	defer span.End()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}
