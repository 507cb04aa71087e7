package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/pythia-plus/console/internal/platform/httpclient"
)

// maxRequestIDLen caps inbound ids so a client cannot stuff the logs.
const maxRequestIDLen = 128

// RequestIDFromContext returns the request id stored by RequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	return httpclient.RequestID(ctx)
}

// RequestID returns middleware that reuses the inbound X-Request-ID or mints
// a UUID. The id is echoed on the response and stored where the outbound
// client picks it up, so backend calls made for this request carry it.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(httpclient.HeaderRequestID)
			if id == "" || len(id) > maxRequestIDLen {
				id = uuid.NewString()
			}
			ctx := httpclient.WithRequestID(r.Context(), id)
			w.Header().Set(httpclient.HeaderRequestID, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
