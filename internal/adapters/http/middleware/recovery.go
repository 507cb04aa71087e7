package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/pythia-plus/console/internal/adapters/http/dto"
)

// errInternal is what clients see for a recovered panic.
var errInternal = errors.New("internal server error")

// Recovery returns middleware that turns a handler panic into a logged stack
// trace and a problem+json 500. When the handler already wrote headers only
// the log entry is emitted. http.ErrAbortHandler is re-panicked.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := newResponseWriter(w)

			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler { //nolint:errorlint // sentinel panic value
					panic(v)
				}

				logger.ErrorContext(r.Context(), "panic recovered",
					slog.String("panic", fmt.Sprint(v)),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", RequestIDFromContext(r.Context())),
				)

				if !rw.headerWritten {
					dto.WriteErrorResponse(rw, r, errInternal)
				}
			}()

			next.ServeHTTP(rw, r)
		})
	}
}
