package middleware

import (
	"fmt"
	"net/http"

	"github.com/edgeflare/tastebud/pkg/httputil"
	"go.uber.org/zap"
)

// RecoverOptions defines configuration for the recover middleware.
type RecoverOptions struct {
	// Message renders the panic value for the {"error": ...} body.
	// Defaults to fmt.Sprint.
	Message func(v any) string
	// Logger is used when the request carries no logger from LoggerWithOptions.
	Logger *zap.Logger
}

// Recover is RecoverWithOptions with the panic value sent to the client.
func Recover(next http.Handler) http.Handler {
	return RecoverWithOptions(nil)(next)
}

// RecoverWithOptions turns a panic in a handler into a 500 {"error": "..."}
// response and logs it with the request-scoped logger. If the handler already
// started its response, only the log entry is written.
func RecoverWithOptions(options *RecoverOptions) func(http.Handler) http.Handler {
	message := func(v any) string { return fmt.Sprint(v) }
	fallback := zap.NewNop()
	if options != nil {
		if options.Message != nil {
			message = options.Message
		}
		if options.Logger != nil {
			fallback = options.Logger
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := NewResponseRecorder(w)
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}
				logger, ok := r.Context().Value(httputil.LogEntryCtxKey).(*zap.Logger)
				if !ok {
					logger = fallback.With(zap.String("req_id", httputil.RequestID(r)))
				}
				logger.Error("panic serving request", zap.Any("panic", v), zap.Stack("stack"))
				if rec.Written() {
					return
				}
				httputil.Error(rec, http.StatusInternalServerError, message(v))
			}()
			next.ServeHTTP(rec, r)
		})
	}
}
