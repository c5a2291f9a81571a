package middleware

import (
	"context"
	"net/http"

	"github.com/edgeflare/tastebud/pkg/httputil"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-Id"

// RequestID tags every request with an id, stored in the context and echoed in
// the X-Request-Id response header. An id already in the context, or a UUID sent
// by the client in X-Request-Id, is kept.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := httputil.RequestID(r)
		if reqID == "" {
			if incoming, err := uuid.Parse(r.Header.Get(RequestIDHeader)); err == nil {
				reqID = incoming.String()
			} else {
				reqID = uuid.New().String()
			}
		}

		ctx := context.WithValue(r.Context(), httputil.RequestIDCtxKey, reqID)
		w.Header().Set(RequestIDHeader, reqID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
