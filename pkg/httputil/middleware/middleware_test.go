package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/edgeflare/tastebud/pkg/httputil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecover(t *testing.T) {
	logger, logs := newTestLogger()
	handler := LoggerWithOptions(&LoggerOptions{Logger: logger})(Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("nil map dereference")
	})))

	req := httptest.NewRequest(http.MethodGet, "/dishes", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var body httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "nil map dereference", body.Error)

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "panic serving request", logs.All()[0].Message)
}

func TestRecoverPassThrough(t *testing.T) {
	handler := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rr.Code)
}

func TestRecoverRepanicsAbort(t *testing.T) {
	handler := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestRecoverWithOptionsMessage(t *testing.T) {
	logger, logs := newTestLogger()
	handler := RecoverWithOptions(&RecoverOptions{
		Message: func(any) string { return "internal server error" },
		Logger:  logger,
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("dial tcp 10.0.0.5:5432: connection refused")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/dishes", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rr.Body.String())

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "dial tcp 10.0.0.5:5432: connection refused", logs.All()[0].ContextMap()["panic"])
}

func TestRecoverAfterResponseStarted(t *testing.T) {
	logger, logs := newTestLogger()
	handler := LoggerWithOptions(&LoggerOptions{Logger: logger})(Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]any{"dishes": []string{}})
		panic("late failure")
	})))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/dishes", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"dishes":[]}`, rr.Body.String())
	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "panic serving request", logs.All()[0].Message)
}
