package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORSWithOptions(t *testing.T) {
	tests := []struct {
		options         *CORSOptions
		headers         map[string]string
		expectedHeaders map[string]string
		name            string
		method          string
		expectedStatus  int
	}{
		{
			name:    "default options",
			method:  http.MethodGet,
			options: nil,
			expectedHeaders: map[string]string{
				"Access-Control-Allow-Origin":      "*",
				"Access-Control-Allow-Methods":     "GET,OPTIONS",
				"Access-Control-Allow-Headers":     "Content-Type,Accept,Accept-Encoding,Origin,Cache-Control,X-Request-Id",
				"Access-Control-Allow-Credentials": "",
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "listed origin is echoed",
			method:  http.MethodGet,
			options: CORSForOrigins([]string{"http://menu.example.com", "http://example.com"}),
			headers: map[string]string{"Origin": "http://example.com"},
			expectedHeaders: map[string]string{
				"Access-Control-Allow-Origin": "http://example.com",
				"Vary":                        "Origin",
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "unlisted origin gets no allow header",
			method:  http.MethodGet,
			options: CORSForOrigins([]string{"http://menu.example.com"}),
			headers: map[string]string{"Origin": "http://evil.example.com"},
			expectedHeaders: map[string]string{
				"Access-Control-Allow-Origin": "",
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "custom options",
			method:  http.MethodGet,
			options: &CORSOptions{AllowedOrigins: []string{"*"}, AllowedMethods: []string{"GET"}, AllowedHeaders: []string{"Content-Type"}, AllowCredentials: true},
			expectedHeaders: map[string]string{
				"Access-Control-Allow-Origin":      "*",
				"Access-Control-Allow-Methods":     "GET",
				"Access-Control-Allow-Headers":     "Content-Type",
				"Access-Control-Allow-Credentials": "true",
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "empty options",
			method:  http.MethodGet,
			options: &CORSOptions{},
			expectedHeaders: map[string]string{
				"Access-Control-Allow-Origin":  "",
				"Access-Control-Allow-Methods": "",
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "preflight request",
			method:  http.MethodOptions,
			options: DefaultCORSOptions(),
			headers: map[string]string{"Access-Control-Request-Method": "GET", "Origin": "http://example.com"},
			expectedHeaders: map[string]string{
				"Access-Control-Allow-Origin":  "*",
				"Access-Control-Allow-Methods": "GET,OPTIONS",
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "plain OPTIONS reaches the handler",
			method:         http.MethodOptions,
			options:        DefaultCORSOptions(),
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "http://example.com/restaurants", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rr := httptest.NewRecorder()

			handler := CORSWithOptions(tt.options)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			handler.ServeHTTP(rr, req)

			for header, expectedValue := range tt.expectedHeaders {
				assert.Equal(t, expectedValue, rr.Header().Get(header), "header %s", header)
			}
			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func TestCORSForOriginsEmptyKeepsWildcard(t *testing.T) {
	assert.Equal(t, []string{"*"}, CORSForOrigins(nil).AllowedOrigins)
}
