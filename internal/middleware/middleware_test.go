package middleware

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifeblog/internal/auth"
)

const testSecret = "middleware-secret"

func okHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if ok {
			w.Header().Set("X-Subject", claims.Subject)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func issueToken(t *testing.T, secret, role string) string {
	t.Helper()
	token, _, err := auth.NewIssuer(secret, role, time.Hour).Issue("user-1", "author@example.com")
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	verifier := auth.NewVerifier(testSecret, "authenticated")
	handler := AuthMiddleware(verifier)(okHandler(t))

	tests := []struct {
		name          string
		authorization string
		wantStatus    int
		wantSubject   string
	}{
		{name: "no header", authorization: "", wantStatus: http.StatusUnauthorized},
		{name: "bearer token", authorization: "Bearer " + issueToken(t, testSecret, "authenticated"), wantStatus: http.StatusOK, wantSubject: "user-1"},
		{name: "bare token", authorization: issueToken(t, testSecret, "authenticated"), wantStatus: http.StatusOK, wantSubject: "user-1"},
		{name: "wrong secret", authorization: "Bearer " + issueToken(t, "other", "authenticated"), wantStatus: http.StatusUnauthorized},
		{name: "wrong role", authorization: "Bearer " + issueToken(t, testSecret, "anon"), wantStatus: http.StatusUnauthorized},
		{name: "garbage", authorization: "Bearer not-a-jwt", wantStatus: http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/admin/posts", nil)
			if tc.authorization != "" {
				req.Header.Set("Authorization", tc.authorization)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Equal(t, tc.wantSubject, rr.Header().Get("X-Subject"))
			if tc.wantStatus == http.StatusUnauthorized {
				var body map[string]string
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	handler := CORSMiddleware("https://blog.example.com")(okHandler(t))

	req := httptest.NewRequest(http.MethodOptions, "/api/posts", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "https://blog.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Headers"), "Authorization")

	req = httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	rr = httptest.NewRecorder()
	CORSMiddleware("")(okHandler(t)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoggingMiddleware_RequestID(t *testing.T) {
	var seen string
	handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rr.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "from-proxy")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, "from-proxy", seen)
	assert.Equal(t, "from-proxy", rr.Header().Get(RequestIDHeader))
}

func TestGzipMiddleware(t *testing.T) {
	body := strings.Repeat("compressible blog content ", 200)
	handler := GzipMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
	reader, err := gzip.NewReader(rr.Body)
	require.NoError(t, err)
	decoded, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, body, string(decoded))
}

func TestChain(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := Chain(okHandler(t), tag("inner"), tag("outer"))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner"}, order)
}
