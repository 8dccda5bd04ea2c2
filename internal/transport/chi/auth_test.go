package chi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func authTestHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestBearerAuthDisabledWithoutKeys(t *testing.T) {
	h := BearerAuthMiddleware(nil)(authTestHandler())

	req := httptest.NewRequest(http.MethodPost, "/check-similarity", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 with auth disabled", rec.Code)
	}
}

func TestBearerAuth(t *testing.T) {
	h := BearerAuthMiddleware([]string{"secret-key"})(authTestHandler())

	tests := []struct {
		name       string
		path       string
		authHeader string
		wantStatus int
	}{
		{"valid key", "/check-similarity", "Bearer secret-key", http.StatusOK},
		{"missing header", "/check-similarity", "", http.StatusUnauthorized},
		{"wrong scheme", "/check-similarity", "Basic secret-key", http.StatusUnauthorized},
		{"invalid key", "/check-similarity", "Bearer wrong", http.StatusUnauthorized},
		{"health exempt", "/health", "", http.StatusOK},
		{"metrics exempt", "/metrics", "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
