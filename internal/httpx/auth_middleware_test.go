package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"holidaykeeper/internal/platform/crypto"
)

func TestRequireRole(t *testing.T) {
	const secret = "test-secret"
	admin, _, err := crypto.GenerateToken(secret, "ops", crypto.RoleAdmin, time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	viewer, _, err := crypto.GenerateToken(secret, "bob", "VIEWER", time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"malformed token", "Bearer nope", http.StatusUnauthorized},
		{"wrong role", "Bearer " + viewer, http.StatusForbidden},
		{"admin", "Bearer " + admin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var subject, role string
			handler := RequireRole(secret, crypto.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				subject = SubjectFrom(r)
				role = RoleFrom(r)
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodPut, "/api/v1/holidays/upsert", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, w.Code)
			}
			if tt.want == http.StatusOK && subject != "ops" {
				t.Errorf("Expected subject ops in context, got %q", subject)
			}
			if tt.want == http.StatusOK && role != crypto.RoleAdmin {
				t.Errorf("Expected role %s in context, got %q", crypto.RoleAdmin, role)
			}
		})
	}
}

func TestRequireRole_EmptySecretPassesThrough(t *testing.T) {
	handler := RequireRole("", crypto.RoleAdmin)(okHandler())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/holidays/Japan", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected pass-through, got %d", w.Code)
	}
}
