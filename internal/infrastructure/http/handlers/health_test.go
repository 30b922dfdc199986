package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestLiveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadiness(t *testing.T) {
	ok := Check{Name: "store", Ping: func(context.Context) error { return nil }}
	down := Check{Name: "redis", Ping: func(context.Context) error { return errors.New("dial tcp 10.1.2.3:6379: connection refused") }}

	cases := []struct {
		name       string
		checks     []Check
		wantCode   int
		wantStatus string
	}{
		{"no dependencies", nil, http.StatusOK, "ok"},
		{"all healthy", []Check{ok}, http.StatusOK, "ok"},
		{"one down", []Check{ok, down}, http.StatusServiceUnavailable, "degraded"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)

			if err := NewHealthDependenciesHandler(zerolog.Nop(), tc.checks...).Readiness(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			var body readinessResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Status != tc.wantStatus {
				t.Fatalf("status = %q, want %q", body.Status, tc.wantStatus)
			}
			if len(body.Dependencies) != len(tc.checks) {
				t.Fatalf("dependencies = %v", body.Dependencies)
			}
		})
	}
}

func TestReadiness_HidesPingErrors(t *testing.T) {
	down := Check{Name: "postgres", Ping: func(context.Context) error {
		return errors.New("dial tcp db.internal:5432: password authentication failed for user app")
	}}
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)

	if err := NewHealthDependenciesHandler(zerolog.Nop(), down).Readiness(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "db.internal") || strings.Contains(body, "password") {
		t.Fatalf("ping error leaked into response: %s", body)
	}
	if !strings.Contains(body, `"postgres":{"status":"unhealthy"}`) {
		t.Fatalf("unexpected body: %s", body)
	}
}
