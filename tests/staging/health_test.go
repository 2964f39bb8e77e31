//go:build staging

package staging

import (
	"net/http"
	"testing"

	"github.com/osse101/CoopTokenSim_Go/internal/handler"
)

func TestHealthCheck(t *testing.T) {
	health := expectJSON[handler.HealthResponse](t, http.MethodGet, "/healthz", nil, http.StatusOK)

	if health.Status != handler.HealthStatusOK {
		t.Errorf("Expected status %q, got %q", handler.HealthStatusOK, health.Status)
	}
}

func TestReadiness(t *testing.T) {
	expectJSON[handler.HealthResponse](t, http.MethodGet, "/readyz", nil, http.StatusOK)
}

func TestVersion(t *testing.T) {
	info := expectJSON[handler.VersionInfo](t, http.MethodGet, "/version", nil, http.StatusOK)

	if info.Service != handler.ServiceName {
		t.Errorf("Expected service %q, got %q", handler.ServiceName, info.Service)
	}
}
