package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kjstillabower/skysense/internal/dashboard"
	"github.com/kjstillabower/skysense/internal/observability"
)

func TestHandleCommand(t *testing.T) {
	ctrl := dashboard.NewController(dashboard.StaticLocator{}, nil, dashboard.NewTerminalView(discard{}), zap.NewNop())

	tests := []struct {
		line     string
		wantMore bool
	}{
		{"", true},
		{"fullscreen", true},
		{"marker", true},
		{"click not-a-coordinate", true},
		{"bogus", true},
		{"quit", false},
		{"  exit  ", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := handleCommand(context.Background(), ctrl, tt.line, zap.NewNop()); got != tt.wantMore {
				t.Errorf("handleCommand(%q) = %v, want %v", tt.line, got, tt.wantMore)
			}
		})
	}
}

func TestMetricsServer_ServesSessionCounters(t *testing.T) {
	observability.DashboardSessionsTotal.WithLabelValues("click", "rendered").Inc()
	srv := newMetricsServer("127.0.0.1:0")

	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := w.Body.String(); !strings.Contains(body, `dashboardSessionsTotal{state="rendered",trigger="click"}`) {
		t.Errorf("metrics output missing session counter:\n%s", body)
	}

	w = httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/other", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("GET /other status = %d, want 404", w.Code)
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
