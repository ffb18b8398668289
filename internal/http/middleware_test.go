package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kjstillabower/skysense/internal/observability"
)

func TestCorrelationIDMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
	}{
		{"generated", ""},
		{"propagated", "client-provided-id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.InfoLevel)
			var ctxID string
			router := mux.NewRouter()
			router.Use(CorrelationIDMiddleware(zap.New(core)))
			router.HandleFunc("/x", func(w http.ResponseWriter, r *http.Request) {
				ctxID = observability.CorrelationID(r.Context())
				observability.LoggerFromContext(r.Context(), nil).Info("inside")
			})

			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tt.incoming != "" {
				req.Header.Set("X-Correlation-ID", tt.incoming)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			got := w.Header().Get("X-Correlation-ID")
			if got == "" {
				t.Fatal("X-Correlation-ID header missing")
			}
			if tt.incoming != "" && got != tt.incoming {
				t.Errorf("X-Correlation-ID = %q, want %q", got, tt.incoming)
			}
			if ctxID != got {
				t.Errorf("context id = %q, header = %q", ctxID, got)
			}
			entries := logs.FilterMessage("inside").All()
			if len(entries) != 1 || entries[0].ContextMap()["correlation_id"] != got {
				t.Errorf("request logger not tagged with correlation id: %+v", entries)
			}
		})
	}
}

func TestMetricsMiddleware_TracksInFlight(t *testing.T) {
	var during int64
	h := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		during = InFlightCount()
		w.WriteHeader(http.StatusTeapot)
	}))

	before := InFlightCount()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/weather/current", nil))

	if during != before+1 {
		t.Errorf("in-flight during request = %d, want %d", during, before+1)
	}
	if after := InFlightCount(); after != before {
		t.Errorf("in-flight after request = %d, want %d", after, before)
	}
	if w.Code != http.StatusTeapot {
		t.Errorf("status = %d, want 418", w.Code)
	}
}

func TestGetRoute(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/weather/current", "/api/weather/{route}"},
		{"/api/weather/astronomy", "/api/weather/{route}"},
		{"/api/chatbase/token", "/api/chatbase/token"},
		{"/metrics", "/metrics"},
		{"/", "static"},
		{"/assets/app.js", "static"},
		{"/some/client/route", "static"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := getRoute(httptest.NewRequest(http.MethodGet, tt.path, nil)); got != tt.want {
				t.Errorf("getRoute(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestStatusCodeString(t *testing.T) {
	for code, want := range map[int]string{200: "2xx", 404: "4xx", 500: "5xx"} {
		if got := statusCodeString(code); got != want {
			t.Errorf("statusCodeString(%d) = %q, want %q", code, got, want)
		}
	}
}

func TestTimeoutMiddleware(t *testing.T) {
	var deadline time.Time
	var ok bool
	h := TimeoutMiddleware(50 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deadline, ok = r.Context().Deadline()
		<-r.Context().Done()
		if r.Context().Err() != context.DeadlineExceeded {
			t.Errorf("ctx.Err() = %v, want DeadlineExceeded", r.Context().Err())
		}
	}))

	start := time.Now()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if !ok {
		t.Fatal("request context has no deadline")
	}
	if deadline.Sub(start) > time.Second {
		t.Errorf("deadline too far out: %v", deadline.Sub(start))
	}
}
