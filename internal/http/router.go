package http

import (
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/kjstillabower/skysense/internal/observability"
)

// RouterConfig holds the settings NewRouter needs beyond the handler.
type RouterConfig struct {
	PublicDir      string
	RequestTimeout time.Duration
}

// NewRouter wires every route behind permissive CORS. Unmatched paths fall
// through to the SPA handler.
func NewRouter(h *Handler, cfg RouterConfig, logger *zap.Logger) http.Handler {
	router := mux.NewRouter()
	router.Use(CorrelationIDMiddleware(logger))
	router.Use(MetricsMiddleware)

	api := router.PathPrefix("/api").Subrouter()
	weather := api.PathPrefix("/weather").Subrouter()
	if cfg.RequestTimeout > 0 {
		weather.Use(TimeoutMiddleware(cfg.RequestTimeout))
	}
	weather.HandleFunc("/{route:current|forecast|astronomy}", h.GetWeather).Methods(http.MethodGet)
	api.HandleFunc("/chatbase/token", h.PostChatToken).Methods(http.MethodPost)

	router.Handle("/metrics", observability.MetricsHandler()).Methods(http.MethodGet)
	router.PathPrefix("/").Handler(NewSPAHandler(cfg.PublicDir, logger))

	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "X-Correlation-ID"}),
	)(router)
}
