package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/kjstillabower/skysense/internal/client"
	"github.com/kjstillabower/skysense/internal/observability"
	"github.com/kjstillabower/skysense/internal/service"
	"github.com/kjstillabower/skysense/internal/token"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	weatherService *service.WeatherService
	issuer         *token.Issuer
	logger         *zap.Logger
}

// NewHandler returns a new Handler.
func NewHandler(weatherService *service.WeatherService, issuer *token.Issuer, logger *zap.Logger) *Handler {
	return &Handler{
		weatherService: weatherService,
		issuer:         issuer,
		logger:         logger,
	}
}

// GetWeather handles GET /api/weather/{route}. The query string is forwarded
// unvalidated; the upstream decides what a bad coordinate means.
func (h *Handler) GetWeather(w http.ResponseWriter, r *http.Request) {
	route := mux.Vars(r)["route"]

	resp, err := h.weatherService.Forward(r.Context(), route, r.URL.Query())
	if err != nil {
		writeError(w, http.StatusInternalServerError, client.MessageOf(err))
		return
	}

	contentType := resp.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(resp.Body)
}

// tokenFailureMessage is the only detail a signing failure exposes.
const tokenFailureMessage = "Failed to generate token"

// PostChatToken handles POST /api/chatbase/token.
func (h *Handler) PostChatToken(w http.ResponseWriter, r *http.Request) {
	logger := observability.LoggerFromContext(r.Context(), h.logger)

	signed, err := h.issuer.Issue()
	switch {
	case errors.Is(err, token.ErrSecretNotConfigured):
		observability.TokensIssuedTotal.WithLabelValues("not_configured").Inc()
		logger.Warn("identity token requested without signing secret")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	case err != nil:
		observability.TokensIssuedTotal.WithLabelValues("error").Inc()
		logger.Error("identity token signing failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, tokenFailureMessage)
		return
	}

	observability.TokensIssuedTotal.WithLabelValues("issued").Inc()
	writeJSON(w, http.StatusOK, map[string]string{"token": signed})
}

// writeJSON writes a JSON response with the specified HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the {"error": message} envelope the dashboard expects.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
