package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/kjstillabower/skysense/internal/client"
	"github.com/kjstillabower/skysense/internal/observability"
	"github.com/kjstillabower/skysense/internal/traffic"
)

// WeatherService is the proxy's service layer: one upstream call per request,
// with outcome metrics and request-scoped logging. Nothing is cached or retried.
type WeatherService struct {
	client client.WeatherClient
}

// NewWeatherService creates a WeatherService forwarding through c.
func NewWeatherService(c client.WeatherClient) *WeatherService {
	return &WeatherService{client: c}
}

// Forward proxies query to the upstream route and returns the upstream reply.
// Errors wrap the client error, so client.MessageOf still yields the upstream message.
func (s *WeatherService) Forward(ctx context.Context, route string, query url.Values) (*client.Response, error) {
	start := time.Now()
	logger := observability.LoggerFromContext(ctx, nil)
	observability.WeatherQueriesTotal.WithLabelValues(route).Inc()

	resp, err := s.client.Forward(ctx, route, query)
	if err != nil {
		traffic.RecordError()
		category := client.CategorizeError(err)
		observability.WeatherAPIErrorsTotal.WithLabelValues(string(category)).Inc()
		logger.Warn("upstream request failed",
			zap.String("route", route),
			zap.String("category", string(category)),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return nil, fmt.Errorf("forward %s: %w", route, err)
	}
	traffic.RecordSuccess()

	logger.Debug("weather served",
		zap.String("route", route),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(resp.Body)),
		zap.Duration("duration", time.Since(start)))
	return resp, nil
}
