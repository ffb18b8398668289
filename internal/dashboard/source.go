package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/kjstillabower/skysense/internal/client"
	"github.com/kjstillabower/skysense/internal/config"
	"github.com/kjstillabower/skysense/internal/models"
)

// HTTPSource reads conditions, hourly temperatures, astronomy and the identity
// token from the proxy, and the daily forecast and air quality from Open-Meteo.
type HTTPSource struct {
	proxyURL      string
	airQualityURL string
	openMeteoURL  string
	client        *http.Client
}

// NewHTTPSource returns a Source for the endpoints in cfg.
func NewHTTPSource(cfg config.DashboardConfig) *HTTPSource {
	return &HTTPSource{
		proxyURL:      cfg.ProxyURL,
		airQualityURL: cfg.AirQualityURL,
		openMeteoURL:  cfg.OpenMeteoURL,
		client:        &http.Client{Timeout: cfg.FetchTimeout},
	}
}

type validator interface {
	Validate() error
}

func (s *HTTPSource) proxy(ctx context.Context, route string, c models.Coordinate, out validator) error {
	u := s.proxyURL + "/api/weather/" + route
	if err := s.getJSON(ctx, u, url.Values{"q": {c.Query()}}, out); err != nil {
		return err
	}
	return out.Validate()
}

func (s *HTTPSource) Current(ctx context.Context, c models.Coordinate) (models.CurrentConditions, error) {
	var resp models.CurrentResponse
	if err := s.proxy(ctx, client.RouteCurrent, c, &resp); err != nil {
		return models.CurrentConditions{}, err
	}
	return resp.Conditions(), nil
}

func (s *HTTPSource) Hourly(ctx context.Context, c models.Coordinate) (models.HourlyTemperatures, error) {
	var resp models.ForecastResponse
	if err := s.proxy(ctx, client.RouteForecast, c, &resp); err != nil {
		return models.HourlyTemperatures{}, err
	}
	return resp.HourlyTemperatures(), nil
}

func (s *HTTPSource) Astronomy(ctx context.Context, c models.Coordinate) (models.AstronomyData, error) {
	var resp models.AstronomyResponse
	if err := s.proxy(ctx, client.RouteAstronomy, c, &resp); err != nil {
		return models.AstronomyData{}, err
	}
	return resp.Data(), nil
}

func (s *HTTPSource) DailyForecast(ctx context.Context, c models.Coordinate) ([]models.ForecastDay, error) {
	params := coordinateParams(c)
	params.Set("daily", "temperature_2m_max,temperature_2m_min,weathercode")
	params.Set("timezone", "auto")
	params.Set("forecast_days", strconv.Itoa(models.ForecastDays))

	var resp models.DailyForecastResponse
	if err := s.getJSON(ctx, s.openMeteoURL, params, &resp); err != nil {
		return nil, err
	}
	if err := resp.Validate(); err != nil {
		return nil, err
	}
	return resp.Days(), nil
}

func (s *HTTPSource) AirQuality(ctx context.Context, c models.Coordinate) (models.AirQualityIndex, error) {
	params := coordinateParams(c)
	params.Set("hourly", "us_aqi")

	var resp models.AirQualityResponse
	if err := s.getJSON(ctx, s.airQualityURL, params, &resp); err != nil {
		return models.AQIUnavailable, err
	}
	return resp.Index(), nil
}

// Token requests an identity token from the proxy.
func (s *HTTPSource) Token(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.proxyURL+"/api/chatbase/token", nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := s.do(req, &body); err != nil {
		return "", err
	}
	return body.Token, nil
}

func (s *HTTPSource) getJSON(ctx context.Context, rawURL string, params url.Values, out interface{}) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	u.RawQuery = params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return s.do(req, out)
}

// do sends req and decodes a 2xx JSON body into out. Other statuses surface
// the {"error": msg} envelope the proxy writes when present.
func (s *HTTPSource) do(req *http.Request, out interface{}) error {
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrFetchFailed, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrFetchFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := fmt.Sprintf("status %d", resp.StatusCode)
		var envelope struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &envelope) == nil && envelope.Error != "" {
			msg = envelope.Error
		}
		return fmt.Errorf("%w: %s %s: %s", ErrFetchFailed, req.Method, req.URL.Path, msg)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrFetchFailed, req.URL.Path, err)
	}
	return nil
}

func coordinateParams(c models.Coordinate) url.Values {
	return url.Values{
		"latitude":  {strconv.FormatFloat(c.Latitude, 'f', -1, 64)},
		"longitude": {strconv.FormatFloat(c.Longitude, 'f', -1, 64)},
	}
}
