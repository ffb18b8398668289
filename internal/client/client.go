package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kjstillabower/skysense/internal/observability"
)

// Routes the proxy forwards; each maps to <apiURL>/<route>.json upstream.
const (
	RouteCurrent   = "current"
	RouteForecast  = "forecast"
	RouteAstronomy = "astronomy"
)

// Routes lists every forwarded route.
var Routes = []string{RouteCurrent, RouteForecast, RouteAstronomy}

// WeatherClient forwards a query to the upstream weather provider.
type WeatherClient interface {
	Forward(ctx context.Context, route string, query url.Values) (*Response, error)
}

var (
	ErrInvalidAPIKey   = errors.New("invalid API key")
	ErrUpstreamFailure = errors.New("upstream failure")
	ErrUnknownRoute    = errors.New("unknown route")
)

// Response is an upstream reply passed through to the caller untouched.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// UpstreamError carries the message the proxy reports to the browser. Message is
// the provider's error.message when it sent one, else a local description.
type UpstreamError struct {
	StatusCode int // 0 when no response was received
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("upstream HTTP %d: %s", e.StatusCode, e.Message)
	}
	return "upstream: " + e.Message
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// MessageOf returns the message to surface for err: the upstream message for an
// UpstreamError, err.Error() otherwise.
func MessageOf(err error) string {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Message
	}
	return err.Error()
}

// WeatherAPIClient talks to a weatherapi.com-style provider. The API key is added
// to every request as the "key" parameter.
type WeatherAPIClient struct {
	apiKey string
	apiURL string
	client *http.Client
}

// NewWeatherAPIClient returns a client for apiURL (e.g. https://api.weatherapi.com/v1).
// timeout bounds each upstream call; zero disables it.
func NewWeatherAPIClient(apiKey, apiURL string, timeout time.Duration) (*WeatherAPIClient, error) {
	if _, err := url.Parse(apiURL); err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}
	return &WeatherAPIClient{
		apiKey: apiKey,
		apiURL: strings.TrimRight(apiURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// upstreamErrorBody is the provider's error envelope: {"error":{"code":1006,"message":"..."}}.
type upstreamErrorBody struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Forward issues one GET for route with query plus the API key. A 2xx reply is
// returned as-is; anything else is an *UpstreamError wrapping ErrUpstreamFailure
// (or ErrInvalidAPIKey for 401/403).
func (c *WeatherAPIClient) Forward(ctx context.Context, route string, query url.Values) (*Response, error) {
	if !knownRoute(route) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRoute, route)
	}
	start := time.Now()

	req, err := c.buildRequest(ctx, route, query)
	if err != nil {
		observability.WeatherAPICallsTotal.WithLabelValues(route, "error").Inc()
		return nil, fmt.Errorf("build request: %w", err)
	}

	if corrID := observability.CorrelationID(ctx); corrID != "" {
		req.Header.Set("X-Correlation-ID", corrID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		observability.WeatherAPICallsTotal.WithLabelValues(route, "error").Inc()
		observability.WeatherAPIDuration.WithLabelValues(route, "error").Observe(time.Since(start).Seconds())
		return nil, &UpstreamError{Message: transportMessage(err), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	status := statusLabel(resp.StatusCode)
	observability.WeatherAPICallsTotal.WithLabelValues(route, status).Inc()
	observability.WeatherAPIDuration.WithLabelValues(route, status).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: transportMessage(err), Err: fmt.Errorf("read response body: %w", err)}
	}

	if err := handleErrorResponse(resp.StatusCode, body); err != nil {
		return nil, err
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

func knownRoute(route string) bool {
	for _, r := range Routes {
		if r == route {
			return true
		}
	}
	return false
}

func (c *WeatherAPIClient) buildRequest(ctx context.Context, route string, query url.Values) (*http.Request, error) {
	u, err := url.Parse(c.apiURL + "/" + route + ".json")
	if err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}

	params := url.Values{}
	for k, vs := range query {
		params[k] = append([]string(nil), vs...)
	}
	params.Set("key", c.apiKey)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func handleErrorResponse(statusCode int, body []byte) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	msg := fmt.Sprintf("Request failed with status code %d", statusCode)
	var eb upstreamErrorBody
	if json.Unmarshal(body, &eb) == nil && eb.Error != nil && eb.Error.Message != "" {
		msg = eb.Error.Message
	}

	sentinel := ErrUpstreamFailure
	if statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		sentinel = ErrInvalidAPIKey
	}
	return &UpstreamError{
		StatusCode: statusCode,
		Message:    msg,
		Err:        fmt.Errorf("%w: HTTP %d", sentinel, statusCode),
	}
}

// transportMessage drops the request URL from net/http errors so the API key
// never reaches a response body.
func transportMessage(err error) string {
	var ue *url.Error
	if errors.As(err, &ue) {
		if ue.Timeout() {
			return "timeout exceeded"
		}
		return ue.Err.Error()
	}
	return err.Error()
}

func statusLabel(statusCode int) string {
	if statusCode >= 200 && statusCode < 300 {
		return "success"
	}
	if statusCode == 429 {
		return "rate_limited"
	}
	if statusCode >= 400 && statusCode < 500 {
		return "client_error"
	}
	if statusCode >= 500 {
		return "server_error"
	}
	return "error"
}
