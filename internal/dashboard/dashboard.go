// Package dashboard drives the weather dashboard: it acquires a coordinate,
// fetches conditions through the proxy and Open-Meteo, and pushes rendered
// panels to a View. One location session is live at a time.
package dashboard

import (
	"context"
	"errors"

	"github.com/kjstillabower/skysense/internal/models"
	"github.com/kjstillabower/skysense/internal/render"
)

// Geolocation outcomes that end a session before any fetch.
var (
	ErrLocationDenied      = errors.New("geolocation denied")
	ErrLocationUnsupported = errors.New("geolocation not supported")
)

// ErrFetchFailed wraps every non-2xx or undecodable source response.
var ErrFetchFailed = errors.New("fetch failed")

// SessionState is the lifecycle stage of the current location session.
type SessionState int

const (
	StateIdle SessionState = iota
	StateLocating
	StateFetching
	StateRendered
	StateFailed
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLocating:
		return "locating"
	case StateFetching:
		return "fetching"
	case StateRendered:
		return "rendered"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Trigger is what started a session.
type Trigger string

const (
	TriggerLoad     Trigger = "load"
	TriggerRecenter Trigger = "recenter"
	TriggerClick    Trigger = "click"
)

// Locator resolves the user's position. It returns ErrLocationDenied or
// ErrLocationUnsupported when no position can be had.
type Locator interface {
	Locate(ctx context.Context) (models.Coordinate, error)
}

// Source fetches every payload the dashboard renders.
type Source interface {
	Current(ctx context.Context, c models.Coordinate) (models.CurrentConditions, error)
	Hourly(ctx context.Context, c models.Coordinate) (models.HourlyTemperatures, error)
	Astronomy(ctx context.Context, c models.Coordinate) (models.AstronomyData, error)
	DailyForecast(ctx context.Context, c models.Coordinate) ([]models.ForecastDay, error)
	AirQuality(ctx context.Context, c models.Coordinate) (models.AirQualityIndex, error)
	Token(ctx context.Context) (string, error)
}

// View displays controller output. The controller serializes calls, so
// implementations need no locking of their own.
type View interface {
	SetState(state SessionState)
	ShowMessage(msg string)
	CenterMap(c models.Coordinate, zoom int)
	PlaceMarker(m models.MapMarker)
	RemoveMarker()
	RenderConditions(p ConditionsPanel)
	RenderAirQuality(p AirQualityPanel)
	RenderDetails(p DetailsPanel)
	RenderForecast(p ForecastPanel)
	RenderAstronomy(p AstronomyPanel)
	DrawChart(c Chart)
	DestroyChart()
	SetFullscreen(expanded bool, label string)
	Identify(token string)
}

// ConditionsPanel is the headline block: name, temperature, condition and tiles.
// AQI reads AQILoading until the air quality result arrives, then the panel is
// rendered again with the value.
type ConditionsPanel struct {
	Location    string
	Temperature string
	Icon        string
	Condition   string
	AQI         string
	Wind        string
	Humidity    string
	FeelsLike   string
	Pressure    string
}

// AirQualityPanel fills the AQI gauge card.
type AirQualityPanel struct {
	Value string
	Label string
	Gauge render.Arc
}

// DetailsPanel holds the humidity, UV, visibility and pressure cards.
type DetailsPanel struct {
	Humidity      string
	DewPoint      string
	HumidityLabel string
	UV            string
	UVLabel       string
	UVGauge       render.Arc
	Visibility    string
	VisLabel      string
	Pressure      string
	PressureTrend string
}

// ForecastPanel is the 7-day strip. Failure is set instead of Cards when the
// forecast could not be loaded.
type ForecastPanel struct {
	Cards   []ForecastCard
	Failure string
}

// ForecastCard is one day of the strip.
type ForecastCard struct {
	Day  string
	Icon string
	High string
	Low  string
}

// AstronomyPanel holds sun and moon times with their arcs.
type AstronomyPanel struct {
	Sunrise      string
	Sunset       string
	SunDuration  string
	Moonrise     string
	Moonset      string
	MoonDuration string
	MoonPhase    string
	MoonIcon     string
	NextFullMoon string
	SunArc       render.Arc
	MoonArc      render.Arc
}

// Chart is the temperature-by-hour line chart.
type Chart struct {
	Labels []string
	TempsC []float64
}
