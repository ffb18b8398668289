package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kjstillabower/skysense/internal/models"
	"github.com/kjstillabower/skysense/internal/observability"
	"github.com/kjstillabower/skysense/internal/render"
)

// Messages shown when a session fails.
const (
	MsgLocationDenied      = "Geolocation denied. Unable to show map."
	MsgRecenterDenied      = "Geolocation denied. Unable to update."
	MsgLocationUnsupported = "Geolocation not supported."
	MsgFetchYourLocation   = "Unable to fetch weather for your location."
	MsgFetchClicked        = "Unable to fetch weather for clicked location."
	MsgForecastFailed      = "Failed to load 7-day forecast..."
	PopupUnavailable       = "Weather data unavailable"
	PopupYourLocation      = "Your Location"
	AQILoading             = "Loading..."
)

// Fullscreen button labels.
const (
	LabelExitFullscreen = "🗕 Exit"
	LabelExpand         = "⛶ Expand"
)

// MarkerZoom is the zoom used when centering on the user or the marker.
const MarkerZoom = 11

// Controller runs location sessions against a Source and renders into a View.
// Each session gets an increasing id; results from older sessions are dropped,
// so the view only ever shows one marker and one chart.
type Controller struct {
	locator Locator
	source  Source
	view    View
	logger  *zap.Logger
	now     func() time.Time

	mu         sync.Mutex
	session    uint64
	state      SessionState
	marker     *models.MapMarker
	conditions ConditionsPanel
	chart      bool
	fullscreen bool
}

// NewController returns an idle controller.
func NewController(locator Locator, source Source, view View, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		locator: locator,
		source:  source,
		view:    view,
		logger:  logger,
		now:     time.Now,
	}
}

// State returns the current session state.
func (c *Controller) State() SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Marker returns the marker on the map, if any.
func (c *Controller) Marker() (models.MapMarker, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.marker == nil {
		return models.MapMarker{}, false
	}
	return *c.marker, true
}

// Start runs the page-load session: geolocate, then fetch.
func (c *Controller) Start(ctx context.Context) error {
	return c.locate(ctx, TriggerLoad)
}

// Recenter starts a new geolocated session.
func (c *Controller) Recenter(ctx context.Context) error {
	return c.locate(ctx, TriggerRecenter)
}

// Click starts a session for a clicked coordinate, skipping geolocation.
func (c *Controller) Click(ctx context.Context, coord models.Coordinate) error {
	id := c.begin(StateFetching)
	return c.fetch(ctx, id, TriggerClick, coord)
}

func (c *Controller) locate(ctx context.Context, trigger Trigger) error {
	id := c.begin(StateLocating)

	coord, err := c.locator.Locate(ctx)
	if err != nil {
		msg := MsgLocationDenied
		switch {
		case errors.Is(err, ErrLocationUnsupported):
			msg = MsgLocationUnsupported
		case trigger == TriggerRecenter:
			msg = MsgRecenterDenied
		}
		c.logger.Warn("geolocation failed", zap.String("trigger", string(trigger)), zap.Error(err))
		c.apply(id, "status", func() {
			c.clearMarker()
			c.clearChart()
			c.finish(trigger, StateFailed)
			c.view.ShowMessage(msg)
		})
		return fmt.Errorf("locate: %w", err)
	}

	if !c.apply(id, "map", func() {
		c.setState(StateFetching)
		c.view.CenterMap(coord, MarkerZoom)
	}) {
		return nil
	}
	return c.fetch(ctx, id, trigger, coord)
}

// fetch awaits current conditions, renders them, then runs the secondary
// fetches concurrently. Secondary failures degrade to placeholders.
func (c *Controller) fetch(ctx context.Context, id uint64, trigger Trigger, coord models.Coordinate) error {
	logger := c.logger.With(zap.Uint64("session", id), zap.String("trigger", string(trigger)), zap.Stringer("coordinate", coord))

	cur, err := c.source.Current(ctx, coord)
	if err != nil {
		logger.Error("current conditions fetch failed", zap.Error(err))
		c.apply(id, "status", func() {
			msg := MsgFetchYourLocation
			if trigger == TriggerClick {
				msg = MsgFetchClicked
				c.replaceMarker(models.MapMarker{Coordinate: coord, Popup: PopupUnavailable})
			} else {
				c.clearMarker()
			}
			c.finish(trigger, StateFailed)
			c.view.ShowMessage(msg)
		})
		return fmt.Errorf("current conditions: %w", err)
	}

	temp := formatTemp(cur.TempC)
	popup := temp
	if trigger != TriggerClick {
		popup = PopupYourLocation + "\n" + temp
	}
	if !c.apply(id, "conditions", func() {
		c.replaceMarker(models.MapMarker{Coordinate: coord, Popup: popup})
		c.conditions = conditionsPanel(cur)
		c.view.RenderConditions(c.conditions)
		c.view.RenderDetails(detailsPanel(cur))
	}) {
		return nil
	}

	var g errgroup.Group
	g.Go(func() error {
		aqi, err := c.source.AirQuality(ctx, coord)
		if err != nil {
			logger.Warn("air quality fetch failed", zap.Error(err))
			aqi = models.AQIUnavailable
		}
		c.apply(id, "air_quality", func() {
			c.replaceMarker(models.MapMarker{Coordinate: coord, Popup: popup + "\nAQI: " + aqi.String()})
			c.conditions.AQI = aqi.String()
			c.view.RenderConditions(c.conditions)
			c.view.RenderAirQuality(airQualityPanel(aqi))
		})
		return nil
	})
	g.Go(func() error {
		days, err := c.source.DailyForecast(ctx, coord)
		panel := ForecastPanel{Failure: MsgForecastFailed}
		if err != nil {
			logger.Warn("daily forecast fetch failed", zap.Error(err))
		} else {
			panel = forecastPanel(days)
		}
		c.apply(id, "forecast", func() { c.view.RenderForecast(panel) })
		return nil
	})
	g.Go(func() error {
		astro, err := c.source.Astronomy(ctx, coord)
		if err != nil {
			logger.Warn("astronomy fetch failed", zap.Error(err))
		}
		panel := astronomyPanel(astro, err == nil, c.now())
		c.apply(id, "astronomy", func() { c.view.RenderAstronomy(panel) })
		return nil
	})
	g.Go(func() error {
		hourly, err := c.source.Hourly(ctx, coord)
		if err != nil {
			logger.Warn("hourly temperature fetch failed", zap.Error(err))
		}
		c.apply(id, "chart", func() {
			c.clearChart()
			if err == nil {
				c.view.DrawChart(Chart{Labels: hourly.Labels, TempsC: hourly.TempsC})
				c.chart = true
			}
		})
		return nil
	})
	_ = g.Wait()

	c.apply(id, "status", func() { c.finish(trigger, StateRendered) })
	return nil
}

// ToggleFullscreen flips the map between expanded and normal and returns the
// new button label.
func (c *Controller) ToggleFullscreen() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fullscreen = !c.fullscreen
	label := LabelExpand
	if c.fullscreen {
		label = LabelExitFullscreen
	}
	c.view.SetFullscreen(c.fullscreen, label)
	return label
}

// MarkerClick recenters the map on the marker. It reports false when there is none.
func (c *Controller) MarkerClick() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.marker == nil {
		return false
	}
	c.view.CenterMap(c.marker.Coordinate, MarkerZoom)
	return true
}

// Identify fetches an identity token for the chat widget and hands it to the view.
func (c *Controller) Identify(ctx context.Context) error {
	tok, err := c.source.Token(ctx)
	if err != nil {
		c.logger.Error("chat identify failed", zap.Error(err))
		return fmt.Errorf("identify: %w", err)
	}
	if tok == "" {
		c.logger.Warn("no chat token returned")
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Identify(tok)
	c.logger.Info("chat user identified")
	return nil
}

// begin opens a new session and returns its id; older sessions become stale.
func (c *Controller) begin(state SessionState) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session++
	c.setState(state)
	return c.session
}

// apply runs fn under the lock if id is still the live session.
func (c *Controller) apply(id uint64, panel string, fn func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id != c.session {
		observability.DashboardStaleResultsTotal.WithLabelValues(panel).Inc()
		c.logger.Debug("discarding stale result", zap.Uint64("session", id), zap.Uint64("live", c.session), zap.String("panel", panel))
		return false
	}
	fn()
	return true
}

// Callers hold c.mu for the helpers below.

func (c *Controller) setState(state SessionState) {
	c.state = state
	c.view.SetState(state)
}

func (c *Controller) finish(trigger Trigger, state SessionState) {
	c.setState(state)
	observability.DashboardSessionsTotal.WithLabelValues(string(trigger), state.String()).Inc()
}

func (c *Controller) replaceMarker(m models.MapMarker) {
	c.clearMarker()
	c.marker = &m
	c.view.PlaceMarker(m)
}

func (c *Controller) clearMarker() {
	if c.marker != nil {
		c.view.RemoveMarker()
		c.marker = nil
	}
}

func (c *Controller) clearChart() {
	if c.chart {
		c.view.DestroyChart()
		c.chart = false
	}
}

func formatTemp(c float64) string {
	return strconv.FormatFloat(c, 'f', -1, 64) + "°C"
}

func conditionsPanel(cur models.CurrentConditions) ConditionsPanel {
	return ConditionsPanel{
		Location:    cur.LocationName,
		Temperature: formatTemp(cur.TempC),
		Icon:        render.WeatherIcon(cur.Condition),
		Condition:   cur.Condition,
		AQI:         AQILoading,
		Wind:        strconv.FormatFloat(cur.WindKph, 'f', -1, 64) + " kph",
		Humidity:    strconv.Itoa(cur.Humidity) + "%",
		FeelsLike:   formatTemp(cur.FeelsLikeC),
		Pressure:    strconv.FormatFloat(cur.PressureMb, 'f', -1, 64) + " mb",
	}
}

func detailsPanel(cur models.CurrentConditions) DetailsPanel {
	return DetailsPanel{
		Humidity:      strconv.Itoa(cur.Humidity) + "%",
		DewPoint:      strconv.FormatFloat(cur.DewPointC, 'f', -1, 64) + "° Dew point",
		HumidityLabel: render.HumidityLabel(cur.Humidity),
		UV:            strconv.FormatFloat(cur.UV, 'f', -1, 64),
		UVLabel:       render.UVLabel(cur.UV),
		UVGauge:       render.Gauge(cur.UV, render.UVScale),
		Visibility:    strconv.FormatFloat(cur.VisKm, 'f', -1, 64) + " km",
		VisLabel:      render.VisibilityLabel(cur.VisKm),
		Pressure:      strconv.FormatFloat(cur.PressureMb, 'f', -1, 64),
		PressureTrend: render.PressureTrendLabel(cur.PressureTrend),
	}
}

func airQualityPanel(aqi models.AirQualityIndex) AirQualityPanel {
	value := 0.0
	if aqi.Available() {
		value = float64(aqi)
	}
	return AirQualityPanel{
		Value: aqi.String(),
		Label: render.AQILabel(aqi),
		Gauge: render.Gauge(value, render.AQIScale),
	}
}

func forecastPanel(days []models.ForecastDay) ForecastPanel {
	cards := make([]ForecastCard, 0, len(days))
	for _, d := range days {
		cards = append(cards, ForecastCard{
			Day:  render.Weekday(d.Date),
			Icon: render.WMOIcon(d.Code),
			High: strconv.FormatFloat(d.High, 'f', 1, 64) + "°C",
			Low:  strconv.FormatFloat(d.Low, 'f', 1, 64) + "°C",
		})
	}
	return ForecastPanel{Cards: cards}
}

// astronomyPanel renders a; when ok is false every field is a placeholder.
func astronomyPanel(a models.AstronomyData, ok bool, now time.Time) AstronomyPanel {
	p := AstronomyPanel{
		Sunrise:      render.Placeholder,
		Sunset:       render.Placeholder,
		SunDuration:  render.Placeholder,
		Moonrise:     render.Placeholder,
		Moonset:      render.Placeholder,
		MoonDuration: render.Placeholder,
		MoonPhase:    render.Placeholder,
		MoonIcon:     render.DefaultMoonIcon,
		NextFullMoon: render.Placeholder,
		SunArc:       render.SunArc(),
		MoonArc:      render.MoonArc(),
	}
	if !ok {
		return p
	}
	p.Sunrise = orPlaceholder(a.Sunrise)
	p.Sunset = orPlaceholder(a.Sunset)
	p.SunDuration = render.Duration(a.Sunrise, a.Sunset)
	p.Moonrise = orPlaceholder(a.Moonrise)
	p.Moonset = orPlaceholder(a.Moonset)
	p.MoonDuration = render.Duration(a.Moonrise, a.Moonset)
	if a.MoonPhase != "" {
		p.MoonPhase = a.MoonPhase
		p.MoonIcon = render.MoonPhaseIcon(a.MoonPhase)
		p.NextFullMoon = render.NextFullMoon(a.MoonPhase, now)
	}
	return p
}

func orPlaceholder(s string) string {
	if s == "" {
		return render.Placeholder
	}
	return s
}
