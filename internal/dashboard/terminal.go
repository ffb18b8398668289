package dashboard

import (
	"fmt"
	"io"
	"strings"

	"github.com/kjstillabower/skysense/internal/models"
)

const gaugeWidth = 20

// TerminalView prints each view update as plain text lines.
type TerminalView struct {
	w io.Writer
}

// NewTerminalView returns a View writing to w.
func NewTerminalView(w io.Writer) *TerminalView {
	return &TerminalView{w: w}
}

func (v *TerminalView) printf(format string, args ...interface{}) {
	fmt.Fprintf(v.w, format+"\n", args...)
}

func (v *TerminalView) SetState(state SessionState) {
	v.printf("[%s]", state)
}

func (v *TerminalView) ShowMessage(msg string) {
	v.printf("! %s", msg)
}

func (v *TerminalView) CenterMap(c models.Coordinate, zoom int) {
	v.printf("map: centered on %s (zoom %d)", c, zoom)
}

func (v *TerminalView) PlaceMarker(m models.MapMarker) {
	v.printf("map: marker at %s: %s", m.Coordinate, strings.ReplaceAll(m.Popup, "\n", " | "))
}

func (v *TerminalView) RemoveMarker() {
	v.printf("map: marker removed")
}

func (v *TerminalView) RenderConditions(p ConditionsPanel) {
	v.printf("%s  %s  %s %s", p.Location, p.Temperature, p.Icon, p.Condition)
	v.printf("  AQI %s | Wind %s | Humidity %s | Feels like %s | Pressure %s",
		p.AQI, p.Wind, p.Humidity, p.FeelsLike, p.Pressure)
}

func (v *TerminalView) RenderAirQuality(p AirQualityPanel) {
	v.printf("AQI      %-6s %s %s", p.Value, p.Gauge.Bar(gaugeWidth), p.Label)
}

func (v *TerminalView) RenderDetails(p DetailsPanel) {
	v.printf("Humidity %-6s %s (%s)", p.Humidity, p.HumidityLabel, p.DewPoint)
	v.printf("UV       %-6s %s %s", p.UV, p.UVGauge.Bar(gaugeWidth), p.UVLabel)
	v.printf("Vis      %-6s %s", p.Visibility, p.VisLabel)
	v.printf("Pressure %-6s %s", p.Pressure, p.PressureTrend)
}

func (v *TerminalView) RenderForecast(p ForecastPanel) {
	if p.Failure != "" {
		v.printf("7-day: %s", p.Failure)
		return
	}
	v.printf("7-day forecast:")
	for _, c := range p.Cards {
		v.printf("  %-9s %s  %s / %s", c.Day, c.Icon, c.High, c.Low)
	}
}

func (v *TerminalView) RenderAstronomy(p AstronomyPanel) {
	v.printf("Sun   %s -> %s (%s)", p.Sunrise, p.Sunset, p.SunDuration)
	v.printf("Moon  %s -> %s (%s)", p.Moonrise, p.Moonset, p.MoonDuration)
	v.printf("Phase %s [%s], next full moon: %s", p.MoonPhase, p.MoonIcon, p.NextFullMoon)
}

func (v *TerminalView) DrawChart(c Chart) {
	var b strings.Builder
	for i, label := range c.Labels {
		if i > 0 {
			b.WriteString("  ")
		}
		fmt.Fprintf(&b, "%s %.1f°", label, c.TempsC[i])
	}
	v.printf("Hourly: %s", b.String())
}

func (v *TerminalView) DestroyChart() {}

func (v *TerminalView) SetFullscreen(expanded bool, label string) {
	v.printf("map: fullscreen=%t [%s]", expanded, label)
}

func (v *TerminalView) Identify(token string) {
	v.printf("chat: identified (%d-byte token)", len(token))
}
