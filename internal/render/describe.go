package render

import (
	"strings"
	"time"

	"github.com/kjstillabower/skysense/internal/models"
)

// Gauge scales.
const (
	UVScale  = 11
	AQIScale = 300
)

func HumidityLabel(humidity int) string {
	switch {
	case humidity < 40:
		return "Low humidity."
	case humidity < 70:
		return "Normal humidity."
	default:
		return "High humidity."
	}
}

func UVLabel(uv float64) string {
	switch {
	case uv < 3:
		return "Low UV exposure."
	case uv < 6:
		return "Moderate UV exposure."
	case uv < 8:
		return "High UV exposure."
	case uv < 11:
		return "Very high UV exposure."
	default:
		return "Extreme UV exposure."
	}
}

// AQILabel describes a US AQI reading. Unavailable readings get Placeholder.
func AQILabel(aqi models.AirQualityIndex) string {
	if !aqi.Available() {
		return Placeholder
	}
	switch {
	case aqi <= 50:
		return "Good air quality"
	case aqi <= 100:
		return "Moderate"
	case aqi <= 150:
		return "Unhealthy for sensitive groups"
	case aqi <= 200:
		return "Unhealthy"
	case aqi <= 300:
		return "Very unhealthy"
	default:
		return "Hazardous"
	}
}

func VisibilityLabel(km float64) string {
	switch {
	case km >= 10:
		return "Excellent visibility."
	case km >= 5:
		return "Good visibility."
	default:
		return "Low visibility."
	}
}

// PressureTrendLabel maps the upstream trend (1, -1, other) to text.
func PressureTrendLabel(trend int) string {
	switch trend {
	case 1:
		return "Rising"
	case -1:
		return "Falling"
	default:
		return "Steady"
	}
}

// SynodicMonth is the mean length of a lunar cycle.
const SynodicMonth = time.Duration(29.53 * 24 * float64(time.Hour))

// NextFullMoon returns "Today" when phase is a full moon, otherwise the date one
// synodic month after now ("Mon Jan 02 2006").
func NextFullMoon(phase string, now time.Time) string {
	if strings.Contains(strings.ToLower(phase), "full") {
		return "Today"
	}
	return now.Add(SynodicMonth).Format("Mon Jan 02 2006")
}

// Weekday names a "2006-01-02" date ("Monday"); the input is returned unchanged
// if it does not parse.
func Weekday(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Weekday().String()
}
