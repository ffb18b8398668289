package render

import (
	"math"
	"testing"
	"time"

	"github.com/kjstillabower/skysense/internal/models"
)

// TestWeatherIcon verifies keyword matching is case-insensitive, ordered, and
// falls back to the default icon for unknown conditions.
func TestWeatherIcon(t *testing.T) {
	tests := []struct {
		condition string
		want      string
	}{
		{"Sunny", "☀️"},
		{"CLEAR", "☀️"},
		{"Partly cloudy", "☁️"},
		{"Light rain shower", "🌧️"},
		{"Patchy snow possible", "❄️"},
		{"Thundery outbreaks", "⚡"},
		{"Mist", "🌫️"},
		{"Freezing fog", "🌫️"},
		{"Sunny with rain", "☀️"},
		{"hazy", DefaultWeatherIcon},
		{"", DefaultWeatherIcon},
	}
	for _, tt := range tests {
		if got := WeatherIcon(tt.condition); got != tt.want {
			t.Errorf("WeatherIcon(%q) = %q, want %q", tt.condition, got, tt.want)
		}
	}
}

func TestWMOIcon(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{0, "☀️"},
		{2, "⛅"},
		{45, "🌫️"},
		{53, "🌦️"},
		{63, "🌧️"},
		{75, "❄️"},
		{81, "🌧️"},
		{99, "⛈️"},
		{4, DefaultWMOIcon},
		{56, DefaultWMOIcon},
		{-1, DefaultWMOIcon},
	}
	for _, tt := range tests {
		if got := WMOIcon(tt.code); got != tt.want {
			t.Errorf("WMOIcon(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestMoonPhaseIcon(t *testing.T) {
	tests := []struct {
		phase string
		want  string
	}{
		{"New Moon", "images/moon/new.png"},
		{"Waxing Crescent", "images/moon/waxing_crescent.png"},
		{"First Quarter", "images/moon/first_quarter.png"},
		{"Waxing Gibbous", "images/moon/waxing_gibbous.png"},
		{"Full Moon", "images/moon/full.png"},
		{"Waning Gibbous", "images/moon/waning_gibbous.png"},
		{"Last Quarter", DefaultMoonIcon},
		{"Third Quarter", "images/moon/third_quarter.png"},
		{"Waning Crescent", "images/moon/waning_crescent.png"},
		{"", DefaultMoonIcon},
	}
	for _, tt := range tests {
		if got := MoonPhaseIcon(tt.phase); got != tt.want {
			t.Errorf("MoonPhaseIcon(%q) = %q, want %q", tt.phase, got, tt.want)
		}
	}
}

// TestGauge_Monotonic verifies the sweep never decreases as value grows and
// reaches exactly π at value == scale.
func TestGauge_Monotonic(t *testing.T) {
	prev := -1.0
	for v := -5.0; v <= 20; v += 0.5 {
		sweep := Gauge(v, UVScale).Sweep()
		if sweep < prev {
			t.Fatalf("Gauge(%v).Sweep() = %v, decreased from %v", v, sweep, prev)
		}
		prev = sweep
	}
	if got := Gauge(UVScale, UVScale).Sweep(); got != math.Pi {
		t.Errorf("Gauge(max, max).Sweep() = %v, want π", got)
	}
}

func TestGauge_Clamped(t *testing.T) {
	tests := []struct {
		name         string
		value, scale float64
		want         float64
	}{
		{"half", 150, AQIScale, math.Pi / 2},
		{"over scale", 450, AQIScale, math.Pi},
		{"negative", -3, UVScale, 0},
		{"zero scale", 5, 0, 0},
		{"NaN", math.NaN(), UVScale, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Gauge(tt.value, tt.scale)
			if a.StartAngle != math.Pi {
				t.Errorf("StartAngle = %v, want π", a.StartAngle)
			}
			if math.Abs(a.Sweep()-tt.want) > 1e-9 {
				t.Errorf("Sweep() = %v, want %v", a.Sweep(), tt.want)
			}
			if len(a.Stops) != 3 || a.Stops[0].Color != "#4ade80" || a.Stops[2].Color != "#ef4444" {
				t.Errorf("Stops = %v, want green/yellow/red", a.Stops)
			}
		})
	}
}

func TestArc_Bar(t *testing.T) {
	if got := Gauge(5.5, 11).Bar(10); got != "█████░░░░░" {
		t.Errorf("Bar(10) = %q", got)
	}
	if got := Gauge(0, 11).Bar(0); got != "" {
		t.Errorf("Bar(0) = %q, want empty", got)
	}
	if got := SunArc().Bar(4); got != "████" {
		t.Errorf("SunArc().Bar(4) = %q", got)
	}
}

// TestDuration verifies midnight wrap-around and placeholder handling.
func TestDuration(t *testing.T) {
	tests := []struct {
		start, end string
		want       string
	}{
		{"22:00", "05:00", "7 hrs 0 mins"},
		{"06:12", "19:45", "13 hrs 33 mins"},
		{"06:12 AM", "07:45 PM", "13 hrs 33 mins"},
		{"10:03 PM", "09:15 AM", "11 hrs 12 mins"},
		{"12:00", "12:00", "0 hrs 0 mins"},
		{"", "05:00", Placeholder},
		{"22:00", "", Placeholder},
		{"No moonrise", "05:00", Placeholder},
	}
	for _, tt := range tests {
		if got := Duration(tt.start, tt.end); got != tt.want {
			t.Errorf("Duration(%q, %q) = %q, want %q", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestSpan_NonNegative(t *testing.T) {
	for h1 := 0; h1 < 24; h1 += 3 {
		for h2 := 0; h2 < 24; h2 += 5 {
			start := time.Date(2025, 1, 1, h1, 17, 0, 0, time.UTC).Format("15:04")
			end := time.Date(2025, 1, 1, h2, 41, 0, 0, time.UTC).Format("15:04")
			h, m, ok := Span(start, end)
			if !ok || h < 0 || m < 0 || h >= 24 || m >= 60 {
				t.Errorf("Span(%q, %q) = %d, %d, %v", start, end, h, m, ok)
			}
		}
	}
}

func TestLabels(t *testing.T) {
	if got := HumidityLabel(35); got != "Low humidity." {
		t.Errorf("HumidityLabel(35) = %q", got)
	}
	if got := HumidityLabel(70); got != "High humidity." {
		t.Errorf("HumidityLabel(70) = %q", got)
	}
	if got := UVLabel(7); got != "High UV exposure." {
		t.Errorf("UVLabel(7) = %q", got)
	}
	if got := UVLabel(11); got != "Extreme UV exposure." {
		t.Errorf("UVLabel(11) = %q", got)
	}
	if got := AQILabel(120); got != "Unhealthy for sensitive groups" {
		t.Errorf("AQILabel(120) = %q", got)
	}
	if got := AQILabel(models.AQIUnavailable); got != Placeholder {
		t.Errorf("AQILabel(unavailable) = %q", got)
	}
	if got := VisibilityLabel(6); got != "Good visibility." {
		t.Errorf("VisibilityLabel(6) = %q", got)
	}
	if got := PressureTrendLabel(-1); got != "Falling" {
		t.Errorf("PressureTrendLabel(-1) = %q", got)
	}
	if got := PressureTrendLabel(0); got != "Steady" {
		t.Errorf("PressureTrendLabel(0) = %q", got)
	}
}

func TestNextFullMoon(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	if got := NextFullMoon("Full Moon", now); got != "Today" {
		t.Errorf("NextFullMoon(Full Moon) = %q, want Today", got)
	}
	if got := NextFullMoon("Waxing Crescent", now); got != "Mon Mar 31 2025" {
		t.Errorf("NextFullMoon(Waxing Crescent) = %q, want Mon Mar 31 2025", got)
	}
}

func TestWeekday(t *testing.T) {
	if got := Weekday("2025-01-06"); got != "Monday" {
		t.Errorf("Weekday() = %q, want Monday", got)
	}
	if got := Weekday("garbage"); got != "garbage" {
		t.Errorf("Weekday() = %q, want input back", got)
	}
}
