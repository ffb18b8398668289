package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCoordinate_Query(t *testing.T) {
	c := Coordinate{Latitude: 51.505, Longitude: -0.09}
	if got := c.Query(); got != "51.505,-0.09" {
		t.Errorf("Query() = %q, want 51.505,-0.09", got)
	}
}

func TestCurrentResponse_Validate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"complete", `{"location":{"name":"London"},"current":{"temp_c":12.5,"condition":{"text":"Sunny"}}}`, false},
		{"missing location", `{"current":{"temp_c":12.5}}`, true},
		{"missing current", `{"location":{"name":"London"}}`, true},
		{"empty object", `{}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r CurrentResponse
			if err := json.Unmarshal([]byte(tt.body), &r); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			err := r.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedPayload) {
					t.Errorf("Validate() error = %v, want ErrMalformedPayload", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestCurrentResponse_Conditions(t *testing.T) {
	body := `{"location":{"name":"London"},"current":{"temp_c":12.5,"condition":{"text":"Partly cloudy"},
		"wind_kph":14.4,"humidity":72,"feelslike_c":11.0,"pressure_mb":1016,"uv":3,"vis_km":10,"dewpoint_c":7.5,"pressure_trend":-1}}`
	var r CurrentResponse
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	want := CurrentConditions{
		LocationName:  "London",
		TempC:         12.5,
		Condition:     "Partly cloudy",
		WindKph:       14.4,
		Humidity:      72,
		FeelsLikeC:    11.0,
		PressureMb:    1016,
		UV:            3,
		VisKm:         10,
		DewPointC:     7.5,
		PressureTrend: -1,
	}
	if diff := cmp.Diff(want, r.Conditions()); diff != "" {
		t.Errorf("Conditions() mismatch (-want +got):\n%s", diff)
	}
}

func forecastBody(hours int) string {
	entries := make([]string, 0, hours)
	for i := 0; i < hours; i++ {
		entries = append(entries, fmt.Sprintf(`{"time":"2025-01-01 %02d:00","temp_c":%d}`, i, i))
	}
	return `{"forecast":{"forecastday":[{"hour":[` + strings.Join(entries, ",") + `]}]}}`
}

func TestForecastResponse_HourlyTemperatures(t *testing.T) {
	var r ForecastResponse
	if err := json.Unmarshal([]byte(forecastBody(24)), &r); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	got := r.HourlyTemperatures()
	if len(got.Labels) != 12 || len(got.TempsC) != 12 {
		t.Fatalf("got %d labels, %d temps, want 12 each", len(got.Labels), len(got.TempsC))
	}
	if got.Labels[0] != "00:00" || got.Labels[11] != "22:00" {
		t.Errorf("labels = %v", got.Labels)
	}
	if got.TempsC[1] != 2 {
		t.Errorf("TempsC[1] = %v, want 2", got.TempsC[1])
	}
}

func TestForecastResponse_ValidateShortDay(t *testing.T) {
	var r ForecastResponse
	if err := json.Unmarshal([]byte(forecastBody(5)), &r); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if err := r.Validate(); !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("Validate() error = %v, want ErrMalformedPayload", err)
	}
}

func TestAstronomyResponse(t *testing.T) {
	var r AstronomyResponse
	body := `{"astronomy":{"astro":{"sunrise":"06:12 AM","sunset":"07:45 PM","moonrise":"10:03 PM","moonset":"09:15 AM","moon_phase":"Waning Gibbous"}}}`
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got := r.Data().MoonPhase; got != "Waning Gibbous" {
		t.Errorf("MoonPhase = %q", got)
	}

	var empty AstronomyResponse
	if err := empty.Validate(); !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("Validate() on empty = %v, want ErrMalformedPayload", err)
	}
}

func TestDailyForecastResponse_Days(t *testing.T) {
	body := `{"daily":{"time":["d0","d1","d2","d3","d4","d5","d6"],
		"temperature_2m_max":[1,2,3,4,5,6,7],"temperature_2m_min":[0,0,0,0,0,0,0],"weathercode":[0,1,45,51,61,71,95]}}`
	var r DailyForecastResponse
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	days := r.Days()
	if len(days) != ForecastDays {
		t.Fatalf("len(Days()) = %d, want %d", len(days), ForecastDays)
	}
	if diff := cmp.Diff(ForecastDay{Date: "d6", High: 7, Low: 0, Code: 95}, days[6]); diff != "" {
		t.Errorf("Days()[6] mismatch (-want +got):\n%s", diff)
	}

	short := `{"daily":{"time":["d0"],"temperature_2m_max":[1],"temperature_2m_min":[0],"weathercode":[0]}}`
	var s DailyForecastResponse
	_ = json.Unmarshal([]byte(short), &s)
	if err := s.Validate(); !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("Validate() on short series = %v, want ErrMalformedPayload", err)
	}
}

func TestAirQualityResponse_Index(t *testing.T) {
	tests := []struct {
		name string
		body string
		want AirQualityIndex
	}{
		{"first hour", `{"hourly":{"us_aqi":[42.4,50]}}`, 42},
		{"rounds", `{"hourly":{"us_aqi":[42.6]}}`, 43},
		{"null first", `{"hourly":{"us_aqi":[null,50]}}`, AQIUnavailable},
		{"empty series", `{"hourly":{"us_aqi":[]}}`, AQIUnavailable},
		{"no hourly", `{}`, AQIUnavailable},
		{"out of scale", `{"hourly":{"us_aqi":[900]}}`, AQIUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r AirQualityResponse
			if err := json.Unmarshal([]byte(tt.body), &r); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if got := r.Index(); got != tt.want {
				t.Errorf("Index() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAirQualityIndex_String(t *testing.T) {
	if got := AirQualityIndex(87).String(); got != "87" {
		t.Errorf("String() = %q, want 87", got)
	}
	if got := AQIUnavailable.String(); got != "N/A" {
		t.Errorf("String() = %q, want N/A", got)
	}
}
