package models

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrMalformedPayload is returned when an upstream response decodes but lacks fields
// the dashboard renders from.
var ErrMalformedPayload = errors.New("malformed upstream payload")

// Coordinate is a WGS84 position in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Query formats the coordinate as the proxy's q parameter ("lat,lon").
func (c Coordinate) Query() string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}

func (c Coordinate) String() string {
	return c.Query()
}

// CurrentResponse mirrors GET /api/weather/current.
type CurrentResponse struct {
	Location *struct {
		Name string `json:"name"`
	} `json:"location"`
	Current *struct {
		TempC     float64 `json:"temp_c"`
		Condition struct {
			Text string `json:"text"`
		} `json:"condition"`
		WindKph       float64 `json:"wind_kph"`
		Humidity      int     `json:"humidity"`
		FeelsLikeC    float64 `json:"feelslike_c"`
		PressureMb    float64 `json:"pressure_mb"`
		UV            float64 `json:"uv"`
		VisKm         float64 `json:"vis_km"`
		DewPointC     float64 `json:"dewpoint_c"`
		PressureTrend int     `json:"pressure_trend"`
	} `json:"current"`
}

// Validate reports whether the response carries the location and current blocks.
func (r *CurrentResponse) Validate() error {
	if r.Location == nil {
		return fmt.Errorf("%w: current: missing location", ErrMalformedPayload)
	}
	if r.Current == nil {
		return fmt.Errorf("%w: current: missing current", ErrMalformedPayload)
	}
	return nil
}

// Conditions flattens a validated response.
func (r *CurrentResponse) Conditions() CurrentConditions {
	c := r.Current
	return CurrentConditions{
		LocationName:  r.Location.Name,
		TempC:         c.TempC,
		Condition:     c.Condition.Text,
		WindKph:       c.WindKph,
		Humidity:      c.Humidity,
		FeelsLikeC:    c.FeelsLikeC,
		PressureMb:    c.PressureMb,
		UV:            c.UV,
		VisKm:         c.VisKm,
		DewPointC:     c.DewPointC,
		PressureTrend: c.PressureTrend,
	}
}

// CurrentConditions is the rendered view of the current weather at a coordinate.
type CurrentConditions struct {
	LocationName  string
	TempC         float64
	Condition     string
	WindKph       float64
	Humidity      int
	FeelsLikeC    float64
	PressureMb    float64
	UV            float64
	VisKm         float64
	DewPointC     float64
	PressureTrend int
}

// ForecastResponse mirrors GET /api/weather/forecast.
type ForecastResponse struct {
	Forecast *struct {
		ForecastDay []struct {
			Hour []struct {
				Time  string  `json:"time"`
				TempC float64 `json:"temp_c"`
			} `json:"hour"`
			Astro struct {
				NextFullMoon string `json:"next_full_moon"`
			} `json:"astro"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

// hoursPerDay is the number of hourly entries the upstream returns for a forecast day.
const hoursPerDay = 24

// Validate requires a first forecast day with a full set of hourly entries.
func (r *ForecastResponse) Validate() error {
	if r.Forecast == nil || len(r.Forecast.ForecastDay) == 0 {
		return fmt.Errorf("%w: forecast: missing forecastday", ErrMalformedPayload)
	}
	if n := len(r.Forecast.ForecastDay[0].Hour); n < hoursPerDay {
		return fmt.Errorf("%w: forecast: %d hourly entries, want %d", ErrMalformedPayload, n, hoursPerDay)
	}
	return nil
}

// HourlyTemperatures samples every second hour of the first forecast day.
func (r *ForecastResponse) HourlyTemperatures() HourlyTemperatures {
	hours := r.Forecast.ForecastDay[0].Hour
	var out HourlyTemperatures
	for i := 0; i < hoursPerDay; i += 2 {
		h := hours[i]
		label := h.Time
		// "2006-01-02 15:04" -> "15:04"
		if len(label) >= 16 {
			label = label[11:16]
		}
		out.Labels = append(out.Labels, label)
		out.TempsC = append(out.TempsC, h.TempC)
	}
	return out
}

// HourlyTemperatures is the series behind the temperature-by-hour chart.
type HourlyTemperatures struct {
	Labels []string
	TempsC []float64
}

// AstronomyResponse mirrors GET /api/weather/astronomy.
type AstronomyResponse struct {
	Astronomy *struct {
		Astro *struct {
			Sunrise   string `json:"sunrise"`
			Sunset    string `json:"sunset"`
			Moonrise  string `json:"moonrise"`
			Moonset   string `json:"moonset"`
			MoonPhase string `json:"moon_phase"`
		} `json:"astro"`
	} `json:"astronomy"`
}

// Validate requires the astronomy.astro block.
func (r *AstronomyResponse) Validate() error {
	if r.Astronomy == nil || r.Astronomy.Astro == nil {
		return fmt.Errorf("%w: astronomy: missing astro", ErrMalformedPayload)
	}
	return nil
}

// Data flattens a validated response.
func (r *AstronomyResponse) Data() AstronomyData {
	a := r.Astronomy.Astro
	return AstronomyData{
		Sunrise:   a.Sunrise,
		Sunset:    a.Sunset,
		Moonrise:  a.Moonrise,
		Moonset:   a.Moonset,
		MoonPhase: a.MoonPhase,
	}
}

// AstronomyData holds sun and moon times as reported upstream ("06:12 AM").
type AstronomyData struct {
	Sunrise   string
	Sunset    string
	Moonrise  string
	Moonset   string
	MoonPhase string
}

// DailyForecastResponse mirrors the Open-Meteo daily forecast payload.
type DailyForecastResponse struct {
	Daily *struct {
		Time        []string  `json:"time"`
		TempMax     []float64 `json:"temperature_2m_max"`
		TempMin     []float64 `json:"temperature_2m_min"`
		WeatherCode []int     `json:"weathercode"`
	} `json:"daily"`
}

// ForecastDays is the number of days shown in the forecast strip.
const ForecastDays = 7

// Validate requires seven entries in every daily series.
func (r *DailyForecastResponse) Validate() error {
	if r.Daily == nil {
		return fmt.Errorf("%w: daily forecast: missing daily", ErrMalformedPayload)
	}
	d := r.Daily
	if len(d.Time) < ForecastDays || len(d.TempMax) < ForecastDays || len(d.TempMin) < ForecastDays || len(d.WeatherCode) < ForecastDays {
		return fmt.Errorf("%w: daily forecast: fewer than %d days", ErrMalformedPayload, ForecastDays)
	}
	return nil
}

// Days returns the first seven days of a validated response.
func (r *DailyForecastResponse) Days() []ForecastDay {
	d := r.Daily
	days := make([]ForecastDay, 0, ForecastDays)
	for i := 0; i < ForecastDays; i++ {
		days = append(days, ForecastDay{
			Date: d.Time[i],
			High: d.TempMax[i],
			Low:  d.TempMin[i],
			Code: d.WeatherCode[i],
		})
	}
	return days
}

// ForecastDay is one card of the 7-day strip. Date is "2006-01-02".
type ForecastDay struct {
	Date string
	High float64
	Low  float64
	Code int
}

// AirQualityResponse mirrors the Open-Meteo air-quality payload (hourly us_aqi).
type AirQualityResponse struct {
	Hourly *struct {
		USAQI []*float64 `json:"us_aqi"`
	} `json:"hourly"`
}

// Index returns the first hourly US AQI value, or AQIUnavailable.
func (r *AirQualityResponse) Index() AirQualityIndex {
	if r.Hourly == nil || len(r.Hourly.USAQI) == 0 || r.Hourly.USAQI[0] == nil {
		return AQIUnavailable
	}
	v := int(*r.Hourly.USAQI[0] + 0.5)
	if v < 0 || v > MaxAQI {
		return AQIUnavailable
	}
	return AirQualityIndex(v)
}

// AirQualityIndex is a US EPA AQI value in [0, MaxAQI], or AQIUnavailable.
type AirQualityIndex int

const (
	// MaxAQI is the top of the US EPA scale.
	MaxAQI = 500
	// AQIUnavailable marks a missing or failed reading.
	AQIUnavailable AirQualityIndex = -1
)

// Available reports whether the index holds a reading.
func (a AirQualityIndex) Available() bool {
	return a >= 0 && a <= MaxAQI
}

func (a AirQualityIndex) String() string {
	if !a.Available() {
		return "N/A"
	}
	return strconv.Itoa(int(a))
}

// MapMarker is the single pin shown on the map.
type MapMarker struct {
	Coordinate Coordinate
	Popup      string
}
