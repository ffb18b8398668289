// Package render holds the pure mapping functions behind the dashboard panels:
// icons, gauge arcs, durations and descriptive labels. Nothing here does I/O.
package render

import "strings"

// DefaultWeatherIcon is returned when no condition keyword matches.
const DefaultWeatherIcon = "🌤️"

type keywordIcon struct {
	keyword string
	icon    string
}

// Order matters: the first keyword found in the condition text wins.
var conditionIcons = []keywordIcon{
	{"sun", "☀️"},
	{"clear", "☀️"},
	{"cloud", "☁️"},
	{"rain", "🌧️"},
	{"snow", "❄️"},
	{"thunder", "⚡"},
	{"mist", "🌫️"},
	{"fog", "🌫️"},
}

// WeatherIcon maps upstream condition text ("Partly cloudy") to an emoji.
// Matching is a case-insensitive substring search.
func WeatherIcon(condition string) string {
	c := strings.ToLower(condition)
	for _, k := range conditionIcons {
		if strings.Contains(c, k.keyword) {
			return k.icon
		}
	}
	return DefaultWeatherIcon
}

// DefaultWMOIcon is returned for codes outside every known range.
const DefaultWMOIcon = "☁️"

type codeRange struct {
	lo, hi int
	icon   string
}

var wmoIcons = []codeRange{
	{0, 0, "☀️"},
	{1, 3, "⛅"},
	{45, 48, "🌫️"},
	{51, 55, "🌦️"},
	{61, 65, "🌧️"},
	{71, 75, "❄️"},
	{80, 85, "🌧️"},
	{95, 99, "⛈️"},
}

// WMOIcon maps a WMO weather interpretation code to an emoji.
func WMOIcon(code int) string {
	for _, r := range wmoIcons {
		if code >= r.lo && code <= r.hi {
			return r.icon
		}
	}
	return DefaultWMOIcon
}

// DefaultMoonIcon is the image path used for unknown phase labels.
const DefaultMoonIcon = "images/moon/default.png"

// First match wins.
var moonIcons = []keywordIcon{
	{"new", "images/moon/new.png"},
	{"waning crescent", "images/moon/waning_crescent.png"},
	{"third quarter", "images/moon/third_quarter.png"},
	{"waning gibbous", "images/moon/waning_gibbous.png"},
	{"full", "images/moon/full.png"},
	{"waxing gibbous", "images/moon/waxing_gibbous.png"},
	{"first quarter", "images/moon/first_quarter.png"},
	{"waxing crescent", "images/moon/waxing_crescent.png"},
}

// MoonPhaseIcon maps a moon phase label ("Waxing Gibbous") to an icon path.
func MoonPhaseIcon(phase string) string {
	p := strings.ToLower(phase)
	for _, k := range moonIcons {
		if strings.Contains(p, k.keyword) {
			return k.icon
		}
	}
	return DefaultMoonIcon
}
