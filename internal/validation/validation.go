package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kjstillabower/skysense/internal/models"
)

// ErrCoordinateEmpty is returned when the input is empty or whitespace-only after trim.
var ErrCoordinateEmpty = errors.New("coordinate is required")

// ErrCoordinateFormat is returned when the input is not two comma-separated numbers.
var ErrCoordinateFormat = errors.New("coordinate must be \"lat,lon\"")

// ErrLatitudeRange is returned when latitude is outside [-90, 90].
var ErrLatitudeRange = errors.New("latitude out of range")

// ErrLongitudeRange is returned when longitude is outside [-180, 180].
var ErrLongitudeRange = errors.New("longitude out of range")

// ParseCoordinate parses "lat,lon" (spaces allowed around either number) into a
// Coordinate. It is the dashboard's stand-in for a map click.
func ParseCoordinate(input string) (models.Coordinate, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return models.Coordinate{}, ErrCoordinateEmpty
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return models.Coordinate{}, ErrCoordinateFormat
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: latitude %q", ErrCoordinateFormat, parts[0])
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: longitude %q", ErrCoordinateFormat, parts[1])
	}
	return ValidateCoordinate(models.Coordinate{Latitude: lat, Longitude: lon})
}

// ValidateCoordinate checks both axes are within their geographic bounds.
// NaN fails both comparisons and is rejected too.
func ValidateCoordinate(c models.Coordinate) (models.Coordinate, error) {
	if !(c.Latitude >= -90 && c.Latitude <= 90) {
		return models.Coordinate{}, fmt.Errorf("%w: %v", ErrLatitudeRange, c.Latitude)
	}
	if !(c.Longitude >= -180 && c.Longitude <= 180) {
		return models.Coordinate{}, fmt.Errorf("%w: %v", ErrLongitudeRange, c.Longitude)
	}
	return c, nil
}
