package dashboard

import (
	"context"

	"github.com/kjstillabower/skysense/internal/models"
)

// StaticLocator reports a fixed position, standing in for browser geolocation.
// A nil Position means the platform has no geolocation; Denied simulates the
// user refusing the prompt.
type StaticLocator struct {
	Position *models.Coordinate
	Denied   bool
}

func (l StaticLocator) Locate(ctx context.Context) (models.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return models.Coordinate{}, err
	}
	if l.Denied {
		return models.Coordinate{}, ErrLocationDenied
	}
	if l.Position == nil {
		return models.Coordinate{}, ErrLocationUnsupported
	}
	return *l.Position, nil
}
