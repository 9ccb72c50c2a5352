// Package geo resolves client coordinates and checks them against the
// office geofence.
package geo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"employee-portal/internal/model"
)

var ErrGeolocationUnavailable = errors.New("geolocation unavailable")

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Locator interface {
	Locate(ctx context.Context) (Location, error)
}

// Fixed is a Locator that always reports the same coordinates, typically
// the ones submitted with the request.
type Fixed Location

func (f Fixed) Locate(context.Context) (Location, error) {
	return Location(f), nil
}

// Unavailable is a Locator for callers that did not share a position.
type Unavailable struct{}

func (Unavailable) Locate(context.Context) (Location, error) {
	return Location{}, ErrGeolocationUnavailable
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(ctx context.Context) (Location, error)

func (f LocatorFunc) Locate(ctx context.Context) (Location, error) {
	return f(ctx)
}

// Resolve asks locator for a position and waits at most timeout. Every
// failure, including a timeout, is reported as ErrGeolocationUnavailable.
func Resolve(ctx context.Context, locator Locator, timeout time.Duration) (*Location, error) {
	if locator == nil {
		return nil, ErrGeolocationUnavailable
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type result struct {
		loc Location
		err error
	}
	ch := make(chan result, 1)
	go func() {
		loc, err := locator.Locate(ctx)
		ch <- result{loc, err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrGeolocationUnavailable, ctx.Err())
	case r := <-ch:
		if r.err != nil {
			if errors.Is(r.err, ErrGeolocationUnavailable) {
				return nil, r.err
			}
			return nil, fmt.Errorf("%w: %v", ErrGeolocationUnavailable, r.err)
		}
		return &r.loc, nil
	}
}

// Distance returns the haversine distance in meters.
func Distance(a, b Location) float64 {
	const R = 6371000 // earth radius, meters
	dLat := (b.Latitude - a.Latitude) * (math.Pi / 180.0)
	dLon := (b.Longitude - a.Longitude) * (math.Pi / 180.0)

	lat1Rad := a.Latitude * (math.Pi / 180.0)
	lat2Rad := b.Latitude * (math.Pi / 180.0)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return R * c
}

// Fence is the office area a check-in is expected from. The zero Fence is
// not configured.
type Fence struct {
	Center       Location
	RadiusMeters float64
}

func (f Fence) Configured() bool {
	return f.RadiusMeters > 0
}

// Status classifies loc against the fence.
func (f Fence) Status(loc *Location) string {
	if loc == nil || !f.Configured() {
		return model.LocationUnknown
	}
	if Distance(*loc, f.Center) <= f.RadiusMeters {
		return model.LocationValid
	}
	return model.LocationInvalid
}
