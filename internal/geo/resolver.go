// Package geo resolves a delivery address to best-effort coordinates,
// degrading from the backend geocoder to the device GPS and finally to an
// explicit error state that never blocks checkout.
package geo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/salonhub/salonhub-go/internal/api"
	"github.com/salonhub/salonhub-go/internal/domain"
)

// ErrResolveInFlight is returned when a resolution for this resolver is
// already running; callers disable order placement while it holds.
var ErrResolveInFlight = errors.New("coordinate resolution already in flight")

// LocationProvider is the device-side collaborator: permission prompt plus
// a high-accuracy position read. Implementations must honor ctx.
type LocationProvider interface {
	RequestPermission(ctx context.Context) (bool, error)
	CurrentPosition(ctx context.Context) (lat, lon float64, err error)
}

type Resolver struct {
	api      *api.Client
	location LocationProvider
	// gpsTimeout bounds the device position read; backend calls rely on
	// the caller's context only.
	gpsTimeout time.Duration

	mu       sync.Mutex
	fetching bool
}

func NewResolver(client *api.Client, location LocationProvider, gpsTimeout time.Duration) *Resolver {
	if gpsTimeout <= 0 {
		gpsTimeout = 15 * time.Second
	}
	return &Resolver{api: client, location: location, gpsTimeout: gpsTimeout}
}

// Resolution is the outcome of one resolution attempt. Coordinates is nil
// and Failed is true when both tiers failed; a missing coordinate is not
// fatal to checkout.
type Resolution struct {
	Coordinates *domain.Coordinates
	Failed      bool
}

type geocodeRequest struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

type geocodeResponse struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Resolve runs the two-tier fallback once for the given address. Only one
// resolution may run at a time per resolver.
func (r *Resolver) Resolve(ctx context.Context, addr domain.Address) (Resolution, error) {
	r.mu.Lock()
	if r.fetching {
		r.mu.Unlock()
		return Resolution{}, ErrResolveInFlight
	}
	r.fetching = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.fetching = false
		r.mu.Unlock()
	}()

	if coords, err := r.geocode(ctx, addr); err == nil {
		return Resolution{Coordinates: coords}, nil
	} else {
		log.Printf("backend geocode failed for address %s: %v", addr.ID, err)
	}

	if coords, err := r.devicePosition(ctx); err == nil {
		return Resolution{Coordinates: coords}, nil
	} else {
		log.Printf("device position fallback failed: %v", err)
	}

	return Resolution{Failed: true}, nil
}

// Fetching reports whether a resolution is currently running; the place
// order action is disabled while it returns true.
func (r *Resolver) Fetching() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fetching
}

func (r *Resolver) geocode(ctx context.Context, addr domain.Address) (*domain.Coordinates, error) {
	req := geocodeRequest{Street: addr.Street, City: addr.City, State: addr.State, Zip: addr.Zip}
	var resp geocodeResponse
	if err := r.api.Post(ctx, "/addresses/geocode-address", req, &resp); err != nil {
		return nil, err
	}
	if resp.Latitude == nil || resp.Longitude == nil {
		return nil, errors.New("geocoder returned no coordinates")
	}
	return &domain.Coordinates{
		Latitude:  *resp.Latitude,
		Longitude: *resp.Longitude,
		Source:    domain.CoordinateSourceBackend,
	}, nil
}

func (r *Resolver) devicePosition(ctx context.Context) (*domain.Coordinates, error) {
	if r.location == nil {
		return nil, errors.New("no location provider configured")
	}

	granted, err := r.location.RequestPermission(ctx)
	if err != nil {
		return nil, fmt.Errorf("request location permission: %w", err)
	}
	if !granted {
		return nil, errors.New("location permission denied")
	}

	gpsCtx, cancel := context.WithTimeout(ctx, r.gpsTimeout)
	defer cancel()
	lat, lon, err := r.location.CurrentPosition(gpsCtx)
	if err != nil {
		return nil, fmt.Errorf("read device position: %w", err)
	}
	return &domain.Coordinates{
		Latitude:  lat,
		Longitude: lon,
		Source:    domain.CoordinateSourceDevice,
	}, nil
}
