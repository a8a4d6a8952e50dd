// Package geotz resolves coordinates to IANA timezone identifiers using the
// bundled tzf polygon dataset. Lookups are offline and deterministic.
package geotz

import (
	"fmt"

	"github.com/ringsaturn/tzf"

	"github.com/couchcryptid/aurora-alert/internal/domain"
)

// Resolver implements domain.TimezoneResolver over tzf's default finder.
type Resolver struct {
	finder tzf.F
}

// NewResolver loads the compressed timezone boundary data.
func NewResolver() (*Resolver, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("load timezone boundary data: %w", err)
	}
	return &Resolver{finder: finder}, nil
}

// Resolve returns the IANA zone covering the coordinate. Coordinates outside
// every zone polygon (open ocean) fail with domain.ErrNoTimezone.
func (r *Resolver) Resolve(lat, lon float64) (string, error) {
	// tzf takes lon,lat order.
	name := r.finder.GetTimezoneName(lon, lat)
	if name == "" {
		return "", fmt.Errorf("resolve %.4f,%.4f: %w", lat, lon, domain.ErrNoTimezone)
	}
	return name, nil
}
