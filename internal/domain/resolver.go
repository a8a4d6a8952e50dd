package domain

import "errors"

// ErrNoTimezone is returned when no IANA zone polygon covers a coordinate,
// e.g. open-ocean points.
var ErrNoTimezone = errors.New("no timezone covers coordinate")

// TimezoneResolver maps a coordinate to an IANA timezone identifier.
type TimezoneResolver interface {
	Resolve(lat, lon float64) (string, error)
}
