package domain

import (
	"fmt"
	"time"
)

// Localize converts each entry's 3-hour UTC window into wall-clock times for
// the given IANA zone. Conversion goes through the zone's rules for that
// instant, so offsets are correct on both sides of a DST transition and a
// window may land on the previous or next local calendar day.
func Localize(entries []ForecastEntry, zoneID string) ([]LocalizedEntry, error) {
	loc, err := time.LoadLocation(zoneID)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", zoneID, err)
	}

	out := make([]LocalizedEntry, len(entries))
	for i, e := range entries {
		out[i] = LocalizedEntry{
			ForecastEntry: e,
			LocalStart:    e.UTCStart().In(loc),
			LocalEnd:      e.UTCEnd().In(loc),
			Zone:          zoneID,
		}
	}
	return out, nil
}
