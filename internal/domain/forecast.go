package domain

import (
	"strconv"
	"time"
)

// SlotDuration is the width of one forecast window.
const SlotDuration = 3 * time.Hour

// Slots lists the eight 3-hour UTC windows of a forecast day, in table order.
var Slots = [8]string{
	"00-03UT", "03-06UT", "06-09UT", "09-12UT",
	"12-15UT", "15-18UT", "18-21UT", "21-00UT",
}

// Coordinate is a WGS-84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ForecastEntry is one cell of the Kp index breakdown table: the predicted
// planetary Kp for a single 3-hour UTC window. Immutable once parsed.
type ForecastEntry struct {
	Date time.Time `json:"date"` // UTC midnight of the forecast day
	Slot string    `json:"slot"` // e.g. "06-09UT"
	Kp   int       `json:"kp"`   // predicted Kp, 0-9
}

// UTCStart returns the entry's window start in UTC.
func (e ForecastEntry) UTCStart() time.Time {
	hour := 0
	if len(e.Slot) >= 2 {
		if h, err := strconv.Atoi(e.Slot[:2]); err == nil && h >= 0 && h <= 23 {
			hour = h
		}
	}
	return time.Date(e.Date.Year(), e.Date.Month(), e.Date.Day(), hour, 0, 0, 0, time.UTC)
}

// UTCEnd returns the entry's window end in UTC.
func (e ForecastEntry) UTCEnd() time.Time {
	return e.UTCStart().Add(SlotDuration)
}

// Forecast is a fully parsed 3-day product. Entries are ordered by UTC start.
type Forecast struct {
	IssuedAt time.Time
	Entries  []ForecastEntry
}

// LocalizedEntry is a ForecastEntry with its window converted to the wall
// clock of a resolved IANA zone. Derived, never persisted.
type LocalizedEntry struct {
	ForecastEntry
	LocalStart time.Time `json:"local_start"`
	LocalEnd   time.Time `json:"local_end"`
	Zone       string    `json:"zone"`
}
