package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalize(t *testing.T) {
	nov2 := time.Date(2024, time.November, 2, 0, 0, 0, 0, time.UTC)
	nov3 := time.Date(2024, time.November, 3, 0, 0, 0, 0, time.UTC)

	t.Run("fixed offset zone", func(t *testing.T) {
		entries := []ForecastEntry{{Date: nov2, Slot: "06-09UT", Kp: 5}}

		out, err := Localize(entries, "UTC")
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "UTC", out[0].Zone)
		assert.True(t, out[0].LocalStart.Equal(time.Date(2024, time.November, 2, 6, 0, 0, 0, time.UTC)))
		assert.True(t, out[0].LocalEnd.Equal(time.Date(2024, time.November, 2, 9, 0, 0, 0, time.UTC)))
	})

	t.Run("offsets differ across a DST transition", func(t *testing.T) {
		// America/New_York leaves DST at 2024-11-03 06:00 UTC.
		entries := []ForecastEntry{
			{Date: nov2, Slot: "06-09UT", Kp: 5}, // fully in EDT
			{Date: nov3, Slot: "06-09UT", Kp: 5}, // fully in EST
		}

		out, err := Localize(entries, "America/New_York")
		require.NoError(t, err)
		require.Len(t, out, 2)

		_, beforeOffset := out[0].LocalStart.Zone()
		_, afterOffset := out[1].LocalStart.Zone()
		assert.Equal(t, -4*3600, beforeOffset, "EDT the day before")
		assert.Equal(t, -5*3600, afterOffset, "EST the day after")
		assert.Equal(t, 2, out[0].LocalStart.Hour())
		assert.Equal(t, 1, out[1].LocalStart.Hour())
	})

	t.Run("single window straddles the transition", func(t *testing.T) {
		entries := []ForecastEntry{{Date: nov3, Slot: "03-06UT", Kp: 6}}

		out, err := Localize(entries, "America/New_York")
		require.NoError(t, err)
		require.Len(t, out, 1)

		_, startOffset := out[0].LocalStart.Zone()
		_, endOffset := out[0].LocalEnd.Zone()
		assert.Equal(t, -4*3600, startOffset)
		assert.Equal(t, -5*3600, endOffset)
		// Start is still the previous local calendar day.
		assert.Equal(t, 2, out[0].LocalStart.Day())
		assert.Equal(t, 23, out[0].LocalStart.Hour())
		assert.Equal(t, 3, out[0].LocalEnd.Day())
		assert.Equal(t, 1, out[0].LocalEnd.Hour())
	})

	t.Run("day boundary crossing west of Greenwich", func(t *testing.T) {
		entries := []ForecastEntry{{Date: nov2, Slot: "00-03UT", Kp: 4}}

		out, err := Localize(entries, "America/Anchorage")
		require.NoError(t, err)
		assert.Equal(t, 1, out[0].LocalStart.Day(), "00-03UT lands on the previous local day")
		assert.Equal(t, 16, out[0].LocalStart.Hour())
	})

	t.Run("unknown zone fails", func(t *testing.T) {
		_, err := Localize([]ForecastEntry{{Date: nov2, Slot: "00-03UT"}}, "Not/AZone")
		require.Error(t, err)
	})

	t.Run("empty input", func(t *testing.T) {
		out, err := Localize(nil, "UTC")
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}
