package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func localized(kps ...int) []LocalizedEntry {
	base := time.Date(2025, time.August, 30, 0, 0, 0, 0, time.UTC)
	out := make([]LocalizedEntry, len(kps))
	for i, kp := range kps {
		out[i] = LocalizedEntry{
			ForecastEntry: ForecastEntry{Date: base, Slot: Slots[i%len(Slots)], Kp: kp},
			Zone:          "UTC",
		}
	}
	return out
}

func TestOverThreshold(t *testing.T) {
	entries := localized(3, 5, 6, 2)

	out := OverThreshold(entries, 5)

	assert.Len(t, out, 2)
	assert.Equal(t, 5, out[0].Kp)
	assert.Equal(t, 6, out[1].Kp)
	assert.Equal(t, entries[1].Slot, out[0].Slot, "order preserved")
}

func TestOverThreshold_Boundaries(t *testing.T) {
	t.Run("threshold zero keeps everything", func(t *testing.T) {
		assert.Len(t, OverThreshold(localized(0, 1, 2), 0), 3)
	})
	t.Run("nothing qualifies", func(t *testing.T) {
		assert.Empty(t, OverThreshold(localized(1, 2, 3), 9))
	})
	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, OverThreshold(nil, 5))
	})
}

func TestAlert_MaxKp(t *testing.T) {
	assert.Equal(t, 7, Alert{Periods: localized(5, 7, 6)}.MaxKp())
	assert.Equal(t, 0, Alert{}.MaxKp())
}
