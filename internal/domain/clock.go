package domain

import "github.com/jonboulle/clockwork"

// clock is a package-level time source so tests can freeze time via SetClock.
// The parser falls back to it for the forecast year when the ":Issued:" line
// is absent or unreadable.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source for parsing. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
