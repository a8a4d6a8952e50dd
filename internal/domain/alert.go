package domain

// OverThreshold returns the entries whose Kp meets or exceeds threshold.
// Pure filter; input order is preserved.
func OverThreshold(entries []LocalizedEntry, threshold int) []LocalizedEntry {
	var out []LocalizedEntry
	for _, e := range entries {
		if e.Kp >= threshold {
			out = append(out, e)
		}
	}
	return out
}

// Alert is the payload handed to notification channels when at least one
// forecast window meets the configured threshold.
type Alert struct {
	Coordinate Coordinate       `json:"coordinate"`
	Zone       string           `json:"zone"`
	Threshold  int              `json:"threshold"`
	Periods    []LocalizedEntry `json:"periods"`
}

// MaxKp returns the highest Kp among the alert's periods, 0 when empty.
func (a Alert) MaxKp() int {
	maxKp := 0
	for _, p := range a.Periods {
		if p.Kp > maxKp {
			maxKp = p.Kp
		}
	}
	return maxKp
}
