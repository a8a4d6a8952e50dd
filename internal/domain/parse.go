package domain

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedForecast indicates the forecast text did not contain the
// expected Kp index breakdown structure, usually an upstream format change.
// It must never be conflated with a forecast that simply has no storm-level
// entries.
var ErrMalformedForecast = errors.New("forecast format not recognized")

const (
	breakdownHeading = "NOAA Kp index breakdown"
	issuedPrefix     = ":Issued:"
	forecastDays     = 3
)

var (
	// slotRowRe matches table rows keyed by a 3-hour window label, e.g. "06-09UT".
	slotRowRe = regexp.MustCompile(`^\d{2}-\d{2}UT`)

	// gScaleRe matches NOAA geomagnetic storm annotations such as "(G1)".
	gScaleRe = regexp.MustCompile(`\(G[1-5]\)`)
)

// ParseForecast extracts the Kp index breakdown table from the SWPC 3-day
// forecast text. Entries come back ordered by UTC window start. Any error
// wraps ErrMalformedForecast; the caller must treat it as a hard failure.
func ParseForecast(text string) (Forecast, error) {
	lines := strings.Split(text, "\n")

	issuedAt, issuedFound := parseIssuedLine(lines)
	ref := issuedAt
	if !issuedFound {
		ref = clock.Now().UTC()
	}

	headerIdx, rawDates, err := findDateHeader(lines)
	if err != nil {
		return Forecast{}, err
	}

	dates, err := parseDateColumns(rawDates, ref)
	if err != nil {
		return Forecast{}, err
	}

	entries, err := parseSlotRows(lines[headerIdx+1:], dates)
	if err != nil {
		return Forecast{}, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].UTCStart().Before(entries[j].UTCStart())
	})

	return Forecast{IssuedAt: issuedAt, Entries: entries}, nil
}

// parseIssuedLine reads the product issue timestamp. SWPC has shipped the
// year both first ("2025 Aug 30 1230 UTC") and last ("Aug 30 1230 2025"),
// so both layouts are tried. Returns false when no line parses.
func parseIssuedLine(lines []string) (time.Time, bool) {
	for _, line := range lines {
		if !strings.HasPrefix(line, issuedPrefix) {
			continue
		}
		stamp := strings.TrimSpace(strings.TrimPrefix(line, issuedPrefix))
		stamp, _, _ = strings.Cut(stamp, " UTC")
		for _, layout := range []string{"2006 Jan 2 1504", "Jan 2 1504 2006"} {
			if t, err := time.Parse(layout, stamp); err == nil {
				return t.UTC(), true
			}
		}
		return time.Time{}, false
	}
	return time.Time{}, false
}

// findDateHeader locates the breakdown heading and the "Mon DD" column label
// line that follows within the next three lines. Returns the label line's
// index and its whitespace-split fields.
func findDateHeader(lines []string) (int, []string, error) {
	for i, line := range lines {
		if !strings.Contains(line, breakdownHeading) {
			continue
		}
		for off := 1; off <= 3 && i+off < len(lines); off++ {
			candidate := strings.TrimSpace(lines[i+off])
			if candidate == "" {
				continue
			}
			fields := strings.Fields(candidate)
			if len(fields) < 3 {
				break
			}
			if _, err := parseMonth(fields[0]); err != nil {
				break
			}
			return i + off, fields, nil
		}
		return 0, nil, fmt.Errorf("%w: date header missing after %q heading", ErrMalformedForecast, breakdownHeading)
	}
	return 0, nil, fmt.Errorf("%w: %q heading not found", ErrMalformedForecast, breakdownHeading)
}

// parseDateColumns turns "Mon DD" label pairs into three UTC dates. The year
// comes from ref (the issue timestamp, or the clock when absent); a December
// ref with January columns rolls into the next year.
func parseDateColumns(fields []string, ref time.Time) ([]time.Time, error) {
	dates := make([]time.Time, 0, forecastDays)
	idx := 0
	for idx < len(fields) && len(dates) < forecastDays {
		month, err := parseMonth(fields[idx])
		if err != nil {
			return nil, fmt.Errorf("%w: bad month label %q in date header", ErrMalformedForecast, fields[idx])
		}
		idx++
		if idx >= len(fields) {
			return nil, fmt.Errorf("%w: date header ends after month %s", ErrMalformedForecast, month)
		}
		day, err := strconv.Atoi(fields[idx])
		if err != nil || day < 1 || day > 31 {
			return nil, fmt.Errorf("%w: bad day %q in date header", ErrMalformedForecast, fields[idx])
		}
		idx++

		year := ref.Year()
		if ref.Month() == time.December && month == time.January {
			year++
		}
		dates = append(dates, time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
	}
	if len(dates) != forecastDays {
		return nil, fmt.Errorf("%w: expected %d date columns, found %d", ErrMalformedForecast, forecastDays, len(dates))
	}
	return dates, nil
}

// parseSlotRows reads the table body. A row contributes one entry per date
// column; rows with fewer values than columns are skipped, and a body with no
// slot rows at all is a hard parse failure.
func parseSlotRows(lines []string, dates []time.Time) ([]ForecastEntry, error) {
	var entries []ForecastEntry
	rows := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if !slotRowRe.MatchString(line) {
			continue
		}
		fields := strings.Fields(line)
		slot := fields[0]
		values := stripStormAnnotations(fields[1:])
		if len(values) < len(dates) {
			continue
		}
		rows++
		for i, date := range dates {
			kp, ok := parseKpValue(values[i])
			if !ok {
				continue
			}
			entries = append(entries, ForecastEntry{Date: date, Slot: slot, Kp: kp})
		}
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: no 3-hour slot rows found", ErrMalformedForecast)
	}
	return entries, nil
}

// stripStormAnnotations removes G-scale markers from a row's value tokens.
// Markers appear either attached ("5.67(G1)") or as standalone tokens
// following the value; dropping standalone markers keeps the remaining values
// aligned with their date columns.
func stripStormAnnotations(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(gScaleRe.ReplaceAllString(tok, ""))
		if tok == "" {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// parseKpValue truncates a decimal prediction ("5.67") to the integer Kp scale.
func parseKpValue(s string) (int, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	kp := int(f)
	if kp < 0 || kp > 9 {
		return 0, false
	}
	return kp, true
}

func parseMonth(s string) (time.Month, error) {
	t, err := time.Parse("Jan", s)
	if err != nil {
		return 0, err
	}
	return t.Month(), nil
}
