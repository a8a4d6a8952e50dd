// Package domain models the NOAA SWPC 3-day geomagnetic forecast.
//
// # Data Source
//
// The forecast is published as plaintext at
// https://services.swpc.noaa.gov/text/3-day-forecast.txt and reissued several
// times per day. It is written for human readers: a product header, a rationale
// paragraph, and a "NOAA Kp index breakdown" table carrying one predicted
// planetary Kp value per 3-hour UTC window per forecast day.
//
// # Text Conventions
//
// Issue timestamp:
//
//	":Issued: 2025 Aug 30 1230 UTC"
//	Anchors the forecast year. An older layout places the year last
//	("Aug 30 1230 2025"); both are accepted. When the line is absent the
//	year comes from the injected clock (see [SetClock]).
//
// Date header:
//
//	Within three lines of the "NOAA Kp index breakdown" heading, three
//	"Mon DD" column labels name the forecast days, e.g.
//	"             Aug 30       Aug 31       Sep 01".
//	A December issue date with January columns rolls the year forward.
//
// Slot rows:
//
//	Eight rows keyed by fixed labels 00-03UT through 21-00UT, one decimal Kp
//	prediction per date column:
//	  "00-03UT       4.33         5.67 (G1)    3.33"
//	Predictions are truncated to the integer Kp scale (0-9, quiet to extreme
//	storm).
//
// Storm annotations:
//
//	Values at storm level carry a NOAA G-scale marker, "(G1)" through "(G5)",
//	either attached to the value or as a separate token. Markers are stripped
//	before conversion and never shift a value onto the wrong date column.
//
// A text that lacks the breakdown heading, the date header, or every slot row
// fails parsing with [ErrMalformedForecast]. That failure is deliberately
// distinct from a forecast that parses cleanly but has no entries at or above
// the alert threshold.
package domain
