// Command preview fetches (or reads) a 3-day forecast, parses it, and prints
// the localized Kp table without sending anything. Useful for checking the
// parser against the current upstream text, which drifts over time, and for
// eyeballing what a given threshold would alert on.
//
// Usage:
//
//	go run ./cmd/preview -lat 64.84 -lon -147.72 -threshold 5
//	go run ./cmd/preview -file testdata/forecast.txt -zone America/Anchorage
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/couchcryptid/aurora-alert/internal/adapter/geotz"
	"github.com/couchcryptid/aurora-alert/internal/adapter/swpc"
	"github.com/couchcryptid/aurora-alert/internal/config"
	"github.com/couchcryptid/aurora-alert/internal/domain"
)

func main() {
	lat := flag.Float64("lat", 0, "observer latitude")
	lon := flag.Float64("lon", 0, "observer longitude")
	zone := flag.String("zone", "", "IANA zone override; skips coordinate resolution")
	threshold := flag.Int("threshold", 5, "Kp threshold to mark")
	url := flag.String("url", config.DefaultForecastURL, "forecast product URL")
	file := flag.String("file", "", "read forecast text from a file instead of fetching")
	flag.Parse()

	if err := run(*lat, *lon, *zone, *threshold, *url, *file); err != nil {
		fmt.Fprintln(os.Stderr, "preview failed:", err)
		os.Exit(1)
	}
}

func run(lat, lon float64, zone string, threshold int, url, file string) error {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	text, err := loadForecast(url, file, quiet)
	if err != nil {
		return err
	}

	if zone == "" {
		resolver, err := geotz.NewResolver()
		if err != nil {
			return err
		}
		zone, err = resolver.Resolve(lat, lon)
		if err != nil {
			return err
		}
	}

	forecast, err := domain.ParseForecast(text)
	if err != nil {
		return err
	}

	localized, err := domain.Localize(forecast.Entries, zone)
	if err != nil {
		return err
	}

	fmt.Printf("Issued: %s\n", forecast.IssuedAt.Format(time.RFC1123))
	fmt.Printf("Zone:   %s\n\n", zone)
	for _, e := range localized {
		mark := " "
		if e.Kp >= threshold {
			mark = "*"
		}
		fmt.Printf("%s %s %-8s Kp %d   local %s - %s\n",
			mark,
			e.Date.Format("Jan 02"),
			e.Slot,
			e.Kp,
			e.LocalStart.Format("Mon 15:04"),
			e.LocalEnd.Format("15:04 MST"),
		)
	}

	qualifying := domain.OverThreshold(localized, threshold)
	fmt.Printf("\n%d of %d windows at or above Kp %d\n", len(qualifying), len(localized), threshold)
	return nil
}

func loadForecast(url, file string, logger *slog.Logger) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	client := swpc.NewClient(url, 10*time.Second, logger)
	return client.Fetch(context.Background())
}
