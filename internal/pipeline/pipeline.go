// Package pipeline runs one fetch-parse-localize-evaluate-notify pass.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/aurora-alert/internal/domain"
	"github.com/couchcryptid/aurora-alert/internal/observability"
)

// ForecastFetcher retrieves the raw forecast text.
type ForecastFetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// AlertNotifier delivers an alert to its recipients. Called with an empty
// period list it must be a no-op.
type AlertNotifier interface {
	Notify(ctx context.Context, alert domain.Alert) error
}

// AlertPublisher emits the alert as an event for downstream consumers.
type AlertPublisher interface {
	Publish(ctx context.Context, alert domain.Alert) error
}

// Pipeline orchestrates one alert check. Every stage is fatal on error;
// there is no partial-success path and no retry inside a run.
type Pipeline struct {
	fetcher   ForecastFetcher
	resolver  domain.TimezoneResolver
	notifier  AlertNotifier
	publisher AlertPublisher // nil disables event publishing

	coord     domain.Coordinate
	threshold int

	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Pipeline with the given stages and observability. Pass a nil
// publisher to skip event publishing.
func New(
	fetcher ForecastFetcher,
	resolver domain.TimezoneResolver,
	notifier AlertNotifier,
	publisher AlertPublisher,
	coord domain.Coordinate,
	threshold int,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Pipeline {
	return &Pipeline{
		fetcher:   fetcher,
		resolver:  resolver,
		notifier:  notifier,
		publisher: publisher,
		coord:     coord,
		threshold: threshold,
		logger:    logger,
		metrics:   metrics,
	}
}

// Run executes the check once. A nil return means the run completed, whether
// or not anything qualified for an alert.
func (p *Pipeline) Run(ctx context.Context) error {
	zone, err := p.resolver.Resolve(p.coord.Lat, p.coord.Lon)
	if err != nil {
		return err
	}
	p.logger.Info("timezone resolved", "zone", zone, "lat", p.coord.Lat, "lon", p.coord.Lon)

	fetchStart := time.Now()
	text, err := p.fetcher.Fetch(ctx)
	if err != nil {
		return err
	}
	p.metrics.FetchDuration.Observe(time.Since(fetchStart).Seconds())

	forecast, err := domain.ParseForecast(text)
	if err != nil {
		return err
	}
	p.metrics.EntriesParsed.Add(float64(len(forecast.Entries)))
	p.logger.Info("forecast parsed",
		"entries", len(forecast.Entries),
		"issued_at", forecast.IssuedAt,
	)

	localized, err := domain.Localize(forecast.Entries, zone)
	if err != nil {
		return err
	}

	qualifying := domain.OverThreshold(localized, p.threshold)
	p.metrics.EntriesOverThreshold.Add(float64(len(qualifying)))

	if len(qualifying) == 0 {
		p.logger.Info("no entries at or above threshold", "threshold", p.threshold)
		return nil
	}

	alert := domain.Alert{
		Coordinate: p.coord,
		Zone:       zone,
		Threshold:  p.threshold,
		Periods:    qualifying,
	}
	p.logger.Info("threshold met",
		"periods", len(alert.Periods),
		"max_kp", alert.MaxKp(),
		"threshold", p.threshold,
	)

	if err := p.notifier.Notify(ctx, alert); err != nil {
		return err
	}
	p.metrics.AlertsSent.Inc()

	if p.publisher != nil {
		if err := p.publisher.Publish(ctx, alert); err != nil {
			return err
		}
		p.metrics.AlertsPublished.Inc()
	}

	return nil
}
