package assistant

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/iksnae/webscraper-chat/internal"
)

// Delay returns how long stage i of a scrape takes
type Delay func(stage int) time.Duration

// JitterDelay waits base plus a random share of jitter per stage
func JitterDelay(base, jitter time.Duration) Delay {
	return func(int) time.Duration {
		if jitter <= 0 {
			return base
		}
		return base + time.Duration(rand.Int64N(int64(jitter)))
	}
}

// NoDelay completes every stage immediately
func NoDelay(int) time.Duration { return 0 }

// Scraper simulates fetching each cited source in turn
type Scraper struct {
	Delay   Delay
	Metrics *internal.StoreMetrics
}

// Run marks every source loading, then completes them one at a time.
// onUpdate receives a fresh copy after every change; an error from it
// stops the run. Statuses only move forward: loading to success, or
// loading to error when ctx ends first.
func (s *Scraper) Run(ctx context.Context, sources []internal.SourceRecord, onUpdate func([]internal.SourceRecord) error) ([]internal.SourceRecord, error) {
	if len(sources) == 0 {
		return nil, nil
	}
	delay := s.Delay
	if delay == nil {
		delay = NoDelay
	}

	current := make([]internal.SourceRecord, len(sources))
	copy(current, sources)
	for i := range current {
		current[i].Status = internal.SourceLoading
		s.Metrics.ObserveScrapeStage(internal.SourceLoading)
	}
	if err := emit(current, onUpdate); err != nil {
		return current, err
	}

	for i := range current {
		if err := wait(ctx, delay(i)); err != nil {
			for j := i; j < len(current); j++ {
				current[j].Status = internal.SourceError
				s.Metrics.ObserveScrapeStage(internal.SourceError)
			}
			internal.LogWarn("Scrape interrupted at stage %d/%d: %v", i+1, len(current), err)
			if uerr := emit(current, onUpdate); uerr != nil {
				return current, uerr
			}
			return current, err
		}
		current[i].Status = internal.SourceSuccess
		s.Metrics.ObserveScrapeStage(internal.SourceSuccess)
		internal.LogDebug("Scrape stage %d/%d done: %s", i+1, len(current), current[i].URL)
		if err := emit(current, onUpdate); err != nil {
			return current, err
		}
	}
	return current, nil
}

// SimulateScrape runs a Scraper with the given delay
func SimulateScrape(ctx context.Context, sources []internal.SourceRecord, delay Delay, onUpdate func([]internal.SourceRecord) error) ([]internal.SourceRecord, error) {
	s := &Scraper{Delay: delay}
	return s.Run(ctx, sources, onUpdate)
}

func emit(current []internal.SourceRecord, onUpdate func([]internal.SourceRecord) error) error {
	if onUpdate == nil {
		return nil
	}
	snapshot := make([]internal.SourceRecord, len(current))
	copy(snapshot, current)
	return onUpdate(snapshot)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
