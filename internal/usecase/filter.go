package usecase

import (
	"time"

	"GardenBot/internal/domain"
	"GardenBot/internal/ports"
)

// Filter keeps candidates that were never published. With a positive window
// it also drops candidates dated before the day of now-window; an unknown
// date counts as not recent.
func Filter(candidates []domain.Candidate, log domain.PostLog, now time.Time, window time.Duration) []domain.Candidate {
	cutoff := startOfDay(now.Add(-window))
	kept := make([]domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if log.Has(c.URL) {
			continue
		}
		if window > 0 && (!c.HasDate || c.PublishedAt.Before(cutoff)) {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

// Select picks one candidate uniformly at random.
func Select(candidates []domain.Candidate, r ports.Rand) (domain.Candidate, bool) {
	switch len(candidates) {
	case 0:
		return domain.Candidate{}, false
	case 1:
		return candidates[0], true
	}
	return candidates[r.IntN(len(candidates))], true
}

// startOfDay drops the clock part; listing dates carry no time of day.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
