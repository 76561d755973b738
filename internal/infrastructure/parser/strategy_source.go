package parser

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/PuerkitoBio/goquery"

	"GardenBot/internal/config"
	"GardenBot/internal/domain"
	"GardenBot/internal/ports"
	"GardenBot/internal/scanner"
)

// DocumentFetcher loads and parses an HTML page.
type DocumentFetcher interface {
	Document(ctx context.Context, url string) (*goquery.Document, error)
}

// FeedReader turns a syndication feed into candidates.
type FeedReader interface {
	Candidates(ctx context.Context, feedURL string) ([]domain.Candidate, error)
}

// StrategySource implements CandidateSource via the registered site adapters.
type StrategySource struct {
	registry    *scanner.Registry
	fetcher     DocumentFetcher
	feeds       FeedReader
	sources     []config.SourceConfig
	requireDate bool
	logger      *slog.Logger
}

var _ ports.CandidateSource = (*StrategySource)(nil)

// SourceOptions groups the optional collaborators of StrategySource.
type SourceOptions struct {
	Feeds       FeedReader
	RequireDate bool
	Logger      *slog.Logger
}

// DefaultSites lists every built-in site adapter.
func DefaultSites() []scanner.Site {
	return []scanner.Site{Supersadovnik{}, Botanichka{}, Ogorod{}, Dolinasad{}, TkKonstruktor{}}
}

// NewStrategySource wires the registry with the configured source pages.
func NewStrategySource(reg *scanner.Registry, fetcher DocumentFetcher, sources []config.SourceConfig, opts SourceOptions) *StrategySource {
	return &StrategySource{
		registry:    reg,
		fetcher:     fetcher,
		feeds:       opts.Feeds,
		sources:     sources,
		requireDate: opts.RequireDate,
		logger:      opts.Logger,
	}
}

// Discover walks the sources in order, one fetch at a time. A failing source
// is logged and skipped; duplicate URLs collapse into the first occurrence.
func (s *StrategySource) Discover(ctx context.Context, now time.Time) ([]domain.Candidate, error) {
	if s.registry == nil || s.fetcher == nil {
		return nil, fmt.Errorf("strategy source is not configured")
	}

	s.debug("discover", "sources", len(s.sources), "require_date", s.requireDate)

	agg := newAggregate()
	opts := scanner.DiscoverOptions{Now: now, RequireDate: s.requireDate}
	for _, src := range s.sources {
		if err := ctx.Err(); err != nil {
			return agg.list(), err
		}

		agg.add(s.scanPage(ctx, src.URL, opts)...)
		if src.Feed != "" && s.feeds != nil {
			agg.add(s.scanFeed(ctx, src.Feed, opts)...)
		}
	}

	s.debug("discover done", "total_candidates", agg.len())
	return agg.list(), nil
}

func (s *StrategySource) scanPage(ctx context.Context, pageURL string, opts scanner.DiscoverOptions) []domain.Candidate {
	site, ok := s.registry.Resolve(pageURL)
	if !ok {
		s.debug("no adapter for source", "url", pageURL)
		return nil
	}

	doc, err := s.fetcher.Document(ctx, pageURL)
	if err != nil {
		s.warn("source failed", "url", pageURL, "site", site.Name(), "error", err)
		return nil
	}

	found := site.Discover(doc, pageURL, opts)
	s.debug("source produced candidates", "url", pageURL, "site", site.Name(), "count", len(found))
	return found
}

func (s *StrategySource) scanFeed(ctx context.Context, feedURL string, opts scanner.DiscoverOptions) []domain.Candidate {
	items, err := s.feeds.Candidates(ctx, feedURL)
	if err != nil {
		s.warn("feed failed", "url", feedURL, "error", err)
		return nil
	}

	kept := make([]domain.Candidate, 0, len(items))
	for _, c := range items {
		if opts.RequireDate && !c.HasDate {
			continue
		}
		kept = append(kept, c)
	}
	s.debug("feed produced candidates", "url", feedURL, "count", len(kept))
	return kept
}

func (s *StrategySource) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *StrategySource) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}

// aggregate keeps candidates in discovery order, merging repeats by URL.
type aggregate struct {
	order []string
	byURL map[string]domain.Candidate
}

func newAggregate() *aggregate {
	return &aggregate{byURL: map[string]domain.Candidate{}}
}

func (a *aggregate) add(candidates ...domain.Candidate) {
	for _, c := range candidates {
		if existing, ok := a.byURL[c.URL]; ok {
			a.byURL[c.URL] = existing.Merge(c)
			continue
		}
		a.order = append(a.order, c.URL)
		a.byURL[c.URL] = c
	}
}

func (a *aggregate) len() int {
	return len(a.order)
}

func (a *aggregate) list() []domain.Candidate {
	out := make([]domain.Candidate, 0, len(a.order))
	for _, u := range a.order {
		out = append(out, a.byURL[u])
	}
	return out
}
