package scanner

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"GardenBot/internal/domain"
)

// DiscoverOptions carries per-run parameters for link discovery.
type DiscoverOptions struct {
	Now time.Time
	// RequireDate drops containers whose date is missing or unparseable.
	RequireDate bool
}

// Site captures one source site: how to find article links on a section page
// and how to pull title and body out of an article page.
type Site interface {
	Name() string
	Hosts() []string
	Discover(doc *goquery.Document, pageURL string, opts DiscoverOptions) []domain.Candidate
	Extract(doc *goquery.Document) (domain.ParsedArticle, error)
}

// Registry maps host substrings to site implementations.
type Registry struct {
	sites map[string]Site
}

// NewRegistry builds a registry with the given sites already registered.
func NewRegistry(sites ...Site) *Registry {
	r := &Registry{sites: map[string]Site{}}
	for _, s := range sites {
		r.Register(s)
	}
	return r
}

// Register adds or replaces a site under each of its host patterns.
func (r *Registry) Register(site Site) {
	if r.sites == nil {
		r.sites = map[string]Site{}
	}
	for _, host := range site.Hosts() {
		r.sites[strings.ToLower(host)] = site
	}
}

// Resolve returns the site whose host pattern occurs in rawURL's host.
// Longer patterns are tried first so that a more specific host wins.
func (r *Registry) Resolve(rawURL string) (Site, bool) {
	host := hostOf(rawURL)
	for _, pattern := range r.patterns() {
		if strings.Contains(host, pattern) {
			return r.sites[pattern], true
		}
	}
	return nil, false
}

// MustResolve is Resolve that reports the miss as ErrUnsupportedSite.
func (r *Registry) MustResolve(rawURL string) (Site, error) {
	site, ok := r.Resolve(rawURL)
	if !ok {
		return nil, fmt.Errorf("%s: %w", rawURL, domain.ErrUnsupportedSite)
	}
	return site, nil
}

func (r *Registry) patterns() []string {
	patterns := make([]string, 0, len(r.sites))
	for p := range r.sites {
		patterns = append(patterns, p)
	}
	sort.Slice(patterns, func(i, j int) bool {
		if len(patterns[i]) != len(patterns[j]) {
			return len(patterns[i]) > len(patterns[j])
		}
		return patterns[i] < patterns[j]
	})
	return patterns
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Host == "" {
		return strings.ToLower(rawURL)
	}
	return strings.ToLower(parsed.Host)
}
