// Package image finds a preview picture for a candidate article.
package image

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"GardenBot/internal/domain"
	"GardenBot/internal/ports"
)

// DocumentFetcher loads and parses an HTML page.
type DocumentFetcher interface {
	Document(ctx context.Context, url string) (*goquery.Document, error)
}

// Resolver walks the lookup chain: feed media, feed enclosure, <img> in the
// feed description, then the article's social-preview meta tag.
type Resolver struct {
	fetcher DocumentFetcher
	logger  *slog.Logger
}

var _ ports.ImageResolver = (*Resolver)(nil)

// NewResolver uses fetcher for the og:image step; fetcher may be nil.
func NewResolver(fetcher DocumentFetcher, log *slog.Logger) *Resolver {
	return &Resolver{fetcher: fetcher, logger: log}
}

// Resolve returns the first image found or ErrNoImage.
func (r *Resolver) Resolve(ctx context.Context, candidate domain.Candidate) (string, error) {
	steps := []struct {
		name string
		find func() string
	}{
		{"media", func() string { return absolute(candidate.URL, candidate.Media.MediaURL) }},
		{"enclosure", func() string { return absolute(candidate.URL, candidate.Media.EnclosureURL) }},
		{"description", func() string { return descriptionImage(candidate.URL, candidate.Media.DescriptionHTML) }},
		{"og:image", func() string { return r.previewImage(ctx, candidate.URL) }},
	}

	for _, step := range steps {
		if found := step.find(); found != "" {
			r.debug("image resolved", "url", candidate.URL, "step", step.name, "image", found)
			return found, nil
		}
	}
	return "", fmt.Errorf("%s: %w", candidate.URL, domain.ErrNoImage)
}

func descriptionImage(pageURL, html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img[src]").First().Attr("src")
	return absolute(pageURL, src)
}

func (r *Resolver) previewImage(ctx context.Context, pageURL string) string {
	if r.fetcher == nil {
		return ""
	}
	doc, err := r.fetcher.Document(ctx, pageURL)
	if err != nil {
		r.debug("preview fetch failed", "url", pageURL, "error", err)
		return ""
	}
	for _, sel := range []string{
		`meta[property="og:image"]`,
		`meta[property="og:image:url"]`,
		`meta[name="twitter:image"]`,
	} {
		content, _ := doc.Find(sel).First().Attr("content")
		if found := absolute(pageURL, content); found != "" {
			return found
		}
	}
	return ""
}

func absolute(pageURL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "data:") {
		return ""
	}
	parsed, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if parsed.IsAbs() {
		return parsed.String()
	}
	base, err := url.Parse(pageURL)
	if err != nil || !base.IsAbs() {
		return ""
	}
	return base.ResolveReference(parsed).String()
}

func (r *Resolver) debug(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}
