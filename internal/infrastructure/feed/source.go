// Package feed reads RSS/Atom feeds into candidates that carry dates and image hints.
package feed

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"

	"GardenBot/internal/domain"
)

// RawFetcher returns the body of a URL.
type RawFetcher interface {
	Raw(ctx context.Context, url string) ([]byte, error)
}

// Source parses feeds with gofeed after fetching them through the shared client.
type Source struct {
	fetcher RawFetcher
	parser  *gofeed.Parser
	logger  *slog.Logger
}

func NewSource(fetcher RawFetcher, log *slog.Logger) *Source {
	return &Source{fetcher: fetcher, parser: gofeed.NewParser(), logger: log}
}

// Candidates returns one candidate per feed item with a link, in feed order.
func (s *Source) Candidates(ctx context.Context, feedURL string) ([]domain.Candidate, error) {
	body, err := s.fetcher.Raw(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	parsed, err := s.parser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}

	source := feedSource(parsed, feedURL)
	candidates := make([]domain.Candidate, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		link := strings.TrimSpace(item.Link)
		if link == "" {
			continue
		}

		c := domain.Candidate{
			URL:    link,
			Source: source,
			Media: domain.MediaHints{
				MediaURL:        mediaURL(item),
				EnclosureURL:    enclosureURL(item),
				DescriptionHTML: item.Description,
			},
		}
		switch {
		case item.PublishedParsed != nil:
			c.PublishedAt, c.HasDate = *item.PublishedParsed, true
		case item.UpdatedParsed != nil:
			c.PublishedAt, c.HasDate = *item.UpdatedParsed, true
		}
		candidates = append(candidates, c)
	}

	if s.logger != nil {
		s.logger.Debug("feed parsed", "url", feedURL, "items", len(parsed.Items), "candidates", len(candidates))
	}
	return candidates, nil
}

func feedSource(parsed *gofeed.Feed, feedURL string) string {
	if u, err := url.Parse(feedURL); err == nil && u.Host != "" {
		return strings.TrimPrefix(u.Host, "www.")
	}
	return parsed.Title
}

// mediaURL looks at media:content first, then media:thumbnail, then the item image.
func mediaURL(item *gofeed.Item) string {
	if media, ok := item.Extensions["media"]; ok {
		for _, name := range []string{"content", "thumbnail"} {
			if u := firstMediaURL(media[name]); u != "" {
				return u
			}
		}
		for _, group := range media["group"] {
			if u := firstMediaURL(group.Children["content"]); u != "" {
				return u
			}
		}
	}
	if item.Image != nil {
		return strings.TrimSpace(item.Image.URL)
	}
	return ""
}

func firstMediaURL(entries []ext.Extension) string {
	for _, e := range entries {
		u := strings.TrimSpace(e.Attrs["url"])
		if u == "" {
			continue
		}
		if medium := e.Attrs["medium"]; medium != "" && medium != "image" {
			continue
		}
		if typ := e.Attrs["type"]; typ != "" && !strings.HasPrefix(typ, "image/") {
			continue
		}
		return u
	}
	return ""
}

func enclosureURL(item *gofeed.Item) string {
	for _, enc := range item.Enclosures {
		if enc == nil || enc.URL == "" {
			continue
		}
		if strings.HasPrefix(enc.Type, "image/") || (enc.Type == "" && IsImagePath(enc.URL)) {
			return enc.URL
		}
	}
	return ""
}

var imageExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true}

// IsImagePath reports whether the URL path ends in a common image extension.
func IsImagePath(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return imageExt[strings.ToLower(path.Ext(u.Path))]
}
