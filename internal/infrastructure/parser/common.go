package parser

import (
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"GardenBot/internal/dates"
	"GardenBot/internal/domain"
	"GardenBot/internal/scanner"
)

// listing describes where article links sit on a section page.
// An empty date selector means the site prints no dates in its listings.
type listing struct {
	container string
	link      string
	date      string
}

// layout describes the article page of a site.
type layout struct {
	title  string
	body   string
	blocks string
	strip  []string
}

// discoverListing emits one candidate per container with a usable link.
// Containers without a parseable date are dropped only when opts.RequireDate is set.
func discoverListing(doc *goquery.Document, pageURL, source string, l listing, opts scanner.DiscoverOptions) []domain.Candidate {
	var (
		candidates []domain.Candidate
		seen       = map[string]struct{}{}
	)

	doc.Find(l.container).Each(func(_ int, container *goquery.Selection) {
		href, ok := container.Find(l.link).First().Attr("href")
		if !ok {
			return
		}
		target, ok := resolveURL(pageURL, href)
		if !ok {
			return
		}
		if _, dup := seen[target]; dup {
			return
		}

		candidate := domain.Candidate{URL: target, Source: source}
		if l.date != "" {
			if published, ok := containerDate(container.Find(l.date).First(), opts.Now); ok {
				candidate.PublishedAt = published
				candidate.HasDate = true
			}
		}
		if opts.RequireDate && !candidate.HasDate {
			return
		}

		seen[target] = struct{}{}
		candidates = append(candidates, candidate)
	})

	return candidates
}

// extractLayout builds a ParsedArticle from the first title and body matches.
// A missing element is a StructureError; present but blank content is ErrEmptyArticle.
func extractLayout(doc *goquery.Document, site string, l layout) (domain.ParsedArticle, error) {
	titleNode := doc.Find(l.title).First()
	if titleNode.Length() == 0 {
		return domain.ParsedArticle{}, &domain.StructureError{Site: site, Element: l.title}
	}
	bodyNode := doc.Find(l.body).First()
	if bodyNode.Length() == 0 {
		return domain.ParsedArticle{}, &domain.StructureError{Site: site, Element: l.body}
	}

	for _, sel := range l.strip {
		bodyNode.Find(sel).Remove()
	}

	blocks := make([]string, 0)
	bodyNode.Find(l.blocks).Each(func(_ int, block *goquery.Selection) {
		if text := cleanText(block.Text()); text != "" {
			blocks = append(blocks, text)
		}
	})

	article := domain.ParsedArticle{
		Title: cleanText(titleNode.Text()),
		Body:  strings.Join(blocks, "\n\n"),
	}
	if article.Title == "" || article.Body == "" {
		return article, domain.ErrEmptyArticle
	}
	return article, nil
}

// containerDate reads a listing date from the element text, then from a datetime attribute.
func containerDate(node *goquery.Selection, now time.Time) (time.Time, bool) {
	if node.Length() == 0 {
		return time.Time{}, false
	}
	if published, ok := dates.Normalize(node.Text(), now); ok {
		return published, true
	}

	attr, ok := node.Attr("datetime")
	if !ok {
		attr, ok = node.Find("time[datetime]").First().Attr("datetime")
	}
	if !ok {
		return time.Time{}, false
	}
	for _, format := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if published, err := time.ParseInLocation(format, strings.TrimSpace(attr), now.Location()); err == nil {
			return published, true
		}
	}
	return time.Time{}, false
}

func resolveURL(base, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", false
	}
	resolved := baseURL.ResolveReference(ref)
	resolved.Fragment = ""
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}
	return resolved.String(), true
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
