package parser

import (
	"github.com/PuerkitoBio/goquery"

	"GardenBot/internal/domain"
	"GardenBot/internal/scanner"
)

// Ogorod handles ogorod.ru. Rubric pages carry a dated article feed and an
// undated "popular" strip; both are scanned, feed first.
type Ogorod struct{}

var _ scanner.Site = Ogorod{}

var (
	ogorodListing = listing{
		container: ".item-article",
		link:      ".item-title a",
		date:      ".item-date",
	}
	ogorodPopular = listing{
		container: ".rubric-popular-item",
		link:      "a",
	}
	ogorodLayout = layout{
		title:  "h1",
		body:   "div.article-body-content-inner",
		blocks: "p, h2, h3, li",
	}
)

func (Ogorod) Name() string    { return "ogorod" }
func (Ogorod) Hosts() []string { return []string{"ogorod.ru"} }

func (o Ogorod) Discover(doc *goquery.Document, pageURL string, opts scanner.DiscoverOptions) []domain.Candidate {
	candidates := discoverListing(doc, pageURL, o.Name(), ogorodListing, opts)

	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		seen[c.URL] = struct{}{}
	}
	for _, c := range discoverListing(doc, pageURL, o.Name(), ogorodPopular, opts) {
		if _, dup := seen[c.URL]; dup {
			continue
		}
		seen[c.URL] = struct{}{}
		candidates = append(candidates, c)
	}
	return candidates
}

func (o Ogorod) Extract(doc *goquery.Document) (domain.ParsedArticle, error) {
	return extractLayout(doc, o.Name(), ogorodLayout)
}
