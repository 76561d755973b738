package parser

import (
	"github.com/PuerkitoBio/goquery"

	"GardenBot/internal/domain"
	"GardenBot/internal/scanner"
)

// Supersadovnik handles supersadovnik.ru rubric pages and articles.
type Supersadovnik struct{}

var _ scanner.Site = Supersadovnik{}

var (
	supersadovnikListing = listing{
		container: ".item-post-common",
		link:      "a.item-post-common__title",
		date:      ".item-post-common__date",
	}
	supersadovnikLayout = layout{
		title:  "h1",
		body:   "div.article__text",
		blocks: "p, h2, h3",
	}
)

func (Supersadovnik) Name() string    { return "supersadovnik" }
func (Supersadovnik) Hosts() []string { return []string{"supersadovnik.ru"} }

func (s Supersadovnik) Discover(doc *goquery.Document, pageURL string, opts scanner.DiscoverOptions) []domain.Candidate {
	return discoverListing(doc, pageURL, s.Name(), supersadovnikListing, opts)
}

func (s Supersadovnik) Extract(doc *goquery.Document) (domain.ParsedArticle, error) {
	return extractLayout(doc, s.Name(), supersadovnikLayout)
}
