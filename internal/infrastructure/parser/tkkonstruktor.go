package parser

import (
	"github.com/PuerkitoBio/goquery"

	"GardenBot/internal/domain"
	"GardenBot/internal/scanner"
)

// TkKonstruktor handles the tk-konstruktor.ru articles section.
type TkKonstruktor struct{}

var _ scanner.Site = TkKonstruktor{}

var (
	tkKonstruktorListing = listing{
		container: ".post-item",
		link:      ".post-title a",
		date:      ".post-date",
	}
	tkKonstruktorLayout = layout{
		title:  "h1",
		body:   "div.post-content",
		blocks: "p, h2, h3, li",
	}
)

func (TkKonstruktor) Name() string    { return "tk-konstruktor" }
func (TkKonstruktor) Hosts() []string { return []string{"tk-konstruktor.ru"} }

func (t TkKonstruktor) Discover(doc *goquery.Document, pageURL string, opts scanner.DiscoverOptions) []domain.Candidate {
	return discoverListing(doc, pageURL, t.Name(), tkKonstruktorListing, opts)
}

func (t TkKonstruktor) Extract(doc *goquery.Document) (domain.ParsedArticle, error) {
	return extractLayout(doc, t.Name(), tkKonstruktorLayout)
}
