package parser

import (
	"github.com/PuerkitoBio/goquery"

	"GardenBot/internal/domain"
	"GardenBot/internal/scanner"
)

// Dolinasad handles the dolinasad.by blog.
type Dolinasad struct{}

var _ scanner.Site = Dolinasad{}

var (
	dolinasadListing = listing{
		container: ".blog-item",
		link:      "a.blog-item__title-link",
		date:      ".blog-item__date",
	}
	dolinasadLayout = layout{
		title:  "h1.blog-post__title",
		body:   "div.blog-post__content",
		blocks: "p, h2, h3, li",
	}
)

func (Dolinasad) Name() string    { return "dolinasad" }
func (Dolinasad) Hosts() []string { return []string{"dolinasad.by"} }

func (d Dolinasad) Discover(doc *goquery.Document, pageURL string, opts scanner.DiscoverOptions) []domain.Candidate {
	return discoverListing(doc, pageURL, d.Name(), dolinasadListing, opts)
}

func (d Dolinasad) Extract(doc *goquery.Document) (domain.ParsedArticle, error) {
	return extractLayout(doc, d.Name(), dolinasadLayout)
}
