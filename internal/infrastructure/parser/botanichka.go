package parser

import (
	"github.com/PuerkitoBio/goquery"

	"GardenBot/internal/domain"
	"GardenBot/internal/scanner"
)

// Botanichka handles botanichka.ru. Articles embed "read also" blocks inside
// the post body; those are cut before the text is collected.
type Botanichka struct{}

var _ scanner.Site = Botanichka{}

var (
	botanichkaListing = listing{
		container: "article",
		link:      "h2.post-title a",
		date:      ".post-date, time",
	}
	botanichkaLayout = layout{
		title:  "h1.post-title",
		body:   "div.post-content",
		blocks: "p, h2, h3, li",
		strip:  []string{"div.read-also"},
	}
)

func (Botanichka) Name() string    { return "botanichka" }
func (Botanichka) Hosts() []string { return []string{"botanichka.ru"} }

func (b Botanichka) Discover(doc *goquery.Document, pageURL string, opts scanner.DiscoverOptions) []domain.Candidate {
	return discoverListing(doc, pageURL, b.Name(), botanichkaListing, opts)
}

func (b Botanichka) Extract(doc *goquery.Document) (domain.ParsedArticle, error) {
	return extractLayout(doc, b.Name(), botanichkaLayout)
}
