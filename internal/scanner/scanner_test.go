package scanner

import (
	"errors"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"GardenBot/internal/domain"
)

type stubSite struct {
	name  string
	hosts []string
}

func (s stubSite) Name() string    { return s.name }
func (s stubSite) Hosts() []string { return s.hosts }
func (s stubSite) Discover(*goquery.Document, string, DiscoverOptions) []domain.Candidate {
	return nil
}
func (s stubSite) Extract(*goquery.Document) (domain.ParsedArticle, error) {
	return domain.ParsedArticle{}, nil
}

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(
		stubSite{name: "ogorod", hosts: []string{"ogorod.ru"}},
		stubSite{name: "botanichka", hosts: []string{"botanichka.ru"}},
	)

	cases := []struct {
		url  string
		want string
	}{
		{url: "https://ogorod.ru/ru/sad", want: "ogorod"},
		{url: "https://www.botanichka.ru/blog/", want: "botanichka"},
		{url: "https://OGOROD.RU/ru/ogorod", want: "ogorod"},
		{url: "https://example.com/ogorod.ru", want: ""},
		{url: "botanichka.ru/blog", want: "botanichka"},
	}

	for _, tc := range cases {
		site, ok := reg.Resolve(tc.url)
		if tc.want == "" {
			if ok {
				t.Fatalf("%s: expected no match, got %s", tc.url, site.Name())
			}
			continue
		}
		if !ok || site.Name() != tc.want {
			t.Fatalf("%s: expected %s, got %v", tc.url, tc.want, site)
		}
	}
}

func TestRegistryPrefersLongerPattern(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(
		stubSite{name: "generic", hosts: []string{"sad.ru"}},
		stubSite{name: "specific", hosts: []string{"dolinasad.ru"}},
	)

	site, ok := reg.Resolve("https://dolinasad.ru/blog")
	if !ok || site.Name() != "specific" {
		t.Fatalf("expected specific site, got %v", site)
	}
}

func TestRegistryMustResolveUnsupported(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	_, err := reg.MustResolve("https://example.com/")
	if !errors.Is(err, domain.ErrUnsupportedSite) {
		t.Fatalf("expected ErrUnsupportedSite, got %v", err)
	}
}
