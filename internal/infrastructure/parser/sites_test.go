package parser

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"GardenBot/internal/domain"
	"GardenBot/internal/scanner"
)

var testNow = time.Date(2024, time.March, 20, 10, 0, 0, 0, time.UTC)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	return doc
}

func TestSupersadovnikDiscover(t *testing.T) {
	t.Parallel()

	html := `
	<div class="item-post-common">
	  <a class="item-post-common__title" href="/sad/tomaty-123">Томаты</a>
	  <span class="item-post-common__date">12 марта 2024</span>
	</div>
	<div class="item-post-common">
	  <a class="item-post-common__title" href="https://www.supersadovnik.ru/sad/ogurcy">Огурцы</a>
	  <span class="item-post-common__date">без даты</span>
	</div>
	<div class="item-post-common"><span>нет ссылки</span></div>
	<div class="item-post-common">
	  <a class="item-post-common__title" href="/sad/tomaty-123#comments">Томаты</a>
	</div>`

	site := Supersadovnik{}
	pageURL := "https://www.supersadovnik.ru/sad-i-ogorod-289"

	got := site.Discover(mustDoc(t, html), pageURL, scanner.DiscoverOptions{Now: testNow})
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %+v", len(got), got)
	}
	if got[0].URL != "https://www.supersadovnik.ru/sad/tomaty-123" {
		t.Fatalf("unexpected url: %s", got[0].URL)
	}
	if !got[0].HasDate || got[0].PublishedAt.Format("2006-01-02") != "2024-03-12" {
		t.Fatalf("unexpected date: %v (has=%v)", got[0].PublishedAt, got[0].HasDate)
	}
	if got[0].Source != "supersadovnik" {
		t.Fatalf("unexpected source: %s", got[0].Source)
	}
	if got[1].HasDate {
		t.Fatalf("expected unparsed date for %s", got[1].URL)
	}

	strict := site.Discover(mustDoc(t, html), pageURL, scanner.DiscoverOptions{Now: testNow, RequireDate: true})
	if len(strict) != 1 || strict[0].URL != got[0].URL {
		t.Fatalf("expected only the dated candidate, got %+v", strict)
	}
}

func TestBotanichkaDiscoverUsesTimeElement(t *testing.T) {
	t.Parallel()

	html := `
	<article>
	  <h2 class="post-title"><a href="/blog/kak-vyrastit-rassadu.html">Рассада</a></h2>
	  <time datetime="2024-03-18T08:00:00+03:00">вчера</time>
	</article>
	<article>
	  <h2 class="post-title"><a href="/blog/sorta-tomatov.html">Сорта</a></h2>
	  <time datetime="2024-03-01">1 мар 2024</time>
	</article>`

	got := Botanichka{}.Discover(mustDoc(t, html), "https://www.botanichka.ru/blog/", scanner.DiscoverOptions{Now: testNow, RequireDate: true})
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if want := testNow.AddDate(0, 0, -1); !got[0].PublishedAt.Equal(want) {
		t.Fatalf("expected yesterday, got %v", got[0].PublishedAt)
	}
	if got[1].URL != "https://www.botanichka.ru/blog/sorta-tomatov.html" {
		t.Fatalf("unexpected url: %s", got[1].URL)
	}
	if got[1].PublishedAt.Format("2006-01-02") != "2024-03-01" {
		t.Fatalf("unexpected date: %v", got[1].PublishedAt)
	}
}

func TestContainerDateFallsBackToDatetimeAttr(t *testing.T) {
	t.Parallel()

	doc := mustDoc(t, `<time datetime="2024-02-29">недавно</time>`)
	got, ok := containerDate(doc.Find("time"), testNow)
	if !ok {
		t.Fatalf("expected datetime attribute to be used")
	}
	if got.Format("2006-01-02") != "2024-02-29" {
		t.Fatalf("unexpected date: %v", got)
	}
}

func TestOgorodDiscoverMergesPopularStrip(t *testing.T) {
	t.Parallel()

	html := `
	<div class="item-article">
	  <div class="item-title"><a href="/ru/ogorod/tomaty/1.html">Томаты</a></div>
	  <div class="item-date">15.03.2024</div>
	</div>
	<div class="rubric-popular-item"><a href="/ru/ogorod/tomaty/1.html">Томаты</a></div>
	<div class="rubric-popular-item"><a href="/ru/ogorod/kapusta/2.html">Капуста</a></div>`

	pageURL := "https://ogorod.ru/ru/ogorod"

	got := Ogorod{}.Discover(mustDoc(t, html), pageURL, scanner.DiscoverOptions{Now: testNow})
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %+v", len(got), got)
	}
	if !got[0].HasDate || got[0].PublishedAt.Format("02.01.2006") != "15.03.2024" {
		t.Fatalf("unexpected first candidate: %+v", got[0])
	}
	if got[1].URL != "https://ogorod.ru/ru/ogorod/kapusta/2.html" || got[1].HasDate {
		t.Fatalf("unexpected popular candidate: %+v", got[1])
	}

	strict := Ogorod{}.Discover(mustDoc(t, html), pageURL, scanner.DiscoverOptions{Now: testNow, RequireDate: true})
	if len(strict) != 1 {
		t.Fatalf("popular strip carries no dates, expected 1 candidate, got %d", len(strict))
	}
}

func TestDolinasadAndTkKonstruktorDiscover(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		site    scanner.Site
		pageURL string
		html    string
		want    string
	}{
		{
			name:    "dolinasad",
			site:    Dolinasad{},
			pageURL: "https://dolinasad.by/blog/",
			html: `<div class="blog-item">
			  <a class="blog-item__title-link" href="obrezka-yabloni">Обрезка</a>
			  <span class="blog-item__date">5 марта 2024 г.</span>
			</div>`,
			want: "https://dolinasad.by/blog/obrezka-yabloni",
		},
		{
			name:    "tk-konstruktor",
			site:    TkKonstruktor{},
			pageURL: "https://tk-konstruktor.ru/stati/",
			html: `<div class="post-item">
			  <h3 class="post-title"><a href="/stati/teplica/">Теплица</a></h3>
			  <span class="post-date">сегодня</span>
			</div>`,
			want: "https://tk-konstruktor.ru/stati/teplica/",
		},
	}

	for _, tc := range cases {
		got := tc.site.Discover(mustDoc(t, tc.html), tc.pageURL, scanner.DiscoverOptions{Now: testNow, RequireDate: true})
		if len(got) != 1 {
			t.Fatalf("%s: expected 1 candidate, got %d", tc.name, len(got))
		}
		if got[0].URL != tc.want {
			t.Fatalf("%s: unexpected url %s", tc.name, got[0].URL)
		}
		if got[0].Source != tc.site.Name() {
			t.Fatalf("%s: unexpected source %s", tc.name, got[0].Source)
		}
	}
}

func TestBotanichkaExtractDropsReadAlso(t *testing.T) {
	t.Parallel()

	html := `
	<h1 class="post-title">  Как вырастить   рассаду </h1>
	<div class="post-content">
	  <p>Первый абзац.</p>
	  <div class="read-also"><p>Читайте также: другое</p></div>
	  <h2>Подготовка</h2>
	  <p>   </p>
	  <ul><li>Пункт один</li><li>Пункт два</li></ul>
	</div>`

	article, err := Botanichka{}.Extract(mustDoc(t, html))
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if article.Title != "Как вырастить рассаду" {
		t.Fatalf("unexpected title: %q", article.Title)
	}
	want := "Первый абзац.\n\nПодготовка\n\nПункт один\n\nПункт два"
	if article.Body != want {
		t.Fatalf("unexpected body:\n%q\nwant\n%q", article.Body, want)
	}
}

func TestSupersadovnikExtractIgnoresListItems(t *testing.T) {
	t.Parallel()

	html := `
	<h1>Обрезка смородины</h1>
	<div class="article__text">
	  <p>Весной.</p>
	  <ul><li>не попадает</li></ul>
	  <h3>Итог</h3>
	</div>`

	article, err := Supersadovnik{}.Extract(mustDoc(t, html))
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if article.Body != "Весной.\n\nИтог" {
		t.Fatalf("unexpected body: %q", article.Body)
	}
}

func TestExtractStructureErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		site    scanner.Site
		html    string
		element string
	}{
		{name: "botanichka no title", site: Botanichka{}, html: `<h1>Без класса</h1><div class="post-content"><p>x</p></div>`, element: "h1.post-title"},
		{name: "ogorod no body", site: Ogorod{}, html: `<h1>Заголовок</h1><div class="article"><p>x</p></div>`, element: "div.article-body-content-inner"},
		{name: "dolinasad no title", site: Dolinasad{}, html: `<div class="blog-post__content"><p>x</p></div>`, element: "h1.blog-post__title"},
		{name: "tk-konstruktor no body", site: TkKonstruktor{}, html: `<h1>Теплица</h1>`, element: "div.post-content"},
	}

	for _, tc := range cases {
		_, err := tc.site.Extract(mustDoc(t, tc.html))
		var structErr *domain.StructureError
		if !errors.As(err, &structErr) {
			t.Fatalf("%s: expected StructureError, got %v", tc.name, err)
		}
		if structErr.Element != tc.element || structErr.Site != tc.site.Name() {
			t.Fatalf("%s: unexpected error %+v", tc.name, structErr)
		}
	}
}

func TestExtractEmptyBody(t *testing.T) {
	t.Parallel()

	html := `<h1>Теплица</h1><div class="post-content"><p> </p><div>текст вне блоков</div></div>`
	_, err := TkKonstruktor{}.Extract(mustDoc(t, html))
	if !errors.Is(err, domain.ErrEmptyArticle) {
		t.Fatalf("expected ErrEmptyArticle, got %v", err)
	}
}

func TestResolveURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		href string
		want string
		ok   bool
	}{
		{href: "/a/b", want: "https://site.ru/a/b", ok: true},
		{href: "c", want: "https://site.ru/list/c", ok: true},
		{href: "https://other.ru/x#top", want: "https://other.ru/x", ok: true},
		{href: "#", ok: false},
		{href: "javascript:void(0)", ok: false},
		{href: "mailto:a@b.ru", ok: false},
		{href: "  ", ok: false},
	}

	for _, tc := range cases {
		got, ok := resolveURL("https://site.ru/list/", tc.href)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("%q: got (%q, %v), want (%q, %v)", tc.href, got, ok, tc.want, tc.ok)
		}
	}
}
