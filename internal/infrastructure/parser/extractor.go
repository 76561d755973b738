package parser

import (
	"context"
	"fmt"
	"log/slog"

	"GardenBot/internal/domain"
	"GardenBot/internal/ports"
	"GardenBot/internal/scanner"
)

// Extractor fetches an article page and hands it to the matching site adapter.
type Extractor struct {
	registry *scanner.Registry
	fetcher  DocumentFetcher
	logger   *slog.Logger
}

var _ ports.ArticleExtractor = (*Extractor)(nil)

// NewExtractor fetches article pages and hands them to the matching site.
func NewExtractor(reg *scanner.Registry, fetcher DocumentFetcher, log *slog.Logger) *Extractor {
	return &Extractor{registry: reg, fetcher: fetcher, logger: log}
}

// Extract resolves the site before fetching, so an unsupported host costs no request.
func (e *Extractor) Extract(ctx context.Context, url string) (domain.ParsedArticle, error) {
	site, err := e.registry.MustResolve(url)
	if err != nil {
		return domain.ParsedArticle{}, err
	}

	doc, err := e.fetcher.Document(ctx, url)
	if err != nil {
		return domain.ParsedArticle{}, err
	}

	article, err := site.Extract(doc)
	if err != nil {
		return domain.ParsedArticle{}, fmt.Errorf("extract %s: %w", url, err)
	}
	article.URL = url

	if e.logger != nil {
		e.logger.Debug("article extracted", "url", url, "site", site.Name(), "title", article.Title, "body_chars", len([]rune(article.Body)))
	}
	return article, nil
}
