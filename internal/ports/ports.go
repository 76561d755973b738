package ports

import (
	"context"
	"time"

	"GardenBot/internal/domain"
)

// CandidateSource scans every configured source and returns the aggregated candidates.
// A single source failing is logged by the implementation and does not fail the call.
type CandidateSource interface {
	Discover(ctx context.Context, now time.Time) ([]domain.Candidate, error)
}

// ArticleExtractor fetches an article page and extracts title and body.
type ArticleExtractor interface {
	Extract(ctx context.Context, url string) (domain.ParsedArticle, error)
}

// ImageResolver finds a preview image for a candidate.
type ImageResolver interface {
	Resolve(ctx context.Context, candidate domain.Candidate) (string, error)
}

// Summarizer reduces an article to a bullet digest with an optional series tag.
type Summarizer interface {
	Summarize(ctx context.Context, article domain.ParsedArticle, now time.Time) domain.Digest
}

// MessageFormatter renders escaped, length-bounded posts.
type MessageFormatter interface {
	Article(article domain.ParsedArticle, digest domain.Digest, candidate domain.Candidate, imageURL string) domain.OutboundMessage
	Tip() domain.OutboundMessage
}

// Publisher is the outbound channel capability.
type Publisher interface {
	SendText(ctx context.Context, channel, text, parseMode string) error
	SendPhoto(ctx context.Context, channel, imageURL, caption, parseMode string) error
}

// PostStore reads and writes the persisted post log.
type PostStore interface {
	Load(ctx context.Context) (domain.PostLog, error)
	Save(ctx context.Context, log domain.PostLog) error
}

// ChatClient sends a prompt to an LLM and returns the plain-text reply.
type ChatClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Rand picks an index in [0, n). *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}
