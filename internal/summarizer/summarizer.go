// Package summarizer turns an extracted article into a short bullet digest
// with an optional series label.
package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"GardenBot/internal/config"
	"GardenBot/internal/domain"
	"GardenBot/internal/ports"
)

// BulletPrefix starts every digest line.
const BulletPrefix = "• "

// Summarizer implements ports.Summarizer. When a ChatClient is set it writes
// the bullets; any failure falls back to sentence picking.
type Summarizer struct {
	cfg        config.SummarizerConfig
	classifier Classifier
	chat       ports.ChatClient
	logger     *slog.Logger
}

var _ ports.Summarizer = (*Summarizer)(nil)

// New builds a summarizer with the default rule tables. chat may be nil.
func New(cfg config.SummarizerConfig, chat ports.ChatClient, log *slog.Logger) *Summarizer {
	return &Summarizer{
		cfg:        cfg,
		classifier: NewClassifier(DefaultTopics, DefaultSeasons),
		chat:       chat,
		logger:     log,
	}
}

// WithClassifier swaps the rule tables.
func (s *Summarizer) WithClassifier(c Classifier) *Summarizer {
	s.classifier = c
	return s
}

func (s *Summarizer) Summarize(ctx context.Context, article domain.ParsedArticle, now time.Time) domain.Digest {
	text := capRunes(article.Body, s.cfg.MaxInputChars)
	picked := s.Bullets(text)

	summary := strings.Join(picked, " ")
	if summary == "" {
		summary = text
	}
	digest := domain.Digest{
		Bullets: picked,
		Series:  s.classifier.Classify(article.Title, summary, now),
	}

	if s.chat != nil {
		if written, err := s.writeBullets(ctx, article.Title, text); err != nil {
			s.warn("llm bullets failed, using extracted sentences", "url", article.URL, "error", err)
		} else {
			digest.Bullets = written
		}
	}

	for i, b := range digest.Bullets {
		digest.Bullets[i] = BulletPrefix + b
	}
	return digest
}

// Bullets picks sentences whose length lies strictly between the configured bounds.
func (s *Summarizer) Bullets(text string) []string {
	var out []string
	for _, sentence := range splitSentences(text) {
		if len(out) >= s.cfg.MaxBullets {
			break
		}
		n := utf8.RuneCountInString(sentence)
		if n > s.cfg.MinSentence && n < s.cfg.MaxSentence {
			out = append(out, sentence)
		}
	}
	return out
}

func (s *Summarizer) writeBullets(ctx context.Context, title, text string) ([]string, error) {
	prompt := fmt.Sprintf("Заголовок: %s\n\n%s", title, text)
	reply, err := s.chat.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, line := range strings.Split(reply, "\n") {
		line = trimListMarker(line)
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) >= s.cfg.MaxBullets {
			break
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty reply")
	}
	return out, nil
}

// splitSentences cuts on . ! ? (kept) and on newlines (dropped).
func splitSentences(text string) []string {
	var (
		out     []string
		current strings.Builder
	)
	flush := func() {
		if s := strings.Join(strings.Fields(current.String()), " "); s != "" {
			out = append(out, s)
		}
		current.Reset()
	}

	for _, r := range text {
		switch r {
		case '\n', '\r':
			flush()
		case '.', '!', '?':
			current.WriteRune(r)
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return out
}

func trimListMarker(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "-•*–— ")
	// "1." or "2)" numbering
	digits := strings.IndexFunc(line, func(r rune) bool { return !unicode.IsDigit(r) })
	if digits > 0 && digits < len(line) && (line[digits] == '.' || line[digits] == ')') {
		line = line[digits+1:]
	}
	return strings.TrimSpace(line)
}

func capRunes(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

func (s *Summarizer) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
