package formatter

import (
	"strings"

	"GardenBot/internal/dates"
	"GardenBot/internal/domain"
	"GardenBot/internal/ports"
)

// Message styles.
const (
	StyleDigest = "digest"
	StyleFull   = "full"
)

var titleEmoji = []string{"🌱", "🌿", "🍅", "🥒", "🌻", "🍓", "🪴", "🌷", "🍏", "🥕", "🌼", "🍀"}

// Formatter renders articles and tips for one parse mode.
type Formatter struct {
	mode    string
	style   string
	text    Limits
	caption Limits
	rand    ports.Rand
}

var _ ports.MessageFormatter = (*Formatter)(nil)

// Options configures a Formatter. Zero limits fall back to Telegram's.
type Options struct {
	Mode    string
	Style   string
	Text    Limits
	Caption Limits
	Rand    ports.Rand
}

// New applies defaults to opts: MarkdownV2, digest style and Telegram limits.
func New(opts Options) *Formatter {
	f := &Formatter{
		mode:    opts.Mode,
		style:   opts.Style,
		text:    opts.Text,
		caption: opts.Caption,
		rand:    opts.Rand,
	}
	if !ValidMode(f.mode) {
		f.mode = ModeMarkdownV2
	}
	if f.style != StyleFull {
		f.style = StyleDigest
	}
	if f.text.Max <= 0 {
		f.text = Limits{Max: 4096, CutAt: 4000}
	}
	if f.caption.Max <= 0 {
		f.caption = Limits{Max: 1024, CutAt: 950}
	}
	return f
}

// Mode returns the parse mode every rendered text is escaped for.
func (f *Formatter) Mode() string {
	return f.mode
}

// Article renders the post for an extracted article. A non-empty imageURL
// turns the post into a photo whose caption obeys the caption limits.
func (f *Formatter) Article(article domain.ParsedArticle, digest domain.Digest, candidate domain.Candidate, imageURL string) domain.OutboundMessage {
	var text string
	if f.style == StyleFull || len(digest.Bullets) == 0 {
		text = f.full(article)
	} else {
		text = f.digest(article, digest, candidate)
	}

	limits := f.text
	if imageURL != "" {
		limits = f.caption
	}
	return domain.OutboundMessage{
		Text:      Truncate(f.mode, text, article.URL, limits),
		ImageURL:  imageURL,
		ParseMode: f.mode,
	}
}

// full mirrors the classic layout: bold title, whole body, source link.
func (f *Formatter) full(article domain.ParsedArticle) string {
	parts := []string{
		Bold(f.mode, f.emoji()+" "+strings.TrimSpace(article.Title)),
		Escape(f.mode, strings.TrimSpace(article.Body)),
		Link(f.mode, "Источник", article.URL),
	}
	return strings.Join(parts, "\n\n")
}

func (f *Formatter) digest(article domain.ParsedArticle, digest domain.Digest, candidate domain.Candidate) string {
	var parts []string
	if digest.Series != "" {
		parts = append(parts, Escape(f.mode, "#"+digest.Series))
	}

	header := Bold(f.mode, f.emoji()+" "+strings.TrimSpace(article.Title))
	if candidate.HasDate {
		header += "\n" + Italic(f.mode, dates.FormatDayMonthYear(candidate.PublishedAt))
	}
	parts = append(parts, header)

	bullets := make([]string, 0, len(digest.Bullets))
	for _, b := range digest.Bullets {
		bullets = append(bullets, Escape(f.mode, b))
	}
	parts = append(parts, strings.Join(bullets, "\n"))
	parts = append(parts, Link(f.mode, "Читать полностью", article.URL))
	return strings.Join(parts, "\n\n")
}

func (f *Formatter) emoji() string {
	return pick(f.rand, titleEmoji)
}

func pick(r ports.Rand, options []string) string {
	if len(options) == 0 {
		return ""
	}
	if r == nil {
		return options[0]
	}
	return options[r.IntN(len(options))]
}
