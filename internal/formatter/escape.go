// Package formatter renders posts for the Telegram parse modes and keeps them
// within the message and caption limits.
package formatter

import (
	"fmt"
	"strings"
)

// Telegram parse modes.
const (
	ModeMarkdownV2 = "MarkdownV2"
	ModeMarkdown   = "Markdown"
	ModeHTML       = "HTML"
)

var (
	markdownV2Escaper = strings.NewReplacer(
		`\`, `\\`, "_", `\_`, "*", `\*`, "[", `\[`, "]", `\]`, "(", `\(`, ")", `\)`,
		"~", `\~`, "`", "\\`", ">", `\>`, "#", `\#`, "+", `\+`, "-", `\-`, "=", `\=`,
		"|", `\|`, "{", `\{`, "}", `\}`, ".", `\.`, "!", `\!`,
	)
	markdownV2URLEscaper = strings.NewReplacer(`\`, `\\`, ")", `\)`)
	markdownEscaper      = strings.NewReplacer("_", `\_`, "*", `\*`, "`", "\\`", "[", `\[`)
	htmlEscaper          = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	htmlAttrEscaper      = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

// ValidMode reports whether mode is one of the supported parse modes.
func ValidMode(mode string) bool {
	switch mode {
	case ModeMarkdownV2, ModeMarkdown, ModeHTML:
		return true
	}
	return false
}

// Escape makes plain text safe for mode. Unknown modes get MarkdownV2 rules.
func Escape(mode, text string) string {
	switch mode {
	case ModeHTML:
		return htmlEscaper.Replace(text)
	case ModeMarkdown:
		return markdownEscaper.Replace(text)
	default:
		return markdownV2Escaper.Replace(text)
	}
}

// Bold escapes text and wraps it in the mode's bold markup.
func Bold(mode, text string) string {
	if mode == ModeHTML {
		return "<b>" + Escape(mode, text) + "</b>"
	}
	return "*" + Escape(mode, text) + "*"
}

// Italic escapes text and wraps it in the mode's italic markup.
func Italic(mode, text string) string {
	if mode == ModeHTML {
		return "<i>" + Escape(mode, text) + "</i>"
	}
	return "_" + Escape(mode, text) + "_"
}

// Link renders an inline link with escaped label.
func Link(mode, label, url string) string {
	switch mode {
	case ModeHTML:
		return fmt.Sprintf(`<a href="%s">%s</a>`, htmlAttrEscaper.Replace(url), Escape(mode, label))
	case ModeMarkdown:
		return "[" + Escape(mode, label) + "](" + url + ")"
	default:
		return "[" + Escape(mode, label) + "](" + markdownV2URLEscaper.Replace(url) + ")"
	}
}
