package formatter

import (
	"strings"
	"unicode/utf8"
)

// Limits bounds a rendered text. Messages longer than Max are cut at the
// last paragraph break at or before CutAt, then the notice is appended.
type Limits struct {
	Max   int
	CutAt int
}

const noticeHead = "…(статья слишком длинная, полная версия по "

// Notice is the "continued at source" line; its last word links to url.
func Notice(mode, url string) string {
	return Escape(mode, noticeHead) + Link(mode, "ссылке", url) + Escape(mode, ")")
}

// Truncate returns text unchanged when it fits lim.Max runes. Otherwise the
// result ends with Notice and is at most lim.Max runes long.
func Truncate(mode, text, url string, lim Limits) string {
	if lim.Max <= 0 || utf8.RuneCountInString(text) <= lim.Max {
		return text
	}

	footer := "\n\n" + Notice(mode, url)
	footerLen := utf8.RuneCountInString(footer)

	cut := lim.CutAt
	if cut <= 0 || cut > lim.Max-footerLen {
		cut = lim.Max - footerLen
	}
	if cut <= 0 {
		return string([]rune(footer)[:lim.Max])
	}

	head := string([]rune(text)[:cut])
	if i := strings.LastIndex(head, "\n\n"); i > 0 {
		head = head[:i]
	} else {
		head = dropBrokenEscape(mode, head)
	}
	return strings.TrimRight(head, " \n") + footer
}

// dropBrokenEscape removes a dangling escape left by a hard cut.
func dropBrokenEscape(mode, head string) string {
	switch mode {
	case ModeHTML:
		if amp := strings.LastIndex(head, "&"); amp >= 0 && !strings.Contains(head[amp:], ";") {
			return head[:amp]
		}
	default:
		trailing := len(head) - len(strings.TrimRight(head, `\`))
		if trailing%2 == 1 {
			return head[:len(head)-1]
		}
	}
	return head
}
