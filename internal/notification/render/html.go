package render

import (
	"html"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SynopsisMaxLength is the longest synopsis body, in characters, sent to
// Telegram before it is cut with an ellipsis.
const SynopsisMaxLength = 600

// These match the "*Label:* text" convention of the Tautulli script
// arguments. Text that doesn't follow it passes through unstructured.
var (
	labelMarker = regexp.MustCompile(`^\s*\*([^*\n]+)\*\s*`)
	boldMarker  = regexp.MustCompile(`\*([^*\n]+)\*`)
)

// SynopsisHTML turns "*Sinopse:* text" into a bold label followed by a
// quote block. The result is "" when no text follows the marker.
func SynopsisHTML(raw, defaultLabel string) string {
	label := defaultLabel
	body := raw
	if m := labelMarker.FindStringSubmatch(raw); m != nil {
		label = strings.TrimSpace(m[1])
		body = raw[len(m[0]):]
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}
	body = truncate(body, SynopsisMaxLength)

	var sb strings.Builder
	if label != "" {
		sb.WriteString("<b>")
		sb.WriteString(html.EscapeString(label))
		sb.WriteString("</b>\n")
	}
	sb.WriteString("<blockquote>")
	sb.WriteString(html.EscapeString(body))
	sb.WriteString("</blockquote>")
	return sb.String()
}

// BoldHTML converts *bold* spans to <b>bold</b>. The input must already be
// HTML-escaped.
func BoldHTML(escaped string) string {
	return boldMarker.ReplaceAllString(escaped, "<b>$1</b>")
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimRightFunc(string(runes[:max]), unicode.IsSpace) + "..."
}
