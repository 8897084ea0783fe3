package render

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynopsisHTML(t *testing.T) {
	out := SynopsisHTML("*Sinopse:* Some text", "Sinopse:")

	assert.Equal(t, "<b>Sinopse:</b>\n<blockquote>Some text</blockquote>", out)

	doc := parseHTML(t, out)
	assert.Equal(t, "Sinopse:", doc.Find("b").Text())
	assert.Equal(t, "Some text", doc.Find("blockquote").Text())
}

func TestSynopsisHTML_EmptyBody(t *testing.T) {
	tests := []string{
		"",
		"   ",
		"*Sinopse:*",
		"*Sinopse:*   ",
		"  *Sinopse:* \n ",
	}

	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, "", SynopsisHTML(in, "Sinopse:"))
		})
	}
}

func TestSynopsisHTML_NoMarkerUsesDefaultLabel(t *testing.T) {
	out := SynopsisHTML("Plain overview text.", "Sinopse:")
	assert.Equal(t, "<b>Sinopse:</b>\n<blockquote>Plain overview text.</blockquote>", out)

	out = SynopsisHTML("Plain overview text.", "")
	assert.Equal(t, "<blockquote>Plain overview text.</blockquote>", out)
}

func TestSynopsisHTML_CustomLabel(t *testing.T) {
	out := SynopsisHTML("*Resumo:* Texto", "Sinopse:")
	assert.Equal(t, "<b>Resumo:</b>\n<blockquote>Texto</blockquote>", out)
}

func TestSynopsisHTML_Truncates(t *testing.T) {
	body := strings.Repeat("á", SynopsisMaxLength+50)

	out := SynopsisHTML("*Sinopse:* "+body, "Sinopse:")
	doc := parseHTML(t, out)
	quoted := doc.Find("blockquote").Text()

	require.True(t, strings.HasSuffix(quoted, "..."))
	assert.Equal(t, SynopsisMaxLength+3, utf8.RuneCountInString(quoted))
}

func TestSynopsisHTML_ExactLengthNotTruncated(t *testing.T) {
	body := strings.Repeat("a", SynopsisMaxLength)

	out := SynopsisHTML(body, "Sinopse:")
	assert.NotContains(t, out, "...")
}

func TestSynopsisHTML_TruncationDoesNotSplitEntities(t *testing.T) {
	body := strings.Repeat("&", SynopsisMaxLength+10)

	out := SynopsisHTML(body, "")
	assert.Equal(t, "<blockquote>"+strings.Repeat("&amp;", SynopsisMaxLength)+"...</blockquote>", out)
}

func TestBoldHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"*Elenco:* A, B", "<b>Elenco:</b> A, B"},
		{"*a* and *b*", "<b>a</b> and <b>b</b>"},
		{"no markers", "no markers"},
		{"single * star", "single * star"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, BoldHTML(tt.in))
		})
	}
}
