// Package render turns a request's fields into channel-specific message text.
package render

import (
	"errors"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/slipstream/tautulli-notify/internal/notification/types"
)

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrTemplateMissing      = errors.New("template missing")
	ErrInvalidTemplate      = errors.New("invalid template")
	ErrUnknownFlavor        = errors.New("unknown markup flavor")
)

const (
	startTag = "{"
	endTag   = "}"
)

// Flavor is the markup a channel understands.
type Flavor string

const (
	FlavorMarkdown Flavor = "markdown" // WhatsApp *bold*
	FlavorHTML     Flavor = "html"     // Telegram parse_mode=HTML
)

// Renderer renders messages from an immutable template set.
type Renderer struct {
	set *TemplateSet
}

// New creates a Renderer over set, which must come from DefaultTemplates or
// LoadTemplates.
func New(set *TemplateSet) *Renderer {
	return &Renderer{set: set}
}

// AudioLabel returns the prefix used for the audio track summary in flavor.
func (r *Renderer) AudioLabel(flavor Flavor) string {
	set, ok := r.set.Flavor(flavor)
	if !ok {
		return ""
	}
	return set.AudioLabel
}

// Render selects the template for mediaType and substitutes every
// placeholder. Absent fields render as the empty string.
func (r *Renderer) Render(flavor Flavor, mediaType types.MediaType, fields types.Fields) (string, error) {
	if !mediaType.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMediaType, mediaType)
	}

	set, ok := r.set.Flavor(flavor)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFlavor, flavor)
	}

	tmpl, ok := set.compiled[mediaType]
	if !ok {
		return "", fmt.Errorf("%w: %s/%s", ErrTemplateMissing, flavor, mediaType)
	}

	lookup := fields.Get
	if flavor == FlavorHTML {
		lookup = func(key string) string {
			return htmlValue(key, fields.Get(key), set.SynopsisLabel)
		}
	}

	return tmpl.ExecuteFuncStringWithErr(func(w io.Writer, tag string) (int, error) {
		return io.WriteString(w, lookup(strings.TrimSpace(tag)))
	})
}

// htmlValue escapes raw and applies the per-field HTML transforms.
func htmlValue(key, raw, synopsisLabel string) string {
	switch key {
	case types.FieldSummary:
		return SynopsisHTML(raw, synopsisLabel)
	case types.FieldActors, types.FieldRating, types.FieldAudio:
		return BoldHTML(html.EscapeString(raw))
	default:
		return html.EscapeString(raw)
	}
}
