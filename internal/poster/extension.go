package poster

import "strings"

// DefaultExtension is appended to poster URLs without an image extension.
const DefaultExtension = ".png"

// ImageExtensions are the suffixes recognized as image URLs.
var ImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}

// HasImageExtension reports whether u ends with a known image extension.
func HasImageExtension(u string) bool {
	lower := strings.ToLower(u)
	for _, ext := range ImageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// WithImageExtension appends ext to u unless u already ends with an image
// extension. The WhatsApp bridge decides the media type from the URL suffix.
func WithImageExtension(u, ext string) string {
	if HasImageExtension(u) {
		return u
	}
	if ext == "" {
		ext = DefaultExtension
	}
	return u + ext
}

// Extension returns the image extension of u, or def when it has none.
func Extension(u, def string) string {
	lower := strings.ToLower(u)
	for _, ext := range ImageExtensions {
		if strings.HasSuffix(lower, ext) {
			return ext
		}
	}
	return def
}
