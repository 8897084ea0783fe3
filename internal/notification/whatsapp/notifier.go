// Package whatsapp delivers notifications through a go-whatsapp-web-multidevice
// style HTTP bridge.
package whatsapp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/slipstream/tautulli-notify/internal/httpx"
	"github.com/slipstream/tautulli-notify/internal/notification/types"
	"github.com/slipstream/tautulli-notify/internal/poster"
)

// Settings contains WhatsApp bridge configuration
type Settings struct {
	URL   string
	Phone string
	// Authorization is the full header value, e.g. "Basic dXNlcjpwYXNz".
	Authorization  string
	Compress       bool
	ImageExtension string
}

// Notifier posts a captioned image to the bridge
type Notifier struct {
	name       string
	settings   Settings
	httpClient *http.Client
	logger     zerolog.Logger
}

// New creates a new WhatsApp notifier
func New(name string, settings Settings, httpClient *http.Client, logger zerolog.Logger) *Notifier {
	if settings.ImageExtension == "" {
		settings.ImageExtension = poster.DefaultExtension
	}
	return &Notifier{
		name:       name,
		settings:   settings,
		httpClient: httpClient,
		logger:     logger.With().Str("notifier", "whatsapp").Str("name", name).Logger(),
	}
}

func (n *Notifier) Type() types.NotifierType {
	return types.NotifierWhatsApp
}

func (n *Notifier) Name() string {
	return n.name
}

func (n *Notifier) Enabled() bool {
	return n.settings.URL != ""
}

// Send posts msg to the bridge. When msg.PosterPath is set the file is
// attached as "image"; otherwise the poster is referenced by URL.
func (n *Notifier) Send(ctx context.Context, msg types.Message) error {
	if !n.Enabled() {
		return nil
	}

	body, contentType, err := n.buildForm(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.settings.URL, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	if msg.Auth && n.settings.Authorization != "" {
		req.Header.Set("Authorization", n.settings.Authorization)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", httpx.RedactError(err))
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	n.logger.Info().
		Int("status", resp.StatusCode).
		Str("response", string(respBody)).
		Msg("WhatsApp bridge responded")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp returned status %d", resp.StatusCode)
	}

	return nil
}

func (n *Notifier) buildForm(msg types.Message) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("phone", n.settings.Phone); err != nil {
		return nil, "", fmt.Errorf("failed to write form: %w", err)
	}

	if msg.PosterPath != "" {
		if err := attachFile(w, "image", msg.PosterPath); err != nil {
			return nil, "", err
		}
	} else {
		imageURL := poster.WithImageExtension(msg.PosterURL, n.settings.ImageExtension)
		if err := w.WriteField("image_url", imageURL); err != nil {
			return nil, "", fmt.Errorf("failed to write form: %w", err)
		}
	}

	if err := w.WriteField("caption", msg.Caption); err != nil {
		return nil, "", fmt.Errorf("failed to write form: %w", err)
	}
	if err := w.WriteField("compress", strconv.FormatBool(n.settings.Compress)); err != nil {
		return nil, "", fmt.Errorf("failed to write form: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to write form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func attachFile(w *multipart.Writer, field, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open poster: %w", err)
	}
	defer f.Close()

	part, err := w.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to write form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("failed to attach poster: %w", err)
	}
	return nil
}
