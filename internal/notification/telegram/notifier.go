package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/slipstream/tautulli-notify/internal/httpx"
	"github.com/slipstream/tautulli-notify/internal/notification/types"
	"github.com/slipstream/tautulli-notify/internal/poster"
)

// DefaultAPIBaseURL is the public Bot API host.
const DefaultAPIBaseURL = "https://api.telegram.org"

// Settings contains Telegram-specific configuration
type Settings struct {
	BotToken   string
	ChatID     string
	TopicID    int64
	Silent     bool
	APIBaseURL string
}

// ImageSource fetches poster bytes for the upload fallback.
type ImageSource interface {
	Bytes(ctx context.Context, url string) ([]byte, error)
}

// Notifier sends photo notifications via a Telegram bot
type Notifier struct {
	name       string
	settings   Settings
	httpClient *http.Client
	images     ImageSource
	logger     zerolog.Logger
}

// New creates a new Telegram notifier
func New(name string, settings Settings, httpClient *http.Client, images ImageSource, logger zerolog.Logger) *Notifier {
	if settings.APIBaseURL == "" {
		settings.APIBaseURL = DefaultAPIBaseURL
	}
	settings.APIBaseURL = strings.TrimRight(settings.APIBaseURL, "/")
	return &Notifier{
		name:       name,
		settings:   settings,
		httpClient: httpClient,
		images:     images,
		logger:     logger.With().Str("notifier", "telegram").Str("name", name).Logger(),
	}
}

func (n *Notifier) Type() types.NotifierType {
	return types.NotifierTelegram
}

func (n *Notifier) Name() string {
	return n.name
}

func (n *Notifier) Enabled() bool {
	return n.settings.BotToken != "" && n.settings.ChatID != ""
}

// Send posts the poster with msg.Caption. If the Bot API rejects the poster
// URL, the image is downloaded and uploaded once as a file instead.
func (n *Notifier) Send(ctx context.Context, msg types.Message) error {
	if !n.Enabled() {
		return nil
	}

	err := n.sendPhotoURL(ctx, msg)
	if err == nil {
		return nil
	}

	n.logger.Warn().Err(err).Msg("Photo by URL rejected, uploading image instead")

	if n.images == nil {
		return err
	}
	data, fetchErr := n.images.Bytes(ctx, msg.PosterURL)
	if fetchErr != nil {
		return fmt.Errorf("failed to fetch poster for upload: %w", fetchErr)
	}
	if err := n.sendPhotoUpload(ctx, msg, data); err != nil {
		return fmt.Errorf("photo upload failed: %w", err)
	}
	return nil
}

func (n *Notifier) endpoint() string {
	return fmt.Sprintf("%s/bot%s/sendPhoto", n.settings.APIBaseURL, n.settings.BotToken)
}

// params are the form fields shared by both delivery attempts.
func (n *Notifier) params(caption string) map[string]string {
	p := map[string]string{
		"chat_id":    n.settings.ChatID,
		"caption":    caption,
		"parse_mode": "HTML",
	}
	if n.settings.Silent {
		p["disable_notification"] = "true"
	}
	if n.settings.TopicID > 0 {
		p["message_thread_id"] = strconv.FormatInt(n.settings.TopicID, 10)
	}
	return p
}

func (n *Notifier) sendPhotoURL(ctx context.Context, msg types.Message) error {
	form := url.Values{}
	for k, v := range n.params(msg.Caption) {
		form.Set(k, v)
	}
	form.Set("photo", msg.PosterURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint(), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return n.do(req)
}

func (n *Notifier) sendPhotoUpload(ctx context.Context, msg types.Message, data []byte) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range n.params(msg.Caption) {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("failed to write form: %w", err)
		}
	}

	part, err := w.CreateFormFile("photo", "poster"+poster.Extension(msg.PosterURL, ".jpg"))
	if err != nil {
		return fmt.Errorf("failed to write form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("failed to write form: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to write form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint(), &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return n.do(req)
}

func (n *Notifier) do(req *http.Request) error {
	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", httpx.RedactError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var result struct {
			OK          bool   `json:"ok"`
			Description string `json:"description"`
		}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if err := json.Unmarshal(body, &result); err == nil && result.Description != "" {
			return fmt.Errorf("telegram error (status %d): %s", resp.StatusCode, result.Description)
		}
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}

	n.logger.Info().Msg("Telegram photo sent")
	return nil
}
