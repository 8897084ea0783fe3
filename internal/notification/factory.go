package notification

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/slipstream/tautulli-notify/internal/config"
	"github.com/slipstream/tautulli-notify/internal/notification/render"
	"github.com/slipstream/tautulli-notify/internal/notification/telegram"
	"github.com/slipstream/tautulli-notify/internal/notification/whatsapp"
)

const defaultTimeout = 30 * time.Second

// Factory creates Notifier instances from Config
type Factory struct {
	cfg    *config.Config
	images telegram.ImageSource
	logger zerolog.Logger
}

// NewFactory creates a new notification factory. images backs the Telegram
// upload fallback.
func NewFactory(cfg *config.Config, images telegram.ImageSource, logger zerolog.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		images: images,
		logger: logger,
	}
}

// Create creates a Notifier of the given type
func (f *Factory) Create(t NotifierType) (Notifier, error) {
	switch t {
	case NotifierWhatsApp:
		return f.createWhatsApp(), nil
	case NotifierTelegram:
		return f.createTelegram(), nil
	default:
		return nil, fmt.Errorf("unsupported notifier type: %s", t)
	}
}

// Channels returns the channels that are enabled and have the settings they
// need, in dispatch order.
func (f *Factory) Channels() []Channel {
	var channels []Channel

	for _, t := range []NotifierType{NotifierWhatsApp, NotifierTelegram} {
		if !f.enabled(t) {
			continue
		}

		n, err := f.Create(t)
		if err != nil {
			f.logger.Error().Err(err).Str("type", string(t)).Msg("Failed to create notifier")
			continue
		}
		if !n.Enabled() {
			f.logger.Debug().Str("type", string(t)).Msg("Notifier missing settings, skipping")
			continue
		}

		channels = append(channels, Channel{
			Notifier:     n,
			Flavor:       flavorFor(t),
			UploadPoster: t == NotifierWhatsApp && f.cfg.WhatsApp.UploadImage,
		})
	}

	return channels
}

func (f *Factory) enabled(t NotifierType) bool {
	switch t {
	case NotifierWhatsApp:
		return f.cfg.WhatsApp.Enabled
	case NotifierTelegram:
		return f.cfg.Telegram.Enabled
	}
	return false
}

// flavorFor returns the markup a channel type renders in.
func flavorFor(t NotifierType) render.Flavor {
	if t == NotifierTelegram {
		return render.FlavorHTML
	}
	return render.FlavorMarkdown
}

func (f *Factory) createWhatsApp() *whatsapp.Notifier {
	cfg := f.cfg.WhatsApp
	return whatsapp.New("whatsapp", whatsapp.Settings{
		URL:            cfg.URL,
		Phone:          cfg.Phone,
		Authorization:  cfg.AuthorizationHeader(),
		Compress:       cfg.Compress,
		ImageExtension: f.cfg.Poster.DefaultExtension,
	}, newHTTPClient(cfg.Timeout), f.logger)
}

func (f *Factory) createTelegram() *telegram.Notifier {
	cfg := f.cfg.Telegram
	return telegram.New("telegram", telegram.Settings{
		BotToken:   cfg.BotToken,
		ChatID:     cfg.ChatID,
		TopicID:    cfg.TopicID,
		Silent:     cfg.Silent,
		APIBaseURL: cfg.APIBaseURL,
	}, newHTTPClient(cfg.Timeout), f.images, f.logger)
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
