package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable override.
const EnvPrefix = "TAUTULLI_NOTIFY"

// Config holds all application configuration. It is loaded once per run and
// never mutated afterwards.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	WhatsApp  WhatsAppConfig  `mapstructure:"whatsapp"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Tautulli  TautulliConfig  `mapstructure:"tautulli"`
	Poster    PosterConfig    `mapstructure:"poster"`
	Templates TemplatesConfig `mapstructure:"templates"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=trace debug info warn warning error"`
	Format     string `mapstructure:"format" validate:"oneof=console json"`
	Path       string `mapstructure:"path"`
	Console    bool   `mapstructure:"console"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"gte=0"` // 0 keeps a plain append-only file
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"gte=0"`
	Compress   bool   `mapstructure:"compress"`
}

// WhatsAppConfig holds the WhatsApp bridge (go-whatsapp-web-multidevice) settings.
type WhatsAppConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	URL         string        `mapstructure:"url" validate:"omitempty,url"`
	Phone       string        `mapstructure:"phone"`
	Token       string        `mapstructure:"token"`
	Username    string        `mapstructure:"username"`
	Password    string        `mapstructure:"password"`
	Compress    bool          `mapstructure:"compress"`
	UploadImage bool          `mapstructure:"upload_image"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// TelegramConfig holds Telegram Bot API settings.
type TelegramConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	BotToken   string        `mapstructure:"bot_token"`
	ChatID     string        `mapstructure:"chat_id"`
	TopicID    int64         `mapstructure:"topic_id" validate:"gte=0"`
	Silent     bool          `mapstructure:"silent"`
	APIBaseURL string        `mapstructure:"api_base_url" validate:"omitempty,url"`
	Timeout    time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// TautulliConfig holds the metadata API settings used for audio track lookup.
type TautulliConfig struct {
	URL       string        `mapstructure:"url" validate:"omitempty,url"`
	APIKey    string        `mapstructure:"api_key"`
	AudioInfo bool          `mapstructure:"audio_info"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// PosterConfig controls poster downloads.
type PosterConfig struct {
	MaxAttempts      int           `mapstructure:"max_attempts" validate:"gte=1,lte=10"`
	RetryDelay       time.Duration `mapstructure:"retry_delay" validate:"gte=0"`
	TempDir          string        `mapstructure:"temp_dir"`
	DefaultExtension string        `mapstructure:"default_extension" validate:"startswith=."`
	Timeout          time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// TemplatesConfig points at an optional template override file.
type TemplatesConfig struct {
	File string `mapstructure:"file"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			Path:       "/config/notify_whatsapp.log",
			MaxBackups: 5,
			MaxAgeDays: 30,
		},
		WhatsApp: WhatsAppConfig{
			Enabled:  true,
			Compress: true,
			Timeout:  30 * time.Second,
		},
		Telegram: TelegramConfig{
			Enabled:    false,
			APIBaseURL: "https://api.telegram.org",
			Timeout:    30 * time.Second,
		},
		Tautulli: TautulliConfig{
			AudioInfo: true,
			Timeout:   10 * time.Second,
		},
		Poster: PosterConfig{
			MaxAttempts:      3,
			RetryDelay:       10 * time.Second,
			DefaultExtension: ".png",
			Timeout:          30 * time.Second,
		},
	}
}

// Load reads configuration from file and environment variables.
// Priority: environment variables > config file > defaults
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("tautulli-notify")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/config")
		v.AddConfigPath("$HOME/.config/tautulli-notify")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// A missing file is fine when searching; an explicit path must exist.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value formats. Missing credentials are not an error: they
// only disable the feature that needs them.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.path", d.Logging.Path)
	v.SetDefault("logging.console", d.Logging.Console)
	v.SetDefault("logging.max_size_mb", d.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", d.Logging.MaxBackups)
	v.SetDefault("logging.max_age_days", d.Logging.MaxAgeDays)
	v.SetDefault("logging.compress", d.Logging.Compress)

	v.SetDefault("whatsapp.enabled", d.WhatsApp.Enabled)
	v.SetDefault("whatsapp.url", d.WhatsApp.URL)
	v.SetDefault("whatsapp.phone", d.WhatsApp.Phone)
	v.SetDefault("whatsapp.token", d.WhatsApp.Token)
	v.SetDefault("whatsapp.username", d.WhatsApp.Username)
	v.SetDefault("whatsapp.password", d.WhatsApp.Password)
	v.SetDefault("whatsapp.compress", d.WhatsApp.Compress)
	v.SetDefault("whatsapp.upload_image", d.WhatsApp.UploadImage)
	v.SetDefault("whatsapp.timeout", d.WhatsApp.Timeout)

	v.SetDefault("telegram.enabled", d.Telegram.Enabled)
	v.SetDefault("telegram.bot_token", d.Telegram.BotToken)
	v.SetDefault("telegram.chat_id", d.Telegram.ChatID)
	v.SetDefault("telegram.topic_id", d.Telegram.TopicID)
	v.SetDefault("telegram.silent", d.Telegram.Silent)
	v.SetDefault("telegram.api_base_url", d.Telegram.APIBaseURL)
	v.SetDefault("telegram.timeout", d.Telegram.Timeout)

	v.SetDefault("tautulli.url", d.Tautulli.URL)
	v.SetDefault("tautulli.api_key", d.Tautulli.APIKey)
	v.SetDefault("tautulli.audio_info", d.Tautulli.AudioInfo)
	v.SetDefault("tautulli.timeout", d.Tautulli.Timeout)

	v.SetDefault("poster.max_attempts", d.Poster.MaxAttempts)
	v.SetDefault("poster.retry_delay", d.Poster.RetryDelay)
	v.SetDefault("poster.temp_dir", d.Poster.TempDir)
	v.SetDefault("poster.default_extension", d.Poster.DefaultExtension)
	v.SetDefault("poster.timeout", d.Poster.Timeout)

	v.SetDefault("templates.file", d.Templates.File)
}

// AuthorizationHeader returns the Authorization header value for the WhatsApp
// bridge: the configured token, or a Basic header built from username and
// password. Empty when neither is configured.
func (c *WhatsAppConfig) AuthorizationHeader() string {
	if c.Token != "" {
		return c.Token
	}
	if c.Username != "" && c.Password != "" {
		return BasicAuth(c.Username, c.Password)
	}
	return ""
}
