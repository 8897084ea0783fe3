// Package tautulli resolves audio track details for a library item through
// the Tautulli API.
package tautulli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/slipstream/tautulli-notify/internal/config"
	"github.com/slipstream/tautulli-notify/internal/httpx"
)

var (
	ErrAPIError  = errors.New("tautulli API error")
	ErrNoStreams = errors.New("no streams in metadata")
)

const (
	apiPath = "/api/v2"

	// DefaultTimeout is used when the configured timeout is zero.
	DefaultTimeout = 10 * time.Second
)

// Client is a Tautulli API client.
type Client struct {
	httpClient *http.Client
	config     config.TautulliConfig
	logger     zerolog.Logger
}

// NewClient creates a new Tautulli client.
func NewClient(cfg config.TautulliConfig, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		config: cfg,
		logger: logger.With().Str("component", "tautulli").Logger(),
	}
}

// IsConfigured returns true when audio lookup is enabled and the URL and API
// key are set.
func (c *Client) IsConfigured() bool {
	return c.config.AudioInfo && c.config.URL != "" && c.config.APIKey != ""
}

// AudioTracks returns the audio tracks of the item identified by ratingKey.
// It never fails: any problem is logged and yields no tracks.
func (c *Client) AudioTracks(ctx context.Context, ratingKey string) []AudioTrack {
	if !c.IsConfigured() || strings.TrimSpace(ratingKey) == "" {
		return nil
	}

	streams, err := c.streams(ctx, ratingKey)
	if err != nil {
		c.logger.Warn().Err(err).Str("ratingKey", ratingKey).Msg("Failed to fetch audio metadata")
		return nil
	}

	tracks := AudioTracksFromStreams(streams)
	c.logger.Debug().
		Str("ratingKey", ratingKey).
		Int("streams", len(streams)).
		Int("audioTracks", len(tracks)).
		Msg("Audio metadata resolved")
	return tracks
}

// AudioSummary returns the labelled audio track summary, or "" when no audio
// tracks were found.
func (c *Client) AudioSummary(ctx context.Context, ratingKey, label string) string {
	return FormatTracks(c.AudioTracks(ctx, ratingKey), label)
}

// AudioTracksFromStreams keeps the audio streams and converts them to tracks.
func AudioTracksFromStreams(streams []Stream) []AudioTrack {
	var tracks []AudioTrack
	for _, s := range streams {
		if !s.Type.IsAudio() {
			continue
		}
		tracks = append(tracks, AudioTrack{
			Language: LanguageName(s.AudioLanguageCode),
			Layout:   ChannelLayout(s.AudioChannelLayout),
		})
	}
	return tracks
}

// FormatTracks joins tracks with ", " and prefixes label. Empty when there
// are no tracks.
func FormatTracks(tracks []AudioTrack, label string) string {
	if len(tracks) == 0 {
		return ""
	}
	parts := make([]string, len(tracks))
	for i, t := range tracks {
		parts[i] = t.String()
	}
	return label + strings.Join(parts, ", ")
}

func (c *Client) streams(ctx context.Context, ratingKey string) ([]Stream, error) {
	params := url.Values{}
	params.Set("apikey", c.config.APIKey)
	params.Set("cmd", "get_metadata")
	params.Set("rating_key", ratingKey)

	var result metadataResponse
	if err := c.doRequest(ctx, c.endpoint(), params, &result); err != nil {
		return nil, err
	}

	if result.Response.Result != "" && result.Response.Result != "success" {
		return nil, fmt.Errorf("%w: %s %s", ErrAPIError, result.Response.Result, result.Response.Message)
	}

	media := result.Response.Data.MediaInfo
	if len(media) == 0 || len(media[0].Parts) == 0 {
		return nil, ErrNoStreams
	}
	return media[0].Parts[0].Streams, nil
}

func (c *Client) endpoint() string {
	base := strings.TrimRight(c.config.URL, "/")
	if strings.HasSuffix(base, apiPath) {
		return base
	}
	return base + apiPath
}

func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, result any) error {
	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", config.UserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", httpx.RedactError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", ErrAPIError, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
