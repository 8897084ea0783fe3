// Package poster downloads poster images with bounded retry on rate limiting.
package poster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/slipstream/tautulli-notify/internal/config"
	"github.com/slipstream/tautulli-notify/internal/httpx"
)

var (
	ErrRateLimited       = errors.New("poster host rate limited")
	ErrUnexpectedStatus  = errors.New("unexpected poster response status")
	ErrAttemptsExhausted = errors.New("poster download attempts exhausted")
)

const (
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 10 * time.Second
	DefaultTimeout     = 30 * time.Second
)

// Fetcher downloads poster images.
type Fetcher struct {
	httpClient *http.Client
	clock      clockwork.Clock
	config     config.PosterConfig
	logger     zerolog.Logger
}

// New creates a Fetcher. Retry delays wait on clock.
func New(cfg config.PosterConfig, clock clockwork.Clock, logger zerolog.Logger) *Fetcher {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.DefaultExtension == "" {
		cfg.DefaultExtension = DefaultExtension
	}
	return &Fetcher{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		clock:      clock,
		config:     cfg,
		logger:     logger.With().Str("component", "poster").Logger(),
	}
}

// TempPath returns a fresh path for a downloaded poster. The caller removes
// the file once it is done with it.
func (f *Fetcher) TempPath(sourceURL string) string {
	dir := f.config.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "poster-"+uuid.NewString()+Extension(sourceURL, f.config.DefaultExtension))
}

// Download saves url to dest. A 429 response or a network error is retried
// after the configured delay, up to MaxAttempts attempts in total; any other
// non-200 status fails at once. dest never holds a partial file on failure.
func (f *Fetcher) Download(ctx context.Context, url, dest string) error {
	maxAttempts := f.config.MaxAttempts
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		retry, err := f.tryDownload(ctx, url, dest)
		if err == nil {
			if attempt > 1 {
				f.logger.Info().Int("attempt", attempt).Msg("Poster downloaded after retry")
			}
			return nil
		}

		lastErr = err
		if !retry {
			return err
		}
		if attempt == maxAttempts {
			break
		}

		f.logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("maxAttempts", maxAttempts).
			Dur("nextRetryIn", f.config.RetryDelay).
			Msg("Poster download failed, will retry")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-f.clock.After(f.config.RetryDelay):
		}
	}

	return fmt.Errorf("%w (%d): %w", ErrAttemptsExhausted, maxAttempts, lastErr)
}

// tryDownload makes one attempt. retry reports whether a failure is worth
// another attempt.
func (f *Fetcher) tryDownload(ctx context.Context, url, dest string) (retry bool, err error) {
	resp, err := f.get(ctx, url)
	if err != nil {
		return ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests:
		return true, ErrRateLimited
	default:
		return false, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	out, err := os.Create(dest)
	if err != nil {
		return false, fmt.Errorf("failed to create poster file: %w", err)
	}

	// A body cut short is treated like a network error.
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(dest)
		return ctx.Err() == nil, fmt.Errorf("failed to write poster file: %w", err)
	}

	if err := out.Close(); err != nil {
		os.Remove(dest)
		return false, fmt.Errorf("failed to write poster file: %w", err)
	}
	return false, nil
}

// Bytes fetches url once and returns the body.
func (f *Fetcher) Bytes(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read poster: %w", err)
	}
	return data, nil
}

func (f *Fetcher) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", config.UserAgent())

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch poster: %w", httpx.RedactError(err))
	}
	return resp, nil
}
