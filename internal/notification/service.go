package notification

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/slipstream/tautulli-notify/internal/notification/render"
	"github.com/slipstream/tautulli-notify/internal/notification/types"
	"github.com/slipstream/tautulli-notify/internal/tautulli"
)

var (
	ErrValidation = errors.New("invalid notification request")
)

// AudioResolver looks up audio tracks for a Plex rating key.
type AudioResolver interface {
	AudioTracks(ctx context.Context, ratingKey string) []tautulli.AudioTrack
}

// PosterDownloader saves a poster locally for channels that upload it.
type PosterDownloader interface {
	TempPath(sourceURL string) string
	Download(ctx context.Context, url, dest string) error
}

// Service renders a request for every enabled channel and dispatches it
type Service struct {
	channels []Channel
	renderer *render.Renderer
	audio    AudioResolver
	posters  PosterDownloader
	logger   zerolog.Logger
}

// NewService creates a new notification service. audio may be nil, in which
// case messages carry no audio line.
func NewService(channels []Channel, renderer *render.Renderer, audio AudioResolver, posters PosterDownloader, logger zerolog.Logger) *Service {
	return &Service{
		channels: channels,
		renderer: renderer,
		audio:    audio,
		posters:  posters,
		logger:   logger.With().Str("component", "notification").Logger(),
	}
}

// Notify validates req and sends it on every channel in order. A failure on
// one channel is logged and does not stop the others. Only a validation
// failure is returned as an error; dispatch results come back as outcomes.
func (s *Service) Notify(ctx context.Context, req Request) ([]Outcome, error) {
	if req.Poster == "" {
		s.logger.Error().Msg("Poster URL is missing. Cannot send notification.")
		return nil, fmt.Errorf("%w: poster URL is missing", ErrValidation)
	}
	if !req.MediaType.Valid() {
		s.logger.Error().Str("mediaType", string(req.MediaType)).Msg("Unsupported media type")
		return nil, fmt.Errorf("%w: unsupported media type %q", ErrValidation, req.MediaType)
	}

	if len(s.channels) == 0 {
		s.logger.Info().Msg("No notification channel enabled")
		return nil, nil
	}

	s.logger.Debug().
		Str("mediaType", string(req.MediaType)).
		Int("channels", len(s.channels)).
		Msg("Dispatching notification")

	tracks := s.resolveAudio(ctx, req.RatingKey)
	fields := req.Fields()

	outcomes := make([]Outcome, 0, len(s.channels))
	for _, ch := range s.channels {
		outcome := s.dispatch(ctx, ch, req, fields, tracks)
		s.logOutcome(outcome)
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

func (s *Service) resolveAudio(ctx context.Context, ratingKey string) []tautulli.AudioTrack {
	if s.audio == nil || ratingKey == "" {
		return nil
	}
	tracks := s.audio.AudioTracks(ctx, ratingKey)
	s.logger.Debug().Int("tracks", len(tracks)).Str("ratingKey", ratingKey).Msg("Resolved audio tracks")
	return tracks
}

func (s *Service) dispatch(ctx context.Context, ch Channel, req Request, fields types.Fields, tracks []tautulli.AudioTrack) Outcome {
	outcome := Outcome{
		Channel: ch.Notifier.Type(),
		Name:    ch.Notifier.Name(),
	}

	if !ch.Notifier.Enabled() {
		outcome.Status = OutcomeSkipped
		return outcome
	}

	audio := tautulli.FormatTracks(tracks, s.renderer.AudioLabel(ch.Flavor))
	caption, err := s.renderer.Render(ch.Flavor, req.MediaType, fields.With(types.FieldAudio, audio))
	if err != nil {
		outcome.Status = OutcomeFailed
		outcome.Err = fmt.Errorf("failed to render message: %w", err)
		return outcome
	}

	msg := Message{
		Caption:   caption,
		PosterURL: req.Poster,
		Auth:      req.AuthEnabled,
	}

	if ch.UploadPoster && s.posters != nil {
		path := s.posters.TempPath(req.Poster)
		defer removeFile(path, s.logger)

		if err := s.posters.Download(ctx, req.Poster, path); err != nil {
			s.logger.Warn().Err(err).Str("name", outcome.Name).Msg("Poster download failed, sending poster URL instead")
		} else {
			msg.PosterPath = path
		}
	}

	if err := ch.Notifier.Send(ctx, msg); err != nil {
		outcome.Status = OutcomeFailed
		outcome.Err = err
		return outcome
	}

	outcome.Status = OutcomeSent
	return outcome
}

func (s *Service) logOutcome(o Outcome) {
	switch o.Status {
	case OutcomeFailed:
		s.logger.Error().
			Err(o.Err).
			Str("name", o.Name).
			Str("type", string(o.Channel)).
			Msg("Notification failed")
	case OutcomeSkipped:
		s.logger.Debug().Str("name", o.Name).Msg("Notification skipped")
	default:
		s.logger.Info().
			Str("name", o.Name).
			Str("type", string(o.Channel)).
			Msg("Notification sent successfully")
	}
}

func removeFile(path string, logger zerolog.Logger) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn().Err(err).Str("path", path).Msg("Failed to remove temporary poster")
	}
}
