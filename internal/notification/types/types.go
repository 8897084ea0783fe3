// Package types contains shared type definitions for notification packages.
package types

import (
	"context"
	"maps"
)

// NotifierType identifies a notification channel
type NotifierType string

const (
	NotifierWhatsApp NotifierType = "whatsapp"
	NotifierTelegram NotifierType = "telegram"
)

// MediaType is the kind of item Tautulli reported as recently added
type MediaType string

const (
	MediaMovie   MediaType = "movie"
	MediaEpisode MediaType = "episode"
	MediaShow    MediaType = "show"
	MediaSeason  MediaType = "season"
)

// MediaTypes lists every media type a template exists for.
var MediaTypes = []MediaType{MediaMovie, MediaEpisode, MediaShow, MediaSeason}

// Valid reports whether m is one of the four known media types.
func (m MediaType) Valid() bool {
	switch m {
	case MediaMovie, MediaEpisode, MediaShow, MediaSeason:
		return true
	}
	return false
}

// Field keys used by templates. They match the Tautulli script argument names.
const (
	FieldServerName      = "server_name"
	FieldDatestamp       = "datestamp"
	FieldMediaType       = "media_type"
	FieldTitle           = "title"
	FieldShowName        = "show_name"
	FieldEpisodeName     = "episode_name"
	FieldSeasonNum       = "season_num"
	FieldEpisodeNum      = "episode_num"
	FieldDuration        = "duration"
	FieldDurationTime    = "duration_time"
	FieldGenres          = "genres"
	FieldRating          = "rating"
	FieldSummary         = "summary"
	FieldYear            = "year"
	FieldLibraryName     = "library_name"
	FieldPoster          = "poster"
	FieldContentRating   = "content_rating"
	FieldStudio          = "studio"
	FieldDirectors       = "directors"
	FieldActors          = "actors"
	FieldVideoWidth      = "video_width"
	FieldVideoHeight     = "video_height"
	FieldVideoResolution = "video_resolution"
	FieldFileSize        = "file_size"
	FieldShowYear        = "show_year"
	FieldRatingKey       = "rating_key"
	FieldAudio           = "audio"
)

// Request is one "recently added" notification as described by the CLI.
// Every text field defaults to the empty string.
type Request struct {
	ServerName      string
	Datestamp       string
	MediaType       MediaType
	Title           string
	ShowName        string
	EpisodeName     string
	SeasonNum       string
	EpisodeNum      string
	Duration        string
	DurationTime    string
	Genres          string
	Rating          string
	Summary         string
	Year            string
	LibraryName     string
	Poster          string
	ContentRating   string
	Studio          string
	Directors       string
	Actors          string
	VideoWidth      string
	VideoHeight     string
	VideoResolution string
	FileSize        string
	ShowYear        string
	RatingKey       string

	LogEnabled  bool
	AuthEnabled bool
}

// Fields returns the template view of the request.
func (r Request) Fields() Fields {
	return NewFields(map[string]string{
		FieldServerName:      r.ServerName,
		FieldDatestamp:       r.Datestamp,
		FieldMediaType:       string(r.MediaType),
		FieldTitle:           r.Title,
		FieldShowName:        r.ShowName,
		FieldEpisodeName:     r.EpisodeName,
		FieldSeasonNum:       r.SeasonNum,
		FieldEpisodeNum:      r.EpisodeNum,
		FieldDuration:        r.Duration,
		FieldDurationTime:    r.DurationTime,
		FieldGenres:          r.Genres,
		FieldRating:          r.Rating,
		FieldSummary:         r.Summary,
		FieldYear:            r.Year,
		FieldLibraryName:     r.LibraryName,
		FieldPoster:          r.Poster,
		FieldContentRating:   r.ContentRating,
		FieldStudio:          r.Studio,
		FieldDirectors:       r.Directors,
		FieldActors:          r.Actors,
		FieldVideoWidth:      r.VideoWidth,
		FieldVideoHeight:     r.VideoHeight,
		FieldVideoResolution: r.VideoResolution,
		FieldFileSize:        r.FileSize,
		FieldShowYear:        r.ShowYear,
		FieldRatingKey:       r.RatingKey,
	})
}

// Fields is an immutable key/value view over a request.
// Lookups of absent keys yield the empty string.
type Fields struct {
	values map[string]string
}

// NewFields copies values into a new Fields.
func NewFields(values map[string]string) Fields {
	return Fields{values: maps.Clone(values)}
}

// Get returns the value for key, or "" when the key is absent.
func (f Fields) Get(key string) string {
	return f.values[key]
}

// With returns a copy of f with key set to value.
func (f Fields) With(key, value string) Fields {
	values := maps.Clone(f.values)
	if values == nil {
		values = make(map[string]string, 1)
	}
	values[key] = value
	return Fields{values: values}
}

// Message is a rendered notification ready for one channel.
type Message struct {
	Caption   string
	PosterURL string
	// PosterPath is a local copy of the poster, set only when the channel uploads
	// the image instead of referencing it by URL.
	PosterPath string
	Auth       bool
}

// Notifier is the interface every outbound channel implements
type Notifier interface {
	Type() NotifierType
	Name() string
	Enabled() bool
	Send(ctx context.Context, msg Message) error
}
