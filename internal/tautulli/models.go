package tautulli

import (
	"encoding/json"
	"strings"
)

// metadataResponse is the get_metadata envelope. Only the fields needed for
// audio track lookup are decoded.
type metadataResponse struct {
	Response struct {
		Result  string `json:"result"`
		Message string `json:"message"`
		Data    struct {
			MediaInfo []mediaInfo `json:"media_info"`
		} `json:"data"`
	} `json:"response"`
}

type mediaInfo struct {
	Parts []mediaPart `json:"parts"`
}

type mediaPart struct {
	Streams []Stream `json:"streams"`
}

// Stream is one stream descriptor of a media part.
type Stream struct {
	Type               StreamType `json:"type"`
	AudioCodec         string     `json:"audio_codec"`
	AudioLanguageCode  string     `json:"audio_language_code"`
	AudioChannelLayout string     `json:"audio_channel_layout"`
}

// StreamType is the Plex stream type. Tautulli sends it as a string ("2"),
// some versions as a number.
type StreamType string

// Plex stream type values.
const (
	StreamVideo    StreamType = "1"
	StreamAudio    StreamType = "2"
	StreamSubtitle StreamType = "3"
)

func (s *StreamType) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = StreamType(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = StreamType(n.String())
	return nil
}

// IsAudio reports whether the stream is an audio track.
func (s StreamType) IsAudio() bool {
	return s == StreamAudio || strings.EqualFold(string(s), "audio")
}

// AudioTrack is a display-ready audio track.
type AudioTrack struct {
	Language string
	Layout   string
}

// String renders the track as "Language (layout)".
func (t AudioTrack) String() string {
	if t.Layout == "" {
		return t.Language
	}
	return t.Language + " (" + t.Layout + ")"
}
