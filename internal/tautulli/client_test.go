package tautulli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slipstream/tautulli-notify/internal/config"
)

const testLabel = "🔊 *Áudio:* "

func newTestClient(server *httptest.Server) *Client {
	return NewClient(config.TautulliConfig{
		URL:       server.URL,
		APIKey:    "test-api-key",
		AudioInfo: true,
		Timeout:   5 * time.Second,
	}, zerolog.Nop())
}

func metadataHandler(t *testing.T, streams any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "test-api-key", q.Get("apikey"))
		assert.Equal(t, "get_metadata", q.Get("cmd"))
		assert.Equal(t, "12345", q.Get("rating_key"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"response": map[string]any{
				"result": "success",
				"data": map[string]any{
					"media_info": []any{
						map[string]any{
							"parts": []any{
								map[string]any{"streams": streams},
							},
						},
					},
				},
			},
		})
	}
}

func TestClient_IsConfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.TautulliConfig
		want bool
	}{
		{"fully configured", config.TautulliConfig{URL: "http://t", APIKey: "k", AudioInfo: true}, true},
		{"feature off", config.TautulliConfig{URL: "http://t", APIKey: "k"}, false},
		{"no url", config.TautulliConfig{APIKey: "k", AudioInfo: true}, false},
		{"no key", config.TautulliConfig{URL: "http://t", AudioInfo: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewClient(tt.cfg, zerolog.Nop()).IsConfigured())
		})
	}
}

func TestClient_AudioSummary_SingleStereoTrack(t *testing.T) {
	server := httptest.NewServer(metadataHandler(t, []map[string]any{
		{"type": "1", "video_codec": "h264"},
		{"type": "2", "audio_codec": "AAC", "audio_language_code": "eng", "audio_channel_layout": "Stereo"},
		{"type": "3", "subtitle_language_code": "por"},
	}))
	defer server.Close()

	got := newTestClient(server).AudioSummary(context.Background(), "12345", testLabel)

	assert.Contains(t, got, "Inglês (2.0)")
	assert.Equal(t, testLabel+"Inglês (2.0)", got)
}

func TestClient_AudioSummary_MultipleTracks(t *testing.T) {
	server := httptest.NewServer(metadataHandler(t, []map[string]any{
		{"type": 2, "audio_codec": "truehd", "audio_language_code": "por", "audio_channel_layout": "7.1(side)"},
		{"type": "audio", "audio_codec": "ac3", "audio_language_code": "xyz", "audio_channel_layout": "5.1"},
		{"type": "2", "audio_codec": "aac", "audio_language_code": "", "audio_channel_layout": ""},
	}))
	defer server.Close()

	got := newTestClient(server).AudioSummary(context.Background(), "12345", "")

	assert.Equal(t, "Português (7.1), XYZ (5.1), Desconhecido", got)
}

func TestClient_AudioSummary_EmptyStreams(t *testing.T) {
	tests := []struct {
		name    string
		streams any
	}{
		{"empty list", []any{}},
		{"missing list", nil},
		{"no audio", []map[string]any{{"type": "1"}, {"type": "3"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(metadataHandler(t, tt.streams))
			defer server.Close()

			assert.Equal(t, "", newTestClient(server).AudioSummary(context.Background(), "12345", testLabel))
		})
	}
}

func TestClient_AudioSummary_FailuresDegradeToEmpty(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"unauthorized", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}},
		{"malformed json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"response": {`))
		}},
		{"unexpected shape", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"response": {"result": "success", "data": {"media_info": "nope"}}}`))
		}},
		{"empty data", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"response": {"result": "success", "data": {}}}`))
		}},
		{"api error result", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"response": {"result": "error", "message": "Invalid apikey", "data": {}}}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			assert.Equal(t, "", newTestClient(server).AudioSummary(context.Background(), "12345", testLabel))
		})
	}
}

func TestClient_AudioSummary_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	assert.Equal(t, "", newTestClient(server).AudioSummary(context.Background(), "12345", testLabel))
}

func TestClient_AudioTracks_SkipsCallWhenUnconfigured(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	tests := []struct {
		name      string
		cfg       config.TautulliConfig
		ratingKey string
	}{
		{"empty rating key", config.TautulliConfig{URL: server.URL, APIKey: "k", AudioInfo: true}, ""},
		{"no api key", config.TautulliConfig{URL: server.URL, AudioInfo: true}, "1"},
		{"no url", config.TautulliConfig{APIKey: "k", AudioInfo: true}, "1"},
		{"disabled", config.TautulliConfig{URL: server.URL, APIKey: "k"}, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(tt.cfg, zerolog.Nop())
			assert.Nil(t, client.AudioTracks(context.Background(), tt.ratingKey))
		})
	}
	assert.Equal(t, int32(0), calls.Load())
}

func TestClient_Endpoint(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"http://tautulli:8181", "http://tautulli:8181/api/v2"},
		{"http://tautulli:8181/", "http://tautulli:8181/api/v2"},
		{"http://host/tautulli/api/v2", "http://host/tautulli/api/v2"},
	}

	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			c := NewClient(config.TautulliConfig{URL: tt.base}, zerolog.Nop())
			assert.Equal(t, tt.want, c.endpoint())
		})
	}
}

func TestNewClient_DefaultTimeout(t *testing.T) {
	c := NewClient(config.TautulliConfig{}, zerolog.Nop())
	require.NotNil(t, c.httpClient)
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
}

func TestClient_AudioTracks_NetworkErrorLogOmitsAPIKey(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	var buf bytes.Buffer
	c := NewClient(config.TautulliConfig{
		URL:       server.URL,
		APIKey:    "SECRETAPIKEY",
		AudioInfo: true,
	}, zerolog.New(&buf))

	assert.Empty(t, c.AudioTracks(context.Background(), "12345"))
	require.Contains(t, buf.String(), "Failed to fetch audio metadata")
	assert.NotContains(t, buf.String(), "SECRETAPIKEY")
}
