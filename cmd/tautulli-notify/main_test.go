package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeRunConfig writes a config whose log file lives in a temp dir and
// returns the config path and the log path.
func writeRunConfig(t *testing.T, bridgeURL string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	logPath := filepath.Join(dir, "notify.log")
	cfgPath := filepath.Join(dir, "tautulli-notify.yaml")

	body := fmt.Sprintf(`
logging:
  path: %q
whatsapp:
  url: %q
  phone: 5511999999999@s.whatsapp.net
tautulli:
  audio_info: false
poster:
  temp_dir: %q
`, logPath, bridgeURL, dir)
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o644))
	return cfgPath, logPath
}

func TestRun_ValidationFailureLogsAndReturns(t *testing.T) {
	var calls atomic.Int32
	bridge := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer bridge.Close()

	cfgPath, logPath := writeRunConfig(t, bridge.URL)

	run([]string{"-config", cfgPath, "-log", "-med", "track", "-pos", "http://x/img"})

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "Script started")
	assert.Contains(t, out, "Unsupported media type")
	assert.Contains(t, out, "Notification aborted")
	assert.Contains(t, out, "Script completed")
	assert.Equal(t, int32(0), calls.Load())
}

func TestRun_MissingPosterLogsAndReturns(t *testing.T) {
	cfgPath, logPath := writeRunConfig(t, "http://127.0.0.1:1/send/image")

	run([]string{"-config", cfgPath, "-log", "-med", "movie"})

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Poster URL is missing")
	assert.Contains(t, string(data), "Script completed")
}

func TestRun_SendsToBridge(t *testing.T) {
	var caption atomic.Value
	bridge := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err == nil {
			caption.Store(r.FormValue("caption"))
		}
		w.Write([]byte(`{"code":"SUCCESS"}`))
	}))
	defer bridge.Close()

	cfgPath, logPath := writeRunConfig(t, bridge.URL)

	run([]string{"-config", cfgPath, "-log", "-med", "movie", "-tt", "Dune", "-year", "2021", "-pos", "http://x/img"})

	got, _ := caption.Load().(string)
	assert.Contains(t, got, "*Título:* Dune (2021)")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Notification sent successfully")
	assert.NotContains(t, string(data), "Notification aborted")
}

func TestRun_NoLogFlagWritesNothing(t *testing.T) {
	cfgPath, logPath := writeRunConfig(t, "http://127.0.0.1:1/send/image")

	run([]string{"-config", cfgPath, "-med", "track", "-pos", "http://x/img"})

	assert.NoFileExists(t, logPath)
}
