package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedactError_StripsPathAndQuery(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()

	_, err := http.Get(base + "/bot123456:SECRETTOKEN/sendPhoto?apikey=SECRETAPIKEY")
	require.Error(t, err)
	require.Contains(t, err.Error(), "SECRETTOKEN")

	redacted := RedactError(err)
	assert.NotContains(t, redacted.Error(), "SECRETTOKEN")
	assert.NotContains(t, redacted.Error(), "SECRETAPIKEY")
	assert.Contains(t, redacted.Error(), base)
	assert.Contains(t, redacted.Error(), "Get")
}

func TestRedactError_KeepsCause(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://127.0.0.1:1/x?apikey=SECRET", nil)
	require.NoError(t, err)
	_, err = http.DefaultClient.Do(req)
	require.Error(t, err)

	redacted := RedactError(err)
	assert.ErrorIs(t, redacted, context.Canceled)
	assert.NotContains(t, redacted.Error(), "SECRET")
}

func TestRedactError_PassesThroughOtherErrors(t *testing.T) {
	err := errors.New("plain")
	assert.Same(t, err, RedactError(err))
	assert.Nil(t, RedactError(nil))
}
