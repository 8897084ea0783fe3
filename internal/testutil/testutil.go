// Package testutil provides shared helpers for package tests.
package testutil

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/slipstream/tautulli-notify/internal/config"
)

// NewLogger returns a logger that writes through t.Log, so output only shows
// for failing or verbose tests.
func NewLogger(t *testing.T) zerolog.Logger {
	t.Helper()
	return zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
}

// NewConfig returns the default configuration with every outbound channel
// disabled, ready for a test to switch on what it needs.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.WhatsApp.Enabled = false
	cfg.Telegram.Enabled = false
	cfg.Tautulli.AudioInfo = false
	cfg.Poster.TempDir = t.TempDir()
	return cfg
}
