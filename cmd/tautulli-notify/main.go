package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/joho/godotenv"

	"github.com/slipstream/tautulli-notify/internal/config"
	"github.com/slipstream/tautulli-notify/internal/logger"
	"github.com/slipstream/tautulli-notify/internal/notification"
	"github.com/slipstream/tautulli-notify/internal/notification/render"
	"github.com/slipstream/tautulli-notify/internal/poster"
	"github.com/slipstream/tautulli-notify/internal/tautulli"
)

// main always exits 0 so Tautulli never flags the script as failed. Problems
// are reported in the log file.
func main() {
	run(os.Args[1:])
}

func run(args []string) {
	// A missing .env file is normal.
	_ = godotenv.Load()

	req, configPath, err := parseArgs(args, os.Stderr)
	if err != nil {
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return
	}

	log, err := logger.New(logger.Config{
		FileEnabled: req.LogEnabled,
		Console:     cfg.Logging.Console,
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Path:        cfg.Logging.Path,
		MaxSizeMB:   cfg.Logging.MaxSizeMB,
		MaxBackups:  cfg.Logging.MaxBackups,
		MaxAgeDays:  cfg.Logging.MaxAgeDays,
		Compress:    cfg.Logging.Compress,
		RunID:       uuid.NewString(),
	})
	defer log.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
	}

	cliLog := log.WithComponent("cli")
	cliLog.Info().Str("version", config.Version).Msg("Script started")
	cliLog.Info().Interface("arguments", req).Msg("Arguments")

	templates, err := render.LoadTemplates(cfg.Templates.File)
	if err != nil {
		cliLog.Error().Err(err).Str("path", cfg.Templates.File).Msg("Failed to load templates")
		return
	}

	fetcher := poster.New(cfg.Poster, clockwork.NewRealClock(), log.Logger)

	var audio notification.AudioResolver
	if cfg.Tautulli.AudioInfo {
		audio = tautulli.NewClient(cfg.Tautulli, log.Logger)
	}

	channels := notification.NewFactory(cfg, fetcher, log.Logger).Channels()
	svc := notification.NewService(channels, render.New(templates), audio, fetcher, log.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := svc.Notify(ctx, req); err != nil {
		cliLog.Warn().Err(err).Msg("Notification aborted")
	}

	cliLog.Info().Msg("Script completed")
}
