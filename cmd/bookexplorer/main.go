package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bookexplorer/bookexplorer/internal/api"
	"github.com/bookexplorer/bookexplorer/internal/catalog"
	"github.com/bookexplorer/bookexplorer/internal/config"
	"github.com/bookexplorer/bookexplorer/internal/gutendex"
	"github.com/bookexplorer/bookexplorer/internal/logging"
	"github.com/bookexplorer/bookexplorer/internal/scheduler"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	logging.Setup(cfg.IsDevelopment(), cfg.LogLevel)

	names, err := catalog.LoadLanguageNames(cfg.Session.LanguageNamesFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load language names")
	}

	client := gutendex.NewClient(
		gutendex.WithBaseURL(cfg.Catalog.BaseURL),
		gutendex.WithTimeout(cfg.Catalog.Timeout),
		gutendex.WithUserAgent(cfg.Catalog.UserAgent),
	)

	sched := scheduler.NewScheduler(time.Second)

	server, err := api.NewServer(cfg, client, names, sched)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sched.Start(ctx)

	log.Info().
		Str("env", cfg.Env).
		Str("catalog", cfg.Catalog.BaseURL).
		Bool("discardStale", cfg.Session.DiscardStale).
		Msg("Starting book explorer")

	if err := server.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}

	log.Info().Msg("Shut down cleanly")
}
