package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MichalMitros/listing-migrator/cmd/migrator/config"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
)

func main() {
	worker := len(os.Args) > 1 && os.Args[1] == "worker"

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.TimeOnly}).With().Timestamp().Logger()
	if worker {
		logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	cfg, err := config.Load(".env")
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't parse log level")
	}
	zerolog.SetGlobalLevel(level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := newApp(ctx, cfg, &logger)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't start listing migrator")
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error().
				Err(err).
				Msg("can't close Postgres connection")
		}
	}()

	if !worker {
		in := interactive{
			app:     a,
			console: newConsole(os.Stdin, os.Stdout),
			logger:  &logger,
		}
		if err := in.run(ctx); err != nil {
			logger.Error().
				Err(err).
				Msg("migration stopped")
		}
		return
	}

	// handle graceful shutdown and context cancellation
	go func() {
		termChan := make(chan os.Signal, 1)
		signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-termChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := runWorker(ctx, a, cfg.RabbitMQ, &logger); err != nil {
		logger.Error().
			Err(err).
			Msg("worker stopped")
	}
}
