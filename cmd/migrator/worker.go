package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/MichalMitros/listing-migrator/cmd/migrator/config"
	"github.com/MichalMitros/listing-migrator/internal/handler"
	"github.com/MichalMitros/listing-migrator/internal/platform/rabbitmq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// runWorker runs steps ordered with RabbitMQ step commands until ctx is done.
func runWorker(ctx context.Context, a *app, cfg config.RabbitMQ, logger *zerolog.Logger) error {
	if cfg.URL == "" {
		return errors.New("RABBITMQ_URL is required in worker mode")
	}

	amqpConnection, err := amqp.Dial(cfg.URL)
	if err != nil {
		return fmt.Errorf("can't open RabbitMQ connection: %w", err)
	}
	defer func() {
		if err := amqpConnection.Close(); err != nil {
			logger.Error().
				Err(err).
				Msg("can't close RabbitMQ connection")
		}
	}()

	mq, err := rabbitmq.NewRabbitMQ(amqpConnection, cfg.Exchange)
	if err != nil {
		return err
	}

	if err := mq.Declare(cfg.Queue, cfg.RoutingKey); err != nil {
		return err
	}

	// start consuming and handling messages
	if err := handler.NewHandler(mq, a.pipeline, logger).Start(ctx, cfg.Queue); err != nil {
		return fmt.Errorf("can't start consuming: %w", err)
	}

	logger.Info().Str("queue", cfg.Queue).Msg("listing migrator worker up and running")

	<-ctx.Done()
	logger.Info().Msg("graceful shutdown start")

	// wait for consumer to finish
	<-mq.Done()

	logger.Info().Msg("graceful shutdown successful")

	return nil
}
