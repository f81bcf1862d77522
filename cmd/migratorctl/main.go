package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/MichalMitros/listing-migrator/cmd/migrator/config"
	"github.com/MichalMitros/listing-migrator/internal/platform/auth"
	"github.com/MichalMitros/listing-migrator/internal/platform/rabbitmq"
	"github.com/MichalMitros/listing-migrator/internal/platform/storage"
	"github.com/MichalMitros/listing-migrator/internal/sellapi"
	"github.com/MichalMitros/listing-migrator/pkg/v1/commander"
	_ "github.com/lib/pq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const usage = `usage: migratorctl <command> [flags]

commands:
  delete-offer <offer id>          delete offer on target account
  reset-images                     forget downloaded and uploaded images, remove image cache
  reset-migration -sku SKU | -all  set listings back to not migrated
  setup-location                   create merchant location on target account if missing
  runs                             print the latest run of every step
  send <step> [-limit N]           order step run from migrator worker
`

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load(".env")
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't load config")
	}

	if err := run(context.Background(), cfg, os.Args[1], os.Args[2:], &logger); err != nil {
		logger.Fatal().
			Err(err).
			Str("command", os.Args[1]).
			Msg("command failed")
	}
}

func run(ctx context.Context, cfg config.Config, command string, args []string, logger *zerolog.Logger) error {
	flags := flag.NewFlagSet(command, flag.ExitOnError)

	switch command {
	case "delete-offer":
		if err := flags.Parse(args); err != nil {
			return err
		}
		if flags.NArg() != 1 {
			return fmt.Errorf("delete-offer expects offer id")
		}
		return deleteOffer(ctx, targetClient(ctx, cfg), flags.Arg(0), logger)
	case "setup-location":
		if err := flags.Parse(args); err != nil {
			return err
		}
		return setupLocation(ctx, targetClient(ctx, cfg), cfg.EBay.MerchantLocationKey, cfg.Location, logger)
	case "reset-images":
		if err := flags.Parse(args); err != nil {
			return err
		}
		return withStorage(cfg, func(store storage.Postgres) error {
			return resetImages(ctx, store, cfg.BatchSize, filepath.Join(cfg.DataDir, "images"), logger)
		})
	case "reset-migration":
		sku := flags.String("sku", "", "SKU of listing to reset")
		all := flags.Bool("all", false, "reset all listings")
		if err := flags.Parse(args); err != nil {
			return err
		}
		return withStorage(cfg, func(store storage.Postgres) error {
			return resetMigration(ctx, store, *sku, *all, logger)
		})
	case "runs":
		if err := flags.Parse(args); err != nil {
			return err
		}
		return withStorage(cfg, func(store storage.Postgres) error {
			return printRuns(ctx, store, os.Stdout)
		})
	case "send":
		if len(args) == 0 {
			return fmt.Errorf("send expects step name")
		}
		limit := flags.Int("limit", 0, "number of listings to publish, 0 publishes all")
		if err := flags.Parse(args[1:]); err != nil {
			return err
		}
		return withSender(cfg.RabbitMQ, func(sender commander.StepCommander) error {
			return sendStep(ctx, sender, args[0], *limit, logger)
		})
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// targetClient returns Sell API client of target account authorized with saved token.
func targetClient(ctx context.Context, cfg config.Config) *sellapi.Client {
	oauthCfg := auth.Config{
		AppID:    cfg.EBay.AppID,
		CertID:   cfg.EBay.CertID,
		RuName:   cfg.EBay.RuName,
		AuthURL:  cfg.EBay.AuthURL,
		TokenURL: cfg.EBay.TokenURL,
	}
	session := auth.NewSession(oauthCfg.OAuth2(), auth.NewFileStore(filepath.Join(cfg.DataDir, "tokens")))

	return sellapi.NewClient(ctx, &http.Client{Timeout: cfg.HTTPTimeout}, sellapi.Config{
		AccountURL:      cfg.EBay.AccountURL,
		InventoryURL:    cfg.EBay.InventoryURL,
		MarketplaceID:   cfg.EBay.MarketplaceID,
		ContentLanguage: cfg.EBay.ContentLanguage,
	}, session.TokenSource(ctx, auth.RoleTarget))
}

func withStorage(cfg config.Config, fn func(store storage.Postgres) error) error {
	pgDB, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("can't open Postgres connection: %w", err)
	}
	defer pgDB.Close()

	return fn(storage.NewPostgres(pgDB))
}

func withSender(cfg config.RabbitMQ, fn func(sender commander.StepCommander) error) error {
	if cfg.URL == "" {
		return fmt.Errorf("RABBITMQ_URL is required to send step commands")
	}

	amqpConnection, err := amqp.Dial(cfg.URL)
	if err != nil {
		return fmt.Errorf("can't open RabbitMQ connection: %w", err)
	}
	defer amqpConnection.Close()

	mq, err := rabbitmq.NewRabbitMQ(amqpConnection, cfg.Exchange)
	if err != nil {
		return err
	}
	defer mq.Close()

	if err := mq.Declare(cfg.Queue, cfg.RoutingKey); err != nil {
		return err
	}

	return fn(commander.NewStepCommander(commander.NewRabbitMQSender(mq, cfg.RoutingKey)))
}
