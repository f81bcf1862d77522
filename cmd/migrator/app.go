package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/MichalMitros/listing-migrator/cmd/migrator/config"
	"github.com/MichalMitros/listing-migrator/internal/decoder"
	"github.com/MichalMitros/listing-migrator/internal/extractor"
	"github.com/MichalMitros/listing-migrator/internal/fetcher"
	"github.com/MichalMitros/listing-migrator/internal/pipeline"
	"github.com/MichalMitros/listing-migrator/internal/platform/auth"
	"github.com/MichalMitros/listing-migrator/internal/platform/storage"
	"github.com/MichalMitros/listing-migrator/internal/publisher"
	"github.com/MichalMitros/listing-migrator/internal/reconciler"
	"github.com/MichalMitros/listing-migrator/internal/sellapi"
	"github.com/MichalMitros/listing-migrator/internal/tradingapi"
	"github.com/MichalMitros/listing-migrator/internal/transfer"
	"github.com/MichalMitros/listing-migrator/internal/transformer"
	"github.com/MichalMitros/listing-migrator/internal/verifier"
	"github.com/rs/zerolog"
)

const (
	// UserAgent is user agent header value used when fetching source images.
	UserAgent = "listing-migrator/1.0"
)

// app holds wired migration components.
type app struct {
	db        *sql.DB
	session   *auth.Session
	accounts  map[auth.Role]*sellapi.Client
	publisher *publisher.Publisher
	pipeline  *pipeline.Pipeline
}

func newApp(ctx context.Context, cfg config.Config, logger *zerolog.Logger) (*app, error) {
	version, err := storage.Migrate(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	logger.Debug().Uint("version", version).Msg("database schema up to date")

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("can't open Postgres connection: %w", err)
	}
	store := storage.NewPostgres(db)

	rules, err := transformer.LoadRules(cfg.RulesFile)
	if err != nil {
		return nil, err
	}
	trans := transformer.NewTransformer(rules, transformer.Config{
		MarketplaceID:       cfg.EBay.MarketplaceID,
		MerchantLocationKey: cfg.EBay.MerchantLocationKey,
		CountryCode:         cfg.EBay.CountryCode,
	})

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	session := newSession(cfg)

	sourceSell := newSellClient(ctx, httpClient, cfg, session, auth.RoleSource)
	targetSell := newSellClient(ctx, httpClient, cfg, session, auth.RoleTarget)
	sourceTrading := newTradingClient(ctx, httpClient, cfg, session, auth.RoleSource)
	targetTrading := newTradingClient(ctx, httpClient, cfg, session, auth.RoleTarget)

	ext := extractor.NewExtractor(
		sourceTrading,
		sourceSell,
		decoder.Decoder{},
		store,
		cfg.BatchSize,
		cfg.ListingWindow,
		logger,
	)

	move := transfer.NewTransfer(
		fetcher.NewFetcher(httpClient, UserAgent),
		targetTrading,
		transferStorage{Postgres: store},
		transfer.Config{
			Dir:             filepath.Join(cfg.DataDir, "images"),
			DownloadWorkers: cfg.DownloadWorkers,
			UploadWorkers:   cfg.UploadWorkers,
		},
		logger,
	)

	pub := publisher.NewPublisher(targetSell, store, trans, logger)

	pip := pipeline.NewPipeline(
		store,
		ext,
		move,
		reconciler.NewReconciler(targetSell, store, logger),
		pub,
		verifier.NewVerifier(targetSell, store, trans, logger),
		logger,
	)

	return &app{
		db:      db,
		session: session,
		accounts: map[auth.Role]*sellapi.Client{
			auth.RoleSource: sourceSell,
			auth.RoleTarget: targetSell,
		},
		publisher: pub,
		pipeline:  pip,
	}, nil
}

// probe checks whether account of role is authorized.
func (a *app) probe(ctx context.Context, role auth.Role) error {
	return a.accounts[role].Probe(ctx)
}

func (a *app) Close() error {
	return a.db.Close()
}

func newSession(cfg config.Config) *auth.Session {
	oauthCfg := auth.Config{
		AppID:    cfg.EBay.AppID,
		CertID:   cfg.EBay.CertID,
		RuName:   cfg.EBay.RuName,
		AuthURL:  cfg.EBay.AuthURL,
		TokenURL: cfg.EBay.TokenURL,
	}

	return auth.NewSession(oauthCfg.OAuth2(), auth.NewFileStore(filepath.Join(cfg.DataDir, "tokens")))
}

func newSellClient(
	ctx context.Context,
	httpClient *http.Client,
	cfg config.Config,
	session *auth.Session,
	role auth.Role,
) *sellapi.Client {
	return sellapi.NewClient(ctx, httpClient, sellapi.Config{
		AccountURL:      cfg.EBay.AccountURL,
		InventoryURL:    cfg.EBay.InventoryURL,
		MarketplaceID:   cfg.EBay.MarketplaceID,
		ContentLanguage: cfg.EBay.ContentLanguage,
	}, session.TokenSource(ctx, role))
}

func newTradingClient(
	ctx context.Context,
	httpClient *http.Client,
	cfg config.Config,
	session *auth.Session,
	role auth.Role,
) *tradingapi.Client {
	return tradingapi.NewClient(httpClient, tradingapi.Config{
		URL:                cfg.EBay.TradingURL,
		AppID:              cfg.EBay.AppID,
		DevID:              cfg.EBay.DevID,
		CertID:             cfg.EBay.CertID,
		SiteID:             cfg.EBay.SiteID,
		CompatibilityLevel: cfg.EBay.CompatibilityLevel,
	}, session.TokenSource(ctx, role))
}

// transferStorage hands out storage connections to transfer workers.
type transferStorage struct {
	storage.Postgres
}

func (s transferStorage) Acquire(ctx context.Context) (transfer.Conn, error) {
	conn, err := s.Postgres.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return conn, nil
}
