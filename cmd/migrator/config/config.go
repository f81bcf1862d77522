package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL     string        `env:"DATABASE_URL" validate:"required"`
	BatchSize       uint          `env:"BATCH_SIZE" envDefault:"50" validate:"min=1"`
	HTTPTimeout     time.Duration `env:"HTTP_TIMEOUT" envDefault:"60s" validate:"gt=0"`
	DataDir         string        `env:"DATA_DIR" envDefault:"data" validate:"required"`
	RulesFile       string        `env:"RULES_FILE"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=trace debug info warn error"`
	ListingWindow   time.Duration `env:"LISTING_WINDOW" envDefault:"2880h" validate:"gt=0"`
	DownloadWorkers int           `env:"DOWNLOAD_WORKERS" envDefault:"8" validate:"min=1"`
	UploadWorkers   int           `env:"UPLOAD_WORKERS" envDefault:"4" validate:"min=1"`

	EBay     EBay
	Location Location
	RabbitMQ RabbitMQ
}

// EBay holds application keys, API endpoints and marketplace settings.
type EBay struct {
	AppID  string `env:"EBAY_APP_ID" validate:"required"`
	CertID string `env:"EBAY_CERT_ID" validate:"required"`
	DevID  string `env:"EBAY_DEV_ID" validate:"required"`
	RuName string `env:"EBAY_RU_NAME" validate:"required"`
	SiteID string `env:"EBAY_SITE_ID" envDefault:"0" validate:"numeric"`

	AuthURL            string `env:"EBAY_AUTH_URL" envDefault:"https://auth.ebay.com/oauth2/authorize" validate:"url"`
	TokenURL           string `env:"EBAY_TOKEN_URL" envDefault:"https://api.ebay.com/identity/v1/oauth2/token" validate:"url"`
	AccountURL         string `env:"EBAY_ACCOUNT_URL" envDefault:"https://api.ebay.com/sell/account/v1" validate:"url"`
	InventoryURL       string `env:"EBAY_INVENTORY_URL" envDefault:"https://api.ebay.com/sell/inventory/v1" validate:"url"`
	TradingURL         string `env:"EBAY_TRADING_URL" envDefault:"https://api.ebay.com/ws/api.dll" validate:"url"`
	CompatibilityLevel string `env:"EBAY_COMPATIBILITY_LEVEL" envDefault:"1193" validate:"numeric"`

	MarketplaceID       string `env:"EBAY_MARKETPLACE_ID" envDefault:"EBAY_US" validate:"required"`
	ContentLanguage     string `env:"EBAY_CONTENT_LANGUAGE" envDefault:"en-US" validate:"required"`
	MerchantLocationKey string `env:"EBAY_MERCHANT_LOCATION_KEY" envDefault:"default" validate:"required"`
	CountryCode         string `env:"EBAY_COUNTRY_CODE" envDefault:"US" validate:"len=2"`
}

// Location holds address of merchant location created on target account.
type Location struct {
	Name            string `env:"LOCATION_NAME" envDefault:"Main warehouse"`
	AddressLine1    string `env:"LOCATION_ADDRESS_LINE1"`
	City            string `env:"LOCATION_CITY"`
	StateOrProvince string `env:"LOCATION_STATE_OR_PROVINCE"`
	PostalCode      string `env:"LOCATION_POSTAL_CODE"`
	Country         string `env:"LOCATION_COUNTRY" envDefault:"US" validate:"len=2"`
}

// RabbitMQ holds RabbitMQ configuration. It is needed by worker and step commands only.
type RabbitMQ struct {
	URL        string `env:"RABBITMQ_URL" validate:"omitempty,url"`
	Exchange   string `env:"RABBITMQ_EXCHANGE" envDefault:"listing-migrator-ex"`
	Queue      string `env:"RABBITMQ_QUEUE" envDefault:"listing-migrator.commands"`
	RoutingKey string `env:"RABBITMQ_ROUTING_KEY" envDefault:"listing-migrator.steps"`
}

// Load reads .env file at envFile if it exists, then parses and validates environment variables.
// Values from .env file override already set variables.
func Load(envFile string) (Config, error) {
	if err := godotenv.Overload(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("can't load %s: %w", envFile, err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("can't parse env variables: %w", err)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
