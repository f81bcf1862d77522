package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/MichalMitros/listing-migrator/cmd/migrator/config"
	"github.com/MichalMitros/listing-migrator/internal/platform/models"
	"github.com/MichalMitros/listing-migrator/internal/sellapi"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// OfferAPI manages target account offers.
type OfferAPI interface {
	DeleteOffer(ctx context.Context, offerID string) error
}

// LocationAPI manages target account merchant locations.
type LocationAPI interface {
	GetLocation(ctx context.Context, key string) (*sellapi.Location, error)
	CreateLocation(ctx context.Context, key string, location *sellapi.Location) error
}

// ResetStorage resets migration state.
type ResetStorage interface {
	ResetMigration(ctx context.Context, sku string) error
	ResetAllMigrations(ctx context.Context) (int64, error)
	ResetImages(ctx context.Context, batchSize uint) (int32, error)
}

// RunsStorage reads step runs.
type RunsStorage interface {
	LastRuns(ctx context.Context) ([]models.Run, error)
}

// StepSender orders step runs.
type StepSender interface {
	SendStepCommand(ctx context.Context, step string, limit int) error
}

func deleteOffer(ctx context.Context, api OfferAPI, offerID string, logger *zerolog.Logger) error {
	if err := api.DeleteOffer(ctx, offerID); err != nil {
		return fmt.Errorf("can't delete offer %s: %w", offerID, err)
	}

	logger.Info().Str("offerId", offerID).Msg("offer deleted")
	return nil
}

// resetImages forgets transfer state of all images and removes cached image files.
func resetImages(ctx context.Context, storage ResetStorage, batchSize uint, imagesDir string, logger *zerolog.Logger) error {
	reset, err := storage.ResetImages(ctx, batchSize)
	if err != nil {
		return err
	}

	if err := os.RemoveAll(imagesDir); err != nil {
		return fmt.Errorf("can't remove image cache: %w", err)
	}

	logger.Info().Int32("images", reset).Str("dir", imagesDir).Msg("images reset")
	return nil
}

func resetMigration(ctx context.Context, storage ResetStorage, sku string, all bool, logger *zerolog.Logger) error {
	switch {
	case all:
		reset, err := storage.ResetAllMigrations(ctx)
		if err != nil {
			return fmt.Errorf("can't reset migrations: %w", err)
		}
		logger.Info().Int64("listings", reset).Msg("migrations reset")
	case sku != "":
		if err := storage.ResetMigration(ctx, sku); err != nil {
			return fmt.Errorf("can't reset migration: %w", err)
		}
		logger.Info().Str("sku", sku).Msg("migration reset")
	default:
		return errors.New("either -sku or -all is required")
	}

	return nil
}

// setupLocation creates merchant location unless it already exists.
func setupLocation(ctx context.Context, api LocationAPI, key string, cfg config.Location, logger *zerolog.Logger) error {
	existing, err := api.GetLocation(ctx, key)
	if err == nil {
		logger.Info().Str("key", key).Str("name", existing.Name).Msg("merchant location already exists")
		return nil
	}
	if !errors.Is(err, sellapi.ErrNotFound) {
		return fmt.Errorf("can't get merchant location %s: %w", key, err)
	}

	location := &sellapi.Location{
		Name: cfg.Name,
		Location: sellapi.LocationDetails{
			Address: sellapi.Address{
				AddressLine1:    cfg.AddressLine1,
				City:            cfg.City,
				StateOrProvince: cfg.StateOrProvince,
				PostalCode:      cfg.PostalCode,
				Country:         cfg.Country,
			},
		},
		LocationTypes:          []string{"WAREHOUSE"},
		MerchantLocationStatus: "ENABLED",
	}
	if err := api.CreateLocation(ctx, key, location); err != nil {
		return fmt.Errorf("can't create merchant location %s: %w", key, err)
	}

	logger.Info().Str("key", key).Msg("merchant location created")
	return nil
}

// printRuns writes the latest run of every step as a table.
func printRuns(ctx context.Context, storage RunsStorage, out io.Writer) error {
	runs, err := storage.LastRuns(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tSTARTED\tFINISHED\tSTATUS\tSUCCEEDED\tFAILED\tMESSAGE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			run.Step,
			run.CreatedAt.Format(time.DateTime),
			lo.TernaryF(run.FinishedAt == nil,
				func() string { return "-" },
				func() string { return run.FinishedAt.Format(time.DateTime) }),
			runStatus(run),
			lo.FromPtr(run.SucceededItems),
			lo.FromPtr(run.FailedItems),
			lo.FromPtr(run.StatusMessage),
		)
	}

	return w.Flush()
}

func runStatus(run models.Run) string {
	switch {
	case run.IsSuccess == nil:
		return "running"
	case *run.IsSuccess:
		return "success"
	default:
		return "failed"
	}
}

func sendStep(ctx context.Context, sender StepSender, step string, limit int, logger *zerolog.Logger) error {
	if !lo.Contains(models.Steps, models.Step(step)) {
		return fmt.Errorf("unknown step %q", step)
	}

	if err := sender.SendStepCommand(ctx, step, limit); err != nil {
		return fmt.Errorf("can't send %s command: %w", step, err)
	}

	logger.Info().Str("step", step).Int("limit", limit).Msg("step command sent")
	return nil
}
