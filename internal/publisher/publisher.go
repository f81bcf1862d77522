package publisher

import (
	"context"
	"errors"
	"fmt"

	"github.com/MichalMitros/listing-migrator/internal/platform/models"
	"github.com/MichalMitros/listing-migrator/internal/sellapi"
	"github.com/MichalMitros/listing-migrator/internal/transformer"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

//go:generate mockery --name InventoryAPI --filename inventory_api.go
//go:generate mockery --name Storage --filename storage.go

// InventoryAPI manages inventory items and offers of target account.
type InventoryAPI interface {
	PutInventoryItem(ctx context.Context, sku string, item *sellapi.InventoryItem) error
	CreateOffer(ctx context.Context, offer *sellapi.Offer) (string, error)
	UpdateOffer(ctx context.Context, offerID string, offer *sellapi.Offer) error
	PublishOffer(ctx context.Context, offerID string) (string, error)
}

// Storage is listings storage.
type Storage interface {
	ListingsByStatus(ctx context.Context, statuses ...models.MigrationStatus) ([]models.Listing, error)
	PolicyMapping(ctx context.Context) (map[string]string, error)
	SaveListingState(ctx context.Context, listing *models.Listing) error
}

// pendingStatuses are statuses of listings which still have to be published.
var pendingStatuses = []models.MigrationStatus{models.StatusNotStarted, models.StatusFailed}

// Summary is result of publishing batch.
type Summary struct {
	Published int
	Remaining int
}

// Publisher publishes source listings on target account one by one.
type Publisher struct {
	api         InventoryAPI
	storage     Storage
	transformer *transformer.Transformer
	logger      *zerolog.Logger
}

// NewPublisher returns new Publisher.
func NewPublisher(
	api InventoryAPI,
	storage Storage,
	transformer *transformer.Transformer,
	logger *zerolog.Logger,
) *Publisher {
	return &Publisher{
		api:         api,
		storage:     storage,
		transformer: transformer,
		logger:      logger,
	}
}

// Pending returns number of listings which are not migrated yet.
func (p *Publisher) Pending(ctx context.Context) (int, error) {
	listings, err := p.storage.ListingsByStatus(ctx, pendingStatuses...)
	if err != nil {
		return 0, fmt.Errorf("can't get pending listings: %w", err)
	}
	return len(listings), nil
}

// Publish publishes up to limit pending listings, all of them if limit isn't positive.
// First failed listing stops the batch with *HaltError. Publishing again resumes from that listing.
func (p *Publisher) Publish(ctx context.Context, limit int) (Summary, error) {
	listings, err := p.storage.ListingsByStatus(ctx, pendingStatuses...)
	if err != nil {
		return Summary{}, fmt.Errorf("can't get pending listings: %w", err)
	}

	policies, err := p.storage.PolicyMapping(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("can't get policy mapping: %w", err)
	}

	if limit <= 0 || limit > len(listings) {
		limit = len(listings)
	}

	summary := Summary{Remaining: len(listings)}
	for ix := range listings[:limit] {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if err := p.publishListing(ctx, &listings[ix], policies); err != nil {
			return summary, err
		}

		summary.Published++
		summary.Remaining--
		p.logger.Info().
			Str("sku", listings[ix].SKU).
			Str("offerId", lo.FromPtr(listings[ix].OfferID)).
			Msgf("published listing (%d/%d)", summary.Published, limit)
	}

	return summary, nil
}

func (p *Publisher) publishListing(ctx context.Context, listing *models.Listing, policies map[string]string) error {
	item, offer, err := p.transformer.Transform(*listing, policies)
	if transformer.IsHardStop(err) {
		return &HaltError{SKU: listing.SKU, Step: StepTransform, Cause: err}
	}
	if err != nil {
		return p.fail(ctx, listing, StepTransform, err)
	}

	if err := p.api.PutInventoryItem(ctx, listing.SKU, item); err != nil {
		return p.fail(ctx, listing, StepItemCreate, err)
	}

	offerID, err := p.resolveOffer(ctx, listing, offer)
	if err != nil {
		return p.fail(ctx, listing, StepOfferCreate, err)
	}
	listing.OfferID = &offerID

	if err := p.api.UpdateOffer(ctx, offerID, offer); err != nil {
		return p.fail(ctx, listing, StepOfferUpdate, err)
	}

	listingID, err := p.api.PublishOffer(ctx, offerID)
	if err != nil {
		return p.fail(ctx, listing, StepPublish, err)
	}

	listing.Status = models.StatusMigrated
	listing.MigrationError = nil
	if err := p.storage.SaveListingState(ctx, listing); err != nil {
		return fmt.Errorf("can't save published listing %s (listing %s): %w", listing.SKU, listingID, err)
	}

	return nil
}

// resolveOffer returns ID of offer recorded before, newly created offer or offer which already exists for SKU.
func (p *Publisher) resolveOffer(ctx context.Context, listing *models.Listing, offer *sellapi.Offer) (string, error) {
	if listing.OfferID != nil && *listing.OfferID != "" {
		return *listing.OfferID, nil
	}

	offerID, err := p.api.CreateOffer(ctx, offer)

	var apiErr *sellapi.APIError
	if errors.As(err, &apiErr) && apiErr.IsOfferExists() {
		if existingID, ok := apiErr.ExistingOfferID(); ok {
			p.logger.Info().Str("sku", listing.SKU).Str("offerId", existingID).Msg("offer already exists, reusing it")
			return existingID, nil
		}
	}
	if err != nil {
		return "", err
	}

	if offerID == "" {
		return "", errors.New("created offer has no ID")
	}

	return offerID, nil
}

// fail records error on listing and returns error halting the batch.
func (p *Publisher) fail(ctx context.Context, listing *models.Listing, step string, cause error) error {
	listing.Status = models.StatusFailed
	listing.MigrationError = lo.ToPtr(fmt.Sprintf("%s: %s", step, cause.Error()))

	p.logger.Error().Err(cause).Str("sku", listing.SKU).Str("step", step).Msg("can't publish listing")

	if err := p.storage.SaveListingState(ctx, listing); err != nil {
		return fmt.Errorf("can't save failed listing %s: %w (fail reason: %w)", listing.SKU, err, cause)
	}

	return &HaltError{SKU: listing.SKU, Step: step, Cause: cause}
}
