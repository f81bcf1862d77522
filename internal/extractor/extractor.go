package extractor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/MichalMitros/listing-migrator/internal/platform/models"
	"github.com/MichalMitros/listing-migrator/internal/platform/rawdoc"
	"github.com/MichalMitros/listing-migrator/internal/tradingapi"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

//go:generate mockery --name ItemAPI --filename item_api.go
//go:generate mockery --name PolicyAPI --filename policy_api.go
//go:generate mockery --name Decoder --filename decoder.go
//go:generate mockery --name Storage --filename storage.go

// ItemAPI reads items of source account.
type ItemAPI interface {
	ActiveItemIDs(ctx context.Context, from, to time.Time) ([]string, error)
	GetItem(ctx context.Context, itemID string) (io.ReadCloser, error)
}

// PolicyAPI reads business policies of source account.
type PolicyAPI interface {
	ListPolicies(ctx context.Context, policyType models.PolicyType) ([]map[string]any, error)
}

// Decoder decodes item details into parsing results.
type Decoder interface {
	Decode(context.Context, io.Reader, chan<- models.ParsingResult) error
}

// Clock provides current time.
type Clock interface {
	Now() time.Time
}

// Storage is policies and listings storage.
type Storage interface {
	// UpsertPolicies creates new source policies and refreshes existing ones.
	UpsertPolicies(ctx context.Context, policies []models.SourcePolicy) error
	// UpsertListings creates new listings and updates existing ones.
	// Returns number of created and updated listings.
	UpsertListings(ctx context.Context, listings []models.Listing) (created int32, updated int32, err error)
}

// Summary is result of extraction.
type Summary struct {
	Policies int
	Created  int32
	Updated  int32
	Failed   int32
}

// Option is custom configuration of Extractor.
type Option func(e *Extractor)

// Extractor copies policies and active listings of source account into storage.
type Extractor struct {
	items     ItemAPI
	policies  PolicyAPI
	decoder   Decoder
	storage   Storage
	batchSize uint
	window    time.Duration
	clock     Clock
	logger    *zerolog.Logger
}

// NewExtractor returns new Extractor. Listings ending within window from now are treated as active.
func NewExtractor(
	items ItemAPI,
	policies PolicyAPI,
	decoder Decoder,
	storage Storage,
	batchSize uint,
	window time.Duration,
	logger *zerolog.Logger,
	ops ...Option,
) *Extractor {
	ext := &Extractor{
		items:     items,
		policies:  policies,
		decoder:   decoder,
		storage:   storage,
		batchSize: max(batchSize, 1),
		window:    window,
		clock:     systemClock{},
		logger:    logger,
	}

	for _, op := range ops {
		op(ext)
	}

	return ext
}

// Extract stores source policies and active listings.
// Returned summary is filled as far as extraction got, also on error.
func (e *Extractor) Extract(ctx context.Context) (Summary, error) {
	var summary Summary

	policies, err := e.extractPolicies(ctx)
	summary.Policies = policies
	if err != nil {
		return summary, err
	}

	now := e.clock.Now()
	itemIDs, err := e.items.ActiveItemIDs(ctx, now, now.Add(e.window))
	if err != nil {
		return summary, fmt.Errorf("can't list active items: %w", err)
	}

	e.logger.Info().Msgf("extracting %d active listings", len(itemIDs))

	summary.Created, summary.Updated, summary.Failed, err = e.extractListings(ctx, itemIDs)

	return summary, err
}

func (e *Extractor) extractPolicies(ctx context.Context) (int, error) {
	stored := 0
	for _, policyType := range models.PolicyTypes {
		payloads, err := e.policies.ListPolicies(ctx, policyType)
		if err != nil {
			return stored, fmt.Errorf("can't fetch source %s policies: %w", policyType, err)
		}

		policies := make([]models.SourcePolicy, 0, len(payloads))
		for _, payload := range payloads {
			policy, ok := toSourcePolicy(policyType, payload)
			if !ok {
				e.logger.Warn().Str("type", string(policyType)).Msg("skipping source policy without ID")
				continue
			}
			policies = append(policies, policy)
		}

		if err := e.storage.UpsertPolicies(ctx, policies); err != nil {
			return stored, fmt.Errorf("can't store source %s policies: %w", policyType, err)
		}

		stored += len(policies)
		e.logger.Info().Str("type", string(policyType)).Msgf("stored %d source policies", len(policies))
	}

	return stored, nil
}

func (e *Extractor) extractListings(ctx context.Context, itemIDs []string) (int32, int32, int32, error) {
	parsingResults := make(chan models.ParsingResult)
	filteredListings := make(chan []models.Listing)
	failedListings := int32(0)
	createdListings := int32(0)
	updatedListings := int32(0)

	errGroup, egCtx := errgroup.WithContext(ctx)

	// fetch and decode items.
	errGroup.Go(func() error {
		defer close(parsingResults)
		return e.decodeItems(egCtx, itemIDs, parsingResults)
	})

	// filter decoding results.
	errGroup.Go(func() error {
		defer close(filteredListings)

		failed, err := e.filterListings(egCtx, parsingResults, filteredListings)
		_ = atomic.AddInt32(&failedListings, int32(failed))
		if err != nil {
			return fmt.Errorf("can't filter listings: %w", err)
		}

		return nil
	})

	// store listings.
	errGroup.Go(func() error {
		created, updated, err := e.storeListings(egCtx, filteredListings)
		_ = atomic.AddInt32(&createdListings, created)
		_ = atomic.AddInt32(&updatedListings, updated)

		if err != nil {
			return fmt.Errorf("can't store listings: %w", err)
		}

		return nil
	})

	err := errGroup.Wait()

	return createdListings, updatedListings, failedListings, err
}

// decodeItems fetches details of every item and decodes them into output.
// Item which can't be fetched is reported as failed result, rejected token stops decoding.
func (e *Extractor) decodeItems(ctx context.Context, itemIDs []string, output chan<- models.ParsingResult) error {
	for ix, itemID := range itemIDs {
		item, err := e.items.GetItem(ctx, itemID)
		if errors.Is(err, tradingapi.ErrUnauthorized) || ctx.Err() != nil {
			return fmt.Errorf("can't fetch item %s: %w", itemID, err)
		}
		if err != nil {
			e.logger.Error().Err(err).Str("itemId", itemID).Msg("can't fetch item details")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case output <- models.ParsingResult{Error: err}:
			}
			continue
		}

		err = e.decoder.Decode(ctx, item, output)
		_ = item.Close()
		if err != nil {
			return fmt.Errorf("can't decode item %s: %w", itemID, err)
		}

		if (ix+1)%int(e.batchSize) == 0 {
			e.logger.Info().Msgf("fetched item details %d/%d", ix+1, len(itemIDs))
		}
	}

	return nil
}

func (e *Extractor) filterListings(
	ctx context.Context,
	input <-chan models.ParsingResult,
	output chan []models.Listing,
) (int, error) {
	failedListings := 0
	batch := make([]models.Listing, 0, e.batchSize)

	for result := range input {
		if result.Error != nil {
			failedListings++
			continue
		}

		batch = append(batch, result.Listing)
		if len(batch) == int(e.batchSize) {
			select {
			case <-ctx.Done():
				return failedListings, ctx.Err()
			case output <- batch:
			}
			batch = make([]models.Listing, 0, e.batchSize)
		}
	}

	if len(batch) > 0 {
		select {
		case <-ctx.Done():
			return failedListings, ctx.Err()
		case output <- batch:
		}
	}

	return failedListings, nil
}

func (e *Extractor) storeListings(ctx context.Context, input chan []models.Listing) (int32, int32, error) {
	createdListings := int32(0)
	updatedListings := int32(0)

	for batch := range input {
		created, updated, err := e.storage.UpsertListings(ctx, batch)
		if err != nil {
			return createdListings, updatedListings, err
		}
		createdListings += created
		updatedListings += updated

		e.logger.Info().
			Strs("skus", lo.Map(batch, func(l models.Listing, _ int) string { return l.SKU })).
			Msgf("stored %d listings (%d new, %d updated)", len(batch), created, updated)
	}

	return createdListings, updatedListings, nil
}

// toSourcePolicy returns source policy built from API payload.
func toSourcePolicy(policyType models.PolicyType, payload map[string]any) (models.SourcePolicy, bool) {
	policyID, ok := rawdoc.Field(payload, policyType.IDKey())
	if !ok {
		return models.SourcePolicy{}, false
	}
	id, ok := rawdoc.Text(policyID)
	if !ok || id == "" {
		return models.SourcePolicy{}, false
	}

	policy := models.SourcePolicy{
		Type:     policyType,
		PolicyID: id,
		Payload:  payload,
	}
	if name, ok := rawdoc.Field(payload, "name"); ok {
		policy.Name, _ = rawdoc.Text(name)
	}
	if description, ok := rawdoc.Field(payload, "description"); ok {
		if text, ok := rawdoc.Text(description); ok {
			policy.Description = &text
		}
	}

	return policy, true
}

// WithClock sets Extractor's custom Clock.
func WithClock(c Clock) Option {
	return func(e *Extractor) {
		e.clock = c
	}
}
