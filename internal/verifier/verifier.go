package verifier

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/MichalMitros/listing-migrator/internal/platform/models"
	"github.com/MichalMitros/listing-migrator/internal/sellapi"
	"github.com/MichalMitros/listing-migrator/internal/transformer"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

//go:generate mockery --name InventoryAPI --filename inventory_api.go
//go:generate mockery --name Storage --filename storage.go

// InventoryAPI reads inventory items and offers of target account.
type InventoryAPI interface {
	GetInventoryItem(ctx context.Context, sku string) (*sellapi.InventoryItem, error)
	GetOffer(ctx context.Context, offerID string) (*sellapi.Offer, error)
}

// Storage is listings storage.
type Storage interface {
	ListingsByStatus(ctx context.Context, statuses ...models.MigrationStatus) ([]models.Listing, error)
}

// toleratedConditions maps expected condition to live condition accepted instead of it.
var toleratedConditions = map[string]string{
	"USED": "USED_GOOD",
}

var liveStatuses = []string{sellapi.OfferStatusPublished, sellapi.OfferStatusActive}

// Report is result of verifying single listing.
type Report struct {
	SKU        string
	Mismatches []string
}

// Passed reports whether live listing matches local one.
func (r Report) Passed() bool {
	return len(r.Mismatches) == 0
}

func (r *Report) addf(format string, args ...any) {
	r.Mismatches = append(r.Mismatches, fmt.Sprintf(format, args...))
}

// Verifier compares migrated listings with their live state on target account.
type Verifier struct {
	api         InventoryAPI
	storage     Storage
	transformer *transformer.Transformer
	logger      *zerolog.Logger
}

// NewVerifier returns new Verifier.
func NewVerifier(
	api InventoryAPI,
	storage Storage,
	transformer *transformer.Transformer,
	logger *zerolog.Logger,
) *Verifier {
	return &Verifier{
		api:         api,
		storage:     storage,
		transformer: transformer,
		logger:      logger,
	}
}

// Verify checks every migrated listing and returns report per listing.
// Verify doesn't change any state.
func (v *Verifier) Verify(ctx context.Context) ([]Report, error) {
	listings, err := v.storage.ListingsByStatus(ctx, models.StatusMigrated)
	if err != nil {
		return nil, fmt.Errorf("can't get migrated listings: %w", err)
	}

	reports := make([]Report, 0, len(listings))
	for _, listing := range listings {
		if err := ctx.Err(); err != nil {
			return reports, err
		}

		report := v.VerifyListing(ctx, listing)
		reports = append(reports, report)

		if report.Passed() {
			v.logger.Info().Str("sku", listing.SKU).Msg("listing verified")
			continue
		}
		v.logger.Warn().
			Str("sku", listing.SKU).
			Strs("mismatches", report.Mismatches).
			Msg("listing doesn't match live state")
	}

	return reports, nil
}

// VerifyListing compares single listing with its live inventory item and offer.
// Fetch failures are reported as mismatches.
func (v *Verifier) VerifyListing(ctx context.Context, listing models.Listing) Report {
	report := Report{SKU: listing.SKU}

	item, err := v.api.GetInventoryItem(ctx, listing.SKU)
	if err != nil {
		report.addf("can't fetch inventory item: %v", err)
		return report
	}

	v.compareItem(&report, listing, item)

	if lo.FromPtr(listing.OfferID) == "" {
		report.addf("missing offer ID in local storage")
		return report
	}

	offer, err := v.api.GetOffer(ctx, *listing.OfferID)
	if err != nil {
		report.addf("can't fetch offer %s: %v", *listing.OfferID, err)
		return report
	}

	compareOffer(&report, listing, offer)

	return report
}

func (v *Verifier) compareItem(report *Report, listing models.Listing, item *sellapi.InventoryItem) {
	if normalize(item.Product.Title) != normalize(listing.Title) {
		report.addf("title: %q != %q", item.Product.Title, listing.Title)
	}

	// Live description may be wrapped in additional markup.
	liveDesc, localDesc := normalize(item.Product.Description), normalize(listing.Description)
	if !strings.Contains(liveDesc, localDesc) && len(liveDesc) != len(localDesc) {
		report.addf("description content mismatch")
	}

	expected := v.transformer.Condition(listing.ConditionID)
	if item.Condition != expected && toleratedConditions[expected] != item.Condition {
		report.addf("condition: %s != %s", item.Condition, expected)
	}

	uploaded := lo.CountBy(listing.Images, func(img models.ListingImage) bool {
		return lo.FromPtr(img.TargetURL) != ""
	})
	if len(item.Product.ImageURLs) != uploaded {
		report.addf("image count: %d != %d", len(item.Product.ImageURLs), uploaded)
	}

	v.compareAspects(report, listing, item.Product.Aspects)

	pkg := item.PackageWeightAndSize
	if pkg == nil || (pkg.Dimensions == nil && pkg.Weight == nil) {
		report.addf("missing package weight and dimensions")
	}
}

func (v *Verifier) compareAspects(report *Report, listing models.Listing, live map[string][]string) {
	names := lo.Keys(listing.Aspects)
	slices.Sort(names)

	for _, name := range names {
		liveValues, ok := live[name]
		if !ok {
			if !v.transformer.IsTitleAspect(name) {
				report.addf("missing aspect %q", name)
			}
			continue
		}

		local := listing.Aspects[name]
		expected := v.transformer.AspectValues(name, local)
		liveValue := normalize(first(liveValues))
		expectedValue := normalize(first(expected))

		if strings.EqualFold(liveValue, expectedValue) {
			continue
		}

		// Single valued aspect still matches when it contains the first local value.
		if v.transformer.IsSingleValued(name) && len(local) > 0 &&
			strings.Contains(strings.ToLower(liveValue), strings.ToLower(normalize(local[0]))) {
			continue
		}

		report.addf("aspect %q: %q != %q", name, liveValue, expectedValue)
	}
}

func compareOffer(report *Report, listing models.Listing, offer *sellapi.Offer) {
	price := offer.PricingSummary.Price.Value
	if !price.Equal(listing.Price) {
		report.addf("price: %s != %s", price, listing.Price)
	}

	if offer.AvailableQuantity != listing.Quantity {
		report.addf("quantity: %d != %d", offer.AvailableQuantity, listing.Quantity)
	}

	if status := offer.LiveStatus(); !slices.Contains(liveStatuses, status) {
		report.addf("offer status: %q (expected %s)", status, strings.Join(liveStatuses, " or "))
	}
}

// normalize collapses whitespace.
func normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
