package transformer

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/MichalMitros/listing-migrator/internal/platform/models"
	"github.com/MichalMitros/listing-migrator/internal/platform/rawdoc"
	"github.com/MichalMitros/listing-migrator/internal/sellapi"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

const (
	defaultCurrency = "USD"
	joinSeparator   = ", "
)

var (
	// ErrNoEligibleImages is returned when listing has no image uploaded to target account.
	ErrNoEligibleImages = errors.New("no images uploaded to target account")
	// ErrUnmappedPolicy is returned when listing references policy without target ID.
	ErrUnmappedPolicy = errors.New("policy has no target mapping")
)

// IsHardStop reports whether err means listing can't be published until operator fixes migration data.
func IsHardStop(err error) bool {
	return errors.Is(err, ErrNoEligibleImages) || errors.Is(err, ErrUnmappedPolicy)
}

// Config holds target marketplace settings put into offers.
type Config struct {
	MarketplaceID       string
	MerchantLocationKey string
	CountryCode         string
}

// Transformer builds target inventory items and offers from source listings.
type Transformer struct {
	rules    Rules
	cfg      Config
	validate *validator.Validate
}

// NewTransformer returns new Transformer.
func NewTransformer(rules Rules, cfg Config) *Transformer {
	return &Transformer{
		rules:    rules,
		cfg:      cfg,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Transform returns inventory item and offer payloads built from listing.
// Policies map source policy IDs to target policy IDs.
// Returned error matches ErrNoEligibleImages or ErrUnmappedPolicy when listing can't be published at all.
func (t *Transformer) Transform(
	listing models.Listing,
	policies map[string]string,
) (*sellapi.InventoryItem, *sellapi.Offer, error) {
	imageURLs := t.ImageURLs(listing.Images)
	if len(imageURLs) == 0 {
		return nil, nil, ErrNoEligibleImages
	}

	listingPolicies, err := resolvePolicies(listing, policies)
	if err != nil {
		return nil, nil, err
	}
	if bestOfferEnabled(listing.BestOffer) {
		listingPolicies.BestOfferTerms = &sellapi.BestOfferTerms{BestOfferEnabled: true}
	}

	item := &sellapi.InventoryItem{
		Product: sellapi.Product{
			Title:       listing.Title,
			Description: listing.Description,
			Aspects:     t.Aspects(listing),
			ImageURLs:   imageURLs,
		},
		Condition:            t.Condition(listing.ConditionID),
		ConditionDescription: listing.ConditionDescription,
		Availability: sellapi.Availability{
			ShipToLocationAvailability: sellapi.ShipToLocationAvailability{Quantity: listing.Quantity},
		},
		PackageWeightAndSize: t.Package(listing.Raw),
	}
	setIdentifiers(&item.Product, listing.ProductIdentifiers)

	offer := &sellapi.Offer{
		SKU:               listing.SKU,
		MarketplaceID:     t.cfg.MarketplaceID,
		Format:            sellapi.FormatFixedPrice,
		AvailableQuantity: listing.Quantity,
		CategoryID:        listing.CategoryID,
		ListingPolicies:   *listingPolicies,
		PricingSummary: sellapi.PricingSummary{
			Price: sellapi.Amount{
				Value:    listing.Price,
				Currency: lo.Ternary(listing.Currency != "", listing.Currency, defaultCurrency),
			},
		},
		MerchantLocationKey: t.cfg.MerchantLocationKey,
		CountryCode:         t.cfg.CountryCode,
	}

	if err := t.validate.Struct(item); err != nil {
		return nil, nil, fmt.Errorf("invalid inventory item %s: %w", listing.SKU, err)
	}
	if err := t.validate.Struct(offer); err != nil {
		return nil, nil, fmt.Errorf("invalid offer %s: %w", listing.SKU, err)
	}

	return item, offer, nil
}

// Condition returns target condition of source condition ID.
func (t *Transformer) Condition(conditionID string) string {
	if condition, ok := t.rules.Conditions[strings.TrimSpace(conditionID)]; ok {
		return condition
	}
	return t.rules.DefaultCondition
}

// ImageURLs returns full size target URLs of uploaded images in rank order.
func (t *Transformer) ImageURLs(images []models.ListingImage) []string {
	uploaded := lo.Filter(images, func(img models.ListingImage, _ int) bool {
		return img.TargetURL != nil && *img.TargetURL != ""
	})
	slices.SortStableFunc(uploaded, func(a, b models.ListingImage) int { return a.Rank - b.Rank })

	return lo.Map(uploaded, func(img models.ListingImage, _ int) string {
		return strings.ReplaceAll(*img.TargetURL, t.rules.Images.ThumbnailMarker, t.rules.Images.FullSizeMarker)
	})
}

// Aspects returns listing aspects fitted into target category rules.
// Listing aspects are left untouched.
func (t *Transformer) Aspects(listing models.Listing) map[string][]string {
	aspects := make(map[string][]string, len(listing.Aspects)+1)
	for name, values := range listing.Aspects {
		aspects[name] = t.AspectValues(name, values)
	}

	if name, ok := t.rules.Aspects.Title[listing.CategoryID]; ok && len(aspects[name]) == 0 {
		aspects[name] = []string{listing.Title}
	}

	return aspects
}

// AspectValues returns values of aspect fitted into target category rules.
func (t *Transformer) AspectValues(name string, values []string) []string {
	if len(values) <= 1 {
		return slices.Clone(values)
	}

	switch {
	case t.IsJoined(name):
		return []string{t.JoinValues(values)}
	case slices.Contains(t.rules.Aspects.Truncate, name):
		return values[:1:1]
	default:
		return slices.Clone(values)
	}
}

// IsJoined reports whether values of aspect are joined into single value.
func (t *Transformer) IsJoined(name string) bool {
	return slices.Contains(t.rules.Aspects.Join, name)
}

// IsSingleValued reports whether aspect is sent with exactly one value.
func (t *Transformer) IsSingleValued(name string) bool {
	return t.IsJoined(name) || slices.Contains(t.rules.Aspects.Truncate, name)
}

// JoinValues joins values with comma while joined value fits join limit counted in characters.
// The first value is always kept, values following the first one which doesn't fit are dropped.
func (t *Transformer) JoinValues(values []string) string {
	if len(values) == 0 {
		return ""
	}

	joined := values[0]
	length := utf8.RuneCountInString(joined)
	for _, value := range values[1:] {
		length += utf8.RuneCountInString(joinSeparator) + utf8.RuneCountInString(value)
		if length > t.rules.Aspects.JoinLimit {
			break
		}
		joined += joinSeparator + value
	}

	return joined
}

// IsTitleAspect reports whether aspect is filled with listing title in some category.
func (t *Transformer) IsTitleAspect(name string) bool {
	return lo.Contains(lo.Values(t.rules.Aspects.Title), name)
}

// bestOfferEnabled reports whether best offer is explicitly enabled on source listing.
func bestOfferEnabled(bestOffer map[string]any) bool {
	enabled, ok := rawdoc.Field(bestOffer, "BestOfferEnabled")
	return ok && rawdoc.Bool(enabled)
}

func resolvePolicies(listing models.Listing, policies map[string]string) (*sellapi.ListingPolicies, error) {
	resolve := func(policyType models.PolicyType, sourceID *string) (string, error) {
		if sourceID == nil || *sourceID == "" {
			return "", fmt.Errorf("%w: listing %s has no %s policy", ErrUnmappedPolicy, listing.SKU, policyType)
		}
		targetID, ok := policies[*sourceID]
		if !ok || targetID == "" {
			return "", fmt.Errorf("%w: %s policy %s of listing %s", ErrUnmappedPolicy, policyType, *sourceID, listing.SKU)
		}
		return targetID, nil
	}

	fulfillment, err := resolve(models.PolicyTypeFulfillment, listing.ShippingPolicyID)
	if err != nil {
		return nil, err
	}
	payment, err := resolve(models.PolicyTypePayment, listing.PaymentPolicyID)
	if err != nil {
		return nil, err
	}
	ret, err := resolve(models.PolicyTypeReturn, listing.ReturnPolicyID)
	if err != nil {
		return nil, err
	}

	return &sellapi.ListingPolicies{
		FulfillmentPolicyID: fulfillment,
		PaymentPolicyID:     payment,
		ReturnPolicyID:      ret,
	}, nil
}

func setIdentifiers(product *sellapi.Product, ids models.ProductIdentifiers) {
	if ids.ISBN != nil {
		product.ISBN = []string{*ids.ISBN}
	}
	if ids.UPC != nil {
		product.UPC = []string{*ids.UPC}
	}
	if ids.EAN != nil {
		product.EAN = []string{*ids.EAN}
	}
	product.Brand = ids.Brand
	product.MPN = ids.MPN
}
