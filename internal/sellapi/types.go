package sellapi

import "github.com/shopspring/decimal"

// Inventory API enum values.
const (
	UnitPound        = "POUND"
	UnitInch         = "INCH"
	FormatFixedPrice = "FIXED_PRICE"
)

// Offer statuses meaning offer is live.
const (
	OfferStatusPublished = "PUBLISHED"
	OfferStatusActive    = "ACTIVE"
)

// InventoryItem is inventory item identified by SKU.
type InventoryItem struct {
	SKU                  string                `json:"sku,omitempty"`
	Product              Product               `json:"product"`
	Condition            string                `json:"condition" validate:"required"`
	ConditionDescription *string               `json:"conditionDescription,omitempty"`
	Availability         Availability          `json:"availability"`
	PackageWeightAndSize *PackageWeightAndSize `json:"packageWeightAndSize,omitempty"`
}

// Product holds inventory item product details.
type Product struct {
	Title       string              `json:"title" validate:"required"`
	Description string              `json:"description"`
	Aspects     map[string][]string `json:"aspects,omitempty"`
	ImageURLs   []string            `json:"imageUrls" validate:"min=1,dive,url"`
	ISBN        []string            `json:"isbn,omitempty"`
	UPC         []string            `json:"upc,omitempty"`
	EAN         []string            `json:"ean,omitempty"`
	Brand       *string             `json:"brand,omitempty"`
	MPN         *string             `json:"mpn,omitempty"`
}

// Availability holds inventory item quantities.
type Availability struct {
	ShipToLocationAvailability ShipToLocationAvailability `json:"shipToLocationAvailability"`
}

// ShipToLocationAvailability holds quantity available for shipping.
type ShipToLocationAvailability struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// PackageWeightAndSize holds shipping package details.
type PackageWeightAndSize struct {
	Dimensions  *Dimensions `json:"dimensions,omitempty"`
	PackageType string      `json:"packageType,omitempty"`
	Weight      *Weight     `json:"weight,omitempty"`
}

// Dimensions are package dimensions.
type Dimensions struct {
	Height float64 `json:"height" validate:"gt=0"`
	Length float64 `json:"length" validate:"gt=0"`
	Width  float64 `json:"width" validate:"gt=0"`
	Unit   string  `json:"unit" validate:"required"`
}

// Weight is package weight.
type Weight struct {
	Value float64 `json:"value" validate:"gt=0"`
	Unit  string  `json:"unit" validate:"required"`
}

// Offer binds SKU to marketplace price, quantity and policies.
type Offer struct {
	OfferID             string          `json:"offerId,omitempty"`
	SKU                 string          `json:"sku" validate:"required"`
	MarketplaceID       string          `json:"marketplaceId" validate:"required"`
	Format              string          `json:"format" validate:"required"`
	AvailableQuantity   int             `json:"availableQuantity" validate:"gte=0"`
	CategoryID          string          `json:"categoryId" validate:"required"`
	ListingPolicies     ListingPolicies `json:"listingPolicies"`
	PricingSummary      PricingSummary  `json:"pricingSummary"`
	MerchantLocationKey string          `json:"merchantLocationKey" validate:"required"`
	CountryCode         string          `json:"countryCode,omitempty"`
	Status              string          `json:"status,omitempty"`
	Listing             *OfferListing   `json:"listing,omitempty"`
}

// ListingPolicies holds target policy ids of offer.
type ListingPolicies struct {
	FulfillmentPolicyID string          `json:"fulfillmentPolicyId" validate:"required"`
	PaymentPolicyID     string          `json:"paymentPolicyId" validate:"required"`
	ReturnPolicyID      string          `json:"returnPolicyId" validate:"required"`
	BestOfferTerms      *BestOfferTerms `json:"bestOfferTerms,omitempty"`
}

// BestOfferTerms holds best offer settings.
type BestOfferTerms struct {
	BestOfferEnabled bool `json:"bestOfferEnabled"`
}

// PricingSummary holds offer price.
type PricingSummary struct {
	Price Amount `json:"price"`
}

// Amount is monetary value.
type Amount struct {
	Value    decimal.Decimal `json:"value"`
	Currency string          `json:"currency" validate:"required"`
}

// OfferListing is marketplace listing created from published offer.
type OfferListing struct {
	ListingID     string `json:"listingId"`
	ListingStatus string `json:"listingStatus"`
}

// LiveStatus returns listing status of published offer, falling back to offer status.
func (o Offer) LiveStatus() string {
	if o.Listing != nil && o.Listing.ListingStatus != "" {
		return o.Listing.ListingStatus
	}
	return o.Status
}

// Location is merchant inventory location.
type Location struct {
	MerchantLocationKey    string          `json:"merchantLocationKey,omitempty"`
	Name                   string          `json:"name"`
	Location               LocationDetails `json:"location"`
	LocationTypes          []string        `json:"locationTypes"`
	MerchantLocationStatus string          `json:"merchantLocationStatus"`
}

// LocationDetails holds location address.
type LocationDetails struct {
	Address Address `json:"address"`
}

// Address is postal address.
type Address struct {
	AddressLine1    string `json:"addressLine1,omitempty"`
	City            string `json:"city,omitempty"`
	StateOrProvince string `json:"stateOrProvince,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
	Country         string `json:"country"`
}
