package decoder

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/MichalMitros/listing-migrator/internal/platform/models"
	"github.com/MichalMitros/listing-migrator/internal/platform/rawdoc"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	defaultCurrency    = "USD"
	defaultConditionID = "1000"
	noSKUPrefix        = "NOSKU_"
)

// ErrMissingItemID is returned when decoded item has no ItemID.
var ErrMissingItemID = errors.New("item has no ItemID")

// node is generic xml element.
type node struct {
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []child    `xml:",any"`
}

// child is named generic xml element.
type child struct {
	XMLName xml.Name
	node
}

// toRaw converts element into raw document value.
// Elements without children become strings, elements with attributes become objects holding
// text under "value" and attributes under "_attr", repeated children become lists.
func (n node) toRaw() any {
	attrs := make(map[string]any, len(n.Attrs))
	for _, attr := range n.Attrs {
		if attr.Name.Local == "xmlns" || attr.Name.Space == "xmlns" {
			continue
		}
		attrs[attr.Name.Local] = attr.Value
	}

	if len(n.Children) == 0 && len(attrs) == 0 {
		return strings.TrimSpace(n.Text)
	}

	doc := make(map[string]any, len(n.Children)+2)
	if len(attrs) > 0 {
		doc[rawdoc.AttrKey] = attrs
	}
	if len(n.Children) == 0 {
		doc["value"] = strings.TrimSpace(n.Text)
		return doc
	}

	for _, c := range n.Children {
		key := c.XMLName.Local
		val := c.node.toRaw()
		switch existing := doc[key].(type) {
		case nil:
			doc[key] = val
		case []any:
			doc[key] = append(existing, val)
		default:
			doc[key] = []any{existing, val}
		}
	}

	return doc
}

func toAppListing(raw any) (models.Listing, error) {
	item, ok := raw.(map[string]any)
	if !ok {
		return models.Listing{}, ErrMissingItemID
	}

	itemID, ok := rawdoc.PathText(item, "ItemID")
	if !ok || itemID == "" {
		return models.Listing{}, ErrMissingItemID
	}

	listing := models.Listing{
		ItemID:      itemID,
		SKU:         text(item, "SKU"),
		Title:       text(item, "Title"),
		Subtitle:    optionalText(item, "SubTitle"),
		Description: text(item, "Description"),
		CategoryID:  text(item, "PrimaryCategory", "CategoryID"),
		PaymentPolicyID: optionalText(item,
			"SellerProfiles", "SellerPaymentProfile", "PaymentProfileID"),
		ReturnPolicyID: optionalText(item,
			"SellerProfiles", "SellerReturnProfile", "ReturnProfileID"),
		ShippingPolicyID: optionalText(item,
			"SellerProfiles", "SellerShippingProfile", "ShippingProfileID"),
		ConditionID:          text(item, "ConditionID"),
		ConditionDescription: optionalText(item, "ConditionDescription"),
		Aspects:              toAspects(item),
		ProductIdentifiers:   toProductIdentifiers(item),
		Raw:                  item,
		Status:               models.StatusNotStarted,
		Images:               toImages(item),
	}

	if listing.SKU == "" {
		listing.SKU = noSKUPrefix + itemID
	}
	if listing.ConditionID == "" {
		listing.ConditionID = defaultConditionID
	}

	quantity, err := toQuantity(item)
	if err != nil {
		return models.Listing{}, fmt.Errorf("can't decode quantity of item %s: %w", itemID, err)
	}
	listing.Quantity = quantity

	listing.Price, listing.Currency = toPrice(item)

	if variations, ok := rawdoc.Field(item, "Variations"); ok {
		encoded, err := json.Marshal(variations)
		if err != nil {
			return models.Listing{}, fmt.Errorf("can't encode variations of item %s: %w", itemID, err)
		}
		listing.Variations = encoded
	}

	if bestOffer, ok := rawdoc.Field(item, "BestOfferDetails"); ok {
		listing.BestOffer, _ = rawdoc.Object(bestOffer)
	}

	return listing, nil
}

func toQuantity(item map[string]any) (int, error) {
	total, err := intField(item, "Quantity")
	if err != nil {
		return 0, err
	}

	sold, err := intField(item, "SellingStatus", "QuantitySold")
	if err != nil {
		return 0, err
	}

	return total - sold, nil
}

func toPrice(item map[string]any) (decimal.Decimal, string) {
	price, ok := rawdoc.Path(item, "SellingStatus", "CurrentPrice")
	if !ok {
		return decimal.Zero, defaultCurrency
	}

	value, _ := rawdoc.Decimal(price)
	currency, ok := rawdoc.Attr(price, "currencyID")
	if !ok || currency == "" {
		currency = defaultCurrency
	}

	return value, currency
}

// toAspects converts item specifics into aspect name to ordered values mapping.
func toAspects(item map[string]any) map[string][]string {
	aspects := map[string][]string{}

	list, ok := rawdoc.Path(item, "ItemSpecifics", "NameValueList")
	if !ok {
		return aspects
	}

	for _, entry := range rawdoc.List(list) {
		nameValue, ok := rawdoc.Object(entry)
		if !ok {
			continue
		}

		name := text(nameValue, "Name")
		if name == "" {
			continue
		}

		values, _ := rawdoc.Field(nameValue, "Value")
		aspects[name] = lo.FilterMap(rawdoc.List(values), func(val any, _ int) (string, bool) {
			return rawdoc.Text(val)
		})
	}

	return aspects
}

func toProductIdentifiers(item map[string]any) models.ProductIdentifiers {
	return models.ProductIdentifiers{
		ISBN:  optionalText(item, "ProductListingDetails", "ISBN"),
		UPC:   optionalText(item, "ProductListingDetails", "UPC"),
		EAN:   optionalText(item, "ProductListingDetails", "EAN"),
		Brand: optionalText(item, "ProductListingDetails", "BrandMPN", "Brand"),
		MPN:   optionalText(item, "ProductListingDetails", "BrandMPN", "MPN"),
	}
}

// toImages converts item picture urls into ranked images.
func toImages(item map[string]any) []models.ListingImage {
	urls, ok := rawdoc.Path(item, "PictureDetails", "PictureURL")
	if !ok {
		return []models.ListingImage{}
	}

	images := []models.ListingImage{}
	for _, u := range rawdoc.List(urls) {
		url, ok := rawdoc.Text(u)
		if !ok || strings.TrimSpace(url) == "" {
			continue
		}
		images = append(images, models.ListingImage{
			Rank:        len(images),
			OriginalURL: strings.TrimSpace(url),
		})
	}

	return images
}

func text(doc map[string]any, keys ...string) string {
	val, _ := rawdoc.PathText(doc, keys...)
	return val
}

func optionalText(doc map[string]any, keys ...string) *string {
	val, ok := rawdoc.PathText(doc, keys...)
	if !ok || val == "" {
		return nil
	}
	return &val
}

func intField(doc map[string]any, keys ...string) (int, error) {
	val, ok := rawdoc.PathText(doc, keys...)
	if !ok || val == "" {
		return 0, nil
	}
	return strconv.Atoi(val)
}
