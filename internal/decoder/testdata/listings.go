package testdata

import (
	"github.com/MichalMitros/listing-migrator/internal/platform/models"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Listings are listings decoded from items.xml, without raw payloads.
var Listings = []models.Listing{
	{
		ItemID:               "110553211111",
		SKU:                  "BOOK-001",
		Title:                "The Art of War & Other Classics",
		Subtitle:             lo.ToPtr("First edition"),
		Description:          "<div><p>Hardcover   in great shape.</p></div>",
		Quantity:             3,
		Price:                decimal.RequireFromString("24.99"),
		Currency:             "USD",
		CategoryID:           "261186",
		PaymentPolicyID:      lo.ToPtr("5003"),
		ReturnPolicyID:       lo.ToPtr("5002"),
		ShippingPolicyID:     lo.ToPtr("5001"),
		ConditionID:          "5000",
		ConditionDescription: lo.ToPtr("Light wear on cover."),
		Aspects: map[string][]string{
			"Topic":  {"War", "History"},
			"Author": {"Sun Tzu"},
		},
		ProductIdentifiers: models.ProductIdentifiers{
			ISBN:  lo.ToPtr("9781599869773"),
			Brand: lo.ToPtr("Classic Press"),
			MPN:   lo.ToPtr("CP-17"),
		},
		BestOffer: map[string]any{"BestOfferEnabled": "true"},
		Status:    models.StatusNotStarted,
		Images: []models.ListingImage{
			{Rank: 0, OriginalURL: "https://i.ebayimg.com/images/g/abc/s-l500.jpg"},
			{Rank: 1, OriginalURL: "https://i.ebayimg.com/00/s/MTYwMA==/z/def/$_1.JPG?set_id=8800005007"},
		},
	},
	{
		ItemID:             "110553222222",
		SKU:                "NOSKU_110553222222",
		Title:              "Vintage Lamp",
		Description:        "Brass lamp.",
		Quantity:           1,
		Price:              decimal.RequireFromString("40.00"),
		Currency:           "CAD",
		CategoryID:         "112581",
		ConditionID:        "1000",
		Aspects:            map[string][]string{},
		ProductIdentifiers: models.ProductIdentifiers{},
		Status:             models.StatusNotStarted,
		Images: []models.ListingImage{
			{Rank: 0, OriginalURL: "https://i.ebayimg.com/images/g/lamp/s-l1600.jpg"},
		},
	},
}
