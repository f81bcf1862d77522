package modelstesting

import (
	"math/rand"

	"github.com/MichalMitros/listing-migrator/internal/platform/models"
	"github.com/go-faker/faker/v4"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// FakeListing returns models.Listing with fake data and random number of fake images.
func FakeListing(ops ...func(l *models.Listing)) models.Listing {
	listing := models.Listing{
		ItemID:           faker.UUIDDigit(),
		SKU:              faker.Word(),
		Title:            faker.Sentence(),
		Subtitle:         lo.ToPtr(faker.Word()),
		Description:      faker.Paragraph(),
		Quantity:         rand.Intn(20) + 1,
		Price:            decimal.New(rand.Int63n(100000)+1, -2),
		Currency:         "USD",
		CategoryID:       faker.Word(),
		PaymentPolicyID:  lo.ToPtr(faker.UUIDDigit()),
		ReturnPolicyID:   lo.ToPtr(faker.UUIDDigit()),
		ShippingPolicyID: lo.ToPtr(faker.UUIDDigit()),
		Aspects: map[string][]string{
			"Brand": {faker.Word()},
			"Color": {faker.Word(), faker.Word()},
		},
		ProductIdentifiers: models.ProductIdentifiers{
			UPC: lo.ToPtr(faker.UUIDDigit()),
		},
		ConditionID:          "3000",
		ConditionDescription: lo.ToPtr(faker.Sentence()),
		Raw:                  map[string]any{"ItemID": faker.UUIDDigit()},
		Status:               models.StatusNotStarted,
		Images:               fakeImages(),
	}

	for _, op := range ops {
		op(&listing)
	}

	return listing
}

// FakeImage returns models.ListingImage with fake data.
func FakeImage(ops ...func(i *models.ListingImage)) models.ListingImage {
	image := models.ListingImage{
		Rank:        rand.Intn(12),
		OriginalURL: faker.URL(),
	}

	for _, op := range ops {
		op(&image)
	}

	return image
}

// FakePolicy returns models.SourcePolicy of provided type with fake data.
func FakePolicy(policyType models.PolicyType, ops ...func(p *models.SourcePolicy)) models.SourcePolicy {
	policyID := faker.UUIDDigit()
	name := faker.Word()
	policy := models.SourcePolicy{
		Type:        policyType,
		PolicyID:    policyID,
		Name:        name,
		Description: lo.ToPtr(faker.Sentence()),
		Payload: map[string]any{
			policyType.IDKey(): policyID,
			"name":             name,
			"marketplaceId":    "EBAY_US",
			"creationDate":     "2021-01-01T00:00:00.000Z",
			"lastModifiedDate": "2022-01-01T00:00:00.000Z",
			"version":          float64(rand.Intn(10)),
			"categoryTypes":    []any{map[string]any{"name": "ALL_EXCLUDING_MOTORS_VEHICLES"}},
		},
	}

	for _, op := range ops {
		op(&policy)
	}

	return policy
}

func fakeImages() []models.ListingImage {
	imagesLen := rand.Intn(5) + 1
	images := make([]models.ListingImage, 0, imagesLen)
	for ix := range imagesLen {
		images = append(images, FakeImage(func(i *models.ListingImage) { i.Rank = ix }))
	}

	return images
}
