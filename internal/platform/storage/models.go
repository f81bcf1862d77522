package storage

import (
	"encoding/json"
	"fmt"

	"github.com/MichalMitros/listing-migrator/internal/platform/models"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	pgmodels "github.com/MichalMitros/listing-migrator/internal/platform/storage/gen/postgres/public/model"
)

//go:generate make -C ../../../ generate-db

func toDBRun(run *models.Run) *pgmodels.Run {
	return &pgmodels.Run{
		ID:             int32(run.ID),
		Step:           string(run.Step),
		CreatedAt:      run.CreatedAt,
		FinishedAt:     run.FinishedAt,
		Success:        run.IsSuccess,
		StatusMessage:  run.StatusMessage,
		SucceededItems: run.SucceededItems,
		FailedItems:    run.FailedItems,
	}
}

func toAppRun(run *pgmodels.Run) *models.Run {
	return &models.Run{
		ID:             int(run.ID),
		Step:           models.Step(run.Step),
		CreatedAt:      run.CreatedAt,
		FinishedAt:     run.FinishedAt,
		IsSuccess:      run.Success,
		StatusMessage:  run.StatusMessage,
		SucceededItems: run.SucceededItems,
		FailedItems:    run.FailedItems,
	}
}

// ToDBPolicy converts models.SourcePolicy into postgres source policy model.
func ToDBPolicy(policy *models.SourcePolicy) (*pgmodels.SourcePolicy, error) {
	payload, err := marshalJSON(policy.Payload, "{}")
	if err != nil {
		return nil, fmt.Errorf("can't encode payload of policy %s: %w", policy.PolicyID, err)
	}

	return &pgmodels.SourcePolicy{
		ID:             int32(policy.ID),
		PolicyType:     string(policy.Type),
		PolicyID:       policy.PolicyID,
		Name:           policy.Name,
		Description:    policy.Description,
		Payload:        payload,
		TargetPolicyID: policy.TargetPolicyID,
	}, nil
}

func toAppPolicy(policy *pgmodels.SourcePolicy) (*models.SourcePolicy, error) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(policy.Payload), &payload); err != nil {
		return nil, fmt.Errorf("can't decode payload of policy %s: %w", policy.PolicyID, err)
	}

	return &models.SourcePolicy{
		ID:             int(policy.ID),
		Type:           models.PolicyType(policy.PolicyType),
		PolicyID:       policy.PolicyID,
		Name:           policy.Name,
		Description:    policy.Description,
		Payload:        payload,
		TargetPolicyID: policy.TargetPolicyID,
	}, nil
}

// ToDBListing converts models.Listing into postgres listing model.
func ToDBListing(listing *models.Listing) (*pgmodels.Listing, error) {
	aspects, err := marshalJSON(listing.Aspects, "{}")
	if err != nil {
		return nil, fmt.Errorf("can't encode aspects: %w", err)
	}

	identifiers, err := marshalJSON(listing.ProductIdentifiers, "{}")
	if err != nil {
		return nil, fmt.Errorf("can't encode product identifiers: %w", err)
	}

	raw, err := marshalJSON(listing.Raw, "{}")
	if err != nil {
		return nil, fmt.Errorf("can't encode raw listing: %w", err)
	}

	var variations *string
	if len(listing.Variations) > 0 {
		variations = lo.ToPtr(string(listing.Variations))
	}

	var bestOffer *string
	if len(listing.BestOffer) > 0 {
		encoded, err := marshalJSON(listing.BestOffer, "{}")
		if err != nil {
			return nil, fmt.Errorf("can't encode best offer: %w", err)
		}
		bestOffer = &encoded
	}

	status := listing.Status
	if status == "" {
		status = models.StatusNotStarted
	}

	return &pgmodels.Listing{
		ID:                   int32(listing.ID),
		CreatedAt:            listing.CreatedAt,
		UpdatedAt:            listing.UpdatedAt,
		ItemID:               listing.ItemID,
		Sku:                  listing.SKU,
		Title:                listing.Title,
		Subtitle:             listing.Subtitle,
		Description:          listing.Description,
		Quantity:             int32(listing.Quantity),
		Price:                listing.Price.String(),
		Currency:             listing.Currency,
		CategoryID:           listing.CategoryID,
		PaymentPolicyID:      listing.PaymentPolicyID,
		ReturnPolicyID:       listing.ReturnPolicyID,
		ShippingPolicyID:     listing.ShippingPolicyID,
		Aspects:              aspects,
		ProductIdentifiers:   identifiers,
		Variations:           variations,
		BestOffer:            bestOffer,
		ConditionID:          listing.ConditionID,
		ConditionDescription: listing.ConditionDescription,
		RawListing:           raw,
		Status:               string(status),
		MigrationError:       listing.MigrationError,
		OfferID:              listing.OfferID,
	}, nil
}

func toAppListing(listing *pgmodels.Listing, images []pgmodels.ListingImage) (*models.Listing, error) {
	price, err := decimal.NewFromString(listing.Price)
	if err != nil {
		return nil, fmt.Errorf("can't parse price of listing %s: %w", listing.Sku, err)
	}

	result := models.Listing{
		ID:                   int(listing.ID),
		CreatedAt:            listing.CreatedAt,
		UpdatedAt:            listing.UpdatedAt,
		ItemID:               listing.ItemID,
		SKU:                  listing.Sku,
		Title:                listing.Title,
		Subtitle:             listing.Subtitle,
		Description:          listing.Description,
		Quantity:             int(listing.Quantity),
		Price:                price,
		Currency:             listing.Currency,
		CategoryID:           listing.CategoryID,
		PaymentPolicyID:      listing.PaymentPolicyID,
		ReturnPolicyID:       listing.ReturnPolicyID,
		ShippingPolicyID:     listing.ShippingPolicyID,
		ConditionID:          listing.ConditionID,
		ConditionDescription: listing.ConditionDescription,
		Status:               models.MigrationStatus(listing.Status),
		MigrationError:       listing.MigrationError,
		OfferID:              listing.OfferID,
		Images:               ToAppImages(images),
	}

	if err := json.Unmarshal([]byte(listing.Aspects), &result.Aspects); err != nil {
		return nil, fmt.Errorf("can't decode aspects of listing %s: %w", listing.Sku, err)
	}

	if err := json.Unmarshal([]byte(listing.ProductIdentifiers), &result.ProductIdentifiers); err != nil {
		return nil, fmt.Errorf("can't decode product identifiers of listing %s: %w", listing.Sku, err)
	}

	if err := json.Unmarshal([]byte(listing.RawListing), &result.Raw); err != nil {
		return nil, fmt.Errorf("can't decode raw payload of listing %s: %w", listing.Sku, err)
	}

	if listing.Variations != nil {
		result.Variations = json.RawMessage(*listing.Variations)
	}

	if listing.BestOffer != nil {
		if err := json.Unmarshal([]byte(*listing.BestOffer), &result.BestOffer); err != nil {
			return nil, fmt.Errorf("can't decode best offer of listing %s: %w", listing.Sku, err)
		}
	}

	return &result, nil
}

// ToDBImages converts models.ListingImage slice into postgres listing image slice.
func ToDBImages(listingID int32, images []models.ListingImage) []pgmodels.ListingImage {
	if len(images) == 0 {
		return []pgmodels.ListingImage{}
	}

	dbImages := make([]pgmodels.ListingImage, 0, len(images))
	for ix := range images {
		dbImages = append(dbImages, pgmodels.ListingImage{
			ListingID:   listingID,
			Rank:        int32(images[ix].Rank),
			OriginalURL: images[ix].OriginalURL,
			LocalPath:   images[ix].LocalPath,
			TargetURL:   images[ix].TargetURL,
		})
	}
	return dbImages
}

// ToAppImages converts postgres listing images into models.ListingImage slice.
func ToAppImages(images []pgmodels.ListingImage) []models.ListingImage {
	return lo.Map(images, func(image pgmodels.ListingImage, _ int) models.ListingImage {
		return models.ListingImage{
			ID:          int(image.ID),
			ListingID:   int(image.ListingID),
			Rank:        int(image.Rank),
			OriginalURL: image.OriginalURL,
			LocalPath:   image.LocalPath,
			TargetURL:   image.TargetURL,
		}
	})
}

// marshalJSON encodes v into JSON string, returning empty value for nil maps.
func marshalJSON(v any, empty string) (string, error) {
	encoded, err := json.Marshal(v)
	if err != nil {
		return "", err
	}

	if string(encoded) == "null" {
		return empty, nil
	}

	return string(encoded), nil
}
