package storage_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/MichalMitros/listing-migrator/internal/platform"
	"github.com/MichalMitros/listing-migrator/internal/platform/models"
	"github.com/MichalMitros/listing-migrator/internal/platform/models/modelstesting"
	"github.com/MichalMitros/listing-migrator/internal/platform/storage"
	pgmodels "github.com/MichalMitros/listing-migrator/internal/platform/storage/gen/postgres/public/model"
	"github.com/MichalMitros/listing-migrator/internal/platform/storage/storagetesting"
	"github.com/go-faker/faker/v4"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var loc = func() *time.Location {
	loc, err := time.LoadLocation("Etc/UTC")
	if err != nil {
		panic(err)
	}
	return loc
}()

func TestPostgresIntegration(t *testing.T) {
	suite.Run(t, new(PostgresTestSuite))
}

type PostgresTestSuite struct {
	suite.Suite
	DB *sql.DB
}

func (s *PostgresTestSuite) SetupSuite() {
	s.DB = storagetesting.Open(s.T())
	storagetesting.CleanupData(s.T(), s.DB)
}

func (s *PostgresTestSuite) TearDownSuite() {
	if s.DB == nil {
		return
	}
	storagetesting.CleanupData(s.T(), s.DB)
	if err := s.DB.Close(); err != nil {
		s.FailNow("close DB", err)
	}
}

func (s *PostgresTestSuite) TestIntegrationStartRun() {
	storagetesting.CleanupData(s.T(), s.DB)

	tests := map[string]struct {
		storedRuns []pgmodels.Run
		wantErr    error
	}{
		"first run": {},
		"after successful run": {
			storedRuns: []pgmodels.Run{
				{
					ID:         1001,
					Step:       string(models.StepPublish),
					CreatedAt:  time.Now(),
					Success:    lo.ToPtr(true),
					FinishedAt: lo.ToPtr(time.Now()),
				},
			},
		},
		"after failed run": {
			storedRuns: []pgmodels.Run{
				{
					ID:         1001,
					Step:       string(models.StepPublish),
					CreatedAt:  time.Now(),
					Success:    lo.ToPtr(false),
					FinishedAt: lo.ToPtr(time.Now()),
				},
			},
		},
		"other step running": {
			storedRuns: []pgmodels.Run{
				{
					ID:        1001,
					Step:      string(models.StepDownload),
					CreatedAt: time.Now(),
				},
			},
		},
		"already running error": {
			storedRuns: []pgmodels.Run{
				{
					ID:        1001,
					Step:      string(models.StepPublish),
					CreatedAt: time.Now(),
				},
			},
			wantErr: platform.ErrAlreadyRunning,
		},
	}

	for name, tt := range tests {
		s.Run(name, func() {
			defer storagetesting.CleanupData(s.T(), s.DB)

			storagetesting.InsertRuns(s.T(), s.DB, tt.storedRuns...)

			post := storage.NewPostgres(s.DB)

			run, err := post.StartRun(context.TODO(), models.StepPublish)

			if tt.wantErr == nil {
				s.Require().NoError(err, "shouldn't return any error")
				s.NotZero(run.ID, "run should have id")
				s.NotZero(run.CreatedAt.UnixMilli(), "run should have \"created at\" set")
				s.Equal(models.StepPublish, run.Step, "run should have correct step")
			} else {
				s.Require().ErrorIs(err, tt.wantErr, "should return correct error")
			}
		})
	}
}

func (s *PostgresTestSuite) TestIntegrationFinishRun() {
	defer storagetesting.CleanupData(s.T(), s.DB)
	storagetesting.CleanupData(s.T(), s.DB)

	createdAt := time.Date(2024, time.April, 1, 1, 1, 1, 0, loc)
	finishedAt := time.Date(2024, time.April, 1, 2, 1, 1, 0, loc)

	storagetesting.InsertRuns(s.T(), s.DB, pgmodels.Run{
		ID:        1001,
		Step:      string(models.StepUpload),
		CreatedAt: createdAt,
	})

	post := storage.NewPostgres(s.DB)

	err := post.FinishRun(context.TODO(), &models.Run{
		ID:             1001,
		Step:           models.StepUpload,
		CreatedAt:      createdAt,
		FinishedAt:     &finishedAt,
		IsSuccess:      lo.ToPtr(true),
		SucceededItems: lo.ToPtr(int32(12)),
		FailedItems:    lo.ToPtr(int32(3)),
	})
	s.Require().NoError(err, "shouldn't return any error")

	runs := storagetesting.GetRuns(s.T(), s.DB)
	s.Require().Len(runs, 1, "should keep single run")
	s.True(finishedAt.Equal(*runs[0].FinishedAt), "should store finish time")
	s.Equal(lo.ToPtr(true), runs[0].Success, "should store success")
	s.Equal(lo.ToPtr(int32(12)), runs[0].SucceededItems, "should store succeeded items")
	s.Equal(lo.ToPtr(int32(3)), runs[0].FailedItems, "should store failed items")

	err = post.FinishRun(context.TODO(), &models.Run{ID: 2002})
	s.Require().ErrorIs(err, platform.ErrNotFound, "should return not found for unknown run")

	lastRuns, err := post.LastRuns(context.TODO())
	s.Require().NoError(err, "shouldn't return any error")
	s.Require().Len(lastRuns, 1, "should return last run of upload step only")
	s.Equal(models.StepUpload, lastRuns[0].Step, "should return upload run")
}

func (s *PostgresTestSuite) TestIntegrationPolicies() {
	defer storagetesting.CleanupData(s.T(), s.DB)
	storagetesting.CleanupData(s.T(), s.DB)

	storagetesting.InsertPolicies(s.T(), s.DB, pgmodels.SourcePolicy{
		ID:             1001,
		PolicyType:     string(models.PolicyTypePayment),
		PolicyID:       "p-1",
		Name:           "old name",
		Payload:        `{"name":"old name"}`,
		TargetPolicyID: lo.ToPtr("t-1"),
	})

	post := storage.NewPostgres(s.DB)

	payment := modelstesting.FakePolicy(models.PolicyTypePayment, func(p *models.SourcePolicy) {
		p.PolicyID = "p-1"
		p.Name = "new name"
	})
	fulfillment := modelstesting.FakePolicy(models.PolicyTypeFulfillment)

	err := post.UpsertPolicies(context.TODO(), []models.SourcePolicy{payment, fulfillment, payment})
	s.Require().NoError(err, "shouldn't return any error")

	payments, err := post.PoliciesByType(context.TODO(), models.PolicyTypePayment)
	s.Require().NoError(err, "shouldn't return any error")
	s.Require().Len(payments, 1, "should upsert existing payment policy")
	s.Equal("new name", payments[0].Name, "should refresh policy name")
	s.Equal(payment.Payload["name"], payments[0].Payload["name"], "should refresh policy payload")
	s.Equal(lo.ToPtr("t-1"), payments[0].TargetPolicyID, "should keep target policy ID")

	fulfillments, err := post.PoliciesByType(context.TODO(), models.PolicyTypeFulfillment)
	s.Require().NoError(err, "shouldn't return any error")
	s.Require().Len(fulfillments, 1, "should insert new fulfillment policy")
	s.Nil(fulfillments[0].TargetPolicyID, "new policy shouldn't have target ID")

	s.Require().NoError(post.SetPolicyTargetID(context.TODO(), fulfillments[0].ID, "t-2"))
	s.Require().ErrorIs(post.SetPolicyTargetID(context.TODO(), 9999, "t-3"), platform.ErrNotFound)

	mapping, err := post.PolicyMapping(context.TODO())
	s.Require().NoError(err, "shouldn't return any error")
	s.Equal(map[string]string{"p-1": "t-1", fulfillment.PolicyID: "t-2"}, mapping, "should return mapping of reconciled policies")
}

func (s *PostgresTestSuite) TestIntegrationUpsertListings() {
	defer storagetesting.CleanupData(s.T(), s.DB)
	storagetesting.CleanupData(s.T(), s.DB)

	storagetesting.InsertListings(s.T(), s.DB, pgmodels.Listing{
		ID:                 1001,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
		ItemID:             "item-1",
		Sku:                "SKU-1",
		Title:              "old title",
		Price:              "1.00",
		Currency:           "USD",
		Aspects:            "{}",
		ProductIdentifiers: "{}",
		RawListing:         "{}",
		ConditionID:        "1000",
		Status:             string(models.StatusMigrated),
		OfferID:            lo.ToPtr("offer-1"),
	})
	storagetesting.InsertImages(s.T(), s.DB, pgmodels.ListingImage{
		ID:          1001,
		ListingID:   1001,
		Rank:        0,
		OriginalURL: "https://example.com/old.jpg",
	})

	existing := modelstesting.FakeListing(func(l *models.Listing) {
		l.ItemID = "item-1"
		l.SKU = "SKU-1"
		l.Title = "new title"
		l.Price = decimal.RequireFromString("12.99")
		l.Status = models.StatusNotStarted
	})
	created := modelstesting.FakeListing(func(l *models.Listing) {
		l.ItemID = "item-2"
		l.Images = []models.ListingImage{
			{Rank: 0, OriginalURL: faker.URL()},
			{Rank: 1, OriginalURL: faker.URL()},
		}
	})

	post := storage.NewPostgres(s.DB)

	newListings, updatedListings, err := post.UpsertListings(context.TODO(), []models.Listing{existing, created})
	s.Require().NoError(err, "shouldn't return any error")
	s.Equal(int32(1), newListings, "should return correct number of created listings")
	s.Equal(int32(1), updatedListings, "should return correct number of updated listings")

	stored := storagetesting.GetListings(s.T(), s.DB)
	s.Require().Len(stored, 2, "should not duplicate listings")
	storedExisting, _ := lo.Find(stored, func(l pgmodels.Listing) bool { return l.ItemID == "item-1" })
	storedCreated, _ := lo.Find(stored, func(l pgmodels.Listing) bool { return l.ItemID == "item-2" })
	s.Equal("new title", storedExisting.Title, "should refresh title")
	s.Equal("12.99", storedExisting.Price, "should refresh price")
	s.Equal(string(models.StatusMigrated), storedExisting.Status, "should keep migration status")
	s.Equal(lo.ToPtr("offer-1"), storedExisting.OfferID, "should keep offer ID")
	s.Len(storagetesting.GetImagesByListingID(s.T(), s.DB, 1001), 1, "should keep images of existing listing")
	s.Len(storagetesting.GetImagesByListingID(s.T(), s.DB, storedCreated.ID), 2, "should insert images of new listing")

	listings, err := post.ListingsByStatus(context.TODO(), models.StatusNotStarted)
	s.Require().NoError(err, "shouldn't return any error")
	s.Require().Len(listings, 1, "should return only not started listings")
	assertListing(s.T(), created, listings[0])
}

func (s *PostgresTestSuite) TestIntegrationListingState() {
	defer storagetesting.CleanupData(s.T(), s.DB)
	storagetesting.CleanupData(s.T(), s.DB)

	post := storage.NewPostgres(s.DB)

	listing := modelstesting.FakeListing(func(l *models.Listing) { l.SKU = "SKU-STATE" })
	_, _, err := post.UpsertListings(context.TODO(), []models.Listing{listing})
	s.Require().NoError(err, "shouldn't return any error")

	listings, err := post.ListingsByStatus(context.TODO(), models.StatusNotStarted)
	s.Require().NoError(err, "shouldn't return any error")
	s.Require().Len(listings, 1)

	listings[0].Status = models.StatusFailed
	listings[0].MigrationError = lo.ToPtr("boom")
	listings[0].OfferID = lo.ToPtr("offer-9")
	s.Require().NoError(post.SaveListingState(context.TODO(), &listings[0]))

	failed, err := post.ListingsByStatus(context.TODO(), models.StatusFailed, models.StatusMigrated)
	s.Require().NoError(err, "shouldn't return any error")
	s.Require().Len(failed, 1)
	s.Equal(lo.ToPtr("boom"), failed[0].MigrationError, "should store migration error")
	s.Equal(lo.ToPtr("offer-9"), failed[0].OfferID, "should store offer ID")

	s.Require().NoError(post.ResetMigration(context.TODO(), "SKU-STATE"))
	s.Require().ErrorIs(post.ResetMigration(context.TODO(), "SKU-UNKNOWN"), platform.ErrNotFound)

	reset, err := post.ListingsByStatus(context.TODO(), models.StatusNotStarted)
	s.Require().NoError(err, "shouldn't return any error")
	s.Require().Len(reset, 1)
	s.Nil(reset[0].MigrationError, "should clear migration error")
	s.Nil(reset[0].OfferID, "should clear offer ID")

	count, err := post.ResetAllMigrations(context.TODO())
	s.Require().NoError(err, "shouldn't return any error")
	s.Equal(int64(1), count, "should reset all listings")
}

func (s *PostgresTestSuite) TestIntegrationImageTransfer() {
	defer storagetesting.CleanupData(s.T(), s.DB)
	storagetesting.CleanupData(s.T(), s.DB)

	post := storage.NewPostgres(s.DB)

	listing := modelstesting.FakeListing(func(l *models.Listing) {
		l.SKU = "SKU-IMG"
		l.Images = []models.ListingImage{
			{Rank: 0, OriginalURL: faker.URL()},
			{Rank: 1, OriginalURL: faker.URL()},
			{Rank: 2, OriginalURL: faker.URL()},
		}
	})
	_, _, err := post.UpsertListings(context.TODO(), []models.Listing{listing})
	s.Require().NoError(err, "shouldn't return any error")

	pendingDownload, err := post.PendingDownloadIDs(context.TODO())
	s.Require().NoError(err, "shouldn't return any error")
	s.Require().Len(pendingDownload, 3, "all images should wait for download")

	conn, err := post.Acquire(context.TODO())
	s.Require().NoError(err, "shouldn't return any error")
	defer conn.Close()

	image, sku, err := conn.ImageWithSKU(context.TODO(), pendingDownload[0])
	s.Require().NoError(err, "shouldn't return any error")
	s.Equal("SKU-IMG", sku, "should return SKU of image listing")
	s.Equal(0, image.Rank, "should return first image")

	s.Require().NoError(conn.SetImageLocalPath(context.TODO(), pendingDownload[0], "/tmp/0.jpg"))
	s.Require().NoError(conn.SetImageLocalPath(context.TODO(), pendingDownload[1], "/tmp/1.jpg"))
	s.Require().NoError(conn.SetImageTargetURL(context.TODO(), pendingDownload[1], "https://i.ebayimg.com/1.jpg"))

	_, _, err = conn.ImageWithSKU(context.TODO(), 999999)
	s.Require().ErrorIs(err, platform.ErrNotFound, "should return not found for unknown image")

	pendingUpload, err := post.PendingUploadIDs(context.TODO())
	s.Require().NoError(err, "shouldn't return any error")
	s.Equal([]int{pendingDownload[0]}, pendingUpload, "only downloaded image should wait for upload")

	reset, err := post.ResetImages(context.TODO(), 1)
	s.Require().NoError(err, "shouldn't return any error")
	s.Equal(int32(2), reset, "should reset transferred images")

	pendingDownload, err = post.PendingDownloadIDs(context.TODO())
	s.Require().NoError(err, "shouldn't return any error")
	s.Len(pendingDownload, 3, "all images should wait for download again")
}

// assertListing is a helper test function to assert listing loaded from storage.
func assertListing(t *testing.T, expected, actual models.Listing) {
	t.Helper()

	require.NotZero(t, actual.ID, "listing should have id")
	require.Len(t, actual.Images, len(expected.Images), "listing should have all images")

	for ix := range actual.Images {
		assert.Equal(t, expected.Images[ix].Rank, actual.Images[ix].Rank, "image at index %d has incorrect rank", ix)
		assert.Equal(t, expected.Images[ix].OriginalURL, actual.Images[ix].OriginalURL, "image at index %d has incorrect URL", ix)
	}

	assert.True(t, expected.Price.Equal(actual.Price), "listing has incorrect price")

	actual.ID = 0
	actual.CreatedAt = time.Time{}
	actual.UpdatedAt = time.Time{}
	actual.Images = nil
	actual.Price = expected.Price
	expected.Images = nil

	assert.Equal(t, expected, actual, "listing has incorrect values")
}
