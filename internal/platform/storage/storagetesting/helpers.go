package storagetesting

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/MichalMitros/listing-migrator/internal/platform/storage"
	pgmodels "github.com/MichalMitros/listing-migrator/internal/platform/storage/gen/postgres/public/model"
	"github.com/MichalMitros/listing-migrator/internal/platform/storage/gen/postgres/public/table"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	_ "github.com/lib/pq"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// Open opens connection to migrated test DB.
// It uses DATABASE_URL environment variable if set, otherwise it starts disposable Postgres container.
// Tests are skipped in short mode or when neither is available.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping database tests in short mode")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = startContainer(t)
	}

	if _, err := storage.Migrate(dbURL); err != nil {
		t.Fatalf("can't migrate %q: %s", dbURL, err)
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		t.Fatalf("can't open connection to %q: %s", dbURL, err)
	}

	return db
}

func startContainer(t *testing.T) string {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("migrator_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Skipf("please provide database URL via DATABASE_URL environment variable or run docker: %s", err)
	}

	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("can't terminate postgres container: %s", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatal("can't get connection string", err)
	}

	return dsn
}

// InsertPolicies is a helper test function to insert source policies.
func InsertPolicies(t *testing.T, exc qrm.Executable, policies ...pgmodels.SourcePolicy) {
	t.Helper()

	if len(policies) == 0 {
		return
	}

	_, err := table.SourcePolicy.INSERT(table.SourcePolicy.AllColumns).MODELS(policies).Exec(exc)
	if err != nil {
		t.Fatal("can't insert policies", err)
	}
}

// InsertRuns is a helper test function to insert runs.
func InsertRuns(t *testing.T, exc qrm.Executable, runs ...pgmodels.Run) {
	t.Helper()

	if len(runs) == 0 {
		return
	}

	_, err := table.Run.INSERT(table.Run.AllColumns).MODELS(runs).Exec(exc)
	if err != nil {
		t.Fatal("can't insert runs", err)
	}
}

// InsertListings is a helper test function to insert listings.
func InsertListings(t *testing.T, exc qrm.Executable, listings ...pgmodels.Listing) {
	t.Helper()

	if len(listings) == 0 {
		return
	}

	_, err := table.Listing.INSERT(table.Listing.AllColumns).MODELS(listings).Exec(exc)
	if err != nil {
		t.Fatal("can't insert listings", err)
	}
}

// InsertImages is a helper test function to insert listing images.
func InsertImages(t *testing.T, exc qrm.Executable, images ...pgmodels.ListingImage) {
	t.Helper()

	if len(images) == 0 {
		return
	}

	_, err := table.ListingImage.INSERT(table.ListingImage.AllColumns).MODELS(images).Exec(exc)
	if err != nil {
		t.Fatal("can't insert images", err)
	}
}

// GetRuns is a helper test function to get all runs.
func GetRuns(t *testing.T, queryable qrm.Queryable) []pgmodels.Run {
	t.Helper()

	runs := []pgmodels.Run{}
	err := table.Run.SELECT(table.Run.AllColumns).
		WHERE(table.Run.ID.IS_NOT_NULL()).
		Query(queryable, &runs)
	if err != nil {
		t.Fatal("can't get runs", err)
	}

	return runs
}

// GetPolicies is a helper test function to get all source policies.
func GetPolicies(t *testing.T, queryable qrm.Queryable) []pgmodels.SourcePolicy {
	t.Helper()

	policies := []pgmodels.SourcePolicy{}
	err := table.SourcePolicy.SELECT(table.SourcePolicy.AllColumns).
		WHERE(table.SourcePolicy.ID.IS_NOT_NULL()).
		ORDER_BY(table.SourcePolicy.ID.ASC()).
		Query(queryable, &policies)
	if err != nil {
		t.Fatal("can't get policies", err)
	}

	return policies
}

// GetListings is a helper test function to get all listings.
func GetListings(t *testing.T, queryable qrm.Queryable) []pgmodels.Listing {
	t.Helper()

	listings := []pgmodels.Listing{}
	err := table.Listing.SELECT(table.Listing.AllColumns).
		WHERE(table.Listing.ID.IS_NOT_NULL()).
		ORDER_BY(table.Listing.ID.ASC()).
		Query(queryable, &listings)
	if err != nil {
		t.Fatal("can't get listings", err)
	}

	return listings
}

// GetImagesByListingID is a helper test function to get images of listing ordered by rank.
func GetImagesByListingID(t *testing.T, queryable qrm.Queryable, listingID int32) []pgmodels.ListingImage {
	t.Helper()

	images := []pgmodels.ListingImage{}
	err := table.ListingImage.SELECT(table.ListingImage.AllColumns).
		WHERE(table.ListingImage.ListingID.EQ(pg.Int32(listingID))).
		ORDER_BY(table.ListingImage.Rank.ASC()).
		Query(queryable, &images)
	if err != nil {
		t.Fatal("can't get images", err)
	}

	return images
}

// CleanupData is a helper test function to delete all rows from all tables.
func CleanupData(t *testing.T, exc qrm.Executable) {
	t.Helper()

	_, err := table.ListingImage.DELETE().WHERE(table.ListingImage.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete images data", err)
	}

	_, err = table.Listing.DELETE().WHERE(table.Listing.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete listings data", err)
	}

	_, err = table.SourcePolicy.DELETE().WHERE(table.SourcePolicy.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete policies data", err)
	}

	_, err = table.Run.DELETE().WHERE(table.Run.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete runs data", err)
	}
}
