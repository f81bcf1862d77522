package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/MichalMitros/listing-migrator/internal/platform"
	"github.com/MichalMitros/listing-migrator/internal/platform/models"
	"github.com/MichalMitros/listing-migrator/internal/platform/storage/gen/postgres/public/table"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	pgmodels "github.com/MichalMitros/listing-migrator/internal/platform/storage/gen/postgres/public/model"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

// Postgres is storage for source policies, listings, their images and step runs.
type Postgres struct {
	db *sql.DB
}

// NewPostgres returns new Postgres.
func NewPostgres(db *sql.DB) Postgres {
	return Postgres{
		db: db,
	}
}

// StartRun creates new unfinished run of step in database and returns it.
// It returns ErrAlreadyRunning if previous run of the same step is not finished yet.
func (p Postgres) StartRun(ctx context.Context, step models.Step) (*models.Run, error) {
	run := &models.Run{
		Step: step,
	}

	err := runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		lastRun, err := getLastRun(ctx, tx, step)
		if err != nil && !errors.Is(err, qrm.ErrNoRows) {
			return fmt.Errorf("can't get last run from database: %w", err)
		}

		if lastRun != nil && lastRun.FinishedAt == nil && lastRun.Success == nil {
			return platform.ErrAlreadyRunning
		}

		newRun := toDBRun(run)
		err = table.Run.INSERT(table.Run.Step).
			MODEL(newRun).
			RETURNING(table.Run.ID, table.Run.CreatedAt).
			QueryContext(ctx, tx, newRun)
		if err != nil {
			return fmt.Errorf("can't insert run into database: %w", err)
		}

		run.ID = int(newRun.ID)
		run.CreatedAt = newRun.CreatedAt

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("can't add run: %w", err)
	}

	return run, nil
}

// FinishRun sets run as finished and updates run's statistics.
func (p Postgres) FinishRun(ctx context.Context, run *models.Run) error {
	columnList := table.Run.AllColumns.Except(table.Run.ID, table.Run.CreatedAt, table.Run.Step)

	result, err := table.Run.UPDATE(columnList).
		MODEL(toDBRun(run)).
		WHERE(table.Run.ID.EQ(pg.Int32(int32(run.ID)))).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't update run: %w", err)
	}

	if rowsAffected, err := result.RowsAffected(); rowsAffected == 0 || err != nil {
		return fmt.Errorf("can't update run %d: %w", run.ID, lo.Ternary(err != nil, err, platform.ErrNotFound))
	}

	return nil
}

// LastRuns returns the latest run of every step which was ever started.
func (p Postgres) LastRuns(ctx context.Context) ([]models.Run, error) {
	runs := make([]models.Run, 0, len(models.Steps))
	for _, step := range models.Steps {
		run, err := getLastRun(ctx, p.db, step)
		if errors.Is(err, qrm.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("can't get last %s run: %w", step, err)
		}
		runs = append(runs, *toAppRun(run))
	}

	return runs, nil
}

// UpsertPolicies inserts new source policies and refreshes name, description and payload of existing ones.
// Target policy IDs are never overwritten.
func (p Postgres) UpsertPolicies(ctx context.Context, policies []models.SourcePolicy) error {
	if len(policies) == 0 {
		return nil
	}

	policies = lo.UniqBy(policies, policyKey)

	dbPolicies := make([]pgmodels.SourcePolicy, 0, len(policies))
	for ix := range policies {
		dbPolicy, err := ToDBPolicy(&policies[ix])
		if err != nil {
			return err
		}
		dbPolicies = append(dbPolicies, *dbPolicy)
	}

	_, err := table.SourcePolicy.INSERT(table.SourcePolicy.MutableColumns.Except(table.SourcePolicy.TargetPolicyID)).
		MODELS(dbPolicies).
		ON_CONFLICT(table.SourcePolicy.PolicyType, table.SourcePolicy.PolicyID).
		DO_UPDATE(
			pg.SET(
				table.SourcePolicy.Name.SET(table.SourcePolicy.EXCLUDED.Name),
				table.SourcePolicy.Description.SET(table.SourcePolicy.EXCLUDED.Description),
				table.SourcePolicy.Payload.SET(table.SourcePolicy.EXCLUDED.Payload),
			),
		).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't upsert source policies: %w", err)
	}

	return nil
}

// PoliciesByType returns all stored source policies of provided type.
func (p Postgres) PoliciesByType(ctx context.Context, policyType models.PolicyType) ([]models.SourcePolicy, error) {
	dbPolicies := []pgmodels.SourcePolicy{}
	err := table.SourcePolicy.SELECT(table.SourcePolicy.AllColumns).
		WHERE(table.SourcePolicy.PolicyType.EQ(pg.String(string(policyType)))).
		ORDER_BY(table.SourcePolicy.ID.ASC()).
		QueryContext(ctx, p.db, &dbPolicies)
	if err != nil {
		return nil, fmt.Errorf("can't get %s policies: %w", policyType, err)
	}

	policies := make([]models.SourcePolicy, 0, len(dbPolicies))
	for ix := range dbPolicies {
		policy, err := toAppPolicy(&dbPolicies[ix])
		if err != nil {
			return nil, err
		}
		policies = append(policies, *policy)
	}

	return policies, nil
}

// SetPolicyTargetID stores target account policy ID of source policy.
func (p Postgres) SetPolicyTargetID(ctx context.Context, id int, targetID string) error {
	result, err := table.SourcePolicy.UPDATE(table.SourcePolicy.TargetPolicyID).
		MODEL(pgmodels.SourcePolicy{TargetPolicyID: &targetID}).
		WHERE(table.SourcePolicy.ID.EQ(pg.Int32(int32(id)))).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't update policy %d: %w", id, err)
	}

	return expectAffected(result, fmt.Sprintf("policy %d", id))
}

// PolicyMapping returns source policy ID to target policy ID mapping of all reconciled policies.
func (p Postgres) PolicyMapping(ctx context.Context) (map[string]string, error) {
	dbPolicies := []pgmodels.SourcePolicy{}
	err := table.SourcePolicy.SELECT(
		table.SourcePolicy.ID,
		table.SourcePolicy.PolicyID,
		table.SourcePolicy.TargetPolicyID,
	).
		WHERE(table.SourcePolicy.TargetPolicyID.IS_NOT_NULL()).
		QueryContext(ctx, p.db, &dbPolicies)
	if err != nil {
		return nil, fmt.Errorf("can't get policy mapping: %w", err)
	}

	return lo.SliceToMap(dbPolicies, func(policy pgmodels.SourcePolicy) (string, string) {
		return policy.PolicyID, *policy.TargetPolicyID
	}), nil
}

// UpsertListings creates new listings with their images and refreshes source data of existing listings.
// It returns number of created listings and number of updated listings or error.
func (p Postgres) UpsertListings(ctx context.Context, listings []models.Listing) (int32, int32, error) {
	createdListingsNumber := lo.ToPtr(int32(0))
	updatedListingsNumber := lo.ToPtr(int32(0))

	listings = lo.UniqBy(listings, func(l models.Listing) string { return l.ItemID })

	err := runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		itemIDs := lo.Map(listings, func(_ models.Listing, ix int) string {
			return listings[ix].ItemID
		})
		storedIDs, err := getListingIDs(ctx, tx, itemIDs)
		if err != nil {
			return fmt.Errorf("can't get existing listings: %w", err)
		}

		newListings, existingListings := compareListings(listings, storedIDs)

		if newListings, err = insertListings(ctx, tx, newListings); err != nil {
			return fmt.Errorf("can't insert new listings: %w", err)
		}

		if err = insertImages(ctx, tx, newListings); err != nil {
			return fmt.Errorf("can't insert new listings images: %w", err)
		}

		if err = refreshListings(ctx, tx, existingListings); err != nil {
			return fmt.Errorf("can't update existing listings: %w", err)
		}

		*createdListingsNumber = int32(len(newListings))
		*updatedListingsNumber = int32(len(existingListings))

		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	return *createdListingsNumber, *updatedListingsNumber, nil
}

// ListingsByStatus returns listings with provided migration statuses ordered by ID, with images ordered by rank.
func (p Postgres) ListingsByStatus(ctx context.Context, statuses ...models.MigrationStatus) ([]models.Listing, error) {
	if len(statuses) == 0 {
		return nil, nil
	}

	statusExpressions := lo.Map(statuses, func(s models.MigrationStatus, _ int) pg.Expression {
		return pg.String(string(s))
	})

	var dest []struct {
		pgmodels.Listing

		Images []pgmodels.ListingImage
	}
	err := pg.SELECT(table.Listing.AllColumns, table.ListingImage.AllColumns).
		FROM(table.Listing.
			LEFT_JOIN(table.ListingImage, table.ListingImage.ListingID.EQ(table.Listing.ID)),
		).
		WHERE(table.Listing.Status.IN(statusExpressions...)).
		ORDER_BY(table.Listing.ID.ASC(), table.ListingImage.Rank.ASC()).
		QueryContext(ctx, p.db, &dest)
	if err != nil {
		return nil, fmt.Errorf("can't get listings: %w", err)
	}

	listings := make([]models.Listing, 0, len(dest))
	for ix := range dest {
		listing, err := toAppListing(&dest[ix].Listing, dest[ix].Images)
		if err != nil {
			return nil, err
		}
		listings = append(listings, *listing)
	}

	return listings, nil
}

// SaveListingState stores listing's migration status, migration error and offer ID.
func (p Postgres) SaveListingState(ctx context.Context, listing *models.Listing) error {
	result, err := table.Listing.UPDATE(
		table.Listing.Status,
		table.Listing.MigrationError,
		table.Listing.OfferID,
		table.Listing.UpdatedAt,
	).
		MODEL(pgmodels.Listing{
			Status:         string(listing.Status),
			MigrationError: listing.MigrationError,
			OfferID:        listing.OfferID,
			UpdatedAt:      time.Now().UTC(),
		}).
		WHERE(table.Listing.ID.EQ(pg.Int32(int32(listing.ID)))).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't save state of listing %s: %w", listing.SKU, err)
	}

	return expectAffected(result, fmt.Sprintf("listing %s", listing.SKU))
}

// PendingDownloadIDs returns IDs of images which are neither downloaded nor uploaded.
func (p Postgres) PendingDownloadIDs(ctx context.Context) ([]int, error) {
	return getImageIDs(ctx, p.db, pg.AND(
		table.ListingImage.LocalPath.IS_NULL(),
		table.ListingImage.TargetURL.IS_NULL(),
	))
}

// PendingUploadIDs returns IDs of images which are downloaded but not uploaded yet.
func (p Postgres) PendingUploadIDs(ctx context.Context) ([]int, error) {
	return getImageIDs(ctx, p.db, pg.AND(
		table.ListingImage.LocalPath.IS_NOT_NULL(),
		table.ListingImage.TargetURL.IS_NULL(),
	))
}

// ResetMigration sets listing with provided SKU back to not started state and forgets its offer ID.
// It returns ErrNotFound if there is no such listing.
func (p Postgres) ResetMigration(ctx context.Context, sku string) error {
	result, err := resetListings(ctx, p.db, table.Listing.Sku.EQ(pg.String(sku)))
	if err != nil {
		return err
	}

	return expectAffected(result, fmt.Sprintf("listing %s", sku))
}

// ResetAllMigrations sets all listings back to not started state.
// Returns number of reset listings.
func (p Postgres) ResetAllMigrations(ctx context.Context) (int64, error) {
	result, err := resetListings(ctx, p.db, table.Listing.ID.IS_NOT_NULL())
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// ResetImages clears local paths and target URLs of all images in batches.
// Returns number of reset images.
func (p Postgres) ResetImages(ctx context.Context, batchSize uint) (int32, error) {
	resetImagesNumber := int32(0)

	toReset := make(chan []int32)

	errGroup, egCtx := errgroup.WithContext(ctx)

	errGroup.Go(func() error {
		return getTransferredImagesAsync(egCtx, p.db, batchSize, toReset)
	})

	errGroup.Go(func() error {
		resetCount, err := resetImagesAsync(egCtx, p.db, toReset)
		atomic.AddInt32(&resetImagesNumber, int32(resetCount))
		return err
	})

	if err := errGroup.Wait(); err != nil {
		return resetImagesNumber, fmt.Errorf("can't reset images: %w", err)
	}

	return resetImagesNumber, nil
}

// Acquire returns connection-scoped handle for a single worker.
// The caller is responsible for closing returned Conn.
func (p Postgres) Acquire(ctx context.Context) (*Conn, error) {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't acquire database connection: %w", err)
	}

	return &Conn{conn: conn}, nil
}

func policyKey(policy models.SourcePolicy) string {
	return string(policy.Type) + "/" + policy.PolicyID
}

func compareListings(parsed []models.Listing, storedIDs map[string]int32) ([]models.Listing, []models.Listing) {
	newListings := make([]models.Listing, 0, len(parsed))
	existingListings := lo.Filter(parsed, func(_ models.Listing, ix int) bool {
		if _, ok := storedIDs[parsed[ix].ItemID]; ok {
			return true
		}
		newListings = append(newListings, parsed[ix])
		return false
	})

	return newListings, existingListings
}

func insertListings(ctx context.Context, db qrm.DB, listings []models.Listing) ([]models.Listing, error) {
	if len(listings) == 0 {
		return nil, nil
	}

	dbListings, err := toDBListings(listings)
	if err != nil {
		return nil, err
	}

	inserted := make([]pgmodels.Listing, 0, len(listings))
	err = table.Listing.INSERT(table.Listing.MutableColumns.Except(table.Listing.CreatedAt, table.Listing.UpdatedAt)).
		MODELS(dbListings).
		RETURNING(table.Listing.ID, table.Listing.ItemID).
		QueryContext(ctx, db, &inserted)
	if err != nil {
		return nil, fmt.Errorf("can't insert listings into database: %w", err)
	}

	insertedIDs := lo.SliceToMap(inserted, func(l pgmodels.Listing) (string, int32) {
		return l.ItemID, l.ID
	})

	result := make([]models.Listing, 0, len(listings))
	for ix := range listings {
		id, ok := insertedIDs[listings[ix].ItemID]
		if !ok {
			return nil, fmt.Errorf("can't find ID of inserted listing %s", listings[ix].ItemID)
		}
		result = append(result, listings[ix])
		result[len(result)-1].ID = int(id)
	}

	return result, nil
}

func refreshListings(ctx context.Context, db qrm.DB, listings []models.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	dbListings, err := toDBListings(listings)
	if err != nil {
		return err
	}

	refreshedColumns := pg.ColumnList{
		table.Listing.Title,
		table.Listing.Subtitle,
		table.Listing.Description,
		table.Listing.Quantity,
		table.Listing.Price,
		table.Listing.Currency,
		table.Listing.ConditionID,
		table.Listing.ConditionDescription,
		table.Listing.Aspects,
		table.Listing.ProductIdentifiers,
		table.Listing.Variations,
		table.Listing.BestOffer,
		table.Listing.RawListing,
	}
	excludedExpressions := []pg.Expression{
		table.Listing.EXCLUDED.Title,
		table.Listing.EXCLUDED.Subtitle,
		table.Listing.EXCLUDED.Description,
		table.Listing.EXCLUDED.Quantity,
		table.Listing.EXCLUDED.Price,
		table.Listing.EXCLUDED.Currency,
		table.Listing.EXCLUDED.ConditionID,
		table.Listing.EXCLUDED.ConditionDescription,
		table.Listing.EXCLUDED.Aspects,
		table.Listing.EXCLUDED.ProductIdentifiers,
		table.Listing.EXCLUDED.Variations,
		table.Listing.EXCLUDED.BestOffer,
		table.Listing.EXCLUDED.RawListing,
	}

	_, err = table.Listing.INSERT(table.Listing.MutableColumns.Except(table.Listing.CreatedAt, table.Listing.UpdatedAt)).
		MODELS(dbListings).
		ON_CONFLICT(table.Listing.ItemID).
		DO_UPDATE(
			pg.SET(
				refreshedColumns.SET(pg.ROW(excludedExpressions...)),
				table.Listing.UpdatedAt.SET(pg.NOW()),
			),
		).
		ExecContext(ctx, db)
	if err != nil {
		return fmt.Errorf("can't upsert listings into database: %w", err)
	}

	return nil
}

func insertImages(ctx context.Context, db qrm.DB, listings []models.Listing) error {
	images := []pgmodels.ListingImage{}
	for ix := range listings {
		images = append(images, ToDBImages(int32(listings[ix].ID), listings[ix].Images)...)
	}
	if len(images) == 0 {
		return nil
	}

	_, err := table.ListingImage.INSERT(table.ListingImage.MutableColumns).
		MODELS(images).
		ExecContext(ctx, db)
	if err != nil {
		return fmt.Errorf("can't insert images into database: %w", err)
	}

	return nil
}

func toDBListings(listings []models.Listing) ([]pgmodels.Listing, error) {
	dbListings := make([]pgmodels.Listing, 0, len(listings))
	for ix := range listings {
		dbListing, err := ToDBListing(&listings[ix])
		if err != nil {
			return nil, fmt.Errorf("can't convert listing %s: %w", listings[ix].ItemID, err)
		}
		dbListings = append(dbListings, *dbListing)
	}

	return dbListings, nil
}

func getListingIDs(ctx context.Context, db qrm.DB, itemIDs []string) (map[string]int32, error) {
	if len(itemIDs) == 0 {
		return map[string]int32{}, nil
	}

	ids := lo.Map(itemIDs, func(id string, _ int) pg.Expression { return pg.String(id) })

	listings := make([]pgmodels.Listing, 0, len(itemIDs))
	err := table.Listing.SELECT(table.Listing.ID, table.Listing.ItemID).
		WHERE(table.Listing.ItemID.IN(ids...)).
		QueryContext(ctx, db, &listings)
	if err != nil {
		return nil, err
	}

	return lo.SliceToMap(listings, func(l pgmodels.Listing) (string, int32) {
		return l.ItemID, l.ID
	}), nil
}

func getImageIDs(ctx context.Context, db qrm.DB, condition pg.BoolExpression) ([]int, error) {
	images := []pgmodels.ListingImage{}
	err := table.ListingImage.SELECT(table.ListingImage.ID).
		WHERE(condition).
		ORDER_BY(table.ListingImage.ID.ASC()).
		QueryContext(ctx, db, &images)
	if err != nil {
		return nil, fmt.Errorf("can't get images ids: %w", err)
	}

	return lo.Map(images, func(image pgmodels.ListingImage, _ int) int { return int(image.ID) }), nil
}

func getLastRun(ctx context.Context, db qrm.DB, step models.Step) (*pgmodels.Run, error) {
	var run pgmodels.Run
	err := table.Run.SELECT(table.Run.AllColumns).
		WHERE(table.Run.Step.EQ(pg.String(string(step)))).
		ORDER_BY(table.Run.CreatedAt.DESC(), table.Run.ID.DESC()).
		LIMIT(1).
		QueryContext(ctx, db, &run)
	if err != nil {
		return nil, err
	}

	return &run, nil
}

func resetListings(ctx context.Context, db qrm.DB, condition pg.BoolExpression) (sql.Result, error) {
	result, err := table.Listing.UPDATE(
		table.Listing.Status,
		table.Listing.MigrationError,
		table.Listing.OfferID,
		table.Listing.UpdatedAt,
	).
		MODEL(pgmodels.Listing{
			Status:    string(models.StatusNotStarted),
			UpdatedAt: time.Now().UTC(),
		}).
		WHERE(condition).
		ExecContext(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("can't reset listings: %w", err)
	}

	return result, nil
}

func getTransferredImagesAsync(
	ctx context.Context,
	db qrm.DB,
	batchSize uint,
	toReset chan []int32,
) error {
	defer close(toReset)
	previousID := int32(0)
	for {
		var images []pgmodels.ListingImage
		err := table.ListingImage.SELECT(table.ListingImage.ID).
			WHERE(pg.AND(
				pg.OR(
					table.ListingImage.LocalPath.IS_NOT_NULL(),
					table.ListingImage.TargetURL.IS_NOT_NULL(),
				),
				table.ListingImage.ID.GT(pg.Int32(previousID)),
			)).
			ORDER_BY(table.ListingImage.ID.ASC()).
			LIMIT(int64(batchSize)).
			QueryContext(ctx, db, &images)

		if errors.Is(err, qrm.ErrNoRows) || (err == nil && len(images) == 0) {
			return nil
		}

		if err != nil {
			return err
		}

		ids := lo.Map(images, func(image pgmodels.ListingImage, _ int) int32 { return image.ID })

		previousID = ids[len(ids)-1]

		select {
		case <-ctx.Done():
			return ctx.Err()
		case toReset <- ids:
		}
	}
}

func resetImagesAsync(ctx context.Context, db qrm.DB, toReset chan []int32) (int, error) {
	resetCount := 0
	for batch := range toReset {
		ids := lo.Map(batch, func(id int32, _ int) pg.Expression { return pg.Int32(id) })

		_, err := table.ListingImage.UPDATE(table.ListingImage.LocalPath, table.ListingImage.TargetURL).
			MODEL(pgmodels.ListingImage{}).
			WHERE(table.ListingImage.ID.IN(ids...)).
			ExecContext(ctx, db)
		if err != nil {
			return resetCount, err
		}
		resetCount += len(batch)
	}
	return resetCount, nil
}

func expectAffected(result sql.Result, entity string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("can't check update of %s: %w", entity, err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("can't update %s: %w", entity, platform.ErrNotFound)
	}

	return nil
}

func runInTransaction(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	var (
		tx  *sql.Tx
		err error
	)

	if tx, err = db.BeginTx(ctx, nil); err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("can't rollback transaction: %w (rollback reason: %w)", rbErr, err)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit transaction: %w", err)
	}

	return nil
}
