package storage_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MichalMitros/listing-migrator/internal/platform"
	"github.com/MichalMitros/listing-migrator/internal/platform/models"
	"github.com/MichalMitros/listing-migrator/internal/platform/models/modelstesting"
	"github.com/MichalMitros/listing-migrator/internal/platform/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var runColumns = []string{
	"run.id",
	"run.step",
	"run.created_at",
	"run.finished_at",
	"run.success",
	"run.status_message",
	"run.succeeded_items",
	"run.failed_items",
}

func TestUnitStartRun(t *testing.T) {
	tests := map[string]struct {
		mockDB  func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		"already running error": {
			mockDB: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`FROM public\.run`).
					WillReturnRows(sqlmock.NewRows(runColumns).
						AddRow(int64(7), string(models.StepPublish), time.Now(), nil, nil, nil, nil, nil))
				mock.ExpectRollback()
			},
			wantErr: platform.ErrAlreadyRunning,
		},
		"insert error": {
			mockDB: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`FROM public\.run`).
					WillReturnRows(sqlmock.NewRows(runColumns))
				mock.ExpectQuery(`INSERT INTO public\.run`).
					WillReturnError(assert.AnError)
				mock.ExpectRollback()
			},
			wantErr: assert.AnError,
		},
		"last run error": {
			mockDB: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`FROM public\.run`).
					WillReturnError(assert.AnError)
				mock.ExpectRollback()
			},
			wantErr: assert.AnError,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.mockDB(mock)

			run, err := storage.NewPostgres(db).StartRun(context.TODO(), models.StepPublish)

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
			assert.Nil(t, run, "shouldn't return run")
			require.NoError(t, mock.ExpectationsWereMet(), "should run all expected queries")
		})
	}
}

func TestUnitSaveListingStateNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(`UPDATE public\.listing`).WillReturnResult(sqlmock.NewResult(0, 0))

	listing := modelstesting.FakeListing()
	err := storage.NewPostgres(db).SaveListingState(context.TODO(), &listing)

	require.ErrorIs(t, err, platform.ErrNotFound, "should return not found error")
	require.NoError(t, mock.ExpectationsWereMet(), "should run all expected queries")
}

func TestUnitPendingUploadIDs(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`FROM public\.listing_image`).
		WillReturnRows(sqlmock.NewRows([]string{"listing_image.id"}).AddRow(int64(3)).AddRow(int64(5)))

	ids, err := storage.NewPostgres(db).PendingUploadIDs(context.TODO())

	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, []int{3, 5}, ids, "should return image ids")
	require.NoError(t, mock.ExpectationsWereMet(), "should run all expected queries")
}

func TestUnitUpsertListingsRollback(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM public\.listing`).
		WillReturnRows(sqlmock.NewRows([]string{"listing.id", "listing.item_id"}))
	mock.ExpectQuery(`INSERT INTO public\.listing`).WillReturnError(assert.AnError)
	mock.ExpectRollback()

	created, updated, err := storage.NewPostgres(db).UpsertListings(
		context.TODO(),
		[]models.Listing{modelstesting.FakeListing()},
	)

	require.ErrorIs(t, err, assert.AnError, "should return insert error")
	assert.Zero(t, created, "shouldn't report created listings")
	assert.Zero(t, updated, "shouldn't report updated listings")
	require.NoError(t, mock.ExpectationsWereMet(), "should run all expected queries")
}

func TestUnitUpsertPoliciesEmpty(t *testing.T) {
	db, mock := newMockDB(t)

	err := storage.NewPostgres(db).UpsertPolicies(context.TODO(), nil)

	require.NoError(t, err, "shouldn't return any error")
	require.NoError(t, mock.ExpectationsWereMet(), "shouldn't run any query")
}

// newMockDB is a helper test function to create sqlmock database closed on test cleanup.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err, "can't create sqlmock")

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db, mock
}
