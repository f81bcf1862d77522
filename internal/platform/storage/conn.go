package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MichalMitros/listing-migrator/internal/platform"
	"github.com/MichalMitros/listing-migrator/internal/platform/models"
	"github.com/MichalMitros/listing-migrator/internal/platform/storage/gen/postgres/public/table"
	"github.com/go-jet/jet/v2/qrm"

	pgmodels "github.com/MichalMitros/listing-migrator/internal/platform/storage/gen/postgres/public/model"
	pg "github.com/go-jet/jet/v2/postgres"
)

// Conn is storage handle bound to a single database connection.
// It is meant to be owned by one worker at a time.
type Conn struct {
	conn *sql.Conn
}

// ImageWithSKU returns image with provided ID together with SKU of listing it belongs to.
// It returns ErrNotFound if there is no such image.
func (c *Conn) ImageWithSKU(ctx context.Context, id int) (*models.ListingImage, string, error) {
	var dest struct {
		pgmodels.ListingImage

		Listing pgmodels.Listing
	}
	err := pg.SELECT(table.ListingImage.AllColumns, table.Listing.ID, table.Listing.Sku).
		FROM(table.ListingImage.
			INNER_JOIN(table.Listing, table.Listing.ID.EQ(table.ListingImage.ListingID)),
		).
		WHERE(table.ListingImage.ID.EQ(pg.Int32(int32(id)))).
		QueryContext(ctx, c.conn, &dest)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, "", fmt.Errorf("can't get image %d: %w", id, platform.ErrNotFound)
	}
	if err != nil {
		return nil, "", fmt.Errorf("can't get image %d: %w", id, err)
	}

	images := ToAppImages([]pgmodels.ListingImage{dest.ListingImage})

	return &images[0], dest.Listing.Sku, nil
}

// SetImageLocalPath stores path of downloaded image file.
func (c *Conn) SetImageLocalPath(ctx context.Context, id int, path string) error {
	result, err := table.ListingImage.UPDATE(table.ListingImage.LocalPath).
		MODEL(pgmodels.ListingImage{LocalPath: &path}).
		WHERE(table.ListingImage.ID.EQ(pg.Int32(int32(id)))).
		ExecContext(ctx, c.conn)
	if err != nil {
		return fmt.Errorf("can't set local path of image %d: %w", id, err)
	}

	return expectAffected(result, fmt.Sprintf("image %d", id))
}

// SetImageTargetURL stores target hosted URL of uploaded image.
func (c *Conn) SetImageTargetURL(ctx context.Context, id int, url string) error {
	result, err := table.ListingImage.UPDATE(table.ListingImage.TargetURL).
		MODEL(pgmodels.ListingImage{TargetURL: &url}).
		WHERE(table.ListingImage.ID.EQ(pg.Int32(int32(id)))).
		ExecContext(ctx, c.conn)
	if err != nil {
		return fmt.Errorf("can't set target URL of image %d: %w", id, err)
	}

	return expectAffected(result, fmt.Sprintf("image %d", id))
}

// Close returns connection to the pool.
func (c *Conn) Close() error {
	return c.conn.Close()
}
