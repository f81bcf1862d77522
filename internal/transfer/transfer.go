package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/MichalMitros/listing-migrator/internal/platform/models"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

//go:generate mockery --name Fetcher --filename fetcher.go
//go:generate mockery --name Uploader --filename uploader.go
//go:generate mockery --name Storage --filename storage.go
//go:generate mockery --name Conn --filename conn.go

// Fetcher fetches source images.
type Fetcher interface {
	FetchFile(ctx context.Context, url string) (io.ReadCloser, error)
}

// Uploader uploads images to target hosted storage.
type Uploader interface {
	UploadPicture(ctx context.Context, name string, picture io.Reader) (string, error)
}

// Conn is storage handle owned by a single worker.
type Conn interface {
	ImageWithSKU(ctx context.Context, id int) (*models.ListingImage, string, error)
	SetImageLocalPath(ctx context.Context, id int, path string) error
	SetImageTargetURL(ctx context.Context, id int, url string) error
	Close() error
}

// Storage lists images to transfer and hands out worker connections.
type Storage interface {
	PendingDownloadIDs(ctx context.Context) ([]int, error)
	PendingUploadIDs(ctx context.Context) ([]int, error)
	Acquire(ctx context.Context) (Conn, error)
}

// Image transfer statuses.
const (
	StatusDone    = "done"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Result is outcome of transferring single image.
type Result struct {
	ImageID int
	Status  string
	Message string
}

// Summary counts transfer results.
type Summary struct {
	Total   int
	Done    int
	Failed  int
	Skipped int
}

// Config holds image transfer settings.
type Config struct {
	Dir             string
	DownloadWorkers int
	UploadWorkers   int
}

// Transfer downloads source images into local cache and uploads them to target account.
type Transfer struct {
	fetcher  Fetcher
	uploader Uploader
	storage  Storage
	cfg      Config
	logger   *zerolog.Logger
}

// NewTransfer returns new Transfer.
func NewTransfer(fetcher Fetcher, uploader Uploader, storage Storage, cfg Config, logger *zerolog.Logger) *Transfer {
	return &Transfer{
		fetcher:  fetcher,
		uploader: uploader,
		storage:  storage,
		cfg:      cfg,
		logger:   logger,
	}
}

// Download downloads all images which are neither downloaded nor uploaded.
// report is called with every result in completion order, never concurrently.
func (t *Transfer) Download(ctx context.Context, report func(Result)) (Summary, error) {
	ids, err := t.storage.PendingDownloadIDs(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("can't get images to download: %w", err)
	}

	t.logger.Info().Msgf("downloading %d images with %d workers", len(ids), t.cfg.DownloadWorkers)

	return t.run(ctx, ids, t.cfg.DownloadWorkers, t.download, report), nil
}

// Upload uploads all downloaded images which aren't uploaded yet.
// report is called with every result in completion order, never concurrently.
func (t *Transfer) Upload(ctx context.Context, report func(Result)) (Summary, error) {
	ids, err := t.storage.PendingUploadIDs(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("can't get images to upload: %w", err)
	}

	t.logger.Info().Msgf("uploading %d images with %d workers", len(ids), t.cfg.UploadWorkers)

	return t.run(ctx, ids, t.cfg.UploadWorkers, t.upload, report), nil
}

type work func(ctx context.Context, conn Conn, id int) Result

// run processes ids with limited number of workers. Failed image never stops other images.
func (t *Transfer) run(ctx context.Context, ids []int, workers int, fn work, report func(Result)) Summary {
	results := make(chan Result)

	var group errgroup.Group
	group.SetLimit(max(workers, 1))

	go func() {
		for _, id := range ids {
			group.Go(func() error {
				results <- t.process(ctx, id, fn)
				return nil
			})
		}
		_ = group.Wait()
		close(results)
	}()

	summary := Summary{Total: len(ids)}
	for result := range results {
		switch result.Status {
		case StatusDone:
			summary.Done++
		case StatusSkipped:
			summary.Skipped++
		default:
			summary.Failed++
		}

		if report != nil {
			report(result)
		}
	}

	return summary
}

// process runs work on its own storage connection.
func (t *Transfer) process(ctx context.Context, id int, fn work) Result {
	if err := ctx.Err(); err != nil {
		return Result{ImageID: id, Status: StatusSkipped, Message: err.Error()}
	}

	conn, err := t.storage.Acquire(ctx)
	if err != nil {
		return failed(id, err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			t.logger.Warn().Err(err).Int("imageId", id).Msg("can't release storage connection")
		}
	}()

	return fn(ctx, conn, id)
}

func (t *Transfer) download(ctx context.Context, conn Conn, id int) Result {
	image, sku, err := conn.ImageWithSKU(ctx, id)
	if err != nil {
		return failed(id, err)
	}

	imageURL := HighResURL(image.OriginalURL)
	body, err := t.fetcher.FetchFile(ctx, imageURL)
	if err != nil {
		return failed(id, fmt.Errorf("can't fetch %s: %w", imageURL, err))
	}
	defer body.Close()

	path := LocalPath(t.cfg.Dir, sku, image.Rank, image.OriginalURL)
	if err := writeFile(path, body); err != nil {
		return failed(id, err)
	}

	if err := conn.SetImageLocalPath(ctx, id, path); err != nil {
		return failed(id, err)
	}

	return Result{ImageID: id, Status: StatusDone, Message: path}
}

func (t *Transfer) upload(ctx context.Context, conn Conn, id int) Result {
	image, _, err := conn.ImageWithSKU(ctx, id)
	if err != nil {
		return failed(id, err)
	}

	if image.LocalPath == nil {
		return Result{ImageID: id, Status: StatusSkipped, Message: "image isn't downloaded"}
	}

	file, err := os.Open(*image.LocalPath)
	if errors.Is(err, os.ErrNotExist) {
		return Result{ImageID: id, Status: StatusSkipped, Message: "missing file " + *image.LocalPath}
	}
	if err != nil {
		return failed(id, fmt.Errorf("can't open image file: %w", err))
	}
	defer file.Close()

	hostedURL, err := t.uploader.UploadPicture(ctx, filepath.Base(*image.LocalPath), file)
	if err != nil {
		return failed(id, fmt.Errorf("can't upload %s: %w", *image.LocalPath, err))
	}

	if err := conn.SetImageTargetURL(ctx, id, hostedURL); err != nil {
		return failed(id, err)
	}

	return Result{ImageID: id, Status: StatusDone, Message: *image.LocalPath + " -> " + hostedURL}
}

// writeFile writes image to path. Partially written file is removed.
func writeFile(path string, image io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("can't create image directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("can't create image file: %w", err)
	}

	_, err = io.Copy(file, image)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("can't write image file: %w", err)
	}

	return nil
}

func failed(id int, err error) Result {
	return Result{ImageID: id, Status: StatusFailed, Message: err.Error()}
}
