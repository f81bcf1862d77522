package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MichalMitros/listing-migrator/internal/extractor"
	"github.com/MichalMitros/listing-migrator/internal/platform/models"
	"github.com/MichalMitros/listing-migrator/internal/publisher"
	"github.com/MichalMitros/listing-migrator/internal/reconciler"
	"github.com/MichalMitros/listing-migrator/internal/transfer"
	"github.com/MichalMitros/listing-migrator/internal/verifier"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

//go:generate mockery --name Storage --filename storage.go
//go:generate mockery --name Extractor --filename extractor.go
//go:generate mockery --name Transfer --filename transfer.go
//go:generate mockery --name Publisher --filename publisher.go
//go:generate mockery --name Verifier --filename verifier.go

// ErrUnknownStep is returned when step doesn't exist.
var ErrUnknownStep = errors.New("unknown step")

// Storage is runs storage.
type Storage interface {
	// StartRun creates new run if there is no run of provided step running.
	StartRun(ctx context.Context, step models.Step) (*models.Run, error)
	// FinishRun finishes provided run and updates its statistics.
	FinishRun(ctx context.Context, run *models.Run) error
}

// Extractor copies source account data into storage.
type Extractor interface {
	Extract(ctx context.Context) (extractor.Summary, error)
}

// Transfer moves images from source to target account.
type Transfer interface {
	Download(ctx context.Context, report func(transfer.Result)) (transfer.Summary, error)
	Upload(ctx context.Context, report func(transfer.Result)) (transfer.Summary, error)
}

// Reconciler maps source policies onto target account.
type Reconciler interface {
	Start(ctx context.Context) (*reconciler.Cursor, error)
}

// Publisher publishes listings on target account.
type Publisher interface {
	Publish(ctx context.Context, limit int) (publisher.Summary, error)
}

// Verifier compares migrated listings with target account.
type Verifier interface {
	Verify(ctx context.Context) ([]verifier.Report, error)
}

// Clock provides times.
type Clock interface {
	// Now returns current UTC time.
	Now() *time.Time
}

// PolicyDriver advances policy cursor until it decides to stop.
type PolicyDriver func(ctx context.Context, cursor *reconciler.Cursor) ([]reconciler.Outcome, error)

// DriveAll processes all remaining policies.
func DriveAll(ctx context.Context, cursor *reconciler.Cursor) ([]reconciler.Outcome, error) {
	return cursor.All(ctx)
}

// Option is custom configuration of Pipeline.
type Option func(p *Pipeline)

// Pipeline runs migration steps and records every run in storage.
type Pipeline struct {
	storage    Storage
	extractor  Extractor
	transfer   Transfer
	reconciler Reconciler
	publisher  Publisher
	verifier   Verifier
	clock      Clock
	logger     *zerolog.Logger
}

// NewPipeline returns new Pipeline.
func NewPipeline(
	storage Storage,
	extractor Extractor,
	transfer Transfer,
	reconciler Reconciler,
	publisher Publisher,
	verifier Verifier,
	logger *zerolog.Logger,
	ops ...Option,
) *Pipeline {
	pip := &Pipeline{
		storage:    storage,
		extractor:  extractor,
		transfer:   transfer,
		reconciler: reconciler,
		publisher:  publisher,
		verifier:   verifier,
		clock:      systemClock{},
		logger:     logger,
	}

	for _, op := range ops {
		op(pip)
	}

	return pip
}

// Run runs step without operator interaction. All policies are synced, limit applies to publishing only.
func (p *Pipeline) Run(ctx context.Context, step models.Step, limit int) error {
	var err error
	switch step {
	case models.StepExtract:
		_, err = p.Extract(ctx)
	case models.StepDownload:
		_, err = p.Download(ctx, p.logTransfer)
	case models.StepPolicies:
		_, err = p.SyncPolicies(ctx, DriveAll)
	case models.StepUpload:
		_, err = p.Upload(ctx, p.logTransfer)
	case models.StepPublish:
		_, err = p.Publish(ctx, limit)
	case models.StepVerify:
		_, err = p.Verify(ctx)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownStep, step)
	}

	return err
}

// Extract stores source policies and active listings.
func (p *Pipeline) Extract(ctx context.Context) (extractor.Summary, error) {
	var summary extractor.Summary
	err := p.track(ctx, models.StepExtract, func(run *models.Run) error {
		var err error
		summary, err = p.extractor.Extract(ctx)
		setCounters(run, summary.Created+summary.Updated, summary.Failed)
		return err
	})

	return summary, err
}

// Download downloads pending source images.
func (p *Pipeline) Download(ctx context.Context, report func(transfer.Result)) (transfer.Summary, error) {
	return p.runTransfer(ctx, models.StepDownload, p.transfer.Download, report)
}

// Upload uploads downloaded images to target account.
func (p *Pipeline) Upload(ctx context.Context, report func(transfer.Result)) (transfer.Summary, error) {
	return p.runTransfer(ctx, models.StepUpload, p.transfer.Upload, report)
}

// SyncPolicies maps source policies onto target account as far as drive advances the cursor.
func (p *Pipeline) SyncPolicies(ctx context.Context, drive PolicyDriver) ([]reconciler.Outcome, error) {
	var outcomes []reconciler.Outcome
	err := p.track(ctx, models.StepPolicies, func(run *models.Run) error {
		cursor, err := p.reconciler.Start(ctx)
		if err != nil {
			return err
		}

		outcomes, err = drive(ctx, cursor)
		skipped := lo.CountBy(outcomes, func(o reconciler.Outcome) bool { return o.Action == reconciler.ActionSkipped })
		setCounters(run, int32(len(outcomes)-skipped), int32(skipped))
		if err != nil {
			return err
		}

		if remaining := cursor.Remaining(); remaining > 0 {
			run.StatusMessage = lo.ToPtr(fmt.Sprintf("stopped with %d policies remaining", remaining))
		}

		return nil
	})

	return outcomes, err
}

// Publish publishes up to limit pending listings, all of them if limit isn't positive.
func (p *Pipeline) Publish(ctx context.Context, limit int) (publisher.Summary, error) {
	var summary publisher.Summary
	err := p.track(ctx, models.StepPublish, func(run *models.Run) error {
		var err error
		summary, err = p.publisher.Publish(ctx, limit)
		setCounters(run, int32(summary.Published), int32(lo.Ternary(errors.Is(err, publisher.ErrBatchHalted), 1, 0)))
		return err
	})

	return summary, err
}

// Verify compares migrated listings with their live state.
func (p *Pipeline) Verify(ctx context.Context) ([]verifier.Report, error) {
	var reports []verifier.Report
	err := p.track(ctx, models.StepVerify, func(run *models.Run) error {
		var err error
		reports, err = p.verifier.Verify(ctx)
		failed := lo.CountBy(reports, func(r verifier.Report) bool { return !r.Passed() })
		setCounters(run, int32(len(reports)-failed), int32(failed))
		return err
	})

	return reports, err
}

func (p *Pipeline) runTransfer(
	ctx context.Context,
	step models.Step,
	move func(context.Context, func(transfer.Result)) (transfer.Summary, error),
	report func(transfer.Result),
) (transfer.Summary, error) {
	var summary transfer.Summary
	err := p.track(ctx, step, func(run *models.Run) error {
		var err error
		summary, err = move(ctx, report)
		setCounters(run, int32(summary.Done), int32(summary.Failed))
		return err
	})

	return summary, err
}

func (p *Pipeline) logTransfer(result transfer.Result) {
	event := p.logger.Info()
	if result.Status == transfer.StatusFailed {
		event = p.logger.Error()
	}
	event.Int("imageId", result.ImageID).Str("status", result.Status).Msg(result.Message)
}

// track runs fn as recorded run of step.
func (p *Pipeline) track(ctx context.Context, step models.Step, fn func(run *models.Run) error) error {
	run, err := p.storage.StartRun(ctx, step)
	if err != nil {
		return fmt.Errorf("can't start %s step: %w", step, err)
	}

	p.logger.Info().Str("step", string(step)).Int("runId", run.ID).Msg("step started")

	return p.finishRun(ctx, run, fn(run))
}

func (p *Pipeline) finishRun(ctx context.Context, run *models.Run, status error) error {
	if status != nil {
		run.StatusMessage = lo.ToPtr(status.Error())
	}
	run.IsSuccess = lo.ToPtr(status == nil)
	run.FinishedAt = p.clock.Now()

	err := p.storage.FinishRun(ctx, run)
	if err != nil && status == nil {
		return fmt.Errorf("can't finish %s step: %w", run.Step, err)
	}

	if err != nil && status != nil {
		return fmt.Errorf("can't finish failed %s step: %w (fail reason: %w)", run.Step, err, status)
	}

	p.logger.Info().
		Str("step", string(run.Step)).
		Bool("success", status == nil).
		Int32("succeeded", lo.FromPtr(run.SucceededItems)).
		Int32("failed", lo.FromPtr(run.FailedItems)).
		Msg("step finished")

	return status
}

func setCounters(run *models.Run, succeeded, failed int32) {
	run.SucceededItems = &succeeded
	run.FailedItems = &failed
}

// WithClock sets Pipeline's custom Clock.
func WithClock(c Clock) Option {
	return func(p *Pipeline) {
		p.clock = c
	}
}
