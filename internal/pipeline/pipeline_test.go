package pipeline_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MichalMitros/listing-migrator/internal/extractor"
	"github.com/MichalMitros/listing-migrator/internal/pipeline"
	"github.com/MichalMitros/listing-migrator/internal/pipeline/mocks"
	"github.com/MichalMitros/listing-migrator/internal/platform"
	"github.com/MichalMitros/listing-migrator/internal/platform/models"
	"github.com/MichalMitros/listing-migrator/internal/platform/models/modelstesting"
	"github.com/MichalMitros/listing-migrator/internal/publisher"
	"github.com/MichalMitros/listing-migrator/internal/reconciler"
	reconcilermocks "github.com/MichalMitros/listing-migrator/internal/reconciler/mocks"
	"github.com/MichalMitros/listing-migrator/internal/sellapi"
	"github.com/MichalMitros/listing-migrator/internal/transfer"
	"github.com/MichalMitros/listing-migrator/internal/verifier"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	logger  = zerolog.Nop()
	now     = time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	started = now.Add(-time.Minute)
)

type fakeClock struct {
	now *time.Time
}

func (c fakeClock) Now() *time.Time {
	return c.now
}

type components struct {
	storage   *mocks.Storage
	extractor *mocks.Extractor
	transfer  *mocks.Transfer
	publisher *mocks.Publisher
	verifier  *mocks.Verifier
}

func newComponents(t *testing.T) components {
	return components{
		storage:   mocks.NewStorage(t),
		extractor: mocks.NewExtractor(t),
		transfer:  mocks.NewTransfer(t),
		publisher: mocks.NewPublisher(t),
		verifier:  mocks.NewVerifier(t),
	}
}

func (c components) pipeline(reconciler pipeline.Reconciler) *pipeline.Pipeline {
	return pipeline.NewPipeline(
		c.storage, c.extractor, c.transfer, reconciler, c.publisher, c.verifier,
		&logger, pipeline.WithClock(fakeClock{now: &now}),
	)
}

func startedRun(step models.Step) *models.Run {
	return &models.Run{ID: 7, Step: step, CreatedAt: started}
}

func finishedRun(step models.Step, success bool, succeeded, failed int32, message *string) *models.Run {
	return &models.Run{
		ID:             7,
		Step:           step,
		CreatedAt:      started,
		FinishedAt:     &now,
		IsSuccess:      lo.ToPtr(success),
		StatusMessage:  message,
		SucceededItems: lo.ToPtr(succeeded),
		FailedItems:    lo.ToPtr(failed),
	}
}

func TestUnitExtract(t *testing.T) {
	c := newComponents(t)
	c.storage.On("StartRun", mock.Anything, models.StepExtract).Return(startedRun(models.StepExtract), nil).Once()
	c.extractor.On("Extract", mock.Anything).
		Return(extractor.Summary{Policies: 4, Created: 10, Updated: 3, Failed: 2}, nil).Once()
	c.storage.On("FinishRun", mock.Anything, finishedRun(models.StepExtract, true, 13, 2, nil)).Return(nil).Once()

	summary, err := c.pipeline(nil).Extract(context.TODO())
	require.NoError(t, err, "shouldn't return error")
	assert.Equal(t, extractor.Summary{Policies: 4, Created: 10, Updated: 3, Failed: 2}, summary, "should return extract summary")
}

func TestUnitExtractFailure(t *testing.T) {
	extractErr := errors.New("can't list active items: timeout")

	c := newComponents(t)
	c.storage.On("StartRun", mock.Anything, models.StepExtract).Return(startedRun(models.StepExtract), nil).Once()
	c.extractor.On("Extract", mock.Anything).Return(extractor.Summary{Policies: 4}, extractErr).Once()
	c.storage.On("FinishRun", mock.Anything, finishedRun(models.StepExtract, false, 0, 0, lo.ToPtr(extractErr.Error()))).
		Return(nil).Once()

	_, err := c.pipeline(nil).Extract(context.TODO())
	assert.ErrorIs(t, err, extractErr, "should return extract error")
}

func TestUnitTransfers(t *testing.T) {
	tests := map[string]struct {
		step   models.Step
		method string
		run    func(p *pipeline.Pipeline, report func(transfer.Result)) (transfer.Summary, error)
	}{
		"download": {
			step:   models.StepDownload,
			method: "Download",
			run: func(p *pipeline.Pipeline, report func(transfer.Result)) (transfer.Summary, error) {
				return p.Download(context.TODO(), report)
			},
		},
		"upload": {
			step:   models.StepUpload,
			method: "Upload",
			run: func(p *pipeline.Pipeline, report func(transfer.Result)) (transfer.Summary, error) {
				return p.Upload(context.TODO(), report)
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			result := transfer.Result{ImageID: 3, Status: transfer.StatusDone, Message: "done"}
			summary := transfer.Summary{Total: 4, Done: 2, Failed: 1, Skipped: 1}

			c := newComponents(t)
			c.storage.On("StartRun", mock.Anything, tt.step).Return(startedRun(tt.step), nil).Once()
			c.transfer.On(tt.method, mock.Anything, mock.Anything).
				Run(func(args mock.Arguments) {
					args.Get(1).(func(transfer.Result))(result)
				}).
				Return(summary, nil).Once()
			c.storage.On("FinishRun", mock.Anything, finishedRun(tt.step, true, 2, 1, nil)).Return(nil).Once()

			reported := []transfer.Result{}
			got, err := tt.run(c.pipeline(nil), func(r transfer.Result) {
				reported = append(reported, r)
			})
			require.NoError(t, err, "shouldn't return error")
			assert.Equal(t, summary, got, "should return transfer summary")
			assert.Equal(t, []transfer.Result{result}, reported, "should pass results to report")
		})
	}
}

func TestUnitSyncPolicies(t *testing.T) {
	tests := map[string]struct {
		drive       pipeline.PolicyDriver
		mockStorage func(s *reconcilermocks.Storage)
		mockAPI     func(api *reconcilermocks.PolicyAPI)
		wantRun     *models.Run
		wantActions []reconciler.Action
	}{
		"all policies": {
			drive: pipeline.DriveAll,
			mockStorage: func(s *reconcilermocks.Storage) {
				s.On("SetPolicyTargetID", mock.Anything, 1, "7001").Return(nil).Once()
			},
			mockAPI: func(api *reconcilermocks.PolicyAPI) {
				api.On("ListPolicies", mock.Anything, models.PolicyTypeFulfillment).Return([]map[string]any{}, nil).Once()
				api.On("ListPolicies", mock.Anything, models.PolicyTypePayment).Return([]map[string]any{}, nil).Once()
				api.On("CreatePolicy", mock.Anything, models.PolicyTypeFulfillment, mock.Anything).Return("7001", nil).Once()
				api.On("CreatePolicy", mock.Anything, models.PolicyTypePayment, mock.Anything).
					Return("", &sellapi.APIError{StatusCode: 400, Body: `{"errors":[{"errorId":20403}]}`}).Once()
			},
			wantRun:     finishedRun(models.StepPolicies, true, 1, 1, nil),
			wantActions: []reconciler.Action{reconciler.ActionCreated, reconciler.ActionSkipped},
		},
		"stopped by operator": {
			drive: func(ctx context.Context, cursor *reconciler.Cursor) ([]reconciler.Outcome, error) {
				return cursor.Next(ctx, 1)
			},
			mockStorage: func(s *reconcilermocks.Storage) {
				s.On("SetPolicyTargetID", mock.Anything, 1, "7001").Return(nil).Once()
			},
			mockAPI: func(api *reconcilermocks.PolicyAPI) {
				api.On("ListPolicies", mock.Anything, models.PolicyTypeFulfillment).Return([]map[string]any{}, nil).Once()
				api.On("CreatePolicy", mock.Anything, models.PolicyTypeFulfillment, mock.Anything).Return("7001", nil).Once()
			},
			wantRun:     finishedRun(models.StepPolicies, true, 1, 0, lo.ToPtr("stopped with 1 policies remaining")),
			wantActions: []reconciler.Action{reconciler.ActionCreated},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			storage := reconcilermocks.NewStorage(t)
			storage.On("PoliciesByType", mock.Anything, models.PolicyTypeFulfillment).
				Return([]models.SourcePolicy{fakePolicy(1, models.PolicyTypeFulfillment)}, nil).Once()
			storage.On("PoliciesByType", mock.Anything, models.PolicyTypePayment).
				Return([]models.SourcePolicy{fakePolicy(2, models.PolicyTypePayment)}, nil).Once()
			storage.On("PoliciesByType", mock.Anything, models.PolicyTypeReturn).
				Return([]models.SourcePolicy{}, nil).Once()
			tt.mockStorage(storage)

			api := reconcilermocks.NewPolicyAPI(t)
			tt.mockAPI(api)

			c := newComponents(t)
			c.storage.On("StartRun", mock.Anything, models.StepPolicies).Return(startedRun(models.StepPolicies), nil).Once()
			c.storage.On("FinishRun", mock.Anything, tt.wantRun).Return(nil).Once()

			outcomes, err := c.pipeline(reconciler.NewReconciler(api, storage, &logger)).SyncPolicies(context.TODO(), tt.drive)
			require.NoError(t, err, "shouldn't return error")
			assert.Equal(t, tt.wantActions, lo.Map(outcomes, func(o reconciler.Outcome, _ int) reconciler.Action {
				return o.Action
			}), "should return outcomes of processed policies")
		})
	}
}

func TestUnitSyncPoliciesStartFailure(t *testing.T) {
	storageErr := errors.New("connection refused")

	storage := reconcilermocks.NewStorage(t)
	storage.On("PoliciesByType", mock.Anything, models.PolicyTypeFulfillment).Return(nil, storageErr).Once()

	c := newComponents(t)
	c.storage.On("StartRun", mock.Anything, models.StepPolicies).Return(startedRun(models.StepPolicies), nil).Once()
	c.storage.On("FinishRun", mock.Anything, mock.MatchedBy(func(run *models.Run) bool {
		return !*run.IsSuccess && run.StatusMessage != nil && run.SucceededItems == nil
	})).Return(nil).Once()

	_, err := c.pipeline(reconciler.NewReconciler(reconcilermocks.NewPolicyAPI(t), storage, &logger)).
		SyncPolicies(context.TODO(), pipeline.DriveAll)
	assert.ErrorIs(t, err, storageErr, "should return storage error")
}

func TestUnitPublish(t *testing.T) {
	haltErr := &publisher.HaltError{SKU: "BOOK-002", Step: publisher.StepOfferCreate, Cause: errors.New("409 {}")}

	tests := map[string]struct {
		summary publisher.Summary
		err     error
		wantRun *models.Run
	}{
		"published": {
			summary: publisher.Summary{Published: 3},
			wantRun: finishedRun(models.StepPublish, true, 3, 0, nil),
		},
		"halted": {
			summary: publisher.Summary{Published: 1, Remaining: 2},
			err:     haltErr,
			wantRun: finishedRun(models.StepPublish, false, 1, 1, lo.ToPtr(haltErr.Error())),
		},
		"storage failure": {
			err:     errors.New("can't get pending listings: timeout"),
			wantRun: finishedRun(models.StepPublish, false, 0, 0, lo.ToPtr("can't get pending listings: timeout")),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := newComponents(t)
			c.storage.On("StartRun", mock.Anything, models.StepPublish).Return(startedRun(models.StepPublish), nil).Once()
			c.publisher.On("Publish", mock.Anything, 5).Return(tt.summary, tt.err).Once()
			c.storage.On("FinishRun", mock.Anything, tt.wantRun).Return(nil).Once()

			summary, err := c.pipeline(nil).Publish(context.TODO(), 5)
			assert.Equal(t, tt.summary, summary, "should return publish summary")
			if tt.err == nil {
				assert.NoError(t, err, "shouldn't return error")
				return
			}
			assert.ErrorIs(t, err, tt.err, "should return publish error")
		})
	}
}

func TestUnitVerify(t *testing.T) {
	reports := []verifier.Report{
		{SKU: "BOOK-001"},
		{SKU: "BOOK-002", Mismatches: []string{"quantity: 2 != 1"}},
		{SKU: "BOOK-003"},
	}

	c := newComponents(t)
	c.storage.On("StartRun", mock.Anything, models.StepVerify).Return(startedRun(models.StepVerify), nil).Once()
	c.verifier.On("Verify", mock.Anything).Return(reports, nil).Once()
	c.storage.On("FinishRun", mock.Anything, finishedRun(models.StepVerify, true, 2, 1, nil)).Return(nil).Once()

	got, err := c.pipeline(nil).Verify(context.TODO())
	require.NoError(t, err, "shouldn't return error")
	assert.Equal(t, reports, got, "should return reports")
}

func TestUnitStartRunFailure(t *testing.T) {
	c := newComponents(t)
	c.storage.On("StartRun", mock.Anything, models.StepVerify).Return(nil, platform.ErrAlreadyRunning).Once()

	_, err := c.pipeline(nil).Verify(context.TODO())
	assert.ErrorIs(t, err, platform.ErrAlreadyRunning, "should return start error")
	assert.EqualError(t, err, "can't start verify step: step already running", "should name the step")
}

func TestUnitFinishRunFailure(t *testing.T) {
	finishErr := errors.New("connection reset")
	verifyErr := errors.New("can't get migrated listings: timeout")

	tests := map[string]struct {
		verifyErr error
		wantErr   string
	}{
		"succeeded step": {
			wantErr: "can't finish verify step: connection reset",
		},
		"failed step": {
			verifyErr: verifyErr,
			wantErr:   "can't finish failed verify step: connection reset (fail reason: can't get migrated listings: timeout)",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := newComponents(t)
			c.storage.On("StartRun", mock.Anything, models.StepVerify).Return(startedRun(models.StepVerify), nil).Once()
			c.verifier.On("Verify", mock.Anything).Return([]verifier.Report{}, tt.verifyErr).Once()
			c.storage.On("FinishRun", mock.Anything, mock.Anything).Return(finishErr).Once()

			_, err := c.pipeline(nil).Verify(context.TODO())
			assert.EqualError(t, err, tt.wantErr, "should return finish error")
			assert.ErrorIs(t, err, finishErr, "should wrap finish error")
			if tt.verifyErr != nil {
				assert.ErrorIs(t, err, tt.verifyErr, "should wrap fail reason")
			}
		})
	}
}

func TestUnitRun(t *testing.T) {
	tests := map[string]struct {
		step models.Step
		mock func(c components)
	}{
		"extract": {
			step: models.StepExtract,
			mock: func(c components) {
				c.extractor.On("Extract", mock.Anything).Return(extractor.Summary{}, nil).Once()
			},
		},
		"download": {
			step: models.StepDownload,
			mock: func(c components) {
				c.transfer.On("Download", mock.Anything, mock.Anything).Return(transfer.Summary{}, nil).Once()
			},
		},
		"upload": {
			step: models.StepUpload,
			mock: func(c components) {
				c.transfer.On("Upload", mock.Anything, mock.Anything).Return(transfer.Summary{}, nil).Once()
			},
		},
		"publish": {
			step: models.StepPublish,
			mock: func(c components) {
				c.publisher.On("Publish", mock.Anything, 10).Return(publisher.Summary{}, nil).Once()
			},
		},
		"verify": {
			step: models.StepVerify,
			mock: func(c components) {
				c.verifier.On("Verify", mock.Anything).Return([]verifier.Report{}, nil).Once()
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := newComponents(t)
			c.storage.On("StartRun", mock.Anything, tt.step).Return(startedRun(tt.step), nil).Once()
			c.storage.On("FinishRun", mock.Anything, finishedRun(tt.step, true, 0, 0, nil)).Return(nil).Once()
			tt.mock(c)

			assert.NoError(t, c.pipeline(nil).Run(context.TODO(), tt.step, 10), "shouldn't return error")
		})
	}
}

func TestUnitRunUnknownStep(t *testing.T) {
	err := newComponents(t).pipeline(nil).Run(context.TODO(), models.Step("cleanup"), 0)
	assert.ErrorIs(t, err, pipeline.ErrUnknownStep, "should reject unknown step")
}

func fakePolicy(id int, policyType models.PolicyType) models.SourcePolicy {
	return modelstesting.FakePolicy(policyType, func(p *models.SourcePolicy) {
		p.ID = id
	})
}
