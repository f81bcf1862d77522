package handler_test

import (
	"context"
	"testing"

	"github.com/MichalMitros/listing-migrator/internal/handler"
	"github.com/MichalMitros/listing-migrator/internal/handler/mocks"
	"github.com/MichalMitros/listing-migrator/internal/platform/models"
	"github.com/MichalMitros/listing-migrator/internal/platform/rabbitmq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var logger = zerolog.Nop()

func TestUnitHandle(t *testing.T) {
	tests := map[string]struct {
		message   string
		mock      func(r *mocks.Runner)
		wantErr   error
		wantError string
	}{
		"step": {
			message: `{"step":"download"}`,
			mock: func(r *mocks.Runner) {
				r.On("Run", mock.Anything, models.StepDownload, 0).Return(nil).Once()
			},
		},
		"publish with limit": {
			message: `{"step":"publish","limit":20}`,
			mock: func(r *mocks.Runner) {
				r.On("Run", mock.Anything, models.StepPublish, 20).Return(nil).Once()
			},
		},
		"step failure": {
			message: `{"step":"verify"}`,
			mock: func(r *mocks.Runner) {
				r.On("Run", mock.Anything, models.StepVerify, 0).Return(assert.AnError).Once()
			},
			wantErr:   assert.AnError,
			wantError: "step verify failed: " + assert.AnError.Error(),
		},
		"malformed message": {
			message:   `{"step":`,
			mock:      func(r *mocks.Runner) {},
			wantError: "can't decode step command: unexpected end of JSON input",
		},
		"unknown step": {
			message:   `{"step":"cleanup"}`,
			mock:      func(r *mocks.Runner) {},
			wantErr:   handler.ErrInvalidCommand,
			wantError: `invalid step command: unknown step "cleanup"`,
		},
		"negative limit": {
			message:   `{"step":"publish","limit":-1}`,
			mock:      func(r *mocks.Runner) {},
			wantErr:   handler.ErrInvalidCommand,
			wantError: "invalid step command: negative limit -1",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			runner := mocks.NewRunner(t)
			tt.mock(runner)

			err := handler.NewHandler(mocks.NewConsumer(t), runner, &logger).Handle(context.TODO(), []byte(tt.message))
			if tt.wantError == "" {
				assert.NoError(t, err, "shouldn't return error")
				return
			}
			assert.EqualError(t, err, tt.wantError, "should return correct error")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr, "should wrap cause")
			}
		})
	}
}

func TestUnitStart(t *testing.T) {
	errorsChan := make(chan error)
	close(errorsChan)

	runner := mocks.NewRunner(t)
	runner.On("Run", mock.Anything, models.StepExtract, 0).Return(nil).Once()

	var consumed rabbitmq.HandlerFunc
	consumer := mocks.NewConsumer(t)
	consumer.On("Consume", mock.Anything, "migrator.commands", mock.Anything).
		Run(func(args mock.Arguments) {
			consumed = args.Get(2).(rabbitmq.HandlerFunc)
		}).
		Return((<-chan error)(errorsChan), nil).Once()

	err := handler.NewHandler(consumer, runner, &logger).Start(context.TODO(), "migrator.commands")
	require.NoError(t, err, "shouldn't return error")
	require.NotNil(t, consumed, "should register message handler")
	assert.NoError(t, consumed(context.TODO(), []byte(`{"step":"extract"}`)), "should run consumed step")
}

func TestUnitStartFailure(t *testing.T) {
	consumer := mocks.NewConsumer(t)
	consumer.On("Consume", mock.Anything, "migrator.commands", mock.Anything).Return(nil, assert.AnError).Once()

	err := handler.NewHandler(consumer, mocks.NewRunner(t), &logger).Start(context.TODO(), "migrator.commands")
	assert.ErrorIs(t, err, assert.AnError, "should return consume error")
}
