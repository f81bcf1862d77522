package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MichalMitros/listing-migrator/internal/platform/models"
	"github.com/MichalMitros/listing-migrator/internal/platform/rabbitmq"
	"github.com/MichalMitros/listing-migrator/pkg/v1/commander"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

//go:generate mockery --name Runner --filename runner.go
//go:generate mockery --name Consumer --filename consumer.go

// ErrInvalidCommand is returned for step commands which can't be run.
var ErrInvalidCommand = errors.New("invalid step command")

// Runner runs migration steps.
type Runner interface {
	Run(ctx context.Context, step models.Step, limit int) error
}

// Consumer consumes messages from queue.
type Consumer interface {
	Consume(ctx context.Context, queue string, handler rabbitmq.HandlerFunc) (<-chan error, error)
}

// RMQHandler handles RMQ messages.
type RMQHandler struct {
	rmq    Consumer
	runner Runner
	logger *zerolog.Logger
}

// NewHandler returns new RMQHandler.
func NewHandler(rmq Consumer, runner Runner, logger *zerolog.Logger) *RMQHandler {
	return &RMQHandler{
		rmq:    rmq,
		runner: runner,
		logger: logger,
	}
}

// Start starts consuming and handling step commands from RMQ.
func (h *RMQHandler) Start(ctx context.Context, queue string) error {
	errorsChan, err := h.rmq.Consume(ctx, queue, h.Handle)
	if err != nil {
		return err
	}

	go func() {
		for err := range errorsChan {
			h.logger.Error().
				Err(err).
				Msg("can't handle message")
		}
	}()

	return nil
}

// Handle runs step ordered by message.
func (h *RMQHandler) Handle(ctx context.Context, message []byte) error {
	cmd, err := decodeMessage(message)
	if err != nil {
		return err
	}

	h.logger.Debug().
		Str("step", cmd.Step).
		Int("limit", cmd.Limit).
		Msg("step started")

	err = h.runner.Run(ctx, models.Step(cmd.Step), cmd.Limit)
	if err != nil {
		return fmt.Errorf("step %s failed: %w", cmd.Step, err)
	}

	h.logger.Debug().
		Str("step", cmd.Step).
		Msg("step finished")

	return nil
}

func decodeMessage(msg []byte) (*commander.StepCommand, error) {
	var cmd commander.StepCommand
	err := json.Unmarshal(msg, &cmd)
	if err != nil {
		return nil, fmt.Errorf("can't decode step command: %w", err)
	}

	if !lo.Contains(models.Steps, models.Step(cmd.Step)) {
		return nil, fmt.Errorf("%w: unknown step %q", ErrInvalidCommand, cmd.Step)
	}

	if cmd.Limit < 0 {
		return nil, fmt.Errorf("%w: negative limit %d", ErrInvalidCommand, cmd.Limit)
	}

	return &cmd, nil
}
