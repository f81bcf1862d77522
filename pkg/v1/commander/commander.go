package commander

import (
	"context"
	"encoding/json"
	"fmt"
)

//go:generate mockery --name Sender --filename sender.go

// StepCommand orders migration step run.
type StepCommand struct {
	Step string `json:"step"`
	// Limit caps number of published listings, zero means no limit.
	Limit int `json:"limit,omitempty"`
}

// Sender sends messages.
type Sender interface {
	Send(ctx context.Context, message []byte) error
}

// StepCommander sends step commands.
type StepCommander struct {
	sender Sender
}

// NewStepCommander returns new StepCommander using provided sender for sending messages.
func NewStepCommander(sender Sender) StepCommander {
	return StepCommander{
		sender: sender,
	}
}

// SendStepCommand sends command running provided step.
func (c StepCommander) SendStepCommand(ctx context.Context, step string, limit int) error {
	cmd := StepCommand{
		Step:  step,
		Limit: limit,
	}

	cmdMsg, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("can't marshal step command: %w", err)
	}

	return c.sender.Send(ctx, cmdMsg)
}
