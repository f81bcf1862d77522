package publisher

import (
	"errors"
	"fmt"
)

// ErrBatchHalted is matched by every error which stopped publishing batch.
var ErrBatchHalted = errors.New("batch halted, fix the issue and run publishing again")

// Publishing steps reported in halt errors and listing migration errors.
const (
	StepTransform   = "Transform"
	StepItemCreate  = "Item Create"
	StepOfferCreate = "Offer Create"
	StepOfferUpdate = "Offer Update"
	StepPublish     = "Publish"
)

// HaltError is returned when listing failed and publishing of following listings was stopped.
type HaltError struct {
	SKU   string
	Step  string
	Cause error
}

// Error returns failed listing, step and cause.
func (e *HaltError) Error() string {
	return fmt.Sprintf("listing %s failed at %s: %v", e.SKU, e.Step, e.Cause)
}

// Unwrap returns halt cause.
func (e *HaltError) Unwrap() error {
	return e.Cause
}

// Is matches ErrBatchHalted.
func (e *HaltError) Is(target error) bool {
	return target == ErrBatchHalted
}
