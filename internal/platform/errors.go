package platform

import (
	"errors"
)

// ErrAlreadyRunning is an error returned when step can't be started because its previous run is not finished yet.
var ErrAlreadyRunning = errors.New("step already running")

// ErrNotFound is an error returned when requested entity doesn't exist in storage.
var ErrNotFound = errors.New("not found")
