package tradingapi

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when Trading API rejects OAuth token.
	ErrUnauthorized = errors.New("trading api token rejected")
	// ErrStatusNotOK is returned when http response had status different than 200 OK.
	ErrStatusNotOK = errors.New("response status is not 200 OK")
	// ErrNoPictureURL is returned when picture upload response has no hosted picture url.
	ErrNoPictureURL = errors.New("upload response has no picture url")
)

// authErrorCodes are Trading API error codes meaning token is invalid or expired.
var authErrorCodes = map[string]struct{}{
	"931":      {},
	"932":      {},
	"16110":    {},
	"17470":    {},
	"21916984": {},
}

// CallError is Trading API call failure reported in response body.
type CallError struct {
	Call    string
	Code    string
	Message string
}

// Error returns call error message.
func (e *CallError) Error() string {
	return fmt.Sprintf("%s failed: %s %s", e.Call, e.Code, e.Message)
}

// Is reports whether call error means rejected token.
func (e *CallError) Is(target error) bool {
	if target != ErrUnauthorized {
		return false
	}
	_, ok := authErrorCodes[e.Code]
	return ok
}
