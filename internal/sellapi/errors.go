package sellapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/samber/lo"
)

const (
	duplicatePolicyErrorID = 20400
	duplicatePolicyMessage = "Duplicate Policy"
	offerExistsMessage     = "already exists"
	duplicatePolicyIDParam = "duplicatePolicyId"
	existingOfferIDParam   = "offerId"
)

var (
	// ErrUnauthorized is returned when API rejects OAuth token.
	ErrUnauthorized = errors.New("sell api token rejected")
	// ErrNotFound is returned when requested resource doesn't exist.
	ErrNotFound = errors.New("resource not found")
)

// ErrorParameter is named value attached to API error.
type ErrorParameter struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ErrorDetail is single error reported by API.
type ErrorDetail struct {
	ErrorID     int              `json:"errorId"`
	Domain      string           `json:"domain"`
	Category    string           `json:"category"`
	Message     string           `json:"message"`
	LongMessage string           `json:"longMessage"`
	Parameters  []ErrorParameter `json:"parameters"`
}

// APIError is unsuccessful API response.
type APIError struct {
	StatusCode int
	Body       string
	Errors     []ErrorDetail
}

// Error returns response status and body.
func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s", e.StatusCode, e.Body)
}

// Is matches ErrUnauthorized and ErrNotFound by response status.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	default:
		return false
	}
}

// Parameter returns value of first error parameter with provided name.
func (e *APIError) Parameter(name string) (string, bool) {
	for _, detail := range e.Errors {
		param, ok := lo.Find(detail.Parameters, func(p ErrorParameter) bool { return p.Name == name })
		if ok {
			return param.Value, true
		}
	}
	return "", false
}

// IsDuplicatePolicy reports whether policy creation was rejected because equivalent policy exists.
func (e *APIError) IsDuplicatePolicy() bool {
	if e.StatusCode == http.StatusConflict {
		return true
	}
	if e.StatusCode != http.StatusBadRequest {
		return false
	}

	return strings.Contains(e.Body, duplicatePolicyMessage) ||
		lo.ContainsBy(e.Errors, func(d ErrorDetail) bool { return d.ErrorID == duplicatePolicyErrorID })
}

// DuplicatePolicyID returns id of existing equivalent policy.
func (e *APIError) DuplicatePolicyID() (string, bool) {
	return e.Parameter(duplicatePolicyIDParam)
}

// IsOfferExists reports whether offer creation was rejected because offer for SKU exists.
func (e *APIError) IsOfferExists() bool {
	return e.StatusCode == http.StatusConflict ||
		strings.Contains(strings.ToLower(e.Body), offerExistsMessage)
}

// ExistingOfferID returns id of existing offer.
func (e *APIError) ExistingOfferID() (string, bool) {
	return e.Parameter(existingOfferIDParam)
}
