package fetcher

import (
	"errors"
	"fmt"
)

// ErrNotImage is returned when image host responds with content other than image.
var ErrNotImage = errors.New("response isn't an image")

// StatusError is returned when image host responds with status other than 200 OK.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s responded with status %d", e.URL, e.StatusCode)
}
