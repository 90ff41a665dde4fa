// ABOUTME: Error types returned by the remote post service.
// ABOUTME: Carries the HTTP status code when the API answered with a failure.
package storage

import (
	"errors"
	"fmt"
	"net/http"
)

// ServiceError reports a non-success response or transport failure from the post API.
type ServiceError struct {
	Op         string // list, get, create, update, delete
	StatusCode int    // 0 when the request never got a response
	Body       string
	Err        error
}

func (e *ServiceError) Error() string {
	if e.StatusCode > 0 && e.Err != nil {
		return fmt.Sprintf("%s: remote API returned %d: %v", e.Op, e.StatusCode, e.Err)
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: remote API returned %d: %s", e.Op, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: remote API request failed: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a ServiceError for a 404 response.
func IsNotFound(err error) bool {
	var se *ServiceError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}
