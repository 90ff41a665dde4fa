// ABOUTME: Error types for the feed core.
// ABOUTME: Covers form validation, view reconciliation misses, and paging sentinels.
package feed

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPageOutOfRange is returned when a page outside [1, totalPages] is requested.
	ErrPageOutOfRange = errors.New("page out of range")

	// ErrDuplicateID is returned when inserting a post whose id is already held.
	ErrDuplicateID = errors.New("duplicate post id")

	// ErrSearchDisabled is returned by Dispatch when search is turned off.
	ErrSearchDisabled = errors.New("search is disabled")

	// ErrPostNotFound is returned when an id is not in the list state.
	ErrPostNotFound = errors.New("post not found")
)

// ValidationError lists the human-readable problems found in a post form.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid post: " + strings.Join(e.Messages, "; ")
}

// NotFoundInView reports a reconciliation target that is not currently rendered.
// It is logged and swallowed; the state change it belongs to has already happened.
type NotFoundInView struct {
	ID int
}

func (e *NotFoundInView) Error() string {
	return fmt.Sprintf("post %d not found in view", e.ID)
}
