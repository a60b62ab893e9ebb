package remote

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a categorized failure from the remote store. Status is the HTTP
// status code, or 0 when the round trip itself failed (network error,
// unreadable response).
type Error struct {
	Op      string // "objectives.tree", "tasks.create", ...
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Message)
}

// IsNotFound reports whether err is a remote 404: the referenced objective
// or task no longer exists server-side.
func IsNotFound(err error) bool {
	var re *Error
	return errors.As(err, &re) && re.Status == http.StatusNotFound
}

// IsUnauthorized reports whether err is a remote credential rejection.
func IsUnauthorized(err error) bool {
	var re *Error
	return errors.As(err, &re) && re.Status == http.StatusUnauthorized
}
