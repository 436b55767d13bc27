package download

import (
	"errors"
	"fmt"
)

// ErrNotFound reports an HTTP 404 for the requested resource.
var ErrNotFound = errors.New("resource not found (404)")

// TransferError covers every other failed fetch: a transport or request-build
// failure (Status 0, Cause set) or a non-2xx response (Status set).
type TransferError struct {
	Status int
	Cause  error
}

func (e *TransferError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("transfer failed with status %d", e.Status)
	}
	return fmt.Sprintf("transfer failed: %v", e.Cause)
}

func (e *TransferError) Unwrap() error {
	return e.Cause
}
