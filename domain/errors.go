package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrResetInProgress is returned when a weekly reset is requested while
	// another one is still running for the same user.
	ErrResetInProgress = errors.New("weekly reset already in progress for this user")

	// ErrForbidden is returned when the policy engine or an ownership check
	// refuses an operation.
	ErrForbidden = errors.New("operation not permitted")
)

// NotFoundError reports a missing entity or a dangling reference.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// ValidationError reports input or data that failed validation. Issues are
// human-readable and, for pre-archive checks, name the 1-based record index
// and the missing field.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Issues, ", ")
}

// PartialWriteError reports a bulk history insert that acknowledged fewer
// records than submitted. Compensation has already removed the partial
// rows; the active set is untouched and the reset may be retried.
type PartialWriteError struct {
	Submitted int
	Inserted  int
	Err       error
}

func (e *PartialWriteError) Error() string {
	msg := fmt.Sprintf("history insert incomplete: %d of %d records written, rolled back", e.Inserted, e.Submitted)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *PartialWriteError) Unwrap() error { return e.Err }

// ReconciliationError reports a failed compensation: history rows with no
// active counterpart remain behind and need manual cleanup. This must never
// be swallowed.
type ReconciliationError struct {
	OrphanIDs []string
	Err       error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("compensation failed, %d orphan history records need manual reconciliation (%s): %v",
		len(e.OrphanIDs), strings.Join(e.OrphanIDs, ", "), e.Err)
}

func (e *ReconciliationError) Unwrap() error { return e.Err }
