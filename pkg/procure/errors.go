package procure

import (
	"errors"
	"fmt"
	"strings"

	"p9e.in/qms/models"
)

// Sentinels surfaced by repositories; services wrap them into the typed
// errors below before they reach a handler.
var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicatePONumber = errors.New("po number already exists")
	ErrVersionConflict   = errors.New("version conflict")
)

// ValidationError reports missing or malformed required fields. The
// operation aborts before any write.
type ValidationError struct {
	Missing []string
	Reason  string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return "missing required fields: " + strings.Join(e.Missing, ", ")
	}
	return e.Reason
}

// IllegalTransitionError reports a status precondition failure. The
// order is left untouched.
type IllegalTransitionError struct {
	PONumber string
	From     models.POStatus
	Op       string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("cannot %s PO %s in status %q", e.Op, e.PONumber, e.From)
}

// NotFoundError reports an absent PO, vehicle, or document. Satellite
// record creators tolerate it by falling back to manual entry.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

// ConflictError reports a lost concurrent update detected by the
// per-row version check.
type ConflictError struct {
	PONumber string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("PO %s was modified concurrently, reload and retry", e.PONumber)
}

// StoreError wraps a transient backend failure on a write path. Read
// paths never surface it: they degrade to empty results instead.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store failure during %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
