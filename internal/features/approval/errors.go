package approval

import "errors"

// The decision engine's error taxonomy. All of these are expected,
// recoverable outcomes surfaced to the caller as-is; anything else coming out
// of the engine is an infrastructure failure.
var (
	// ErrNotFound: no request with that id (or for that document).
	ErrNotFound = errors.New("approval request not found")
	// ErrAlreadyExists: an active request already exists for the document.
	ErrAlreadyExists = errors.New("an active approval request already exists for this document")
	// ErrInvalidConfiguration: no active template, or the template has zero levels.
	ErrInvalidConfiguration = errors.New("approval chain is not configured for this document type")
	// ErrInvalidState: decision attempted on a terminal request.
	ErrInvalidState = errors.New("approval request is not pending")
	// ErrWrongLevel: decision targets a level other than the current one.
	ErrWrongLevel = errors.New("decision does not target the current level")
	// ErrWrongApprover: the actor is not the expected approver for the level.
	ErrWrongApprover = errors.New("actor is not the designated approver for this level")
	// ErrMissingReason: rejection without a reason comment.
	ErrMissingReason = errors.New("a rejection requires a reason comment")
	// ErrConflict: stale version on write. The caller must re-read the
	// request and re-evaluate before retrying.
	ErrConflict = errors.New("approval request was modified concurrently")
)
