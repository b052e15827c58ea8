package session

import "errors"

var (
	// ErrCredentialMissing: no API key configured; the only legal view is
	// AWAITING_CREDENTIALS.
	ErrCredentialMissing = errors.New("no credential configured")
	// ErrProviderFailure: a generation or evaluation call failed, timed
	// out, or returned malformed content.
	ErrProviderFailure = errors.New("provider call failed")
	// ErrBudgetExceeded: the planned allocation is larger than the brief
	// budget; the round is rejected synchronously with no state change.
	ErrBudgetExceeded = errors.New("allocation exceeds budget")
	// ErrDuplicateSubmission: re-running while RUNNING, re-submitting
	// credentials while LOADING, or re-answering a scored challenge.
	ErrDuplicateSubmission = errors.New("duplicate submission")
	// ErrInvalidTransition: the operation is not legal in the current view.
	ErrInvalidTransition = errors.New("operation not allowed in current view")
	// ErrChallengeNotScored: leaving the CHALLENGE view requires feedback.
	ErrChallengeNotScored = errors.New("challenge has not been scored yet")
	// ErrInvalidAllocation: negative amount or unknown channel id.
	ErrInvalidAllocation = errors.New("invalid allocation")
	// ErrModalNotAllowed: no overlay may be shown on the current view.
	ErrModalNotAllowed = errors.New("modal not allowed in current view")
	// ErrStaleOperation: the session was reset while the operation was in
	// flight; its result was discarded.
	ErrStaleOperation = errors.New("session was reset during the operation")
)
