package service

import "errors"

var (
	// ErrNotFound: a referenced asset, user, document or issuance is absent.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState: the operation is forbidden in the current state,
	// e.g. issuing a non-available asset or signing a non-pending document.
	ErrInvalidState = errors.New("invalid state")
	// ErrConflict: a uniqueness violation, e.g. a duplicate active issuance
	// or a duplicate asset code on creation.
	ErrConflict = errors.New("conflict")
	// ErrExpired: the document's signing window has elapsed.
	ErrExpired = errors.New("signing window expired")
	// ErrNoActiveIssuance: return was requested for an asset nobody holds.
	ErrNoActiveIssuance = errors.New("no active issuance")
)
