package domain

import "errors"

// Failure kinds raised by the ledger core. Callers branch with errors.Is;
// the HTTP layer maps each kind to a status code.
var (
	// ErrValidation covers malformed or missing input, including unknown
	// bank/branch codes.
	ErrValidation = errors.New("invalid request")

	// ErrNotFound means a referenced account or entry does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrUnknownEntryType means an entry type code is absent from the
	// sign mapping. Fatal to reconciliation, never skipped.
	ErrUnknownEntryType = errors.New("unknown entry type")

	// ErrPersistence wraps an underlying store failure. Not retried.
	ErrPersistence = errors.New("persistence failure")
)
