// Package sentinel holds the storage-level facts that record, balance and
// outbox stores report. Registries translate them into coded domain errors;
// nothing above the registry layer should match on them.
package sentinel

import "errors"

var (
	// ErrNotFound: no record for the key (identity, claim, outbox entry).
	ErrNotFound = errors.New("not found")
	// ErrConflict: a record already exists for the key, or a uniqueness
	// constraint such as one identity per wallet was hit.
	ErrConflict = errors.New("conflict")
)
