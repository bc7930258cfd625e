package catalog

import "errors"

// Sentinel error kinds for the sector catalog.
var (
	// ErrConfig marks a missing, malformed or inconsistent catalog document.
	ErrConfig = errors.New("sector configuration error")

	// ErrUnknownSector is returned by direct lookups of an unconfigured sector id.
	ErrUnknownSector = errors.New("unknown sector")
)
