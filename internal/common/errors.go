// Package common defines shared constants and sentinel errors used across
// the riskboard components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Session-gate errors (caller-side bugs, not user conditions).
	ErrorNotAuthenticated = errors.New("no authenticated session")

	// Dataset errors.
	ErrorBarangayNotFound = errors.New("barangay not found")
	ErrorEmptyDataset     = errors.New("dataset contains no usable rows")
)
