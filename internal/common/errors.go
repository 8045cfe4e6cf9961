// Package common defines shared constants and sentinel errors used across
// the gophvault server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")
	ErrValidation = errors.New("validation error")

	// Auth errors (invalid or malformed access token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Object-storage errors.
	ErrCredentialUnavailable = errors.New("storage credential unavailable")
	ErrStorageAuthExpired    = errors.New("storage authorization expired")
	ErrStorageBackend        = errors.New("storage backend error")

	// Pre-flight denials, no backend call is made after these.
	ErrPlanNotFound        = errors.New("plan not found")
	ErrPlanExpired         = errors.New("plan expired")
	ErrUsageUnavailable    = errors.New("storage usage unavailable")
	ErrQuotaExceeded       = errors.New("storage limit exceeded")
	ErrDeviceNotRegistered = errors.New("device not registered")

	// File record errors.
	ErrFileNotFound          = errors.New("file not found")
	ErrFileNotAvailable      = errors.New("file not available")
	ErrObjectAlreadyAssigned = errors.New("storage object already assigned")
)
