// Package shared defines sentinel errors used across service layers.
// Callers should use errors.Is to match these values.
package shared

import "errors"

var (

	// common errors
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")
	ErrorValidation    = errors.New("validation error")
	ErrorInternal      = errors.New("internal error")

	// auth-specific errors
	ErrorInvalidCredentials      = errors.New("invalid credentials")
	ErrorInvalidToken            = errors.New("invalid token")
	ErrorMissingToken            = errors.New("missing token")
	ErrorInvalidAuthheaderFormat = errors.New("invalid auth header format")

	// identifier fails syntactic validation, checked before any lookup
	ErrorInvalidID = errors.New("invalid id")

	// upload-specific errors
	ErrorMissingImage = errors.New("image file is required")
)
