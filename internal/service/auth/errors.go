package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token is malformed or its signature
	// doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrInvalidCredentials is the deliberately generic login failure.
	// Lookup misses and password mismatches both map here so responses
	// never reveal which one happened.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPasswordMismatch indicates the plaintext did not match the stored
	// hash. Any other Compare error is an internal failure, not a
	// credential problem.
	ErrPasswordMismatch = errors.New("password does not match")
)
