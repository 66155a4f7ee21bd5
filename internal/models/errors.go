package models

import "errors"

var (
	// ErrMissingConfiguration is returned when a required environment variable is absent.
	ErrMissingConfiguration = errors.New("missing configuration")

	// ErrMalformedCredentialFile is returned when the credential file cannot be read or lacks fields.
	ErrMalformedCredentialFile = errors.New("malformed credential file")

	// ErrInvalidAmount is returned for non-positive cash amounts.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrPrecondition is returned when a client is used before it was initialized.
	ErrPrecondition = errors.New("precondition violation")

	// ErrRemoteCall wraps every failure surfaced by an upstream API or the search index.
	ErrRemoteCall = errors.New("remote call failed")
)
