package services

import "errors"

var (
	// ErrTemplateNotFound means no template exists for the requested category.
	ErrTemplateNotFound = errors.New("no templates found for category")
	// ErrTransportFailure wraps SMS delivery failures.
	ErrTransportFailure = errors.New("sms transport failure")
	// ErrDataAccess wraps storage failures.
	ErrDataAccess = errors.New("data access failure")
	// ErrInvalidCategory rejects categories other than birthday and anniversary.
	ErrInvalidCategory = errors.New("invalid category")
)
