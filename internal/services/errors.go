package services

import "errors"

// Closed set of failure variants returned by the service layer. Handlers map
// these to HTTP statuses with errors.Is; transport concerns stay out of here.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrDuplicateReview = errors.New("duplicate review")
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrForbidden       = errors.New("identity does not match requested filter")
	ErrServiceNotFound = errors.New("service not found")
	ErrDatabaseQuery   = errors.New("database query failed")
)
