package models

import (
	"errors"
)

// custom error types (generic types found in apperror package)

// user
var (
	ErrUserNameNotAvailable = errors.New("user name is not available")
	ErrInvalidUser          = errors.New("invalid user name or password")
	ErrInvalidPassword      = errors.New("password does not meet rules")
)

// review
// transformed by controllers to respective Unprocessable Entity (422)
var (
	ErrReviewEmpty      = errors.New("review content is required")
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
)

// facility
var (
	ErrCatalogNotLoaded = errors.New("facility catalog not loaded")
)
