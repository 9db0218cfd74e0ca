package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrClientStatusInvalid       = errors.New("the client status must be one of 'building', 'deposit', 'built'")
	ErrClientNumberNotUnique     = errors.New("the client number must be unique")
	ErrCategoryRowInvalid        = errors.New("the category row must be 1 (identity) or 3 (project)")
	ErrIdentityCategoryNotUnique = errors.New("a client can only have one identity category")
	ErrHistoryUnavailable        = errors.New("transaction history is not available for this client")
)
