package service

import "errors"

var (
	// ErrIncompleteInvoice rejects approval while required fields are
	// still missing.
	ErrIncompleteInvoice = errors.New("invoice incomplete")

	// ErrInvalidFieldUpdate rejects an edit whose value fails field
	// validation.
	ErrInvalidFieldUpdate = errors.New("invalid field update")
)
