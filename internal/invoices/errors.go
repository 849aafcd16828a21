package invoices

import "errors"

var (
	ErrNotFound     = errors.New("invoice not found")
	ErrInvalidInput = errors.New("invalid input")
)
