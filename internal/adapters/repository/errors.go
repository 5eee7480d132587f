package repository

import "errors"

// Sentinel kinds for store and ledger errors.
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidRecord      = errors.New("invalid record")
	ErrInsufficientBudget = errors.New("insufficient club budget")
	ErrInvalidLeague      = errors.New("invalid league file")
)
