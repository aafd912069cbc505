package store

import "errors"

var (
	ErrNoSession      = errors.New("no active session")
	ErrRecordNotFound = errors.New("record not found")
	ErrInTransaction  = errors.New("store is already in a transaction")
)
