package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidPlayer   = errors.New("invalid player")
	ErrInvalidRecord   = errors.New("invalid record")
	ErrRosterFull      = errors.New("roster is full")
	ErrBaselineMissing = errors.New("baseline roles missing")
)
