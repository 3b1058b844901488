package service

import "errors"

// Sentinel errors returned by the service.
var (
	ErrNotStarted      = errors.New("service not started")
	ErrNotConfigured   = errors.New("service not configured")
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict")
)
