package domain

import "errors"

var (
	ErrInvalidConfig    = errors.New("invalid config")
	ErrUnknownPlatform  = errors.New("unknown platform")
	ErrSupervisorClosed = errors.New("supervisor closed")
)
