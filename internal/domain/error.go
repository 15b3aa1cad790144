package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrUnknownTimeZone    = errors.New("unknown time zone")
	ErrAlreadySubscribed  = errors.New("chat is already subscribed to notifications")
	ErrNotSubscribed      = errors.New("notification type is not in the chat's subscription set")
	ErrDuplicateFavourite = errors.New("favourite already exists for this chat")
	ErrInvalidDailyTime   = errors.New("daily time must be HH:MM")
	ErrOperationFailed    = errors.New("operation failed")
	ErrReadDatabaseRow    = errors.New("failed to read database row")
	ErrInvalidExecContext = errors.New("invalid database execution context")
)
