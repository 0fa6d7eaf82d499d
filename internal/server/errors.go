package server

import "errors"

// Server-specific errors
var (
	ErrServerAlreadyRunning = errors.New("server is already running")
	ErrServerNotRunning     = errors.New("server is not running")
	ErrUnknownOperation     = errors.New("unknown operation")
	ErrInvalidArguments     = errors.New("invalid arguments")
	ErrUnrepresentable      = errors.New("result is not representable as JSON")
	ErrEmptyBatch           = errors.New("batch is empty")
	ErrBatchTooLarge        = errors.New("batch exceeds the configured maximum")
)
