package service

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
	ErrBatchRunning     = errors.New("a batch is already running")
	ErrExportFailed     = errors.New("export failed")
)
