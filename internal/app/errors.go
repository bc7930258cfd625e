package service

import "errors"

var (
	// ErrNotStarted is returned by batch operations before Start.
	ErrNotStarted = errors.New("service not started")

	// ErrBackpressure marks a batch item rejected because the job queue is full.
	ErrBackpressure = errors.New("job queue is full")

	// ErrBatchTooLarge is returned when a batch exceeds the configured size.
	ErrBatchTooLarge = errors.New("batch exceeds maximum size")

	// ErrDuplicateProject marks a batch item whose project_id repeated an
	// earlier item of the same batch.
	ErrDuplicateProject = errors.New("duplicate project_id in batch")

	// ErrUnknownSample is returned for an unrecognized sample project kind.
	ErrUnknownSample = errors.New("unknown project type")
)
