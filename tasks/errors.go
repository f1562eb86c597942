package tasks

import "errors"

var (
	// ErrTaskRepositoryRequired is returned when a task repository is not provided.
	ErrTaskRepositoryRequired = errors.New("task repository required")

	// ErrPipelineRequired is returned when an ingestion pipeline is not provided.
	ErrPipelineRequired = errors.New("ingestion pipeline required")

	// ErrInvalidMaxAttempts is returned for a non-positive retry attempt count.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")
)
