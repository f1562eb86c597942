package chat

import "errors"

var (
	// ErrThreadRepositoryRequired is returned when a thread repository is not provided.
	ErrThreadRepositoryRequired = errors.New("thread repository required")

	// ErrHistoryRepositoryRequired is returned when a history repository is not provided.
	ErrHistoryRepositoryRequired = errors.New("history repository required")

	// ErrVectorRepositoryRequired is returned when a vector repository is not provided.
	ErrVectorRepositoryRequired = errors.New("vector repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")
)
