package llm

import "errors"

var (
	// ErrProviderUnavailable indicates the model server is unreachable.
	ErrProviderUnavailable = errors.New("llm provider unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the LLM response was empty or could not be
	// parsed into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")

	// ErrMissingCredential indicates a hosted provider was selected without
	// an API key.
	ErrMissingCredential = errors.New("llm api key not configured")
)
