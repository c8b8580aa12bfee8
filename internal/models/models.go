package models

import "fmt"

// ErrorKind classifies the ways a conversation request can fail. The proxy
// has a deliberately shallow taxonomy: every kind surfaces to the caller as
// HTTP 500 with a human-readable detail string, nothing is retried.
type ErrorKind string

const (
	// ErrMissingCredentials means a required API key or credential blob was
	// absent when a provider call was attempted.
	ErrMissingCredentials ErrorKind = "missing_credentials"

	// ErrProvider means the generative-content or speech-synthesis call
	// failed or returned a non-success status.
	ErrProvider ErrorKind = "provider_error"

	// ErrEmptyModelResponse means the generative model returned no usable text.
	ErrEmptyModelResponse ErrorKind = "empty_model_response"
)

// ProxyError is the single error type used across provider calls so the HTTP
// layer has one mapping strategy instead of one adapted per call site.
type ProxyError struct {
	Kind   ErrorKind
	Detail string
	Err    error // underlying cause, nil for pure application errors
}

func (e *ProxyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Detail, e.Err)
	}
	return e.Detail
}

func (e *ProxyError) Unwrap() error {
	return e.Err
}

// NewMissingCredentials reports an absent API key or credential at call time.
func NewMissingCredentials(detail string) *ProxyError {
	return &ProxyError{Kind: ErrMissingCredentials, Detail: detail}
}

// NewProviderError wraps a failed external provider call.
func NewProviderError(detail string, err error) *ProxyError {
	return &ProxyError{Kind: ErrProvider, Detail: detail, Err: err}
}

// NewEmptyModelResponse reports a provider reply with no usable text.
func NewEmptyModelResponse(detail string) *ProxyError {
	return &ProxyError{Kind: ErrEmptyModelResponse, Detail: detail}
}

// HealthResponse is the body of the health/test endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ErrorResponse is the JSON error body returned for failed requests.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
