// Package gateway defines the provider-neutral error contract for model
// gateway implementations.
package gateway

import "fmt"

// ProviderError wraps any failure of a call to the generative-model provider:
// auth, quota, network, or provider-side errors. Callers report these
// separately from validation failures. StatusCode is the provider's HTTP
// status, or 0 for transport-level failures.
type ProviderError struct {
	Op         string // "chat", "transcribe", "models"
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("openai %s failed (status %d): %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("openai %s failed: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is transient: rate limits, provider
// 5xx responses, and transport errors qualify. Client-caused 4xx responses
// (bad auth, malformed request) do not.
func (e *ProviderError) Retryable() bool {
	switch {
	case e.StatusCode == 429:
		return true
	case e.StatusCode >= 500:
		return true
	case e.StatusCode == 0:
		return true
	default:
		return false
	}
}
