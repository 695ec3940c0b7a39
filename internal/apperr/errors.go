// Package apperr defines the error kinds surfaced at the HTTP boundary.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ConfigurationError reports a required credential that is not configured.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s is not configured", e.Key)
}

// NewConfigurationError builds a ConfigurationError for the named setting.
func NewConfigurationError(key string) *ConfigurationError {
	return &ConfigurationError{Key: key}
}

// ProviderError wraps a non-2xx response from an upstream API.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s API error: %d - %s", e.Provider, e.StatusCode, e.Body)
}

// NewProviderError builds a ProviderError from the upstream status and raw body.
func NewProviderError(provider string, statusCode int, body []byte) *ProviderError {
	return &ProviderError{Provider: provider, StatusCode: statusCode, Body: string(body)}
}

// SynthesisParseError reports LLM output that could not be used as a brief.
// Raw holds the unparsed model output for diagnosis; Err is the decode
// failure, if any.
type SynthesisParseError struct {
	Raw    string
	Reason string
	Err    error
}

func (e *SynthesisParseError) Error() string {
	switch {
	case e.Reason != "":
		return fmt.Sprintf("failed to parse LLM response as brief (%s): %s", e.Reason, e.Raw)
	case e.Err != nil:
		return fmt.Sprintf("failed to parse LLM response as JSON (%v): %s", e.Err, e.Raw)
	}
	return fmt.Sprintf("failed to parse LLM response as JSON: %s", e.Raw)
}

func (e *SynthesisParseError) Unwrap() error {
	return e.Err
}

// StakeholderWriteError records a CRM write failure for a single stakeholder.
// It is captured into the push ledger and never returned from a push.
type StakeholderWriteError struct {
	Name string
	Err  error
}

func (e *StakeholderWriteError) Error() string {
	return e.Err.Error()
}

func (e *StakeholderWriteError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps an error (or any error in its chain) to a response status.
// Only validation failures are client errors; everything else is a 500.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// AsProvider returns the first ProviderError in err's chain.
func AsProvider(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
