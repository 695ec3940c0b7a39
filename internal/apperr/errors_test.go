package apperr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", NewValidationError("domain", "Domain is required"), http.StatusBadRequest},
		{"wrapped_validation", eris.Wrap(NewValidationError("domain", "bad"), "api: decode"), http.StatusBadRequest},
		{"configuration", NewConfigurationError("TAVILY_API_KEY"), http.StatusInternalServerError},
		{"provider", NewProviderError("Tavily", 401, []byte("unauthorized")), http.StatusInternalServerError},
		{"synthesis", &SynthesisParseError{Raw: "nope"}, http.StatusInternalServerError},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "TAVILY_API_KEY is not configured", NewConfigurationError("TAVILY_API_KEY").Error())
	assert.Equal(t, "Tavily API error: 429 - slow down", NewProviderError("Tavily", 429, []byte("slow down")).Error())
	assert.Equal(t, "failed to parse LLM response as JSON: not json", (&SynthesisParseError{Raw: "not json"}).Error())
	assert.Contains(t, (&SynthesisParseError{Raw: "{}", Reason: "missing icpScore"}).Error(), "missing icpScore")
}

func TestSynthesisParseErrorUnwrap(t *testing.T) {
	inner := errors.New("unexpected end of JSON input")
	err := &SynthesisParseError{Raw: `{"a":`, Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, `failed to parse LLM response as JSON (unexpected end of JSON input): {"a":`, err.Error())
}

func TestAsProvider(t *testing.T) {
	pe := NewProviderError("HubSpot", 500, nil)
	got, ok := AsProvider(eris.Wrap(pe, "hubspot: create company"))
	assert.True(t, ok)
	assert.Same(t, pe, got)

	got, ok = AsProvider(errors.New("other"))
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestStakeholderWriteErrorUnwrap(t *testing.T) {
	inner := errors.New("contact create failed")
	err := &StakeholderWriteError{Name: "Jane Doe", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "contact create failed", err.Error())
}
