package services

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ValidationError carries per-field reasons for a rejected request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "Validation error"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, field := range slices.Sorted(maps.Keys(e.Fields)) {
		parts = append(parts, fmt.Sprintf("%s %s", field, e.Fields[field]))
	}
	return strings.Join(parts, "; ")
}

// ConfigurationError means the service is not provisioned to serve requests.
// Variable holds the name of the missing setting, never its value.
type ConfigurationError struct {
	Variable string
}

func (e *ConfigurationError) Error() string { return e.Variable + " not configured" }

type RateLimitedError struct{ Message string }

func (e *RateLimitedError) Error() string { return e.Message }

type UnreachableError struct {
	Message string
	Cause   error
}

func (e *UnreachableError) Error() string { return e.Message }

func (e *UnreachableError) Unwrap() error { return e.Cause }

// ProviderError means the provider answered with an application-level error.
type ProviderError struct {
	Message string
	Cause   error
}

func (e *ProviderError) Error() string { return e.Message }

func (e *ProviderError) Unwrap() error { return e.Cause }

type UnknownError struct {
	Cause error
}

func (e *UnknownError) Error() string { return "Unexpected error while generating a reply" }

func (e *UnknownError) Unwrap() error { return e.Cause }
