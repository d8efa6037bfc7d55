// Package errors provides a lightweight structured error type (PostBuilderError)
// for category-based classification in the rendering pipeline and CLI.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of a postbuilder error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Content processing errors
	CategoryFrontMatter ErrorCategory = "frontmatter"
	CategoryRender      ErrorCategory = "render"
	CategoryLayout      ErrorCategory = "layout"
	CategoryFileSystem  ErrorCategory = "filesystem"

	// External system integration errors
	CategoryGit     ErrorCategory = "git"
	CategoryPublish ErrorCategory = "publish"

	// Runtime and infrastructure errors
	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// PostBuilderError is a structured error with category, severity, and context
type PostBuilderError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for PostBuilderError
type ContextFields map[string]any

// Error implements the error interface
func (e *PostBuilderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *PostBuilderError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *PostBuilderError) WithContext(key string, value any) *PostBuilderError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new PostBuilderError
func New(category ErrorCategory, severity ErrorSeverity, message string) *PostBuilderError {
	return &PostBuilderError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new PostBuilderError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *PostBuilderError {
	return &PostBuilderError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// WrapError wraps an existing error with SeverityError
func WrapError(err error, category ErrorCategory, message string) *PostBuilderError {
	return &PostBuilderError{
		Category: category,
		Severity: SeverityError,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if pbe, ok := err.(*PostBuilderError); ok {
		return pbe.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal
// if it is not a PostBuilderError
func GetCategory(err error) ErrorCategory {
	if pbe, ok := err.(*PostBuilderError); ok {
		return pbe.Category
	}
	return CategoryInternal
}

// IsConfiguration reports whether an error is a fatal configuration error
// (unknown layout, missing config file). These are the only hard failures in
// the rendering pipeline.
func IsConfiguration(err error) bool {
	return IsCategory(err, CategoryConfig)
}
