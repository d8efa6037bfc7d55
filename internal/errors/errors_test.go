package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestPostBuilderError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *PostBuilderError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(CategoryConfig, SeverityFatal, "configuration invalid"),
			expected: "config (fatal): configuration invalid",
		},
		{
			name:     "error with cause",
			err:      Wrap(fmt.Errorf("file not found"), CategoryConfig, SeverityFatal, "failed to load config"),
			expected: "config (fatal): failed to load config: file not found",
		},
		{
			name:     "render error with cause",
			err:      WrapError(fmt.Errorf("bad template"), CategoryRender, "failed to render document"),
			expected: "render (error): failed to render document: bad template",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := test.err.Error()
			if result != test.expected {
				t.Errorf("Error() = %q, want %q", result, test.expected)
			}
		})
	}
}

func TestPostBuilderError_WithContext(t *testing.T) {
	err := New(CategoryLayout, SeverityWarning, "layout fallback").
		WithContext("layout", "post").
		WithContext("path", "content/hello.md")

	if err.Context == nil {
		t.Fatal("Context should not be nil")
	}

	if err.Context["layout"] != "post" {
		t.Errorf("Context[layout] = %v, want post", err.Context["layout"])
	}

	if err.Context["path"] != "content/hello.md" {
		t.Errorf("Context[path] = %v, want content/hello.md", err.Context["path"])
	}
}

func TestIsCategory(t *testing.T) {
	configErr := New(CategoryConfig, SeverityFatal, "config error")
	renderErr := New(CategoryRender, SeverityError, "render error")
	standardErr := fmt.Errorf("standard error")

	tests := []struct {
		name     string
		err      error
		category ErrorCategory
		expected bool
	}{
		{"matching category", configErr, CategoryConfig, true},
		{"non-matching category", renderErr, CategoryConfig, false},
		{"standard error", standardErr, CategoryConfig, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := IsCategory(test.err, test.category); got != test.expected {
				t.Errorf("IsCategory() = %v, want %v", got, test.expected)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := WrapError(cause, CategoryFileSystem, "read failed")

	if !stdErrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestIsConfiguration(t *testing.T) {
	if !IsConfiguration(UnknownLayout("fancy")) {
		t.Error("UnknownLayout should be a configuration error")
	}
	if IsConfiguration(RenderFailed(fmt.Errorf("x"), "p.md")) {
		t.Error("RenderFailed should not be a configuration error")
	}
	if IsConfiguration(fmt.Errorf("plain")) {
		t.Error("plain errors are not configuration errors")
	}
}

func TestGetCategory(t *testing.T) {
	if got := GetCategory(New(CategoryPublish, SeverityWarning, "x")); got != CategoryPublish {
		t.Errorf("GetCategory() = %v, want %v", got, CategoryPublish)
	}
	if got := GetCategory(fmt.Errorf("plain")); got != CategoryInternal {
		t.Errorf("GetCategory() = %v, want %v", got, CategoryInternal)
	}
}
