package errors

// Convenience constructors for common error patterns

// Config errors

func ConfigNotFound(path string) *PostBuilderError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *PostBuilderError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

// UnknownLayout is returned when a document names a layout that is not
// registered. There is no sensible default rendering, so this is fatal.
func UnknownLayout(name string) *PostBuilderError {
	return New(CategoryConfig, SeverityFatal, "unknown layout").
		WithContext("layout", name)
}

// Filesystem errors

func ReadFailed(err error, path string) *PostBuilderError {
	return WrapError(err, CategoryFileSystem, "failed to read file").
		WithContext("path", path)
}

func WriteFailed(err error, path string) *PostBuilderError {
	return WrapError(err, CategoryFileSystem, "failed to write file").
		WithContext("path", path)
}

// Render errors

func RenderFailed(err error, path string) *PostBuilderError {
	return WrapError(err, CategoryRender, "failed to render document").
		WithContext("path", path)
}

// Git errors

func CloneFailed(err error, url string) *PostBuilderError {
	return WrapError(err, CategoryGit, "failed to clone repository").
		WithContext("url", url)
}

// Publish errors

func PublishFailed(err error, subject string) *PostBuilderError {
	return Wrap(err, CategoryPublish, SeverityWarning, "failed to publish event").
		WithContext("subject", subject)
}
