package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *SEOError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *SEOError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

func ValidationFailed(field, reason string) *SEOError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Catalogue errors

// CatalogueInvariant reports descriptor invariant violations found while
// constructing a catalogue. Every violation is listed, not just the first.
func CatalogueInvariant(violations []string) *SEOError {
	return New(CategoryCatalogue, SeverityFatal, "catalogue invariants violated").
		WithContext("violations", violations).
		WithContext("count", len(violations))
}

func CatalogueLoad(path string, cause error) *SEOError {
	return Wrap(cause, CategoryCatalogue, SeverityFatal, "catalogue load failed").
		WithContext("path", path)
}

// Build pipeline errors

func BuildFailed(stage string, cause error) *SEOError {
	return Wrap(cause, CategoryBuild, SeverityFatal, "build failed").
		WithContext("stage", stage)
}

// GateFailed reports a failed pre-publish gate with its blocking reasons.
func GateFailed(reasons []string) *SEOError {
	return New(CategoryValidation, SeverityError, "pre-publish gate failed").
		WithContext("reasons", reasons)
}

// ContextExitCode overrides the category exit code when set on an error.
const ContextExitCode = "exit_code"

// ChecksFailed reports failed CI checks. The CLI exits with code.
func ChecksFailed(code int) *SEOError {
	return New(CategoryValidation, SeverityError, "quality checks failed").
		WithContext(ContextExitCode, code)
}

func ArtifactWrite(path string, cause error) *SEOError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "artifact write failed").
		WithContext("path", path)
}

// Network errors

func NetworkTimeout(url string, cause error) *SEOError {
	return WrapRetryable(cause, CategoryNetwork, SeverityWarning, "network timeout").
		WithContext("url", url)
}

func UpstreamStatus(url string, status int) *SEOError {
	e := New(CategoryNetwork, SeverityWarning, "unexpected upstream status").
		WithContext("url", url).
		WithContext("status", status)
	e.Retryable = status >= 500 || status == 429
	return e
}

// Internal errors

func InternalError(message string, cause error) *SEOError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
