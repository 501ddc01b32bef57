package errors

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// SchemaError is raised by the storage layer when a document violates the
// declarative per-entity field rules. It is the defensive layer behind the
// request-level pipeline and maps to a 400 with field-level detail.
type SchemaError struct {
	Details map[string]string
}

func (e *SchemaError) Error() string {
	return "Validation failed"
}
