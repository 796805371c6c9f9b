package apperror

import "fmt"

// AppError carries the HTTP status and user-facing message for a failed operation.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)

	// kind is the sentinel this error was derived from.
	kind *AppError
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel e was derived from.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && e.kind != nil && e.kind == t
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithCause returns a copy of the sentinel e that wraps err.
// errors.Is matches the copy against e.
func (e *AppError) WithCause(err error) *AppError {
	return &AppError{Code: e.Code, Message: e.Message, Err: err, kind: e.root()}
}

// Withf returns a copy of the sentinel e with a more specific message.
func (e *AppError) Withf(format string, args ...any) *AppError {
	return &AppError{Code: e.Code, Message: fmt.Sprintf(format, args...), Err: e.Err, kind: e.root()}
}

func (e *AppError) root() *AppError {
	if e.kind != nil {
		return e.kind
	}
	return e
}
