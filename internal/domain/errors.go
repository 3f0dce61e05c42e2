package domain

// ErrorCode is a stable machine-readable code returned alongside every error
// message so clients don't have to match on message text.
type ErrorCode string

const (
	CodeValidation   ErrorCode = "VALIDATION_ERROR"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeConflict     ErrorCode = "CONFLICT"
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
)

type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string { return e.Message }

func NewError(code ErrorCode, msg string) *Error { return &Error{Code: code, Message: msg} }

func Validation(msg string) *Error { return &Error{Code: CodeValidation, Message: msg} }
func NotFound(msg string) *Error   { return &Error{Code: CodeNotFound, Message: msg} }
func Conflict(msg string) *Error   { return &Error{Code: CodeConflict, Message: msg} }

// ErrNotFound is the repo-level sentinel; usecases wrap it with a
// resource-specific message before it reaches a handler.
var ErrNotFound = &Error{Code: CodeNotFound, Message: "no encontrado"}
