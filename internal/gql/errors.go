package gql

import "fmt"

// Machine-readable error codes carried in the GraphQL error extensions.
// One code per failure class; the message is the human-readable part.
const (
	codeValidation   = "BAD_USER_INPUT"  // malformed or out-of-range input
	codeConflict     = "CONFLICT"        // uniqueness violation
	codeNotFound     = "NOT_FOUND"       // referenced record absent
	codeAuth         = "UNAUTHENTICATED" // credential mismatch
	codeUnauthorized = "UNAUTHORIZED"    // missing or invalid bearer token
)

type apiError struct {
	code    string
	message string
}

func (e *apiError) Error() string { return e.message }

// Extensions surfaces the error code through the executor into the
// response's errors[].extensions.
func (e *apiError) Extensions() map[string]any {
	return map[string]any{"code": e.code}
}

func validationError(format string, args ...any) error {
	return &apiError{code: codeValidation, message: fmt.Sprintf(format, args...)}
}

func conflictError(format string, args ...any) error {
	return &apiError{code: codeConflict, message: fmt.Sprintf(format, args...)}
}

func notFoundError(format string, args ...any) error {
	return &apiError{code: codeNotFound, message: fmt.Sprintf(format, args...)}
}

func authError(format string, args ...any) error {
	return &apiError{code: codeAuth, message: fmt.Sprintf(format, args...)}
}

func errUnauthorized() error {
	return &apiError{code: codeUnauthorized, message: "Unauthorized! Please provide a valid token."}
}
