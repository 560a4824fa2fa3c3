package chunkdb

import "fmt"

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message
}

// Error implements the error interface.
func (e *Error) Error() string {
	errorCode := ""
	switch e.Code {
	case RetCInvalidIdentifier:
		errorCode = "InvalidIdentifier"
	case RetCSubstrateError:
		errorCode = "SubstrateError"
	case RetCInternalError:
		errorCode = "InternalError"
	case RetCInvalidOperation:
		errorCode = "InvalidOperation"
	default:
		errorCode = "Unknown"
	}

	return fmt.Sprintf("ChunkDBError (code %s): %s", errorCode, e.Msg)
}

// NewError creates a new Error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess           RetCode = iota // 0: Operation executed successfully.
	RetCInvalidIdentifier                // 1: A database id or logical key is malformed.
	RetCSubstrateError                   // 2: The underlying property store rejected an operation.
	RetCInternalError                    // 3: Operation failed due to an internal error.
	RetCInvalidOperation                 // 4: Invalid operation.
)

// IsInvalidIdentifier reports whether err is an Error carrying
// RetCInvalidIdentifier.
func IsInvalidIdentifier(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Code == RetCInvalidIdentifier
}
