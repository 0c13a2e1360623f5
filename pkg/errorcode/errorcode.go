package errorcode

import (
	"fmt"

	"github.com/pkg/errors"
)

type ErrorCode string

const (
	// Parser classifications
	EmptyMessage      ErrorCode = "EMPTY_MESSAGE"
	UnknownVerb       ErrorCode = "UNKNOWN_VERB"
	MissingPayload    ErrorCode = "MISSING_PAYLOAD"
	UnexpectedPayload ErrorCode = "UNEXPECTED_PAYLOAD"
	IncompleteMessage ErrorCode = "INCOMPLETE_MESSAGE"

	// Server classifications
	NoMessage   ErrorCode = "NO_MESSAGE"
	LineTooLong ErrorCode = "LINE_TOO_LONG"
	Internal    ErrorCode = "INTERNAL"
)

// Error is comparable, so values built with New can be used as sentinels
// with ==, errors.Is and switch statements.
type Error struct {
	code    ErrorCode
	message string
}

func (i Error) Error() string {
	return fmt.Sprintf("[%s] %s", i.code, i.message)
}

func (i Error) Code() ErrorCode {
	return i.code
}

func (i Error) Message() string {
	return i.message
}

func New(code ErrorCode, message string) Error {
	return Error{
		code:    code,
		message: message,
	}
}

// CodeOf returns the code carried by err or by the error it wraps.
// Errors that carry no code are reported as Internal.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}

	var coded Error
	if errors.As(err, &coded) {
		return coded.code
	}

	if coded, ok := errors.Cause(err).(Error); ok {
		return coded.code
	}

	return Internal
}
