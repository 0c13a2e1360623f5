package redisish

import (
	"strings"

	"github.com/eveisesi/redisish/pkg/errorcode"
	"github.com/pkg/errors"
)

var (
	ErrEmptyMessage      = errorcode.New(errorcode.EmptyMessage, "message does not start with a verb")
	ErrUnknownVerb       = errorcode.New(errorcode.UnknownVerb, "unknown verb, expected PUBLISH or RETRIEVE")
	ErrMissingPayload    = errorcode.New(errorcode.MissingPayload, "PUBLISH requires a payload")
	ErrUnexpectedPayload = errorcode.New(errorcode.UnexpectedPayload, "RETRIEVE does not take a payload")
	ErrIncompleteMessage = errorcode.New(errorcode.IncompleteMessage, "message is not terminated by a newline")
)

type Parser interface {
	ParseMessage(message string) (Command, error)
}

// ParserFunc adapts a plain function to the Parser interface.
type ParserFunc func(message string) (Command, error)

func (f ParserFunc) ParseMessage(message string) (Command, error) {
	return f(message)
}

var DefaultParser Parser = ParserFunc(Parse)

// Parse reads the first newline terminated line of input and returns the
// command it encodes. Anything after the first newline is ignored; callers
// holding more than one line re-invoke Parse on the remainder.
//
// ErrIncompleteMessage is returned when input holds no newline yet. It is
// the only error that may go away once more input arrives.
func Parse(input string) (Command, error) {

	pos := strings.IndexByte(input, '\n')
	if pos < 0 {
		return nil, ErrIncompleteMessage
	}

	line := input[:pos]

	verb, rest, hasRest := line, "", false
	if i := strings.IndexByte(line, ' '); i >= 0 {
		verb, rest, hasRest = line[:i], line[i+1:], true
	}

	switch strings.TrimSpace(verb) {
	case VerbRetrieve:
		if hasRest {
			return nil, ErrUnexpectedPayload
		}
		return Retrieve{}, nil
	case VerbPublish:
		if !hasRest {
			return nil, ErrMissingPayload
		}
		// "PUBLISH \n" yields an empty payload rather than ErrMissingPayload:
		// the delimiter was sent, so a payload token exists.
		return Publish{Payload: strings.TrimSpace(rest)}, nil
	case "":
		return nil, ErrEmptyMessage
	default:
		return nil, ErrUnknownVerb
	}

}

func ParseBytes(input []byte) (Command, error) {
	return Parse(string(input))
}

// IsIncomplete reports whether err only means more input is needed.
func IsIncomplete(err error) bool {
	return errors.Is(err, ErrIncompleteMessage)
}
