package broker

import (
	"fmt"

	"github.com/eveisesi/redisish/pkg/errorcode"
	"github.com/pkg/errors"
)

const (
	okReply     = "OK\n"
	errorPrefix = "ERR"
)

func OK() string {
	return okReply
}

func Payload(payload string) string {
	return payload + "\n"
}

// Error renders err as "ERR <CODE> <message>\n". Errors that carry no code
// are reported as INTERNAL without leaking their text to the client.
func Error(err error) string {

	code := errorcode.CodeOf(err)

	var coded errorcode.Error
	if code == errorcode.Internal || !errors.As(err, &coded) {
		return fmt.Sprintf("%s %s %s\n", errorPrefix, errorcode.Internal, "internal server error")
	}

	return fmt.Sprintf("%s %s %s\n", errorPrefix, code, coded.Message())

}
