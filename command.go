package redisish

import "fmt"

const (
	VerbPublish  = "PUBLISH"
	VerbRetrieve = "RETRIEVE"
)

// Command is either Retrieve or Publish. The set is closed; no other
// package can add a variant.
type Command interface {
	// Verb returns the protocol verb the command was parsed from.
	Verb() string
	// String returns the command as a newline terminated protocol line.
	String() string

	isCommand()
}

// Retrieve asks for the last published message.
type Retrieve struct{}

func (Retrieve) Verb() string {
	return VerbRetrieve
}

func (Retrieve) String() string {
	return VerbRetrieve + "\n"
}

func (Retrieve) isCommand() {}

// Publish stores Payload as the last published message.
type Publish struct {
	Payload string
}

func (Publish) Verb() string {
	return VerbPublish
}

func (p Publish) String() string {
	return fmt.Sprintf("%s %s\n", VerbPublish, p.Payload)
}

func (Publish) isCommand() {}
