package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const shellHelp = `commands:
  publish <payload>   store a message; quote to keep spacing: publish "a   b"
  retrieve            print the last published message
  help                show this text
  quit                leave the shell
`

type shellClient interface {
	Publish(ctx context.Context, payload string) error
	Retrieve(ctx context.Context) (string, error)
}

func shellCommand(c *cli.Context) error {

	cl, err := dial(c)
	if err != nil {
		return err
	}
	defer cl.Close()

	return runShell(c.Context, cl, c.App.Reader, c.App.Writer)

}

// runShell reads commands from in until EOF or quit. Lines are split with
// shell quoting rules so payloads can carry significant whitespace.
func runShell(ctx context.Context, cl shellClient, in io.Reader, out io.Writer) error {

	scanner := bufio.NewScanner(in)

	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		words, err := shellquote.Split(scanner.Text())
		if err != nil {
			fmt.Fprintf(out, "error: %s\n> ", err)
			continue
		}

		if len(words) > 0 {
			quit := false
			switch strings.ToLower(words[0]) {
			case "publish", "pub":
				if len(words) < 2 {
					fmt.Fprintln(out, "error: publish expects a payload")
					break
				}
				err = cl.Publish(ctx, strings.Join(words[1:], " "))
				if err != nil {
					fmt.Fprintf(out, "error: %s\n", err)
					break
				}
				fmt.Fprintln(out, "OK")
			case "retrieve", "get":
				payload, err := cl.Retrieve(ctx)
				if err != nil {
					fmt.Fprintf(out, "error: %s\n", err)
					break
				}
				fmt.Fprintln(out, payload)
			case "help":
				fmt.Fprint(out, shellHelp)
			case "quit", "exit":
				quit = true
			default:
				fmt.Fprintf(out, "unknown command %q, type help\n", words[0])
			}

			if quit {
				return nil
			}
		}

		fmt.Fprint(out, "> ")
	}

	return errors.Wrap(scanner.Err(), "failed to read input")

}
