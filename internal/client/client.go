package client

import (
	"bufio"
	"context"
	"net"
	"strings"
	"time"

	"github.com/eveisesi/redisish"
	"github.com/eveisesi/redisish/pkg/errorcode"
	"github.com/pkg/errors"
)

var ErrInvalidPayload = errors.New("[ErrInvalidPayload] payload may not contain a newline")

const defaultTimeout = time.Second * 10

// Client speaks the line protocol over a single connection. It is not safe
// for concurrent use.
type Client struct {
	conn   net.Conn
	reader *bufio.Reader
}

func Dial(ctx context.Context, addr string) (*Client, error) {

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to dial %s", addr)
	}

	return New(conn), nil

}

func New(conn net.Conn) *Client {
	return &Client{
		conn:   conn,
		reader: bufio.NewReader(conn),
	}
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// Publish stores payload on the server. Leading and trailing whitespace is
// trimmed by the server.
func (c *Client) Publish(ctx context.Context, payload string) error {

	if strings.ContainsAny(payload, "\r\n") {
		return ErrInvalidPayload
	}

	reply, err := c.Do(ctx, redisish.Publish{Payload: payload})
	if err != nil {
		return err
	}

	if reply != "OK" {
		return errors.Errorf("unexpected reply to %s: %q", redisish.VerbPublish, reply)
	}

	return nil

}

// Retrieve returns the last published payload. Until something is published
// the error matches redisish.ErrNoMessage.
func (c *Client) Retrieve(ctx context.Context) (string, error) {
	return c.Do(ctx, redisish.Retrieve{})
}

// Do sends cmd and returns the reply line without its terminator. ERR
// replies are decoded into errorcode.Error values.
func (c *Client) Do(ctx context.Context, cmd redisish.Command) (string, error) {

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(defaultTimeout)
	}

	err := c.conn.SetDeadline(deadline)
	if err != nil {
		return "", errors.Wrap(err, "failed to set connection deadline")
	}

	_, err = c.conn.Write([]byte(cmd.String()))
	if err != nil {
		return "", errors.Wrapf(err, "failed to send %s", cmd.Verb())
	}

	line, err := c.reader.ReadString('\n')
	if err != nil {
		return "", errors.Wrapf(err, "failed to read reply to %s", cmd.Verb())
	}

	line = strings.TrimSuffix(line, "\n")
	if err := ParseError(line); err != nil {
		return "", err
	}

	return line, nil

}

// ParseError decodes an "ERR <CODE> <message>" reply. Other lines yield nil.
func ParseError(line string) error {

	if !strings.HasPrefix(line, "ERR ") {
		return nil
	}

	parts := strings.SplitN(strings.TrimPrefix(line, "ERR "), " ", 2)
	code := errorcode.ErrorCode(parts[0])

	var message string
	if len(parts) == 2 {
		message = parts[1]
	}

	return errorcode.New(code, message)

}
