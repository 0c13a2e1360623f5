package redisish

import (
	"context"
	"time"

	"github.com/eveisesi/redisish/pkg/errorcode"
	"github.com/volatiletech/null/v8"
)

var ErrNoMessage = errorcode.New(errorcode.NoMessage, "no message has been published")

// MessageRepository holds the last published message. Last returns
// ErrNoMessage until something has been published.
type MessageRepository interface {
	Publish(ctx context.Context, message *Message) error
	Last(ctx context.Context) (*Message, error)
}

// HistoryRepository is implemented by stores that keep every published
// message instead of only the latest one.
type HistoryRepository interface {
	Messages(ctx context.Context, operators ...*Operator) ([]*Message, error)
	DeleteMessages(ctx context.Context, operators ...*Operator) (int64, error)
}

type Message struct {
	Payload string `db:"payload" json:"payload"`
	// Remote address of the publishing connection, if known
	Client      null.String `db:"client" json:"client"`
	PublishedAt time.Time   `db:"published_at" json:"publishedAt"`
}

func NewMessage(payload, client string) *Message {
	return &Message{
		Payload:     payload,
		Client:      null.NewString(client, client != ""),
		PublishedAt: time.Now().UTC(),
	}
}
