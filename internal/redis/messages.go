package rdb

import (
	"context"
	"encoding/json"

	"github.com/eveisesi/redisish"
	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

const DefaultKey = "redisish:last"

// MessageRepository stores the last published message as a JSON value
// under a single redis key.
type MessageRepository struct {
	client *redis.Client
	key    string
}

var _ redisish.MessageRepository = new(MessageRepository)

func NewMessageRepository(client *redis.Client, key string) *MessageRepository {
	if key == "" {
		key = DefaultKey
	}

	return &MessageRepository{
		client: client,
		key:    key,
	}
}

func (r *MessageRepository) Publish(ctx context.Context, message *redisish.Message) error {

	payload, err := json.Marshal(message)
	if err != nil {
		return errors.Wrap(err, "failed to encode message to json")
	}

	_, err = r.client.Set(ctx, r.key, string(payload), 0).Result()

	return errors.Wrap(err, "failed to store message")

}

func (r *MessageRepository) Last(ctx context.Context) (*redisish.Message, error) {

	b, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, redisish.ErrNoMessage
		}
		return nil, errors.Wrap(err, "failed to fetch message")
	}

	var message = new(redisish.Message)
	err = json.Unmarshal(b, message)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode message from json")
	}

	return message, nil

}
