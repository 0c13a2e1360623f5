package memory

import (
	"context"
	"sync"

	"github.com/eveisesi/redisish"
)

// MessageRepository keeps the last published message in process memory.
type MessageRepository struct {
	mu   sync.RWMutex
	last *redisish.Message
}

var _ redisish.MessageRepository = new(MessageRepository)

func NewMessageRepository() *MessageRepository {
	return new(MessageRepository)
}

func (r *MessageRepository) Publish(ctx context.Context, message *redisish.Message) error {

	stored := *message

	r.mu.Lock()
	r.last = &stored
	r.mu.Unlock()

	return nil

}

func (r *MessageRepository) Last(ctx context.Context) (*redisish.Message, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.last == nil {
		return nil, redisish.ErrNoMessage
	}

	message := *r.last
	return &message, nil

}
