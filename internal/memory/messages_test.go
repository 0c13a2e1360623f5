package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/eveisesi/redisish"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastBeforePublish(t *testing.T) {
	repo := NewMessageRepository()

	_, err := repo.Last(context.Background())
	assert.ErrorIs(t, err, redisish.ErrNoMessage)
}

func TestLastReturnsMostRecent(t *testing.T) {
	ctx := context.Background()
	repo := NewMessageRepository()

	require.NoError(t, repo.Publish(ctx, redisish.NewMessage("first", "")))
	require.NoError(t, repo.Publish(ctx, redisish.NewMessage("second", "127.0.0.1:5000")))

	msg, err := repo.Last(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", msg.Payload)
	assert.Equal(t, "127.0.0.1:5000", msg.Client.String)

	// retrieving does not consume the message
	again, err := repo.Last(ctx)
	require.NoError(t, err)
	assert.Equal(t, msg, again)
}

func TestStoredMessageIsACopy(t *testing.T) {
	ctx := context.Background()
	repo := NewMessageRepository()

	msg := redisish.NewMessage("original", "")
	require.NoError(t, repo.Publish(ctx, msg))
	msg.Payload = "mutated"

	last, err := repo.Last(ctx)
	require.NoError(t, err)
	assert.Equal(t, "original", last.Payload)

	last.Payload = "mutated again"
	last, err = repo.Last(ctx)
	require.NoError(t, err)
	assert.Equal(t, "original", last.Payload)
}

func TestConcurrentPublish(t *testing.T) {
	ctx := context.Background()
	repo := NewMessageRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, repo.Publish(ctx, redisish.NewMessage(fmt.Sprintf("m%d", i), "")))
			_, err := repo.Last(ctx)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	_, err := repo.Last(ctx)
	assert.NoError(t, err)
}
