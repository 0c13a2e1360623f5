package mysql

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/eveisesi/redisish"
	"github.com/eveisesi/redisish/internal/store"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockRepository(t *testing.T) (sqlmock.Sqlmock, *MessageRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return mock, NewMessageRepository(sqlx.NewDb(db, "sqlmock"))
}

func TestMigrate(t *testing.T) {
	mock, repo := mockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS messages")).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Migrate(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPublish(t *testing.T) {
	mock, repo := mockRepository(t)

	msg := redisish.NewMessage("hello world", "127.0.0.1:4000")

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO messages (client,payload,published_at) VALUES (?,?,?)")).
		WithArgs("127.0.0.1:4000", "hello world", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Publish(context.Background(), msg))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPublishError(t *testing.T) {
	mock, repo := mockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO messages")).WillReturnError(errors.New("connection reset"))

	err := repo.Publish(context.Background(), redisish.NewMessage("x", ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert message")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLast(t *testing.T) {
	mock, repo := mockRepository(t)
	published := time.Date(2021, 10, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT payload, client, published_at FROM messages ORDER BY published_at DESC, id DESC LIMIT 1")).
		WillReturnRows(sqlmock.NewRows([]string{"payload", "client", "published_at"}).AddRow("latest", nil, published))

	msg, err := repo.Last(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "latest", msg.Payload)
	assert.False(t, msg.Client.Valid)
	assert.Equal(t, published, msg.PublishedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLastEmptyTable(t *testing.T) {
	mock, repo := mockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT payload, client, published_at FROM messages")).
		WillReturnRows(sqlmock.NewRows([]string{"payload", "client", "published_at"}))

	_, err := repo.Last(context.Background())
	assert.ErrorIs(t, err, redisish.ErrNoMessage)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMessages(t *testing.T) {
	mock, repo := mockRepository(t)
	published := time.Date(2021, 10, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT payload, client, published_at FROM messages ORDER BY published_at DESC LIMIT 2")).
		WillReturnRows(sqlmock.NewRows([]string{"payload", "client", "published_at"}).
			AddRow("b", "10.0.0.2:1", published).
			AddRow("a", nil, published.Add(-time.Minute)))

	messages, err := repo.Messages(context.Background(),
		redisish.NewOrderOperator(store.MessagePublishedAt, redisish.SortDesc),
		redisish.NewLimitOperator(2),
	)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "b", messages[0].Payload)
	assert.Equal(t, "10.0.0.2:1", messages[0].Client.String)
	assert.Equal(t, "a", messages[1].Payload)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMessages(t *testing.T) {
	mock, repo := mockRepository(t)
	cutoff := time.Date(2021, 10, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM messages WHERE published_at < ?")).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := repo.DeleteMessages(context.Background(), redisish.NewLessThanOperator(store.MessagePublishedAt, cutoff))
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}
