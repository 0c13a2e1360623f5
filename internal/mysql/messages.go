package mysql

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/eveisesi/redisish"
	"github.com/eveisesi/redisish/internal/store"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type MessageRepository struct {
	db *sqlx.DB
}

var (
	_ redisish.MessageRepository = new(MessageRepository)
	_ redisish.HistoryRepository = new(MessageRepository)
)

var (
	messagesTableColumns = []string{
		store.MessagePayload,
		store.MessageClient,
		store.MessagePublishedAt,
	}
	messagesTable = "messages"
)

const messagesTableSchema = `CREATE TABLE IF NOT EXISTS messages (
	id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
	payload TEXT NOT NULL,
	client VARCHAR(255) NULL,
	published_at DATETIME(6) NOT NULL,
	PRIMARY KEY (id),
	INDEX messages_published_at_idx (published_at)
)`

func NewMessageRepository(db *sqlx.DB) *MessageRepository {
	return &MessageRepository{
		db: db,
	}
}

// Migrate creates the messages table if it does not exist yet.
func (r *MessageRepository) Migrate(ctx context.Context) error {

	_, err := r.db.ExecContext(ctx, messagesTableSchema)

	return errors.Wrap(err, "failed to create messages table")

}

func (r *MessageRepository) Publish(ctx context.Context, message *redisish.Message) error {

	query, args, err := sq.Insert(messagesTable).SetMap(map[string]interface{}{
		store.MessagePayload:     message.Payload,
		store.MessageClient:      message.Client,
		store.MessagePublishedAt: message.PublishedAt,
	}).ToSql()
	if err != nil {
		return errors.Wrap(err, "failed to generate query")
	}

	_, err = r.db.ExecContext(ctx, query, args...)

	return errors.Wrap(err, "failed to insert message")

}

func (r *MessageRepository) Last(ctx context.Context) (*redisish.Message, error) {

	query, args, err := sq.Select(messagesTableColumns...).From(messagesTable).
		OrderBy(store.MessagePublishedAt+" DESC", store.MessageID+" DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate query")
	}

	var message = new(redisish.Message)

	err = r.db.GetContext(ctx, message, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, redisish.ErrNoMessage
		}
		return nil, errors.Wrap(err, "failed to fetch last message")
	}

	return message, nil

}

func (r *MessageRepository) Messages(ctx context.Context, operators ...*redisish.Operator) ([]*redisish.Message, error) {

	query, args, err := store.BuildSQLFilters(
		sq.Select(messagesTableColumns...).From(messagesTable),
		operators...).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate query")
	}

	var messages = make([]*redisish.Message, 0)

	err = r.db.SelectContext(ctx, &messages, query, args...)

	return messages, errors.Wrap(err, "failed to query messages")

}

func (r *MessageRepository) DeleteMessages(ctx context.Context, operators ...*redisish.Operator) (int64, error) {

	query, args, err := store.BuildSQLDeleteFilters(sq.Delete(messagesTable), operators...).ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "failed to generate query")
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete messages")
	}

	deleted, err := result.RowsAffected()

	return deleted, errors.Wrap(err, "failed to read affected rows")

}
