package mdb

import (
	"context"
	"time"

	"github.com/eveisesi/redisish"
	"github.com/eveisesi/redisish/internal/store"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const messagesCollection = "messages"

// MessageRepository appends every published message to a collection. Last
// reads the newest document, so the collection doubles as history.
type MessageRepository struct {
	messages *mongo.Collection
}

var (
	_ redisish.MessageRepository = new(MessageRepository)
	_ redisish.HistoryRepository = new(MessageRepository)
)

type message struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Payload     string             `bson:"payload"`
	Client      *string            `bson:"client,omitempty"`
	PublishedAt time.Time          `bson:"published_at"`
}

func toMongoMessage(m *redisish.Message) *message {
	return &message{
		Payload:     m.Payload,
		Client:      m.Client.Ptr(),
		PublishedAt: m.PublishedAt,
	}
}

func (m *message) toMessage() *redisish.Message {
	return &redisish.Message{
		Payload:     m.Payload,
		Client:      null.StringFromPtr(m.Client),
		PublishedAt: m.PublishedAt,
	}
}

func NewMessageRepository(database *mongo.Database) (*MessageRepository, error) {

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()

	messages := database.Collection(messagesCollection)

	_, err := messages.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				primitive.E{Key: store.MessagePublishedAt, Value: -1},
			},
		},
		{
			Keys: bson.D{
				primitive.E{Key: store.MessageClient, Value: 1},
			},
			Options: &options.IndexOptions{
				Sparse: null.BoolFrom(true).Ptr(),
			},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create index")
	}

	return &MessageRepository{
		messages: messages,
	}, nil

}

func (r *MessageRepository) Publish(ctx context.Context, m *redisish.Message) error {

	_, err := r.messages.InsertOne(ctx, toMongoMessage(m))

	return errors.Wrap(err, "failed to insert message")

}

func (r *MessageRepository) Last(ctx context.Context) (*redisish.Message, error) {

	var doc = new(message)

	opts := options.FindOne().SetSort(bson.D{primitive.E{Key: store.MessagePublishedAt, Value: -1}})
	err := r.messages.FindOne(ctx, bson.D{}, opts).Decode(doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, redisish.ErrNoMessage
		}
		return nil, errors.Wrap(err, "failed to fetch last message")
	}

	return doc.toMessage(), nil

}

func (r *MessageRepository) Messages(ctx context.Context, operators ...*redisish.Operator) ([]*redisish.Message, error) {

	filters := store.BuildMongoFilters(operators...)
	options := store.BuildMongoFindOptions(operators...)

	result, err := r.messages.Find(ctx, filters, options)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query messages")
	}

	var docs = make([]*message, 0)
	err = result.All(ctx, &docs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode messages")
	}

	messages := make([]*redisish.Message, 0, len(docs))
	for _, doc := range docs {
		messages = append(messages, doc.toMessage())
	}

	return messages, nil

}

func (r *MessageRepository) DeleteMessages(ctx context.Context, operators ...*redisish.Operator) (int64, error) {

	filters := store.BuildMongoFilters(operators...)

	result, err := r.messages.DeleteMany(ctx, filters)
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete messages")
	}

	return result.DeletedCount, nil

}
