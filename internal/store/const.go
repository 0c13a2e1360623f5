package store

// Message columns. Mongo documents use the same field names so an operator
// list can be handed to either backend unchanged.
const (
	MessageID          = "id"
	MessagePayload     = "payload"
	MessageClient      = "client"
	MessagePublishedAt = "published_at"
)
