package broker

import (
	"context"

	"github.com/davecgh/go-spew/spew"
	"github.com/eveisesi/redisish"
	"github.com/eveisesi/redisish/pkg/errorcode"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Service executes parsed commands against the message store and renders
// the reply line sent back to the client.
type Service struct {
	logger *logrus.Logger

	messages redisish.MessageRepository
}

func NewService(logger *logrus.Logger, messages redisish.MessageRepository) *Service {
	return &Service{
		logger:   logger,
		messages: messages,
	}
}

// Handle executes cmd on behalf of client and returns the reply line.
// Store failures are logged and reported to the client as INTERNAL.
func (s *Service) Handle(ctx context.Context, cmd redisish.Command, client string) string {

	if s.logger.IsLevelEnabled(logrus.DebugLevel) {
		s.logger.WithField("client", client).Debug(spew.Sdump(cmd))
	}

	switch c := cmd.(type) {
	case redisish.Publish:
		err := s.messages.Publish(ctx, redisish.NewMessage(c.Payload, client))
		if err != nil {
			s.logger.WithError(err).WithField("client", client).Error("failed to publish message")
			return Error(errors.Wrap(err, "failed to publish message"))
		}
		return OK()
	case redisish.Retrieve:
		message, err := s.messages.Last(ctx)
		if err != nil {
			if errorcode.CodeOf(err) != errorcode.NoMessage {
				s.logger.WithError(err).WithField("client", client).Error("failed to retrieve message")
			}
			return Error(err)
		}
		return Payload(message.Payload)
	}

	return Error(errors.Errorf("unsupported command %T", cmd))

}

// Reject renders the reply for a line the parser refused.
func (s *Service) Reject(err error, client string) string {

	s.logger.WithFields(logrus.Fields{
		"client": client,
		"code":   errorcode.CodeOf(err),
	}).Info("rejected malformed message")

	return Error(err)

}
