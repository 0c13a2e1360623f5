package history

import (
	"context"
	"time"

	"github.com/eveisesi/redisish"
	"github.com/eveisesi/redisish/internal/store"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Service deletes published messages once they are older than the
// retention window, on a cron schedule.
type Service struct {
	logger *logrus.Logger

	messages  redisish.HistoryRepository
	retention time.Duration

	cron *cron.Cron
	now  func() time.Time
}

func NewService(logger *logrus.Logger, messages redisish.HistoryRepository, retention time.Duration) *Service {
	return &Service{
		logger:    logger,
		messages:  messages,
		retention: retention,
		cron:      cron.New(),
		now:       time.Now,
	}
}

// Start registers the prune job under schedule (standard cron syntax or
// descriptors such as @hourly) and starts the scheduler.
func (s *Service) Start(schedule string) error {

	if s.retention <= 0 {
		return errors.Errorf("retention must be positive, got %s", s.retention)
	}

	_, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		_, err := s.Prune(ctx)
		if err != nil {
			s.logger.WithError(err).Error("failed to prune message history")
		}
	})
	if err != nil {
		return errors.Wrapf(err, "failed to schedule prune job at %q", schedule)
	}

	s.logger.WithFields(logrus.Fields{
		"schedule":  schedule,
		"retention": s.retention.String(),
	}).Info("history pruning scheduled")

	s.cron.Start()

	return nil

}

// Stop halts the scheduler and waits for a running prune to finish.
func (s *Service) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Service) Prune(ctx context.Context) (int64, error) {

	cutoff := s.now().UTC().Add(-s.retention)

	deleted, err := s.messages.DeleteMessages(ctx, redisish.NewLessThanOperator(store.MessagePublishedAt, cutoff))
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete expired messages")
	}

	s.logger.WithFields(logrus.Fields{
		"deleted": deleted,
		"cutoff":  cutoff.Format(time.RFC3339),
	}).Info("pruned message history")

	return deleted, nil

}
