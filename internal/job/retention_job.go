// Package job hosts the background maintenance jobs of the service.
package job

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"kanban-board-api/internal/repository"
)

// RetentionJob prunes read notifications past their retention window on a
// cron schedule. Unread notifications are never pruned.
type RetentionJob struct {
	notificationRepo repository.NotificationRepository
	retention        time.Duration
	schedule         string
	logger           *zap.Logger
	cron             *cron.Cron
}

// NewRetentionJob creates a retention job. retentionDays bounds how long a
// read notification is kept; schedule is a standard 5-field cron expression.
func NewRetentionJob(
	notificationRepo repository.NotificationRepository,
	retentionDays int,
	schedule string,
	logger *zap.Logger,
) *RetentionJob {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	return &RetentionJob{
		notificationRepo: notificationRepo,
		retention:        time.Duration(retentionDays) * 24 * time.Hour,
		schedule:         schedule,
		logger:           logger,
		cron:             cron.New(),
	}
}

// Start registers the schedule and begins running. Returns an error when the
// cron expression does not parse.
func (j *RetentionJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("Notification retention job scheduled",
		zap.String("schedule", j.schedule),
		zap.Duration("retention", j.retention),
	)
	return nil
}

// Stop halts the schedule, letting a running prune finish.
func (j *RetentionJob) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
}

// Run performs one prune pass. Exported so operators can trigger it outside
// the schedule.
func (j *RetentionJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().UTC().Add(-j.retention)
	deleted, err := j.notificationRepo.DeleteReadBefore(ctx, cutoff)
	if err != nil {
		j.logger.Error("Notification retention prune failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		j.logger.Info("Pruned read notifications",
			zap.Int64("deleted", deleted),
			zap.Time("cutoff", cutoff),
		)
	}
}
