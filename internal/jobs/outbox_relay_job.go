package jobs

import (
	"context"

	"shop/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultOutboxRelaySchedule runs the relay every five seconds.
const DefaultOutboxRelaySchedule = "*/5 * * * * *"

type outboxPublisher interface {
	Handle(ctx context.Context, command commands.PublishOutboxCommand) (int, error)
}

// OutboxRelayJob periodically moves pending outbox messages to the broker.
// cron.SkipIfStillRunning keeps runs from overlapping when a batch is slow.
type OutboxRelayJob struct {
	handler   outboxPublisher
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *zap.Logger
}

func NewOutboxRelayJob(handler outboxPublisher, schedule string, batchSize int, logger *zap.Logger) *OutboxRelayJob {
	if schedule == "" {
		schedule = DefaultOutboxRelaySchedule
	}
	return &OutboxRelayJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With(zap.String("component", "outbox_relay_job")),
	}
}

// Start validates the batch size, registers the schedule and starts the
// scheduler.
func (j *OutboxRelayJob) Start() error {
	cmd, err := commands.NewPublishOutboxCommand(j.batchSize)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(j.schedule, func() { j.run(cmd) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Outbox relay job started", zap.String("schedule", j.schedule), zap.Int("batch_size", j.batchSize))
	return nil
}

// Stop stops the scheduler and waits for a running batch to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Outbox relay job stopped")
}

func (j *OutboxRelayJob) run(cmd commands.PublishOutboxCommand) {
	published, err := j.handler.Handle(context.Background(), cmd)
	if err != nil {
		j.logger.Error("Outbox relay job failed", zap.Error(err))
		return
	}
	if published > 0 {
		j.logger.Debug("Outbox messages published", zap.Int("count", published))
	}
}
