package syncer

import (
	"context"

	"go.uber.org/zap"
)

type LogBackend struct {
	logger *zap.Logger
}

func NewLogBackend(logger *zap.Logger) *LogBackend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogBackend{logger: logger.Named("sync")}
}

func (b *LogBackend) UpsertReminder(_ context.Context, r Reminder) error {
	b.logger.Info("reminder upsert", zap.String("ref", r.Ref), zap.String("title", r.Title), zap.Int("priority", r.Priority), zap.Time("due", r.Due))
	return nil
}

func (b *LogBackend) DeleteReminder(_ context.Context, ref string) error {
	b.logger.Info("reminder delete", zap.String("ref", ref))
	return nil
}

func (b *LogBackend) UpsertEvent(_ context.Context, e Event) error {
	b.logger.Info("event upsert", zap.String("ref", e.Ref), zap.String("calendar", e.Calendar), zap.Time("start", e.Start), zap.Time("end", e.End))
	return nil
}

func (b *LogBackend) DeleteEvent(_ context.Context, ref string) error {
	b.logger.Info("event delete", zap.String("ref", ref))
	return nil
}
