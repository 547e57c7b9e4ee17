package notify

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sandeepkv93/deadlinetodo/internal/model"
	"github.com/sandeepkv93/deadlinetodo/internal/scheduler"
)

type EngineNotifier struct {
	engine *scheduler.Engine
	logger *zap.Logger
	now    func() time.Time
}

func NewEngineNotifier(engine *scheduler.Engine, logger *zap.Logger) (*EngineNotifier, error) {
	if engine == nil {
		return nil, errors.New("notify: nil engine")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EngineNotifier{engine: engine, logger: logger, now: time.Now}, nil
}

func (n *EngineNotifier) Schedule(id string, delay time.Duration, title, body string) error {
	taskID, kind, err := model.ParseReminderID(id)
	if err != nil {
		return err
	}
	fireAt := n.now().Add(delay)
	if err := n.engine.Schedule(scheduler.Notification{
		ID:     id,
		TaskID: taskID,
		Kind:   kind,
		Title:  title,
		Body:   body,
		FireAt: fireAt,
	}); err != nil {
		return fmt.Errorf("schedule %s: %w", id, err)
	}
	n.logger.Debug("notification scheduled", zap.String("id", id), zap.Stringer("kind", kind), zap.Time("fire_at", fireAt))
	return nil
}

func (n *EngineNotifier) Cancel(id string) {
	if n.engine.Cancel(id) {
		n.logger.Debug("notification cancelled", zap.String("id", id))
	}
}
