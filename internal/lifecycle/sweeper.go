package lifecycle

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const DefaultSweepInterval = 30 * time.Second

type Sweeper struct {
	svc      *Service
	interval time.Duration
	now      func() time.Time
	logger   *zap.Logger
	onEdge   func(Edge)
}

func NewSweeper(svc *Service, interval time.Duration, logger *zap.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sweeper{svc: svc, interval: interval, now: time.Now, logger: logger}
}

func (w *Sweeper) OnEdge(fn func(Edge)) {
	w.onEdge = fn
}

func (w *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *Sweeper) sweep(ctx context.Context) {
	edges, err := w.svc.Sweep(ctx, w.now())
	if err != nil {
		w.logger.Error("urgency sweep failed", zap.Error(err))
		return
	}
	for _, e := range edges {
		w.logger.Info("urgency changed", zap.String("task_id", e.TaskID), zap.Bool("entered", e.Entered))
		if w.onEdge != nil {
			w.onEdge(e)
		}
	}
}
