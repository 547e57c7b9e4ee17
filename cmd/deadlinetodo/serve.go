package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/sandeepkv93/deadlinetodo/internal/config"
	"github.com/sandeepkv93/deadlinetodo/internal/lifecycle"
	"github.com/sandeepkv93/deadlinetodo/internal/notify"
	"github.com/sandeepkv93/deadlinetodo/internal/widget"
)

func runServe(ctx context.Context, cfg config.RuntimeConfig) error {
	a, err := openApp(ctx, cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go notify.Forward(ctx, a.engine.C(), a.desktop(), a.logger, nil)

	sweeper := lifecycle.NewSweeper(a.svc, cfg.SweepInterval, a.logger)
	sweeper.OnEdge(func(e lifecycle.Edge) {
		a.logger.Debug("widget reload after urgency change", zap.String("task_id", e.TaskID))
	})
	sweepDone := make(chan error, 1)
	go func() { sweepDone <- sweeper.Run(ctx) }()

	if _, err := a.hub.Reload(ctx); err != nil {
		a.logger.Warn("initial widget snapshot failed", zap.Error(err))
	}

	a.logger.Info("serving widget API", zap.String("addr", cfg.WidgetAddr))
	err = widget.NewServer(a.hub, cfg.HeatmapWeeks, a.logger).Run(ctx, cfg.WidgetAddr)
	cancel()
	<-sweepDone
	return err
}
