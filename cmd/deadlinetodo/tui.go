package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/deadlinetodo/internal/config"
	"github.com/sandeepkv93/deadlinetodo/internal/notify"
	"github.com/sandeepkv93/deadlinetodo/internal/scheduler"
	"github.com/sandeepkv93/deadlinetodo/internal/stats"
	"github.com/sandeepkv93/deadlinetodo/internal/update"
)

func runTUI(ctx context.Context, cfg config.RuntimeConfig) error {
	a, err := openApp(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fired := make(chan scheduler.Notification, cfg.SchedulerBuffer)
	go notify.Forward(ctx, a.engine.C(), a.desktop(), a.logger, func(n scheduler.Notification) {
		select {
		case fired <- n:
		default:
			a.logger.Warn("tui notification dropped")
		}
	})

	program := tea.NewProgram(update.NewModel(update.Options{
		Service:       a.svc,
		Loader:        stats.NewLoader(cfg.HeatmapWeeks, 1),
		Fired:         fired,
		SweepInterval: cfg.SweepInterval,
		HeatmapWeeks:  cfg.HeatmapWeeks,
		Logger:        a.logger,
		Context:       ctx,
	}), tea.WithContext(ctx))
	_, err = program.Run()
	return err
}
