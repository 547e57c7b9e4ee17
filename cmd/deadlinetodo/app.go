package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sandeepkv93/deadlinetodo/internal/config"
	"github.com/sandeepkv93/deadlinetodo/internal/lifecycle"
	"github.com/sandeepkv93/deadlinetodo/internal/logging"
	"github.com/sandeepkv93/deadlinetodo/internal/notify"
	"github.com/sandeepkv93/deadlinetodo/internal/scheduler"
	"github.com/sandeepkv93/deadlinetodo/internal/storage"
	"github.com/sandeepkv93/deadlinetodo/internal/syncer"
	"github.com/sandeepkv93/deadlinetodo/internal/widget"
)

type app struct {
	cfg    config.RuntimeConfig
	logger *zap.Logger
	repo   *storage.SQLiteRepository
	engine *scheduler.Engine
	hub    *widget.Hub
	svc    *lifecycle.Service
}

// openApp wires the shared collaborators. console is nil while the TUI owns the terminal.
func openApp(ctx context.Context, cfg config.RuntimeConfig, console io.Writer) (*app, error) {
	logger, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel, Console: console})
	if err != nil {
		return nil, err
	}

	repo, err := storage.OpenSQLite(ctx, cfg.DatabasePath)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	if _, err := repo.EnsureSetting(ctx); err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("ensure setting: %w", err)
	}

	engine := scheduler.NewEngine(cfg.SchedulerBuffer)
	engine.Start()
	notifier, err := notify.NewEngineNotifier(engine, logger)
	if err != nil {
		engine.Stop()
		_ = repo.Close()
		return nil, err
	}

	gate := syncer.NewGate(repo, syncer.NewLogBackend(logger.Named("reminders")), syncer.NewLogBackend(logger.Named("calendar")), logger)
	hub := widget.NewHub(repo, widget.DefaultNextLimit, logger)

	svc, err := lifecycle.NewService(repo, lifecycle.Deps{
		Notifier:  notifier,
		Reminders: gate,
		Calendar:  gate,
		Widget:    hub,
		NewID:     uuid.NewString,
	}, logger)
	if err != nil {
		engine.Stop()
		_ = repo.Close()
		return nil, err
	}
	if err := svc.Load(ctx, time.Now()); err != nil {
		engine.Stop()
		_ = repo.Close()
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, repo: repo, engine: engine, hub: hub, svc: svc}, nil
}

func (a *app) desktop() notify.DesktopNotifier {
	if a.cfg.DesktopNotifications {
		return notify.ExecDesktopNotifier{}
	}
	return notify.NoopDesktopNotifier{}
}

func (a *app) Close() {
	a.engine.Stop()
	if err := a.repo.Close(); err != nil {
		a.logger.Warn("close database failed", zap.Error(err))
	}
	_ = a.logger.Sync()
}
