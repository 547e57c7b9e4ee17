package notify

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/sandeepkv93/deadlinetodo/internal/scheduler"
)

type DesktopNotifier interface {
	Send(ctx context.Context, title, body string) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(context.Context, string, string) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(ctx context.Context, title, body string) error {
	switch runtime.GOOS {
	case "linux":
		return exec.CommandContext(ctx, "notify-send", title, body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(body), escapeAppleScript(title))
		return exec.CommandContext(ctx, "osascript", "-e", script).Run()
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

func Forward(ctx context.Context, in <-chan scheduler.Notification, desktop DesktopNotifier, logger *zap.Logger, sink func(scheduler.Notification)) {
	if desktop == nil {
		desktop = NoopDesktopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-in:
			if !ok {
				return
			}
			logger.Info("notification fired", zap.String("id", n.ID), zap.String("task_id", n.TaskID), zap.Stringer("kind", n.Kind))
			if err := desktop.Send(ctx, n.Title, n.Body); err != nil {
				logger.Warn("desktop notification failed", zap.String("id", n.ID), zap.Error(err))
			}
			if sink != nil {
				sink(n)
			}
		}
	}
}
