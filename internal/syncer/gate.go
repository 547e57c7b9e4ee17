package syncer

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sandeepkv93/deadlinetodo/internal/model"
)

// Priority carries the 0/1/5/9 code unchanged.
type Reminder struct {
	Ref      string
	Title    string
	Priority int
	Start    time.Time
	Due      time.Time
}

type Event struct {
	Ref      string
	Calendar string
	Title    string
	Start    time.Time
	End      time.Time
}

type ReminderBackend interface {
	UpsertReminder(ctx context.Context, r Reminder) error
	DeleteReminder(ctx context.Context, ref string) error
}

type CalendarBackend interface {
	UpsertEvent(ctx context.Context, e Event) error
	DeleteEvent(ctx context.Context, ref string) error
}

type SettingSource interface {
	GetSetting(ctx context.Context) (model.UserSetting, error)
}

type Gate struct {
	settings  SettingSource
	reminders ReminderBackend
	calendar  CalendarBackend
	logger    *zap.Logger
}

func NewGate(settings SettingSource, reminders ReminderBackend, calendar CalendarBackend, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{settings: settings, reminders: reminders, calendar: calendar, logger: logger}
}

func (g *Gate) AddReminder(ctx context.Context, t model.Task) error {
	return g.upsertReminder(ctx, "add", t)
}

func (g *Gate) EditReminder(ctx context.Context, t model.Task) error {
	return g.upsertReminder(ctx, "edit", t)
}

func (g *Gate) RemoveReminder(ctx context.Context, t model.Task) error {
	if _, ok := g.enabled(ctx, reminderToggle); !ok {
		return nil
	}
	g.report("remove reminder", t.ID, g.reminders.DeleteReminder(ctx, Ref(t)))
	return nil
}

func (g *Gate) AddEvent(ctx context.Context, t model.Task) error {
	return g.upsertEvent(ctx, "add", t)
}

func (g *Gate) EditEvent(ctx context.Context, t model.Task) error {
	return g.upsertEvent(ctx, "edit", t)
}

func (g *Gate) RemoveEvent(ctx context.Context, t model.Task) error {
	if _, ok := g.enabled(ctx, calendarToggle); !ok {
		return nil
	}
	g.report("remove event", t.ID, g.calendar.DeleteEvent(ctx, Ref(t)))
	return nil
}

func Ref(t model.Task) string {
	if t.ExternalRef != "" {
		return t.ExternalRef
	}
	return t.ID
}

func ToReminder(t model.Task) Reminder {
	return Reminder{Ref: Ref(t), Title: t.Content, Priority: int(t.Priority), Start: t.EmergencyDate, Due: t.EndDate}
}

func ToEvent(t model.Task, calendar string) Event {
	start := t.EndDate.Add(-t.NeedTime)
	return Event{Ref: Ref(t), Calendar: calendar, Title: t.Content, Start: start, End: t.EndDate}
}

func (g *Gate) upsertReminder(ctx context.Context, op string, t model.Task) error {
	if _, ok := g.enabled(ctx, reminderToggle); !ok {
		return nil
	}
	g.report(op+" reminder", t.ID, g.reminders.UpsertReminder(ctx, ToReminder(t)))
	return nil
}

func (g *Gate) upsertEvent(ctx context.Context, op string, t model.Task) error {
	setting, ok := g.enabled(ctx, calendarToggle)
	if !ok {
		return nil
	}
	calendar := ""
	if len(setting.CalendarNames) > 0 {
		calendar = setting.CalendarNames[0]
	}
	g.report(op+" event", t.ID, g.calendar.UpsertEvent(ctx, ToEvent(t, calendar)))
	return nil
}

type toggle int

const (
	reminderToggle toggle = iota
	calendarToggle
)

func (g *Gate) enabled(ctx context.Context, which toggle) (model.UserSetting, bool) {
	setting, err := g.settings.GetSetting(ctx)
	if err != nil {
		g.logger.Warn("read sync setting failed", zap.Error(err))
		return model.UserSetting{}, false
	}
	switch which {
	case reminderToggle:
		return setting, setting.Reminder && g.reminders != nil
	case calendarToggle:
		return setting, setting.Calendar && g.calendar != nil
	default:
		return setting, false
	}
}

func (g *Gate) report(op, taskID string, err error) {
	if err != nil {
		g.logger.Warn(op+" failed", zap.String("task_id", taskID), zap.Error(err))
		return
	}
	g.logger.Debug(op, zap.String("task_id", taskID))
}
