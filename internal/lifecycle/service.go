package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sandeepkv93/deadlinetodo/internal/model"
	"github.com/sandeepkv93/deadlinetodo/internal/notify"
	"github.com/sandeepkv93/deadlinetodo/internal/storage"
)

var (
	ErrTaskDone    = errors.New("lifecycle: task is already done")
	ErrTaskNotDone = errors.New("lifecycle: task is not done")
)

// Deps are optional; nil members become no-ops.
type Deps struct {
	Notifier  Notifier
	Reminders ReminderSync
	Calendar  CalendarSync
	Widget    WidgetReloader
	Tracker   *Tracker
	NewID     func() string
}

// Service returns validation failures. Persistence and integration failures
// are logged and never block the local transition.
type Service struct {
	repo      storage.Repository
	notifier  Notifier
	reminders ReminderSync
	calendar  CalendarSync
	widget    WidgetReloader
	tracker   *Tracker
	newID     func() string
	logger    *zap.Logger
}

func NewService(repo storage.Repository, deps Deps, logger *zap.Logger) (*Service, error) {
	if repo == nil {
		return nil, errors.New("lifecycle: nil repository")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		repo:      repo,
		notifier:  deps.Notifier,
		reminders: deps.Reminders,
		calendar:  deps.Calendar,
		widget:    deps.Widget,
		tracker:   deps.Tracker,
		newID:     deps.NewID,
		logger:    logger,
	}
	if s.notifier == nil {
		s.notifier = noopNotifier{}
	}
	if s.reminders == nil {
		s.reminders = noopSync{}
	}
	if s.calendar == nil {
		s.calendar = noopSync{}
	}
	if s.widget == nil {
		s.widget = noopWidget{}
	}
	if s.tracker == nil {
		s.tracker = NewTracker()
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s, nil
}

func (s *Service) Tracker() *Tracker { return s.tracker }

// Load re-seeds urgency tracking and pending notifications from the store.
func (s *Service) Load(ctx context.Context, now time.Time) error {
	tasks, err := s.repo.ListTasks(ctx, storage.TaskListFilter{OpenOnly: true})
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	s.tracker.Reset(tasks)
	for _, task := range tasks {
		s.cancelAll(task.ID)
		s.schedule(task, now)
	}
	s.logger.Info("tasks loaded", zap.Int("open", len(tasks)), zap.Int("urgent", s.tracker.Count()))
	return nil
}

func (s *Service) Setting(ctx context.Context) model.UserSetting {
	setting, err := s.repo.EnsureSetting(ctx)
	if err != nil {
		s.logger.Error("load user setting failed", zap.Error(err))
		return model.UserSetting{}
	}
	return setting
}

func (s *Service) SaveSetting(ctx context.Context, setting model.UserSetting) {
	if err := s.repo.SaveSetting(ctx, setting); err != nil {
		s.logger.Error("save user setting failed", zap.Error(err))
	}
}

func (s *Service) Create(ctx context.Context, d model.Draft, emergencySet bool, now time.Time) (model.Task, error) {
	if err := model.CheckEntitlement(d.Cycle, s.Setting(ctx)); err != nil {
		return model.Task{}, err
	}
	task := model.NewTask(s.newID(), d, now)
	if err := model.CheckNew(task, emergencySet, now); err != nil {
		return model.Task{}, err
	}
	s.evaluate(&task, now)
	s.insert(ctx, task)
	s.schedule(task, now)
	s.syncAdd(ctx, task)
	s.widget.ReloadAllTimelines()
	s.logger.Info("task created", zap.String("task_id", task.ID), zap.Time("end_date", task.EndDate))
	return task, nil
}

// Edit reverts every field that fails validation and keeps the rest; the
// error carries the first alert. Zero dates in d keep the stored value.
func (s *Service) Edit(ctx context.Context, id string, d model.Draft, now time.Time) (model.Task, error) {
	prev, err := s.get(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	if prev.IsDone() {
		return prev, ErrTaskDone
	}
	if d.Cycle != prev.Cycle {
		if err := model.CheckEntitlement(d.Cycle, s.Setting(ctx)); err != nil {
			return prev, err
		}
	}

	next := prev
	next.Content = strings.TrimSpace(d.Content)
	if next.Content == "" {
		next.Content = model.PlaceholderContent
	}
	next.Priority = d.Priority
	next.Cycle = d.Cycle
	if !d.AddDate.IsZero() {
		next.AddDate = d.AddDate
	}
	if !d.EmergencyDate.IsZero() {
		next.EmergencyDate = d.EmergencyDate
	}
	if !d.EndDate.IsZero() {
		next.EndDate = d.EndDate
	}
	next.NeedTime = d.NeedTime

	alert := model.CheckEdit(prev, &next, now)
	if next.NeedTime != prev.NeedTime {
		next.Estimate = model.Decompose(next.NeedTime - next.Elapsed(now))
	}
	next.Refresh(now)
	s.evaluate(&next, now)

	s.cancelAll(next.ID)
	s.save(ctx, next)
	s.schedule(next, now)
	s.logSync("edit reminder", next.ID, s.reminders.EditReminder(ctx, next))
	s.logSync("edit calendar event", next.ID, s.calendar.EditEvent(ctx, next))
	s.widget.ReloadAllTimelines()
	return next, alert
}

func (s *Service) ToggleDoing(ctx context.Context, id string, now time.Time) (model.Task, error) {
	task, err := s.get(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	overtimeID := model.ReminderID(task.ID, model.ReminderOvertime)
	if task.Doing {
		if err := task.Pause(now); err != nil {
			return task, err
		}
		s.notifier.Cancel(overtimeID)
	} else {
		if err := task.Start(now); err != nil {
			return task, err
		}
		for _, req := range notify.Plan(task, now) {
			if req.Kind == model.ReminderOvertime {
				s.logSync("schedule notification", req.ID, s.notifier.Schedule(req.ID, req.Delay, req.Title, req.Body))
			}
		}
	}
	task.Refresh(now)
	s.save(ctx, task)
	s.widget.ReloadAllTimelines()
	return task, nil
}

type CompleteResult struct {
	Done model.Task
	Next *model.Task
}

func (s *Service) Complete(ctx context.Context, id string, now time.Time) (CompleteResult, error) {
	task, err := s.get(ctx, id)
	if err != nil {
		return CompleteResult{}, err
	}
	if task.IsDone() {
		return CompleteResult{Done: task}, ErrTaskDone
	}
	if err := model.CheckStarted(task, now); err != nil {
		return CompleteResult{Done: task}, err
	}

	s.tracker.Leave(task.ID)
	if task.Doing {
		if err := task.Pause(now); err != nil {
			return CompleteResult{Done: task}, err
		}
	}
	s.cancelAll(task.ID)
	s.logSync("remove reminder", task.ID, s.reminders.RemoveReminder(ctx, task))

	task.MarkDone(now)
	task.LeftTime = model.RemainingTime(task, now)
	s.save(ctx, task)
	s.logger.Info("task completed", zap.String("task_id", task.ID), zap.Int("score", task.Score))

	result := CompleteResult{Done: task}
	if task.Cycle != model.CycleNone {
		next, err := model.NextOccurrence(task, s.newID(), now)
		if err != nil {
			s.logger.Error("generate next occurrence failed", zap.String("task_id", task.ID), zap.Error(err))
		} else {
			s.evaluate(&next, now)
			s.insert(ctx, next)
			s.schedule(next, now)
			s.syncAdd(ctx, next)
			result.Next = &next
		}
	}
	s.widget.ReloadAllTimelines()
	return result, nil
}

func (s *Service) Uncomplete(ctx context.Context, id string, now time.Time) (model.Task, error) {
	task, err := s.get(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	if !task.IsDone() {
		return task, ErrTaskNotDone
	}
	task.Reopen()
	task.Refresh(now)
	s.evaluate(&task, now)
	s.save(ctx, task)
	s.schedule(task, now)
	s.logSync("add reminder", task.ID, s.reminders.AddReminder(ctx, task))
	s.widget.ReloadAllTimelines()
	return task, nil
}

// Notifications and external items go before the record their ids derive from.
func (s *Service) Delete(ctx context.Context, id string) error {
	task, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	s.cancelAll(task.ID)
	s.logSync("remove reminder", task.ID, s.reminders.RemoveReminder(ctx, task))
	s.logSync("remove calendar event", task.ID, s.calendar.RemoveEvent(ctx, task))
	s.tracker.Leave(task.ID)
	if err := s.repo.DeleteTask(ctx, task.ID); err != nil {
		s.logger.Error("delete task failed", zap.String("task_id", task.ID), zap.Error(err))
	}
	s.widget.ReloadAllTimelines()
	return nil
}

// Sweep is level-triggered: repeating it at the same instant yields no edges.
func (s *Service) Sweep(ctx context.Context, now time.Time) ([]Edge, error) {
	tasks, err := s.repo.ListTasks(ctx, storage.TaskListFilter{OpenOnly: true})
	if err != nil {
		return nil, fmt.Errorf("sweep list tasks: %w", err)
	}
	var edges []Edge
	for _, task := range tasks {
		before := task
		task.Refresh(now)
		edges = append(edges, s.evaluate(&task, now)...)
		if task != before {
			s.save(ctx, task)
		}
	}
	if len(edges) > 0 {
		s.widget.ReloadAllTimelines()
	}
	return edges, nil
}

// Refresh recomputes derived fields without writing them back.
func (s *Service) Refresh(ctx context.Context, now time.Time) ([]model.Task, error) {
	tasks, err := s.repo.ListTasks(ctx, storage.TaskListFilter{})
	if err != nil {
		return nil, fmt.Errorf("refresh list tasks: %w", err)
	}
	for i := range tasks {
		if !tasks[i].IsDone() {
			tasks[i].Refresh(now)
		}
	}
	return tasks, nil
}

func (s *Service) get(ctx context.Context, id string) (model.Task, error) {
	task, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, fmt.Errorf("get task %s: %w", id, err)
	}
	return task, nil
}

func (s *Service) evaluate(task *model.Task, now time.Time) []Edge {
	entered, left := task.Evaluate(now)
	var out []Edge
	if entered {
		if edge, ok := s.tracker.Enter(task.ID); ok {
			out = append(out, edge)
		}
	}
	if left {
		if edge, ok := s.tracker.Leave(task.ID); ok {
			out = append(out, edge)
		}
	}
	return out
}

func (s *Service) insert(ctx context.Context, task model.Task) {
	if err := s.repo.CreateTask(ctx, task); err != nil {
		s.logger.Error("create task failed", zap.String("task_id", task.ID), zap.Error(err))
	}
}

func (s *Service) save(ctx context.Context, task model.Task) {
	if err := s.repo.UpdateTask(ctx, task); err != nil {
		s.logger.Error("save task failed", zap.String("task_id", task.ID), zap.Error(err))
	}
}

func (s *Service) schedule(task model.Task, now time.Time) {
	for _, req := range notify.Plan(task, now) {
		s.logSync("schedule notification", req.ID, s.notifier.Schedule(req.ID, req.Delay, req.Title, req.Body))
	}
}

func (s *Service) cancelAll(taskID string) {
	for _, id := range model.ReminderIDs(taskID) {
		s.notifier.Cancel(id)
	}
}

func (s *Service) syncAdd(ctx context.Context, task model.Task) {
	s.logSync("add reminder", task.ID, s.reminders.AddReminder(ctx, task))
	s.logSync("add calendar event", task.ID, s.calendar.AddEvent(ctx, task))
}

func (s *Service) logSync(op, id string, err error) {
	if err != nil {
		s.logger.Warn(op+" failed", zap.String("id", id), zap.Error(err))
	}
}
