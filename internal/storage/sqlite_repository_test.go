package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/deadlinetodo/internal/model"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "deadlinetodo-test.db")
	repo, err := OpenSQLite(t.Context(), dbPath)
	if err != nil {
		t.Fatalf("open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func parseRFC3339(t *testing.T, value string) time.Time {
	t.Helper()
	out, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	return out
}

func TestTaskCRUDAndList(t *testing.T) {
	repo := setupRepo(t)
	ctx := t.Context()
	now := parseRFC3339(t, "2026-02-09T12:00:00Z")

	task := model.NewTask("task-1", model.Draft{
		Content:  "Write schema",
		Priority: model.PriorityHigh,
		Cycle:    model.CycleWeekly,
		EndDate:  now.Add(6 * time.Hour),
		NeedTime: 90*time.Minute + 15*time.Second,
	}, now)
	task.ExternalRef = "ext-1"
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	got, err := repo.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if !got.EndDate.Equal(task.EndDate) || !got.EmergencyDate.Equal(task.EmergencyDate) {
		t.Fatalf("dates not preserved: %+v", got)
	}
	if got.NeedTime != task.NeedTime || got.Estimate != task.Estimate || got.Priority != model.PriorityHigh || got.Cycle != model.CycleWeekly {
		t.Fatalf("fields not preserved: %+v", got)
	}
	if !got.DoneDate.IsZero() || !got.StartDoingDate.IsZero() {
		t.Fatalf("expected zero optional dates, got done=%s start=%s", got.DoneDate, got.StartDoingDate)
	}

	if err := got.Start(now); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := repo.UpdateTask(ctx, got); err != nil {
		t.Fatalf("update task: %v", err)
	}
	doing, err := repo.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("get updated: %v", err)
	}
	if !doing.Doing || !doing.StartDoingDate.Equal(now) {
		t.Fatalf("expected doing task, got %+v", doing)
	}

	second := model.NewTask("task-2", model.Draft{Content: "Earlier deadline", EndDate: now.Add(time.Hour)}, now)
	second.MarkDone(now)
	if err := repo.CreateTask(ctx, second); err != nil {
		t.Fatalf("create second: %v", err)
	}

	all, err := repo.ListTasks(ctx, TaskListFilter{})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(all) != 2 || all[0].ID != "task-2" {
		t.Fatalf("expected two tasks ordered by deadline, got %+v", all)
	}
	open, err := repo.ListTasks(ctx, TaskListFilter{OpenOnly: true})
	if err != nil {
		t.Fatalf("list open: %v", err)
	}
	if len(open) != 1 || open[0].ID != "task-1" {
		t.Fatalf("expected only open task, got %d", len(open))
	}
	done, err := repo.ListTasks(ctx, TaskListFilter{State: model.StateDone, Limit: 5})
	if err != nil {
		t.Fatalf("list done: %v", err)
	}
	if len(done) != 1 || done[0].Score != second.Score {
		t.Fatalf("unexpected done list: %+v", done)
	}
	paged, err := repo.ListTasks(ctx, TaskListFilter{Offset: 1})
	if err != nil {
		t.Fatalf("list with offset: %v", err)
	}
	if len(paged) != 1 || paged[0].ID != "task-1" {
		t.Fatalf("unexpected page: %+v", paged)
	}

	byRef, err := repo.FindTaskByExternalRef(ctx, "ext-1")
	if err != nil || byRef.ID != "task-1" {
		t.Fatalf("find by external ref: %v %+v", err, byRef)
	}
	if _, err := repo.FindTaskByExternalRef(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown ref, got %v", err)
	}

	if err := repo.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if _, err := repo.GetTask(ctx, task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestNotFoundSemantics(t *testing.T) {
	repo := setupRepo(t)
	ctx := t.Context()
	now := parseRFC3339(t, "2026-02-09T12:00:00Z")

	if err := repo.DeleteTask(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}
	ghost := model.NewTask("missing", model.Draft{Content: "ghost", EndDate: now.Add(time.Hour)}, now)
	if err := repo.UpdateTask(ctx, ghost); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
	if _, err := repo.GetSetting(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before setting exists, got %v", err)
	}
}

func TestCreateRejectsInvalidTask(t *testing.T) {
	repo := setupRepo(t)
	if err := repo.CreateTask(t.Context(), model.Task{ID: "x", Content: "bad", State: "Bogus"}); !errors.Is(err, model.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestUserSettingSingleton(t *testing.T) {
	repo := setupRepo(t)
	ctx := t.Context()

	first, err := repo.EnsureSetting(ctx)
	if err != nil {
		t.Fatalf("ensure setting: %v", err)
	}
	if first.Reminder || first.Calendar || first.Purchased || len(first.CalendarNames) != 0 {
		t.Fatalf("expected default setting, got %+v", first)
	}

	want := model.UserSetting{Reminder: true, Purchased: true, CalendarNames: []string{"Work", "Home"}}
	if err := repo.SaveSetting(ctx, want); err != nil {
		t.Fatalf("save setting: %v", err)
	}
	again, err := repo.EnsureSetting(ctx)
	if err != nil {
		t.Fatalf("ensure after save: %v", err)
	}
	if !again.Reminder || again.Calendar || !again.Purchased || !again.SyncsCalendar("Home") {
		t.Fatalf("ensure must not reset saved setting, got %+v", again)
	}
}

func TestListTasksOrdersSubsecondDeadlines(t *testing.T) {
	repo := setupRepo(t)
	ctx := t.Context()
	now := parseRFC3339(t, "2026-02-09T12:00:00Z")
	due := now.Add(2 * time.Hour)

	for id, end := range map[string]time.Time{
		"z-on-the-second": due,
		"a-half-second":   due.Add(500 * time.Millisecond),
		"m-next-second":   due.Add(time.Second),
	} {
		if err := repo.CreateTask(ctx, model.NewTask(id, model.Draft{Content: id, EndDate: end}, now)); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	tasks, err := repo.ListTasks(ctx, TaskListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"z-on-the-second", "a-half-second", "m-next-second"}
	if len(tasks) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(tasks))
	}
	for i, id := range want {
		if tasks[i].ID != id {
			t.Fatalf("expected deadline order %v, got %s at %d", want, tasks[i].ID, i)
		}
	}
	if !tasks[1].EndDate.Equal(due.Add(500 * time.Millisecond)) {
		t.Fatalf("sub-second deadline not preserved: %s", tasks[1].EndDate)
	}
}
