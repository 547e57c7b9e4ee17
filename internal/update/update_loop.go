package update

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sandeepkv93/deadlinetodo/internal/lifecycle"
	domainmodel "github.com/sandeepkv93/deadlinetodo/internal/model"
	"github.com/sandeepkv93/deadlinetodo/internal/scheduler"
	"github.com/sandeepkv93/deadlinetodo/internal/stats"
)

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type SweepTickMsg struct {
	At time.Time
}

type NotificationFiredMsg struct {
	Notification scheduler.Notification
}

type StatsReportMsg struct {
	Report stats.Report
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.sweepNowCmd(), sweepTickCmd(m.sweepEvery)}
	if m.fired != nil {
		cmds = append(cmds, waitForNotificationCmd(m.fired))
	}
	if m.loader != nil {
		cmds = append(cmds, waitForReportCmd(m.loader.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) sweepNowCmd() tea.Cmd {
	now := m.now
	return func() tea.Msg { return SweepTickMsg{At: now()} }
}

// Only one tick is ever outstanding.
func sweepTickCmd(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(at time.Time) tea.Msg { return SweepTickMsg{At: at} })
}

func waitForNotificationCmd(ch <-chan scheduler.Notification) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return NotificationFiredMsg{Notification: n}
	}
}

func waitForReportCmd(ch <-chan stats.Report) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return StatsReportMsg{Report: r}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		return m, nil
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed), nil
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Tasks:
			m.CurrentView = ViewTasks
			return m, nil
		case m.Keys.Stats:
			m.CurrentView = ViewStats
			m.requestStats()
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown"}
			} else {
				m.Status = StatusBar{Text: "help hidden"}
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		if m.CurrentView == ViewStats {
			return m.handleStatsKey(typed), nil
		}
		return m.handleTasksKey(typed), nil
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
			if typed.View == ViewStats {
				m.requestStats()
			}
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case SweepTickMsg:
		m.sweep(typed.At)
		return m, sweepTickCmd(m.sweepEvery)
	case NotificationFiredMsg:
		n := typed.Notification
		level := "info"
		if n.Kind == domainmodel.ReminderPassed || n.Kind == domainmodel.ReminderOvertime {
			level = "warn"
		}
		m.notify(n.Title, n.Body, level)
		m.Status = StatusBar{Text: fmt.Sprintf("%s: %s", n.Title, n.Body)}
		m.reload()
		if m.fired == nil {
			return m, nil
		}
		return m, waitForNotificationCmd(m.fired)
	case StatsReportMsg:
		if typed.Report.Period == m.Period {
			r := typed.Report
			m.Report = &r
		}
		if m.loader == nil {
			return m, nil
		}
		return m, waitForReportCmd(m.loader.C())
	}
	return m, nil
}

func isKnownView(v View) bool {
	switch v {
	case ViewTasks, ViewStats:
		return true
	default:
		return false
	}
}

func (m Model) handleTasksKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "j", "down":
		m.taskTable.MoveDown(1)
		m.syncSelection()
	case "k", "up":
		m.taskTable.MoveUp(1)
		m.syncSelection()
	case "a":
		m.ShowDone = !m.ShowDone
		m.reload()
	case " ":
		m = m.runOnSelected("doing", func(id string) (string, error) {
			task, err := m.svc.ToggleDoing(m.ctx, id, m.now())
			if err != nil {
				return "", err
			}
			if task.Doing {
				return fmt.Sprintf("started: %s", task.Content), nil
			}
			return fmt.Sprintf("paused: %s", task.Content), nil
		})
	case "x":
		m = m.runOnSelected("done", m.completeSelected)
	case "u":
		m = m.runOnSelected("undo", m.uncompleteSelected)
	case "X":
		m = m.runOnSelected("delete", m.deleteSelected)
	}
	return m
}

func (m Model) handleStatsKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "w":
		m.Period = stats.PeriodWeek
		m.ShowHeatmap = false
	case "m":
		m.Period = stats.PeriodMonth
		m.ShowHeatmap = false
	case "y":
		m.Period = stats.PeriodYear
		m.ShowHeatmap = false
	case "h":
		m.ShowHeatmap = !m.ShowHeatmap
		return m
	default:
		return m
	}
	m.requestStats()
	return m
}

func (m Model) runOnSelected(verb string, action func(id string) (string, error)) Model {
	if m.SelectedTaskID == "" {
		m.Status = StatusBar{Text: fmt.Sprintf("%s: no task selected", verb), IsError: true}
		return m
	}
	msg, err := action(m.SelectedTaskID)
	m.reload()
	if err != nil {
		m.setError(err)
		return m
	}
	m.Status = StatusBar{Text: msg}
	return m
}

func (m Model) completeSelected(id string) (string, error) {
	res, err := m.svc.Complete(m.ctx, id, m.now())
	if err != nil {
		return "", err
	}
	out := fmt.Sprintf("completed: %s (score %d)", res.Done.Content, res.Done.Score)
	if res.Next != nil {
		out += fmt.Sprintf(", next due %s", res.Next.EndDate.Local().Format("Jan 2 15:04"))
	}
	return out, nil
}

func (m Model) uncompleteSelected(id string) (string, error) {
	task, err := m.svc.Uncomplete(m.ctx, id, m.now())
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("reopened: %s", task.Content), nil
}

func (m Model) deleteSelected(id string) (string, error) {
	if err := m.svc.Delete(m.ctx, id); err != nil {
		return "", err
	}
	return "task deleted", nil
}

func (m *Model) setError(err error) {
	m.LastError = err
	text := err.Error()
	var verr *domainmodel.ValidationError
	switch {
	case errors.As(err, &verr):
		text = alertText(verr)
	case errors.Is(err, lifecycle.ErrTaskDone):
		text = "task is already done"
	case errors.Is(err, lifecycle.ErrTaskNotDone):
		text = "task is not done"
	}
	m.Status = StatusBar{Text: text, IsError: true}
	m.notify("Error", text, "error")
}

func alertText(v *domainmodel.ValidationError) string {
	var text string
	switch v.Code {
	case domainmodel.AlertEmergencyTimeOutOfRange:
		text = "urgent time must leave room for the estimate"
	case domainmodel.AlertEndTimeInPast:
		text = "deadline is in the past"
	case domainmodel.AlertNeedTimeExceedsDeadline:
		text = "estimate does not fit before the deadline"
	case domainmodel.AlertActionOnFutureTask:
		text = "task has not started yet"
	case domainmodel.AlertPurchaseRequired:
		text = "repeating tasks require the full version"
	default:
		return v.Error()
	}
	if len(v.Reverted) > 0 {
		text += fmt.Sprintf(" (reverted %d field(s))", len(v.Reverted))
	}
	return text
}

func (m *Model) sweep(at time.Time) {
	edges, err := m.svc.Sweep(m.ctx, at)
	if err != nil {
		m.setError(err)
		return
	}
	m.reload()
	for _, e := range edges {
		content := e.TaskID
		for _, t := range m.Tasks {
			if t.ID == e.TaskID {
				content = t.Content
				break
			}
		}
		if e.Entered {
			m.notify("Urgent", content+" is now urgent", "warn")
		} else {
			m.notify("Urgent", content+" is no longer urgent", "info")
		}
	}
}

func (m *Model) reload() {
	if m.svc == nil {
		return
	}
	now := m.now()
	tasks, err := m.svc.Refresh(m.ctx, now)
	if err != nil {
		m.logger.Error("refresh tasks failed", zap.Error(err))
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.WeeklyScore = domainmodel.WeeklyScore(tasks, now)
	m.UrgentCount = m.svc.Tracker().Count()
	shown := tasks[:0:0]
	for _, t := range tasks {
		if m.ShowDone || !t.IsDone() {
			shown = append(shown, t)
		}
	}
	m.Tasks = shown
	m.syncTable(now)
	if m.CurrentView == ViewStats {
		m.requestStats()
	}
}

func (m *Model) requestStats() {
	if m.svc == nil {
		return
	}
	now := m.now()
	tasks, err := m.svc.Refresh(m.ctx, now)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	if m.loader == nil {
		r := stats.Build(tasks, m.Period, now, m.heatmapWeeks)
		m.Report = &r
		return
	}
	m.loader.Load(m.ctx, tasks, m.Period, now)
}

func (m *Model) notify(title, body, level string) {
	if body == "" {
		return
	}
	m.Notifications = append(m.Notifications, Notification{Title: title, Body: body, Level: level, At: m.now()})
	if len(m.Notifications) > maxNotifications {
		m.Notifications = m.Notifications[len(m.Notifications)-maxNotifications:]
	}
}
