package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"

	domainmodel "github.com/sandeepkv93/deadlinetodo/internal/model"
	"github.com/sandeepkv93/deadlinetodo/internal/stats"
	"github.com/sandeepkv93/deadlinetodo/internal/views"
)

const timeLayout = "Jan 2 15:04"

func (m *Model) syncTable(now time.Time) {
	rows := make([]table.Row, 0, len(m.Tasks))
	cursor := -1
	for i, t := range m.Tasks {
		row := taskRow(t, now)
		rows = append(rows, table.Row{truncate(t.Content, 22), t.Priority.String(), row.Deadline, row.Remaining, views.StatusBadge(row)})
		if t.ID == m.SelectedTaskID {
			cursor = i
		}
	}
	m.taskTable.SetRows(rows)
	if len(rows) == 0 {
		m.SelectedTaskID = ""
		return
	}
	if cursor < 0 {
		cursor = min(max(m.taskTable.Cursor(), 0), len(rows)-1)
	}
	m.taskTable.SetCursor(cursor)
	m.SelectedTaskID = m.Tasks[cursor].ID
}

func (m *Model) syncSelection() {
	idx := m.taskTable.Cursor()
	if idx >= 0 && idx < len(m.Tasks) {
		m.SelectedTaskID = m.Tasks[idx].ID
	}
}

func taskRow(t domainmodel.Task, now time.Time) views.TaskRowData {
	return views.TaskRowData{
		ID:        t.ID,
		Content:   t.Content,
		Priority:  t.Priority.String(),
		Deadline:  t.EndDate.Local().Format(timeLayout),
		Remaining: shortDuration(domainmodel.RemainingTime(t, now)),
		Urgent:    !t.IsDone() && !now.Before(t.EmergencyDate),
		Doing:     t.Doing,
		Done:      t.IsDone(),
	}
}

func (m Model) selectedTask() (domainmodel.Task, bool) {
	for _, t := range m.Tasks {
		if t.ID == m.SelectedTaskID {
			return t, true
		}
	}
	return domainmodel.Task{}, false
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	var left, right string
	switch m.CurrentView {
	case ViewStats:
		left = m.renderStatsView()
		right = m.renderCommandPalette() + m.renderHelpIfVisible()
	default:
		left = m.renderTasksView()
		right = joinNonEmpty(m.renderDetailView(), m.renderCommandPalette(), m.renderHelpIfVisible())
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("deadlinetodo | view: %s | selected: %s | urgent: %d", m.CurrentView, m.SelectedTaskID, m.UrgentCount),
		LeftPane:     left,
		RightPane:    right,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: m.renderNotificationsView(),
		Footer:       fmt.Sprintf("keys: %s tasks | %s stats | / cmd | %s help | %s quit", m.Keys.Tasks, m.Keys.Stats, m.Keys.Help, m.Keys.Quit),
		PaneWidth:    m.paneWidth(),
	})
}

func (m Model) paneWidth() int {
	if m.width <= 0 {
		return 0
	}
	// two panes, each with border and padding
	return max(40, m.width/2-4)
}

func (m Model) renderTasksView() string {
	pending := 0
	for _, t := range m.Tasks {
		if !t.IsDone() {
			pending++
		}
	}
	return views.RenderTaskPanel(views.TaskPanelData{
		TableView:   m.taskTable.View(),
		Pending:     pending,
		UrgentCount: m.UrgentCount,
		WeeklyScore: m.WeeklyScore,
		ShowDone:    m.ShowDone,
	})
}

func (m Model) renderDetailView() string {
	t, ok := m.selectedTask()
	if !ok {
		return views.RenderTaskDetail(views.TaskDetailData{})
	}
	now := m.now()
	bar := m.timeline.ViewAs(domainmodel.ProgressWidth(t, now, 1))
	marker := domainmodel.EmergencyLinePosition(t, now, timelineWidth)
	return views.RenderTaskDetail(views.TaskDetailData{
		ID:        t.ID,
		Content:   t.Content,
		Priority:  t.Priority.String(),
		Cycle:     t.Cycle.String(),
		Times:     t.Times,
		Added:     t.AddDate.Local().Format(timeLayout),
		Emergency: t.EmergencyDate.Local().Format(timeLayout),
		Deadline:  t.EndDate.Local().Format(timeLayout),
		Remaining: shortDuration(domainmodel.RemainingTime(t, now)),
		Estimate:  partsText(t.Estimate),
		Elapsed:   shortDuration(t.Elapsed(now)),
		Score:     t.Score,
		Done:      t.IsDone(),
		Doing:     t.Doing,
		Timeline:  views.RenderTimeline(bar, timelineWidth, marker),
	})
}

func (m Model) renderStatsView() string {
	if m.Report == nil {
		return fmt.Sprintf("stats: loading %s...", m.Period)
	}
	r := *m.Report
	if m.ShowHeatmap {
		cells := make([]views.HeatCellData, 0, len(r.HeatMap.Cells))
		for _, c := range r.HeatMap.Cells {
			cells = append(cells, views.HeatCellData{Day: c.Date.Format(time.DateOnly), Count: c.Count, Level: c.Level})
		}
		return views.RenderHeatMap(cells)
	}
	md := views.StatsMarkdown(views.StatsData{
		Period:      string(r.Period),
		WeeklyScore: r.WeeklyScore,
		Completed:   r.Completed,
		Series: []views.SeriesData{
			seriesData("Efficiency", r.Efficiency),
			seriesData("Working time", r.WorkingTime),
			seriesData("Time difference", r.TimeDifference),
		},
	})
	return views.RenderMarkdown(md, m.paneWidth())
}

func seriesData(title string, s stats.Series) views.SeriesData {
	return views.SeriesData{Title: title, Unit: string(s.Unit), Labels: s.Labels, Values: s.Values}
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Title, n.Body)
}

func partsText(p domainmodel.Parts) string {
	if p.IsZero() {
		return "0m"
	}
	var parts []string
	if p.Days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", p.Days))
	}
	if p.Hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", p.Hours))
	}
	if p.Minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", p.Minutes))
	}
	if len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", p.Seconds))
	}
	return strings.Join(parts, " ")
}

func shortDuration(d time.Duration) string {
	return partsText(domainmodel.Decompose(d))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n\n")
}
