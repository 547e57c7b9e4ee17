package views

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type TaskRowData struct {
	ID        string
	Content   string
	Priority  string
	Deadline  string
	Remaining string
	Urgent    bool
	Doing     bool
	Done      bool
}

type TaskPanelData struct {
	TableView   string
	Pending     int
	UrgentCount int
	WeeklyScore int
	ShowDone    bool
}

func RenderTaskPanel(data TaskPanelData) string {
	var b strings.Builder
	filter := "open"
	if data.ShowDone {
		filter = "all"
	}
	b.WriteString(fmt.Sprintf("tasks (%s): %d open | %s | weekly score %d\n",
		filter, data.Pending, urgentStyle.Render(fmt.Sprintf("%d urgent", data.UrgentCount)), data.WeeklyScore))
	b.WriteString("actions: [j/k]move [space]doing [x]done [u]undo [X]delete [a]all\n")
	b.WriteString(data.TableView)
	return strings.TrimSpace(b.String())
}

func StatusBadge(row TaskRowData) string {
	switch {
	case row.Done:
		return doneStyle.Render("done")
	case row.Doing:
		return doingStyle.Render("doing")
	case row.Urgent:
		return urgentStyle.Render("URGENT")
	default:
		return "pending"
	}
}

type TaskDetailData struct {
	ID        string
	Content   string
	Priority  string
	Cycle     string
	Times     int
	Added     string
	Emergency string
	Deadline  string
	Remaining string
	Estimate  string
	Elapsed   string
	Score     int
	Done      bool
	Doing     bool
	Timeline  string
}

func RenderTaskDetail(data TaskDetailData) string {
	if strings.TrimSpace(data.ID) == "" {
		return "details:\n(no selection)"
	}
	var b strings.Builder
	b.WriteString("details:\n")
	b.WriteString(fmt.Sprintf("%s\n", data.Content))
	b.WriteString(fmt.Sprintf("priority: %s | repeat: %s", data.Priority, data.Cycle))
	if data.Times > 0 {
		b.WriteString(fmt.Sprintf(" (x%d)", data.Times))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("added:     %s\n", data.Added))
	b.WriteString(fmt.Sprintf("urgent at: %s\n", data.Emergency))
	b.WriteString(fmt.Sprintf("deadline:  %s\n", data.Deadline))
	if data.Done {
		b.WriteString(fmt.Sprintf("score: %d\n", data.Score))
	} else {
		b.WriteString(fmt.Sprintf("slack: %s\n", data.Remaining))
		b.WriteString(fmt.Sprintf("timeline: %s\n", data.Timeline))
	}
	b.WriteString(fmt.Sprintf("estimate left: %s | worked: %s", data.Estimate, data.Elapsed))
	if data.Doing {
		b.WriteString(" " + doingStyle.Render("(running)"))
	}
	return strings.TrimSpace(b.String())
}

// Marker positions outside the bar are drawn as an arrow at the nearest edge.
func RenderTimeline(bar string, width int, marker float64) string {
	label := ""
	switch {
	case math.IsNaN(marker) || math.IsInf(marker, 0):
	case marker < 0:
		label = "◀ urgent"
	case marker > float64(width):
		label = "urgent ▶"
	default:
		pad := int(marker)
		if pad >= width {
			pad = width - 1
		}
		label = strings.Repeat(" ", pad) + "^ urgent"
	}
	if label == "" {
		return bar
	}
	return bar + "\n          " + label
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, title string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s: %s", strings.ToUpper(level), title, body)
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

type SeriesData struct {
	Title  string
	Unit   string
	Labels []string
	Values []float64
}

type StatsData struct {
	Period      string
	WeeklyScore int
	Completed   int
	Series      []SeriesData
}

func StatsMarkdown(data StatsData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("# Statistics: %s\n\n", data.Period))
	b.WriteString(fmt.Sprintf("Weekly score **%d** across **%d** completed tasks.\n", data.WeeklyScore, data.Completed))
	for _, s := range data.Series {
		title := s.Title
		if s.Unit != "" {
			title = fmt.Sprintf("%s (%s)", s.Title, s.Unit)
		}
		b.WriteString(fmt.Sprintf("\n## %s\n\n| bucket | value |\n|---|---:|\n", title))
		for i, label := range s.Labels {
			v := 0.0
			if i < len(s.Values) {
				v = s.Values[i]
			}
			b.WriteString(fmt.Sprintf("| %s | %.1f |\n", label, v))
		}
	}
	return b.String()
}

type HeatCellData struct {
	Day   string
	Count int
	Level float64
}

var heatShades = []lipgloss.Color{"237", "22", "28", "34", "40"}

// RenderHeatMap lays out cells seven per column, Monday at the top.
func RenderHeatMap(cells []HeatCellData) string {
	if len(cells) == 0 {
		return "heatmap:\n(no data)"
	}
	weeks := (len(cells) + 6) / 7
	rows := [7]strings.Builder{}
	for w := 0; w < weeks; w++ {
		for d := 0; d < 7; d++ {
			idx := w*7 + d
			if idx >= len(cells) {
				rows[d].WriteString("  ")
				continue
			}
			shade := heatShades[shadeIndex(cells[idx])]
			rows[d].WriteString(lipgloss.NewStyle().Foreground(shade).Render("■") + " ")
		}
	}
	days := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("heatmap: %s .. %s\n", cells[0].Day, cells[len(cells)-1].Day))
	for d := 0; d < 7; d++ {
		b.WriteString(fmt.Sprintf("%s %s\n", days[d], strings.TrimRight(rows[d].String(), " ")))
	}
	return strings.TrimSpace(b.String())
}

func shadeIndex(c HeatCellData) int {
	if c.Count == 0 || c.Level <= 0 {
		return 0
	}
	idx := int(math.Ceil(c.Level * float64(len(heatShades)-1)))
	if idx >= len(heatShades) {
		idx = len(heatShades) - 1
	}
	if idx < 1 {
		idx = 1
	}
	return idx
}
