package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/deadlinetodo/internal/commands"
	domainmodel "github.com/sandeepkv93/deadlinetodo/internal/model"
	"github.com/sandeepkv93/deadlinetodo/internal/stats"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		switch msg.Type {
		case tea.KeyRunes:
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		case tea.KeySpace:
			m.commandInput.SetValue(m.commandInput.Value() + " ")
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		m.commandInput, _ = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	selected := func(verb string, fn func(string) (string, error)) func() (commands.Result, error) {
		return func() (commands.Result, error) {
			if m.SelectedTaskID == "" {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: verb + " needs a selected task"}
			}
			msg, err := fn(m.SelectedTaskID)
			return commands.Result{Message: msg}, err
		}
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			now := m.now()
			task, err := m.svc.Create(m.ctx, domainmodel.Draft{
				Content:  a.Content,
				Priority: a.Priority,
				Cycle:    a.Cycle,
				AddDate:  now,
				EndDate:  now.Add(a.Due),
				NeedTime: a.Need,
			}, false, now)
			if err != nil {
				return commands.Result{}, err
			}
			m.SelectedTaskID = task.ID
			return commands.Result{Message: fmt.Sprintf("added: %s", task.Content)}, nil
		},
		Edit:   m.editSelected,
		Done:   selected("done", m.completeSelected),
		Undo:   selected("undo", m.uncompleteSelected),
		Delete: selected("delete", m.deleteSelected),
		Doing: selected("doing", func(id string) (string, error) {
			task, err := m.svc.ToggleDoing(m.ctx, id, m.now())
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("doing=%t: %s", task.Doing, task.Content), nil
		}),
		Show: func(s commands.ShowArgs) (commands.Result, error) {
			if s.Subject == "heatmap" {
				m.ShowHeatmap = true
			} else {
				m.Period = stats.Period(s.Subject)
				m.ShowHeatmap = false
			}
			m.CurrentView = ViewStats
			return commands.Result{Message: fmt.Sprintf("showing %s", s.Subject)}, nil
		},
		Sync: func(s commands.SyncArgs) (commands.Result, error) {
			setting := m.svc.Setting(m.ctx)
			if s.Target == "reminder" {
				setting.Reminder = s.On
			} else {
				setting.Calendar = s.On
			}
			m.svc.SaveSetting(m.ctx, setting)
			state := "off"
			if s.On {
				state = "on"
			}
			return commands.Result{Message: fmt.Sprintf("%s sync %s", s.Target, state)}, nil
		},
	})
	m.reload()
	if err != nil {
		m.setError(err)
		return m
	}
	m.Status = StatusBar{Text: res.Message}
	m.notify("Command", res.Message, "info")
	return m
}

func (m *Model) editSelected(a commands.EditArgs) (commands.Result, error) {
	if m.SelectedTaskID == "" {
		return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "edit needs a selected task"}
	}
	var current domainmodel.Task
	found := false
	for _, t := range m.Tasks {
		if t.ID == m.SelectedTaskID {
			current, found = t, true
			break
		}
	}
	if !found {
		return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "selected task is not listed"}
	}

	now := m.now()
	d := domainmodel.Draft{
		Content:  current.Content,
		Priority: current.Priority,
		Cycle:    current.Cycle,
		NeedTime: current.NeedTime,
	}
	switch a.Field {
	case commands.EditContent:
		d.Content = a.Content
	case commands.EditDue:
		d.EndDate = now.Add(a.Span)
	case commands.EditNeed:
		d.NeedTime = a.Span
	case commands.EditPriority:
		d.Priority = a.Priority
	case commands.EditCycle:
		d.Cycle = a.Cycle
	}
	task, err := m.svc.Edit(m.ctx, current.ID, d, now)
	if err != nil {
		return commands.Result{}, err
	}
	return commands.Result{Message: fmt.Sprintf("updated %s: %s", a.Field, task.Content)}, nil
}
