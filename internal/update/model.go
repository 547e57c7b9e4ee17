package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"go.uber.org/zap"

	"github.com/sandeepkv93/deadlinetodo/internal/lifecycle"
	domainmodel "github.com/sandeepkv93/deadlinetodo/internal/model"
	"github.com/sandeepkv93/deadlinetodo/internal/scheduler"
	"github.com/sandeepkv93/deadlinetodo/internal/stats"
)

type View string

const (
	ViewTasks View = "Tasks"
	ViewStats View = "Stats"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Tasks string
	Stats string
	Help  string
	Quit  string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

const (
	timelineWidth    = 40
	maxNotifications = 40
)

type Options struct {
	Service *lifecycle.Service
	// Loader is optional; without one reports are built inline.
	Loader        *stats.Loader
	Fired         <-chan scheduler.Notification
	SweepInterval time.Duration
	HeatmapWeeks  int
	Now           func() time.Time
	Logger        *zap.Logger
	Context       context.Context
}

type Model struct {
	CurrentView    View
	Tasks          []domainmodel.Task
	SelectedTaskID string
	ShowDone       bool
	UrgentCount    int
	WeeklyScore    int
	Period         stats.Period
	ShowHeatmap    bool
	Report         *stats.Report
	Palette        CommandPaletteState
	HelpVisible    bool
	Notifications  []Notification
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error

	svc          *lifecycle.Service
	loader       *stats.Loader
	fired        <-chan scheduler.Notification
	sweepEvery   time.Duration
	heatmapWeeks int
	now          func() time.Time
	logger       *zap.Logger
	ctx          context.Context
	width        int

	taskTable    table.Model
	commandInput textinput.Model
	timeline     progress.Model
	helpModel    help.Model
}

func NewModel(opts Options) Model {
	m := Model{
		CurrentView:  ViewTasks,
		Period:       stats.PeriodWeek,
		svc:          opts.Service,
		loader:       opts.Loader,
		fired:        opts.Fired,
		sweepEvery:   opts.SweepInterval,
		heatmapWeeks: opts.HeatmapWeeks,
		now:          opts.Now,
		logger:       opts.Logger,
		ctx:          opts.Context,
		Keys: GlobalKeyMap{
			Tasks: "1",
			Stats: "2",
			Help:  "?",
			Quit:  "q",
		},
	}
	if m.sweepEvery <= 0 {
		m.sweepEvery = lifecycle.DefaultSweepInterval
	}
	if m.heatmapWeeks <= 0 {
		m.heatmapWeeks = 12
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	m.initBubbleComponents()
	m.reload()
	return m
}

func (m *Model) initBubbleComponents() {
	cols := []table.Column{
		{Title: "Task", Width: 22},
		{Title: "Pri", Width: 6},
		{Title: "Deadline", Width: 12},
		{Title: "Slack", Width: 9},
		{Title: "State", Width: 7},
	}
	m.taskTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(12))

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.timeline = progress.New(progress.WithDefaultGradient(), progress.WithWidth(timelineWidth), progress.WithoutPercentage())
	m.helpModel = help.New()
}
