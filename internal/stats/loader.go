package stats

import (
	"context"
	"slices"
	"time"

	"github.com/sandeepkv93/deadlinetodo/internal/model"
)

type Report struct {
	Period         Period
	GeneratedAt    time.Time
	Efficiency     Series
	WorkingTime    Series
	TimeDifference Series
	HeatMap        HeatMap
	WeeklyScore    int
	Completed      int
}

func Build(tasks []model.Task, p Period, now time.Time, heatmapWeeks int) Report {
	completed := 0
	for _, t := range tasks {
		if t.IsDone() {
			completed++
		}
	}
	return Report{
		Period:         p,
		GeneratedAt:    now,
		Efficiency:     Efficiency(tasks, p, now),
		WorkingTime:    WorkingTime(tasks, p, now),
		TimeDifference: TimeDifference(tasks, p, now),
		HeatMap:        BuildHeatMap(tasks, now, heatmapWeeks),
		WeeklyScore:    model.WeeklyScore(tasks, now),
		Completed:      completed,
	}
}

// Loader works on its own copy of each task slice. Superseded loads are not
// cancelled.
type Loader struct {
	heatmapWeeks int
	out          chan Report
}

func NewLoader(heatmapWeeks, buffer int) *Loader {
	if buffer <= 0 {
		buffer = 1
	}
	return &Loader{heatmapWeeks: heatmapWeeks, out: make(chan Report, buffer)}
}

func (l *Loader) C() <-chan Report {
	return l.out
}

func (l *Loader) Load(ctx context.Context, tasks []model.Task, p Period, now time.Time) {
	snapshot := slices.Clone(tasks)
	go func() {
		r := Build(snapshot, p, now, l.heatmapWeeks)
		select {
		case l.out <- r:
		case <-ctx.Done():
		}
	}()
}
