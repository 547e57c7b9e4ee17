package stats

import (
	"time"

	"github.com/sandeepkv93/deadlinetodo/internal/model"
)

type HeatCell struct {
	Date  time.Time
	Count int
	// Level is Count over the window maximum, in [0,1].
	Level float64
}

type HeatMap struct {
	Weeks int
	Start time.Time
	Cells []HeatCell
}

func BuildHeatMap(tasks []model.Task, now time.Time, weeks int) HeatMap {
	if weeks <= 0 {
		weeks = 1
	}
	start := model.StartOfWeek(now).AddDate(0, 0, -7*(weeks-1))
	cells := make([]HeatCell, weeks*7)
	for i := range cells {
		cells[i].Date = start.AddDate(0, 0, i)
	}
	for _, t := range tasks {
		if !t.IsDone() {
			continue
		}
		idx := daysBetween(start, t.DoneDate)
		if idx < 0 || idx >= len(cells) {
			continue
		}
		cells[idx].Count++
	}
	maxCount := 0
	for _, c := range cells {
		maxCount = max(maxCount, c.Count)
	}
	if maxCount > 0 {
		for i := range cells {
			cells[i].Level = float64(cells[i].Count) / float64(maxCount)
		}
	}
	return HeatMap{Weeks: weeks, Start: start, Cells: cells}
}
