package stats

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/sandeepkv93/deadlinetodo/internal/model"
)

// Wednesday in a 28-day February.
var now = time.Date(2026, 2, 11, 15, 0, 0, 0, time.UTC)

func done(at time.Time, score int, need, actual time.Duration) model.Task {
	return model.Task{State: model.StateDone, DoneDate: at, Score: score, NeedTime: need, ActualFinishTime: actual}
}

func TestBucketCounts(t *testing.T) {
	if Buckets(PeriodWeek, now) != 7 || Buckets(PeriodMonth, now) != 28 || Buckets(PeriodYear, now) != 12 {
		t.Fatalf("unexpected bucket counts: %d %d %d", Buckets(PeriodWeek, now), Buckets(PeriodMonth, now), Buckets(PeriodYear, now))
	}
	if got := Labels(PeriodYear, now); got[0] != "Jan" || got[11] != "Dec" {
		t.Fatalf("unexpected year labels: %v", got)
	}
	if got := Labels(PeriodMonth, now); len(got) != 28 || got[27] != "28" {
		t.Fatalf("unexpected month labels: %v", got)
	}
}

func TestEfficiencyAveragesPerBucket(t *testing.T) {
	tasks := []model.Task{
		done(time.Date(2026, 2, 9, 8, 0, 0, 0, time.UTC), 80, 0, 0),
		done(time.Date(2026, 2, 9, 20, 0, 0, 0, time.UTC), 60, 0, 0),
		done(time.Date(2026, 2, 15, 23, 0, 0, 0, time.UTC), 90, 0, 0),
		done(time.Date(2026, 2, 8, 23, 0, 0, 0, time.UTC), 10, 0, 0),
		{State: model.StatePending, Score: 50, DoneDate: now},
	}
	s := Efficiency(tasks, PeriodWeek, now)
	if s.Unit != UnitNone || len(s.Values) != 7 {
		t.Fatalf("unexpected efficiency series shape: %+v", s)
	}
	if s.Values[0] != 70 || s.Values[6] != 90 || s.Values[2] != 0 {
		t.Fatalf("unexpected efficiency values: %v", s.Values)
	}

	year := Efficiency(tasks, PeriodYear, now)
	if year.Values[1] != 60 || year.Values[0] != 0 {
		t.Fatalf("unexpected yearly efficiency: %v", year.Values)
	}
}

func TestWorkingTimeUsesOneUnitPerSeries(t *testing.T) {
	tasks := []model.Task{
		done(time.Date(2026, 2, 9, 8, 0, 0, 0, time.UTC), 0, 0, 30*time.Second),
		done(time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC), 0, 0, 2*time.Hour),
	}
	s := WorkingTime(tasks, PeriodWeek, now)
	if s.Unit != UnitHours {
		t.Fatalf("expected hours for the whole series, got %q", s.Unit)
	}
	if s.Values[1] != 2 || math.Abs(s.Values[0]-30.0/3600) > 1e-12 {
		t.Fatalf("unexpected values: %v", s.Values)
	}

	small := WorkingTime(tasks[:1], PeriodWeek, now)
	if small.Unit != UnitSeconds || small.Values[0] != 30 {
		t.Fatalf("expected seconds, got %q %v", small.Unit, small.Values)
	}
}

func TestChooseUnitBoundaries(t *testing.T) {
	cases := []struct {
		secs float64
		want Unit
	}{
		{0, UnitSeconds},
		{59, UnitSeconds},
		{60, UnitMinutes},
		{3599, UnitMinutes},
		{3600, UnitHours},
	}
	for _, tc := range cases {
		if got, _ := ChooseUnit(tc.secs); got != tc.want {
			t.Fatalf("ChooseUnit(%v) = %q, want %q", tc.secs, got, tc.want)
		}
	}
}

func TestTimeDifferenceSkipsUntrackedAndKeepsSign(t *testing.T) {
	tasks := []model.Task{
		done(time.Date(2026, 2, 3, 8, 0, 0, 0, time.UTC), 0, time.Hour, 90*time.Minute),
		done(time.Date(2026, 2, 3, 9, 0, 0, 0, time.UTC), 0, time.Hour, 50*time.Minute),
		done(time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC), 0, 5*time.Hour, 0),
	}
	s := TimeDifference(tasks, PeriodMonth, now)
	if s.Unit != UnitMinutes {
		t.Fatalf("expected minutes, got %q", s.Unit)
	}
	if s.Values[2] != -20 {
		t.Fatalf("expected -20 minutes on Feb 3, got %v", s.Values[2])
	}
}

func TestHeatMapNormalizesByWindowMax(t *testing.T) {
	tasks := []model.Task{
		done(time.Date(2026, 2, 11, 9, 0, 0, 0, time.UTC), 0, 0, 0),
		done(time.Date(2026, 2, 11, 10, 0, 0, 0, time.UTC), 0, 0, 0),
		done(time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC), 0, 0, 0),
		done(time.Date(2026, 1, 25, 10, 0, 0, 0, time.UTC), 0, 0, 0),
	}
	hm := BuildHeatMap(tasks, now, 2)
	if len(hm.Cells) != 14 || !hm.Start.Equal(time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected heat map window: start=%s cells=%d", hm.Start, len(hm.Cells))
	}
	if hm.Cells[9].Count != 2 || hm.Cells[9].Level != 1 {
		t.Fatalf("unexpected cell for Feb 11: %+v", hm.Cells[9])
	}
	if hm.Cells[0].Count != 1 || hm.Cells[0].Level != 0.5 {
		t.Fatalf("unexpected cell for Feb 2: %+v", hm.Cells[0])
	}

	empty := BuildHeatMap(nil, now, 1)
	for _, c := range empty.Cells {
		if c.Level != 0 {
			t.Fatalf("expected empty window to stay at level 0, got %+v", c)
		}
	}
}

func TestParsePeriod(t *testing.T) {
	if p, err := ParsePeriod(" Month "); err != nil || p != PeriodMonth {
		t.Fatalf("unexpected parse: %v %v", p, err)
	}
	if _, err := ParsePeriod("decade"); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestLoaderWorksOnSnapshot(t *testing.T) {
	tasks := []model.Task{done(time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC), 80, 0, 0)}
	loader := NewLoader(4, 2)
	loader.Load(t.Context(), tasks, PeriodWeek, now)
	tasks[0].Score = 0

	select {
	case r := <-loader.C():
		if r.Efficiency.Values[1] != 80 || r.WeeklyScore != 80 || r.Completed != 1 {
			t.Fatalf("report must reflect the snapshot at load time: %+v", r.Efficiency.Values)
		}
		if len(r.HeatMap.Cells) != 28 {
			t.Fatalf("expected four-week heat map, got %d cells", len(r.HeatMap.Cells))
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for report")
	}
}
