package stats

import (
	"math"
	"time"

	"github.com/sandeepkv93/deadlinetodo/internal/model"
)

type Family string

const (
	FamilyEfficiency     Family = "efficiency"
	FamilyWorkingTime    Family = "working_time"
	FamilyTimeDifference Family = "time_difference"
)

type Unit string

const (
	UnitNone    Unit = ""
	UnitSeconds Unit = "s"
	UnitMinutes Unit = "min"
	UnitHours   Unit = "h"
)

type Series struct {
	Period Period
	Family Family
	Unit   Unit
	Labels []string
	Values []float64
}

func (s Series) Max() float64 {
	m := 0.0
	for _, v := range s.Values {
		m = math.Max(m, math.Abs(v))
	}
	return m
}

func Efficiency(tasks []model.Task, p Period, now time.Time) Series {
	n := Buckets(p, now)
	sums := make([]float64, n)
	counts := make([]int, n)
	for _, t := range tasks {
		if !t.IsDone() {
			continue
		}
		idx, ok := bucketIndex(p, t.DoneDate, now)
		if !ok {
			continue
		}
		sums[idx] += float64(t.Score)
		counts[idx]++
	}
	values := make([]float64, n)
	for i := range values {
		if counts[i] > 0 {
			values[i] = sums[i] / float64(counts[i])
		}
	}
	return Series{Period: p, Family: FamilyEfficiency, Labels: Labels(p, now), Values: values}
}

func WorkingTime(tasks []model.Task, p Period, now time.Time) Series {
	values := sumSeconds(tasks, p, now, func(t model.Task) (float64, bool) {
		return t.ActualFinishTime.Seconds(), true
	})
	return scaled(Series{Period: p, Family: FamilyWorkingTime, Labels: Labels(p, now), Values: values})
}

// Negative TimeDifference values mean the estimate was overrun.
func TimeDifference(tasks []model.Task, p Period, now time.Time) Series {
	values := sumSeconds(tasks, p, now, func(t model.Task) (float64, bool) {
		if t.ActualFinishTime == 0 {
			return 0, false
		}
		return (t.NeedTime - t.ActualFinishTime).Seconds(), true
	})
	return scaled(Series{Period: p, Family: FamilyTimeDifference, Labels: Labels(p, now), Values: values})
}

func Compute(tasks []model.Task, p Period, f Family, now time.Time) Series {
	switch f {
	case FamilyWorkingTime:
		return WorkingTime(tasks, p, now)
	case FamilyTimeDifference:
		return TimeDifference(tasks, p, now)
	default:
		return Efficiency(tasks, p, now)
	}
}

func sumSeconds(tasks []model.Task, p Period, now time.Time, value func(model.Task) (float64, bool)) []float64 {
	out := make([]float64, Buckets(p, now))
	for _, t := range tasks {
		if !t.IsDone() {
			continue
		}
		v, ok := value(t)
		if !ok {
			continue
		}
		idx, ok := bucketIndex(p, t.DoneDate, now)
		if !ok {
			continue
		}
		out[idx] += v
	}
	return out
}

func ChooseUnit(maxAbsSeconds float64) (Unit, float64) {
	switch {
	case maxAbsSeconds < 60:
		return UnitSeconds, 1
	case maxAbsSeconds < 3600:
		return UnitMinutes, 60
	default:
		return UnitHours, 3600
	}
}

func scaled(s Series) Series {
	unit, div := ChooseUnit(s.Max())
	s.Unit = unit
	for i := range s.Values {
		s.Values[i] /= div
	}
	return s
}
