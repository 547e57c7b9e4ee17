package stats

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/deadlinetodo/internal/model"
)

var ErrInvalidPeriod = errors.New("stats: invalid period")

type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

func (p Period) IsValid() bool {
	switch p {
	case PeriodWeek, PeriodMonth, PeriodYear:
		return true
	default:
		return false
	}
}

func ParsePeriod(raw string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(raw)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, raw)
	}
	return p, nil
}

func Buckets(p Period, now time.Time) int {
	switch p {
	case PeriodWeek:
		return 7
	case PeriodMonth:
		return model.DaysInMonth(now)
	case PeriodYear:
		return 12
	default:
		return 0
	}
}

var weekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func Labels(p Period, now time.Time) []string {
	switch p {
	case PeriodWeek:
		return append([]string(nil), weekdayLabels...)
	case PeriodMonth:
		n := model.DaysInMonth(now)
		out := make([]string, n)
		for i := range out {
			out[i] = strconv.Itoa(i + 1)
		}
		return out
	case PeriodYear:
		out := make([]string, 12)
		for i := range out {
			out[i] = time.Month(i + 1).String()[:3]
		}
		return out
	default:
		return nil
	}
}

func bucketIndex(p Period, at, now time.Time) (int, bool) {
	at = at.In(now.Location())
	var idx int
	switch p {
	case PeriodWeek:
		idx = daysBetween(model.StartOfWeek(now), at)
	case PeriodMonth:
		if at.Year() != now.Year() || at.Month() != now.Month() {
			return 0, false
		}
		idx = at.Day() - 1
	case PeriodYear:
		if at.Year() != now.Year() {
			return 0, false
		}
		idx = int(at.Month()) - 1
	default:
		return 0, false
	}
	if idx < 0 || idx >= Buckets(p, now) {
		return 0, false
	}
	return idx, true
}

// daysBetween counts calendar days from the day of from to the day of to,
// ignoring DST shifts.
func daysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.In(from.Location()).Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
