package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sandeepkv93/deadlinetodo/internal/model"
)

// sqliteTimeLayout is fixed width so text order in ORDER BY is time order.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// taskRow is the column layout of the tasks table. Times are fixed-width RFC3339 text and
// durations are integer nanoseconds.
type taskRow struct {
	ID             string         `db:"id"`
	Content        string         `db:"content"`
	Priority       int            `db:"priority"`
	Cycle          int            `db:"cycle"`
	Times          int            `db:"times"`
	AddDate        string         `db:"add_date"`
	EmergencyDate  string         `db:"emergency_date"`
	EndDate        string         `db:"end_date"`
	DoneDate       sql.NullString `db:"done_date"`
	StartDoingDate sql.NullString `db:"start_doing_date"`
	NeedTime       int64          `db:"need_time_ns"`
	InitialNeed    int64          `db:"initial_need_ns"`
	ActualFinish   int64          `db:"actual_finish_ns"`
	LastTime       int64          `db:"last_time_ns"`
	LeftTime       int64          `db:"left_time_ns"`
	EstimateSecs   int64          `db:"estimate_secs"`
	State          string         `db:"state"`
	Doing          bool           `db:"doing"`
	Score          int            `db:"score"`
	ExternalRef    string         `db:"external_ref"`
}

const taskColumns = `id, content, priority, cycle, times, add_date, emergency_date, end_date,
	done_date, start_doing_date, need_time_ns, initial_need_ns, actual_finish_ns,
	last_time_ns, left_time_ns, estimate_secs, state, doing, score, external_ref`

func toRow(t model.Task) taskRow {
	return taskRow{
		ID:             t.ID,
		Content:        t.Content,
		Priority:       int(t.Priority),
		Cycle:          int(t.Cycle),
		Times:          t.Times,
		AddDate:        mustTime(t.AddDate),
		EmergencyDate:  mustTime(t.EmergencyDate),
		EndDate:        mustTime(t.EndDate),
		DoneDate:       nullTime(t.DoneDate),
		StartDoingDate: nullTime(t.StartDoingDate),
		NeedTime:       int64(t.NeedTime),
		InitialNeed:    int64(t.InitialNeedTime),
		ActualFinish:   int64(t.ActualFinishTime),
		LastTime:       int64(t.LastTime),
		LeftTime:       int64(t.LeftTime),
		EstimateSecs:   int64(t.Estimate.Duration() / time.Second),
		State:          string(t.State),
		Doing:          t.Doing,
		Score:          t.Score,
		ExternalRef:    t.ExternalRef,
	}
}

func (r taskRow) toModel() (model.Task, error) {
	add, err := parseRequiredTime(r.AddDate)
	if err != nil {
		return model.Task{}, fmt.Errorf("parse add_date for %s: %w", r.ID, err)
	}
	emergency, err := parseRequiredTime(r.EmergencyDate)
	if err != nil {
		return model.Task{}, fmt.Errorf("parse emergency_date for %s: %w", r.ID, err)
	}
	end, err := parseRequiredTime(r.EndDate)
	if err != nil {
		return model.Task{}, fmt.Errorf("parse end_date for %s: %w", r.ID, err)
	}
	done, err := parseNullableTime(r.DoneDate)
	if err != nil {
		return model.Task{}, fmt.Errorf("parse done_date for %s: %w", r.ID, err)
	}
	startDoing, err := parseNullableTime(r.StartDoingDate)
	if err != nil {
		return model.Task{}, fmt.Errorf("parse start_doing_date for %s: %w", r.ID, err)
	}
	return model.Task{
		ID:               r.ID,
		Content:          r.Content,
		Priority:         model.Priority(r.Priority),
		Cycle:            model.Cycle(r.Cycle),
		Times:            r.Times,
		AddDate:          add,
		EmergencyDate:    emergency,
		EndDate:          end,
		DoneDate:         done,
		StartDoingDate:   startDoing,
		NeedTime:         time.Duration(r.NeedTime),
		InitialNeedTime:  time.Duration(r.InitialNeed),
		ActualFinishTime: time.Duration(r.ActualFinish),
		LastTime:         time.Duration(r.LastTime),
		LeftTime:         time.Duration(r.LeftTime),
		Estimate:         model.Decompose(time.Duration(r.EstimateSecs) * time.Second),
		State:            model.State(r.State),
		Doing:            r.Doing,
		Score:            r.Score,
		ExternalRef:      r.ExternalRef,
	}, nil
}

type settingRow struct {
	Reminder      bool   `db:"reminder"`
	Calendar      bool   `db:"calendar"`
	Purchased     bool   `db:"purchased"`
	CalendarNames string `db:"calendar_names"`
}

func (r settingRow) toModel() (model.UserSetting, error) {
	var names []string
	if r.CalendarNames != "" {
		if err := json.Unmarshal([]byte(r.CalendarNames), &names); err != nil {
			return model.UserSetting{}, fmt.Errorf("decode calendar_names: %w", err)
		}
	}
	return model.UserSetting{
		Reminder:      r.Reminder,
		Calendar:      r.Calendar,
		Purchased:     r.Purchased,
		CalendarNames: names,
	}, nil
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func nullTime(v time.Time) sql.NullString {
	if v.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: mustTime(v), Valid: true}
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, v)
}

func parseNullableTime(v sql.NullString) (time.Time, error) {
	if !v.Valid || v.String == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, v.String)
}
