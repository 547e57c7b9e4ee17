package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/sandeepkv93/deadlinetodo/internal/model"
)

type SQLiteRepository struct {
	db *sqlx.DB
}

var _ Repository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db *sqlx.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(ctx context.Context, path string) (*SQLiteRepository, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection serialises writers and keeps :memory: databases shared.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if err := MigrateUp(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateTask(ctx context.Context, in model.Task) error {
	if err := in.Validate(); err != nil {
		return err
	}
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (:id, :content, :priority, :cycle, :times, :add_date, :emergency_date, :end_date,
			:done_date, :start_doing_date, :need_time_ns, :initial_need_ns, :actual_finish_ns,
			:last_time_ns, :left_time_ns, :estimate_secs, :state, :doing, :score, :external_ref)`,
		toRow(in),
	)
	if err != nil {
		return fmt.Errorf("creating task %s: %w", in.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (model.Task, error) {
	var row taskRow
	err := r.db.GetContext(ctx, &row, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, err
	}
	return row.toModel()
}

func (r *SQLiteRepository) UpdateTask(ctx context.Context, in model.Task) error {
	if err := in.Validate(); err != nil {
		return err
	}
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE tasks SET
			content = :content, priority = :priority, cycle = :cycle, times = :times,
			add_date = :add_date, emergency_date = :emergency_date, end_date = :end_date,
			done_date = :done_date, start_doing_date = :start_doing_date,
			need_time_ns = :need_time_ns, initial_need_ns = :initial_need_ns,
			actual_finish_ns = :actual_finish_ns, last_time_ns = :last_time_ns,
			left_time_ns = :left_time_ns, estimate_secs = :estimate_secs,
			state = :state, doing = :doing, score = :score, external_ref = :external_ref
		WHERE id = :id`,
		toRow(in),
	)
	if err != nil {
		return fmt.Errorf("updating task %s: %w", in.ID, err)
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListTasks(ctx context.Context, filter TaskListFilter) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	args := make([]any, 0, 3)
	switch {
	case filter.OpenOnly:
		query += ` WHERE state != ?`
		args = append(args, model.StateDone)
	case filter.State != "":
		query += ` WHERE state = ?`
		args = append(args, filter.State)
	}
	query += ` ORDER BY end_date ASC, id ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]model.Task, 0, len(rows))
	for _, row := range rows {
		task, err := row.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, task)
	}
	return out, nil
}

func (r *SQLiteRepository) FindTaskByExternalRef(ctx context.Context, ref string) (model.Task, error) {
	if ref == "" {
		return model.Task{}, ErrNotFound
	}
	var row taskRow
	err := r.db.GetContext(ctx, &row, `SELECT `+taskColumns+` FROM tasks WHERE external_ref = ? LIMIT 1`, ref)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, err
	}
	return row.toModel()
}

func (r *SQLiteRepository) EnsureSetting(ctx context.Context) (model.UserSetting, error) {
	if _, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO user_settings (id) VALUES (1)`); err != nil {
		return model.UserSetting{}, fmt.Errorf("creating user setting: %w", err)
	}
	return r.GetSetting(ctx)
}

func (r *SQLiteRepository) GetSetting(ctx context.Context) (model.UserSetting, error) {
	var row settingRow
	err := r.db.GetContext(ctx, &row, `SELECT reminder, calendar, purchased, calendar_names FROM user_settings WHERE id = 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.UserSetting{}, ErrNotFound
		}
		return model.UserSetting{}, err
	}
	return row.toModel()
}

func (r *SQLiteRepository) SaveSetting(ctx context.Context, in model.UserSetting) error {
	names := in.CalendarNames
	if names == nil {
		names = []string{}
	}
	encoded, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("encode calendar_names: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO user_settings (id, reminder, calendar, purchased, calendar_names)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			reminder = excluded.reminder,
			calendar = excluded.calendar,
			purchased = excluded.purchased,
			calendar_names = excluded.calendar_names`,
		in.Reminder, in.Calendar, in.Purchased, string(encoded),
	)
	if err != nil {
		return fmt.Errorf("saving user setting: %w", err)
	}
	return nil
}

func applyPagination(args *[]any, limit, offset int) string {
	if limit <= 0 && offset <= 0 {
		return ""
	}
	if limit <= 0 {
		limit = -1
	}
	*args = append(*args, limit)
	sql := " LIMIT ?"
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
