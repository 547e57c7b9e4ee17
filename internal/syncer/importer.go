package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sandeepkv93/deadlinetodo/internal/model"
	"github.com/sandeepkv93/deadlinetodo/internal/storage"
)

type ExternalItem struct {
	Ref      string    `json:"ref"`
	Title    string    `json:"title"`
	Priority int       `json:"priority"`
	Calendar string    `json:"calendar,omitempty"`
	Start    time.Time `json:"start"`
	Due      time.Time `json:"due"`
}

type ImportResult struct {
	Created    []model.Task
	Duplicates int
	Skipped    int
}

type Importer struct {
	repo   storage.Repository
	newID  func() string
	logger *zap.Logger
}

func NewImporter(repo storage.Repository, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{repo: repo, newID: uuid.NewString, logger: logger}
}

// Items already known by Ref, or failing that by exact content, are skipped.
func (im *Importer) Import(ctx context.Context, items []ExternalItem, now time.Time) (ImportResult, error) {
	setting, err := im.repo.EnsureSetting(ctx)
	if err != nil {
		return ImportResult{}, fmt.Errorf("import read setting: %w", err)
	}
	existing, err := im.repo.ListTasks(ctx, storage.TaskListFilter{})
	if err != nil {
		return ImportResult{}, fmt.Errorf("import list tasks: %w", err)
	}
	contents := make(map[string]struct{}, len(existing))
	for _, t := range existing {
		contents[t.Content] = struct{}{}
	}

	var res ImportResult
	for _, item := range items {
		if item.Due.IsZero() || (item.Calendar != "" && !setting.SyncsCalendar(item.Calendar)) {
			res.Skipped++
			continue
		}
		if item.Ref != "" {
			_, err := im.repo.FindTaskByExternalRef(ctx, item.Ref)
			if err == nil {
				res.Duplicates++
				continue
			}
			if !errors.Is(err, storage.ErrNotFound) {
				im.logger.Warn("import lookup failed", zap.String("ref", item.Ref), zap.Error(err))
				res.Skipped++
				continue
			}
		}
		if _, dup := contents[item.Title]; dup {
			res.Duplicates++
			continue
		}

		task := im.toTask(item, now)
		if err := im.repo.CreateTask(ctx, task); err != nil {
			im.logger.Warn("import create failed", zap.String("ref", item.Ref), zap.Error(err))
			res.Skipped++
			continue
		}
		contents[task.Content] = struct{}{}
		res.Created = append(res.Created, task)
	}
	im.logger.Info("import finished", zap.Int("created", len(res.Created)), zap.Int("duplicates", res.Duplicates), zap.Int("skipped", res.Skipped))
	return res, nil
}

func (im *Importer) toTask(item ExternalItem, now time.Time) model.Task {
	priority := model.Priority(item.Priority)
	if !priority.IsValid() {
		priority = model.PriorityNone
	}
	add := item.Start
	if add.IsZero() || add.After(item.Due) {
		add = now
	}
	task := model.NewTask(im.newID(), model.Draft{
		Content:  item.Title,
		Priority: priority,
		AddDate:  add,
		EndDate:  item.Due,
	}, now)
	task.ExternalRef = item.Ref
	return task
}

func ReadItems(r io.Reader) ([]ExternalItem, error) {
	var items []ExternalItem
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("decode import items: %w", err)
	}
	return items, nil
}
