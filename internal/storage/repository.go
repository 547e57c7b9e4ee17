package storage

import (
	"context"
	"errors"

	"github.com/sandeepkv93/deadlinetodo/internal/model"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	CreateTask(ctx context.Context, in model.Task) error
	GetTask(ctx context.Context, id string) (model.Task, error)
	UpdateTask(ctx context.Context, in model.Task) error
	DeleteTask(ctx context.Context, id string) error
	ListTasks(ctx context.Context, filter TaskListFilter) ([]model.Task, error)
	FindTaskByExternalRef(ctx context.Context, ref string) (model.Task, error)

	EnsureSetting(ctx context.Context) (model.UserSetting, error)
	GetSetting(ctx context.Context) (model.UserSetting, error)
	SaveSetting(ctx context.Context, in model.UserSetting) error
}

type TaskListFilter struct {
	State model.State
	// OpenOnly excludes Done tasks and takes precedence over State.
	OpenOnly bool
	Limit    int
	Offset   int
}
