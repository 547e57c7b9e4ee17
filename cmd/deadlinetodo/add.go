package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/sandeepkv93/deadlinetodo/internal/commands"
	"github.com/sandeepkv93/deadlinetodo/internal/config"
	"github.com/sandeepkv93/deadlinetodo/internal/model"
)

type addBindings struct {
	content   string
	due       string
	need      string
	urgent    string
	priority  model.Priority
	cycle     model.Cycle
	confirmed bool
}

func runAdd(ctx context.Context, cfg config.RuntimeConfig) error {
	fb := &addBindings{need: "0", confirmed: true}
	if err := addForm(fb).RunWithContext(ctx); err != nil {
		return err
	}
	if !fb.confirmed {
		fmt.Println("cancelled")
		return nil
	}

	a, err := openApp(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	now := time.Now()
	draft, emergencySet, err := fb.draft(now)
	if err != nil {
		return err
	}
	task, err := a.svc.Create(ctx, draft, emergencySet, now)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "created %s: %s (due %s, urgent from %s)\n",
		task.ID, task.Content,
		task.EndDate.Format("Mon Jan 2 15:04"),
		task.EmergencyDate.Format("Mon Jan 2 15:04"))
	return nil
}

func addForm(fb *addBindings) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task").
				Placeholder(model.PlaceholderContent).
				Value(&fb.content),
			huh.NewInput().
				Title("Due in").
				Description("e.g. 90m, 4h, 2d, 1w").
				Value(&fb.due).
				Validate(positiveSpan),
			huh.NewInput().
				Title("Estimate").
				Value(&fb.need).
				Validate(optionalSpan),
			huh.NewInput().
				Title("Urgent before due").
				Description("leave empty for twice the estimate").
				Value(&fb.urgent).
				Validate(optionalSpan),
		),
		huh.NewGroup(
			huh.NewSelect[model.Priority]().
				Title("Priority").
				Options(
					huh.NewOption("None", model.PriorityNone),
					huh.NewOption("High", model.PriorityHigh),
					huh.NewOption("Medium", model.PriorityMedium),
					huh.NewOption("Low", model.PriorityLow),
				).
				Value(&fb.priority),
			huh.NewSelect[model.Cycle]().
				Title("Repeat").
				Options(
					huh.NewOption("Never", model.CycleNone),
					huh.NewOption("Daily", model.CycleDaily),
					huh.NewOption("Weekly", model.CycleWeekly),
					huh.NewOption("Monthly", model.CycleMonthly),
				).
				Value(&fb.cycle),
			huh.NewConfirm().
				Title("Create task?").
				Value(&fb.confirmed),
		),
	)
}

func (fb *addBindings) draft(now time.Time) (model.Draft, bool, error) {
	due, err := commands.ParseSpan(fb.due)
	if err != nil {
		return model.Draft{}, false, fmt.Errorf("due: %w", err)
	}
	need, err := spanOrZero(fb.need)
	if err != nil {
		return model.Draft{}, false, fmt.Errorf("estimate: %w", err)
	}
	d := model.Draft{
		Content:  fb.content,
		Priority: fb.priority,
		Cycle:    fb.cycle,
		AddDate:  now,
		EndDate:  now.Add(due),
		NeedTime: need,
	}
	if strings.TrimSpace(fb.urgent) == "" {
		return d, false, nil
	}
	lead, err := commands.ParseSpan(fb.urgent)
	if err != nil {
		return model.Draft{}, false, fmt.Errorf("urgent: %w", err)
	}
	d.EmergencyDate = d.EndDate.Add(-lead)
	return d, true, nil
}

func positiveSpan(s string) error {
	d, err := commands.ParseSpan(s)
	if err != nil {
		return err
	}
	if d <= 0 {
		return errors.New("must be after now")
	}
	return nil
}

func optionalSpan(s string) error {
	_, err := spanOrZero(s)
	return err
}

func spanOrZero(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}
	return commands.ParseSpan(s)
}
