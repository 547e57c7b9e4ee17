package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sandeepkv93/deadlinetodo/internal/config"
	"github.com/sandeepkv93/deadlinetodo/internal/syncer"
)

func runImport(ctx context.Context, cfg config.RuntimeConfig, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	items, err := syncer.ReadItems(f)
	if err != nil {
		return err
	}

	a, err := openApp(ctx, cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := syncer.NewImporter(a.repo, a.logger).Import(ctx, items, time.Now())
	if err != nil {
		return err
	}
	for _, t := range res.Created {
		fmt.Printf("imported %s: %s (due %s)\n", t.ID, t.Content, t.EndDate.Format("Mon Jan 2 15:04"))
	}
	fmt.Printf("%d imported, %d duplicates, %d skipped\n", len(res.Created), res.Duplicates, res.Skipped)
	a.hub.ReloadAllTimelines()
	return nil
}
