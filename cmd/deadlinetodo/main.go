package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/sandeepkv93/deadlinetodo/internal/config"
)

const usage = `usage: deadlinetodo [command] [flags]

commands:
  tui            interactive task list (default)
  serve          run the urgency sweeper and the widget HTTP API
  add            create a task with an interactive form
  import <file>  import reminders/calendar items from a JSON file
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "deadlinetodo failed: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	sub := "tui"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		sub, args = args[0], args[1:]
	}

	fs := pflag.NewFlagSet("deadlinetodo "+sub, pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		fs.PrintDefaults()
	}
	config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := config.Load(fs)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch sub {
	case "tui":
		return runTUI(ctx, cfg)
	case "serve":
		return runServe(ctx, cfg)
	case "add":
		return runAdd(ctx, cfg)
	case "import":
		if fs.NArg() != 1 {
			return errors.New("import needs exactly one file argument")
		}
		return runImport(ctx, cfg, fs.Arg(0))
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", sub)
	}
}
