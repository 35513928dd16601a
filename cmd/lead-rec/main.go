package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lead-rec/internal/app"
	"lead-rec/internal/config"
	"lead-rec/internal/logx"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logx.SetVerbosity(cfg.Verbosity)

	if cfg.Domain == "" && cfg.ListFile == "" {
		fmt.Fprintln(os.Stderr, "usage: lead-rec -d apex.com [-output results.json]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg); err != nil {
		if errors.Is(err, context.Canceled) {
			logx.Errorf("aborted by user")
		} else {
			logx.Errorf("%v", err)
		}
		os.Exit(1)
	}
}
