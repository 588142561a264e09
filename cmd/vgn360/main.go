package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/vgn360/internal/cli"
	"github.com/alexanderramin/vgn360/internal/config"
	"github.com/alexanderramin/vgn360/internal/gateway"
	"github.com/alexanderramin/vgn360/internal/logging"
	"github.com/alexanderramin/vgn360/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	closeLog := func() error { return nil }
	defer func() { _ = closeLog() }()

	app := &cli.App{
		Session: session.NewStore(),
	}

	// Detect interactive terminal for the full-screen entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	app.Setup = func(cmd *cobra.Command, fullscreen bool) error {
		cfg, err := config.Load(cli.ConfigOptions(cmd))
		if err != nil {
			return err
		}

		mode := logging.Console
		if fullscreen {
			mode = logging.Fullscreen
		}
		logger, closeFn, err := logging.New(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File, Mode: mode})
		if err != nil {
			return err
		}
		closeLog = closeFn

		app.Config = cfg
		app.Logger = logger
		app.Gateway = gateway.NewHTTPClient(cfg.Gateway(), gateway.NewLogObserver(logger))

		app.Session.Subscribe(func(prev, next session.State) {
			logger.Debug().
				Bool("authenticated", next.IsAuthenticated).
				Bool("mobile_changed", prev.Mobile != next.Mobile).
				Msg("session updated")
		})
		return nil
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
