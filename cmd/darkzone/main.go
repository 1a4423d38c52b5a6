package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/darkzone/internal/core/observability/log"
	"github.com/zeusync/darkzone/internal/core/systems"
	"github.com/zeusync/darkzone/internal/injector"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	startLevel := flag.Int("level", 1, "campaign level to start at")
	difficulty := flag.String("difficulty", "", "difficulty preset, overrides the config")
	flag.Parse()

	if err := run(*configPath, *startLevel, *difficulty); err != nil {
		fmt.Fprintln(os.Stderr, "darkzone:", err)
		os.Exit(1)
	}
}

func run(configPath string, startLevel int, difficulty string) error {
	app, err := injector.InitializeApp(injector.ConfigPath(configPath))
	if err != nil {
		return err
	}
	defer func() { _ = app.Logger.Sync() }()

	if difficulty != "" {
		if err := app.Session.SetDifficulty(difficulty); err != nil {
			return err
		}
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Session.Preflight(ctx); err != nil {
		return err
	}
	if err := app.Session.LoadProgress(ctx); err != nil {
		return err
	}
	if err := app.Session.Start(startLevel); err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c := newCampaign(app.Session, app.Logger, cancel)
	loop := systems.NewLoop(app.Engine, systems.LoopOptions{
		Step:        app.Config.Engine.Step,
		MaxSteps:    app.Config.Engine.MaxSteps,
		BeforeFrame: c.frame,
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return loop.Run(ctx) })
	if app.Config.Server.Enabled {
		g.Go(func() error { return app.Server.Run(ctx) })
	}

	app.Logger.Info("darkzone running",
		log.String("session", app.Session.ID.String()),
		log.Bool("server", app.Config.Server.Enabled))

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	app.Logger.Info("darkzone stopped", log.Bool("completed", app.Session.GameCompleted()))
	return nil
}
