package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/clientdesk/clientdesk/internal/infrastructure/config"
	"github.com/clientdesk/clientdesk/internal/infrastructure/database"
	"github.com/clientdesk/clientdesk/internal/infrastructure/scheduler"
	httpRouter "github.com/clientdesk/clientdesk/internal/interfaces/http"
	"github.com/clientdesk/clientdesk/internal/shared/logger"
)

func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger()
	log.Infow("starting ticket worker", "environment", env)

	if err := database.Init(&cfg.Database); err != nil {
		log.Errorw("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	// Auto-close publishes status events but never asks the model for a reply.
	cfg.AI.Enabled = false
	container, err := httpRouter.NewContainer(database.Get(), nil, cfg, log)
	if err != nil {
		log.Errorw("failed to build container", "error", err)
		os.Exit(1)
	}
	defer container.Shutdown()

	sched, err := scheduler.NewSchedulerManager(log)
	if err != nil {
		log.Errorw("failed to create scheduler", "error", err)
		os.Exit(1)
	}

	if err := sched.RegisterIdleTicketSweep(container.AutoCloseIdleUseCase(), cfg.Tickets.SweepInterval); err != nil {
		log.Errorw("failed to register idle ticket sweep", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched.Start()
	log.Infow("ticket worker started",
		"sweep_interval", cfg.Tickets.SweepInterval,
		"idle_close_after", cfg.Tickets.IdleCloseAfter)

	<-ctx.Done()

	log.Infow("received signal, shutting down")
	if err := sched.Stop(); err != nil {
		log.Errorw("failed to stop scheduler", "error", err)
	}
	log.Infow("ticket worker stopped")
}
