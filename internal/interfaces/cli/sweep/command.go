// Package sweep closes idle tickets once and exits. Suited to cron and to
// deployments that do not run the worker.
package sweep

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/clientdesk/clientdesk/internal/infrastructure/config"
	"github.com/clientdesk/clientdesk/internal/infrastructure/database"
	httpRouter "github.com/clientdesk/clientdesk/internal/interfaces/http"
	"github.com/clientdesk/clientdesk/internal/shared/logger"
)

var (
	env        string
	configPath string
	timeout    time.Duration
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Close tickets idle past the configured window",
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "Maximum duration of the sweep")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	// The sweep never replies, so neither Redis nor the AI gateway is built.
	cfg.AI.Enabled = false
	container, err := httpRouter.NewContainer(database.Get(), nil, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build container: %w", err)
	}
	defer container.Shutdown()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	closed, err := container.AutoCloseIdleUseCase().Execute(ctx)
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	log.Infow("idle ticket sweep finished", "closed", closed, "idle_after", cfg.Tickets.IdleCloseAfter)
	fmt.Printf("closed %d idle tickets\n", closed)
	return nil
}
