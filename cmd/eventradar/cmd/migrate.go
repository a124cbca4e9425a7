package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"eventradar/config"
	"eventradar/internal/repository/postgres"
)

var downSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations, or roll back with --down",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		logger := config.NewLogger()
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if downSteps > 0 {
			return postgres.MigrateDown(ctx, cfg.DBUrl, downSteps, logger)
		}
		return postgres.MigrateUp(ctx, cfg.DBUrl, logger)
	},
}

func init() {
	migrateCmd.Flags().IntVar(&downSteps, "down", 0, "roll back this many migrations instead of applying")
}
