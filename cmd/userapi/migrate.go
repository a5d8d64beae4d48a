package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deppfellow/userapi/internal/config"
	"github.com/deppfellow/userapi/internal/database"
	"github.com/deppfellow/userapi/internal/logger"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			log := logger.NewLogger(cfg.Observability)

			if err := database.Migrate(cmd.Context(), &log, cfg); err != nil {
				log.Error().Err(err).Msg("failed to migrate database")
				return err
			}
			return nil
		},
	}
}
