package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/Fletes-api/internal/infrastructure/postgres"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Aplica, revierte o lista las migraciones de la base de datos",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{postgres.MigrateUp, postgres.MigrateDown, postgres.MigrateStatus},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			pool, err := postgres.NewPool(cmd.Context(), cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := postgres.Migrate(cmd.Context(), pool, args[0]); err != nil {
				return err
			}
			log.Info().Str("action", args[0]).Msg("migraciones completadas")
			return nil
		},
	}
}
