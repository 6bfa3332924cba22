package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/Fletes-api/pkg/config"
	"github.com/jhoicas/Fletes-api/pkg/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "voucherctl",
		Short: "Operación de Fletes API: extracción, migraciones y tokens",
		Long: `voucherctl agrupa las tareas de operación que no pasan por la API HTTP.

Ejemplos:
  voucherctl extract --file semana12.pdf        # reporte JSON de extracción, sin base de datos
  voucherctl migrate up                         # aplica migraciones pendientes
  voucherctl token --user ana --role operador   # token Bearer firmado con JWT_SECRET`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newExtractCmd(), newMigrateCmd(), newTokenCmd())
	return root
}

// loadEnv carga la configuración y un logger que escribe en stderr, para que stdout
// quede libre para la salida del comando.
func loadEnv(cmd *cobra.Command) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: cmd.ErrOrStderr()})
	return cfg, log, nil
}
