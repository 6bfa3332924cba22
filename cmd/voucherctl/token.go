package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Fletes-api/pkg/jwt"
)

func newTokenCmd() *cobra.Command {
	var (
		userID  string
		role    string
		minutes int
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un token Bearer firmado con JWT_SECRET (entornos de prueba)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if role != jwt.RoleAdmin && role != jwt.RoleOperator {
				return fmt.Errorf("rol %q desconocido: use %s u %s", role, jwt.RoleAdmin, jwt.RoleOperator)
			}
			cfg, _, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			tok, err := jwt.Generate(cfg.JWT.Secret, userID, role, cfg.JWT.Issuer, minutes)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "ID del usuario (claim user_id)")
	cmd.Flags().StringVar(&role, "role", jwt.RoleOperator, "rol: admin u operador")
	cmd.Flags().IntVar(&minutes, "minutes", 60, "vigencia en minutos")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
