package main

import (
	"fmt"

	"github.com/msomdec/quill-blog/internal/service"
	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage who can write posts",
}

func newAdminToggleCmd(use, short string, grant bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <email>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := openDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			auth := service.NewAuthService(db.Users(), cfg.JWTSecret, cfg.BcryptCost)
			user, err := auth.SetAdmin(cmd.Context(), args[0], grant)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s admin=%t\n", user.Email, user.IsAdmin)
			return nil
		},
	}
}

func init() {
	adminCmd.AddCommand(
		newAdminToggleCmd("grant", "Give an account admin rights", true),
		newAdminToggleCmd("revoke", "Remove admin rights from an account", false),
	)
	rootCmd.AddCommand(adminCmd)
}
