package main

import (
	"fmt"

	"github.com/msomdec/quill-blog/internal/repository/sqlite"
	"github.com/msomdec/quill-blog/internal/repository/sqlite/migrations"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := openDB(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		return db.Close()
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "List migrations and whether they have been applied",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := sqlite.New(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer db.Close()

		list, err := migrations.Status(cmd.Context(), db.SqlDB)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, m := range list {
			if m.Applied {
				fmt.Fprintf(out, "applied  %s  %s\n", m.AppliedAt.Format("2006-01-02 15:04:05"), m.Filename)
			} else {
				fmt.Fprintf(out, "pending  %-19s  %s\n", "", m.Filename)
			}
		}
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(migrateCmd)
}
