package main

import (
	"fmt"

	"github.com/msomdec/quill-blog/internal/seed"
	"github.com/msomdec/quill-blog/internal/service"
	"github.com/spf13/cobra"
)

var seedOpts seed.Options

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create an admin account and demo posts",
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
		defer db.Close()

		seeder := seed.NewSeeder(
			service.NewAuthService(db.Users(), cfg.JWTSecret, cfg.BcryptCost),
			service.NewPostService(db.Posts()),
			service.NewCommentService(db.Comments(), db.Posts()),
			nil,
		)
		res, err := seeder.Run(cmd.Context(), seedOpts)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "admin %s: %d posts created, %d skipped, %d comments\n",
			res.Admin.Email, res.Created, res.Skipped, res.Comments)
		return nil
	},
}

func init() {
	f := seedCmd.Flags()
	f.IntVar(&seedOpts.Posts, "posts", 10, "number of demo posts to create")
	f.StringVar(&seedOpts.AdminEmail, "admin-email", "admin@example.com", "email of the admin account to create or promote")
	f.StringVar(&seedOpts.AdminName, "admin-name", "Admin", "display name for a newly created admin")
	f.StringVar(&seedOpts.AdminPassword, "admin-password", "", "password for a newly created admin")
	f.IntVar(&seedOpts.MaxDays, "max-days", 90, "spread post dates over this many past days")
	f.Int64Var(&seedOpts.Seed, "seed", 0, "random seed for reproducible content (0 = random)")
	rootCmd.AddCommand(seedCmd)
}
