package main

import (
	"fmt"

	"github.com/msomdec/quill-blog/internal/seed"
	"github.com/msomdec/quill-blog/internal/service"
	"github.com/spf13/cobra"
)

var importAuthor string

var importCmd = &cobra.Command{
	Use:   "import <file-or-url>",
	Short: "Import posts from a JSON export",
	Long: `Import reads a JSON array of posts, each with title, subtitle, body,
image_url (or img_url) and an optional date, and creates them as the
given admin. Posts whose title already exists are skipped.`,
	Args: cobra.ExactArgs(1),
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

		author, err := db.Users().GetByEmail(cmd.Context(), service.NormalizeEmail(importAuthor))
		if err != nil {
			return fmt.Errorf("find author %q: %w", importAuthor, err)
		}
		if !author.IsAdmin {
			return fmt.Errorf("author %q is not an admin; run `quill admin grant %s` first", author.Email, author.Email)
		}
		importer := seed.NewImporter(service.NewPostService(db.Posts()), nil, nil)
		rc, err := importer.Open(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		defer rc.Close()

		res, err := importer.Import(cmd.Context(), author, rc)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d posts imported, %d skipped\n", res.Created, res.Skipped)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importAuthor, "author", "", "email of the admin who will own the imported posts")
	importCmd.MarkFlagRequired("author")
	rootCmd.AddCommand(importCmd)
}
