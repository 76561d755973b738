package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Post log maintenance",
	}
	cmd.AddCommand(migrateCommand())
	return cmd
}

func migrateCommand() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Rewrite a JSON post log in the current shape into the configured backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, _, err := setup(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer application.Close()

			postLog, shape, err := application.MigrateStore(cmd.Context(), from)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %s store: %d posts, %d links\n",
				shape, postLog.PostsCount, len(postLog.PublishedLinks))
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "JSON file to read (default storage.path)")
	return cmd
}
