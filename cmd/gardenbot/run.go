package main

import (
	"github.com/spf13/cobra"
)

func runCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Discover, pick and publish one article (or the periodic tip)",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, logger, err := setup(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer application.Close()

			res, err := application.Run(cmd.Context(), dryRun)
			if err != nil {
				return err
			}
			logger.Info("run finished",
				"run_id", res.RunID,
				"outcome", res.Outcome,
				"stage", res.Stage,
				"url", res.URL,
				"discovered", res.Discovered,
				"eligible", res.Eligible,
			)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "log the formatted message instead of publishing it")
	return cmd
}
