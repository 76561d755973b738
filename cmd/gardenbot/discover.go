package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"GardenBot/internal/dates"
	"GardenBot/internal/domain"
)

func discoverCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "discover",
		Short: "List the candidates the next run would choose from",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, _, err := setup(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer application.Close()

			found, err := application.Discover(cmd.Context())
			if err != nil {
				return err
			}
			renderCandidates(cmd.OutOrStdout(), found)
			return nil
		},
	}
}

func renderCandidates(w io.Writer, found []domain.Candidate) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Published", "Source", "URL"})

	for i, c := range found {
		published := "-"
		if c.HasDate {
			published = dates.FormatDayMonthYear(c.PublishedAt)
		}
		t.AppendRow(table.Row{i + 1, published, c.Source, c.URL})
	}
	t.AppendFooter(table.Row{"", "", "total", fmt.Sprint(len(found))})
	t.Render()
}
