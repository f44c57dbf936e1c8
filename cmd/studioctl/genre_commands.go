package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"studioctl/internal/api"
)

func newGenreCommand(ctx *commandContext) *cobra.Command {
	genreCmd := &cobra.Command{
		Use:   "genre",
		Short: "Browse idea genres",
	}

	genreCmd.AddCommand(newGenreListCommand(ctx))

	return genreCmd
}

func newGenreListCommand(ctx *commandContext) *cobra.Command {
	var includeInactive bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List genres with idea counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *api.Client) error {
				genres, err := client.ListGenres(cmd.Context(), includeInactive)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, genres)
				}
				if len(genres) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No genres defined")
					return nil
				}
				out := renderTable(
					[]string{"ID", "Name", "Slug", "Ideas", "Active"},
					buildGenreRows(genres),
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&includeInactive, "all", false, "Include inactive genres")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func buildGenreRows(genres []api.Genre) [][]string {
	rows := make([][]string, 0, len(genres))
	for _, genre := range genres {
		rows = append(rows, []string{
			shortID(genre.ID),
			genre.Name,
			genre.Slug,
			fmt.Sprintf("%d", genre.TotalIdeas),
			yesNo(genre.IsActive),
		})
	}
	return rows
}
