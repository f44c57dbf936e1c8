package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"studioctl/internal/api"
)

func newSettingsCommand(ctx *commandContext) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect and change backend provider settings",
	}

	settingsCmd.AddCommand(newSettingsShowCommand(ctx))
	settingsCmd.AddCommand(newSettingsSetCommand(ctx))

	return settingsCmd
}

func newSettingsShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the selected providers and their connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *api.Client) error {
				settings, err := client.GetSettings(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, settings)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Music provider:  %s\n", settings.MusicProvider)
				fmt.Fprintf(out, "Visual provider: %s\n", settings.VisualProvider)
				if len(settings.Providers) > 0 {
					fmt.Fprintln(out)
					table := renderTable(
						[]string{"Provider", "Type", "Connected", "Selected"},
						buildProviderRows(settings.Providers),
						[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
					)
					fmt.Fprintln(out, table)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func newSettingsSetCommand(ctx *commandContext) *cobra.Command {
	var music string
	var visual string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the selected music or visual provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := api.UpdateSettingsRequest{}
			if cmd.Flags().Changed("music") {
				req.MusicProvider = &music
			}
			if cmd.Flags().Changed("visual") {
				req.VisualProvider = &visual
			}
			if req.MusicProvider == nil && req.VisualProvider == nil {
				return fmt.Errorf("nothing to change; pass --music or --visual")
			}
			return ctx.withClient(func(client *api.Client) error {
				settings, err := client.UpdateSettings(cmd.Context(), req)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Providers now: music=%s visual=%s\n",
					settings.MusicProvider, settings.VisualProvider)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&music, "music", "", "Music generation provider name")
	cmd.Flags().StringVar(&visual, "visual", "", "Visual generation provider name")
	return cmd
}

func buildProviderRows(providers []api.ProviderStatus) [][]string {
	rows := make([][]string, 0, len(providers))
	for _, p := range providers {
		rows = append(rows, []string{
			p.Name,
			p.Type,
			yesNo(p.Connected),
			yesNo(p.Selected),
		})
	}
	return rows
}
