package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"studioctl/internal/api"
)

func newHealthCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *api.Client) error {
				base := client.Resolve("/", nil)
				status, err := client.Health(cmd.Context())
				if err != nil {
					if api.IsUnavailable(err) {
						return fmt.Errorf("backend at %s is not reachable", base)
					}
					return err
				}
				if asJSON {
					return writeJSON(cmd, status)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Backend at %s: %s", base, status.Status)
				if status.Version != "" {
					fmt.Fprintf(cmd.OutOrStdout(), " (version %s)", status.Version)
				}
				fmt.Fprintln(cmd.OutOrStdout())
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}
