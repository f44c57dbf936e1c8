package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"studioctl/internal/api"
)

func newChannelCommand(ctx *commandContext) *cobra.Command {
	channelCmd := &cobra.Command{
		Use:   "channel",
		Short: "Manage destination YouTube channels",
	}

	channelCmd.AddCommand(newChannelListCommand(ctx))
	channelCmd.AddCommand(newChannelShowCommand(ctx))
	channelCmd.AddCommand(newChannelAddCommand(ctx))
	channelCmd.AddCommand(newChannelUpdateCommand(ctx))
	channelCmd.AddCommand(newChannelRemoveCommand(ctx))

	return channelCmd
}

func newChannelListCommand(ctx *commandContext) *cobra.Command {
	var activeOnly bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List channels",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *api.Client) error {
				channels, err := client.ListChannels(cmd.Context(), activeOnly)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, channels)
				}
				if len(channels) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No channels configured")
					return nil
				}
				rows := buildChannelRows(channels)
				out := renderTable(
					[]string{"ID", "Name", "Niche", "Active", "Created"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "Only show active channels")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func newChannelShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <channel-id>",
		Short: "Show one channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *api.Client) error {
				channel, err := client.GetChannel(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, channel)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s (%s)\n", channel.Name, channel.ID)
				fmt.Fprintf(out, "  niche:    %s\n", channel.BrandNiche)
				if channel.YouTubeChannelID != "" {
					fmt.Fprintf(out, "  youtube:  %s\n", channel.YouTubeChannelID)
				}
				fmt.Fprintf(out, "  active:   %s\n", yesNo(channel.IsActive))
				fmt.Fprintf(out, "  created:  %s\n", channel.CreatedAt.Local().Format(time.RFC1123))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func newChannelAddCommand(ctx *commandContext) *cobra.Command {
	var youtubeID string
	var niche string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *api.Client) error {
				channel, err := client.CreateChannel(cmd.Context(), api.CreateChannelRequest{
					Name:             strings.TrimSpace(args[0]),
					YouTubeChannelID: strings.TrimSpace(youtubeID),
					BrandNiche:       strings.TrimSpace(niche),
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created channel %s (%s)\n", channel.Name, channel.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&youtubeID, "youtube-id", "", "YouTube channel id")
	cmd.Flags().StringVar(&niche, "niche", "", "Brand niche (required)")
	_ = cmd.MarkFlagRequired("niche")
	return cmd
}

func newChannelUpdateCommand(ctx *commandContext) *cobra.Command {
	var name string
	var niche string
	var active string

	cmd := &cobra.Command{
		Use:   "update <channel-id>",
		Short: "Update channel fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := api.UpdateChannelRequest{}
			if cmd.Flags().Changed("name") {
				req.Name = &name
			}
			if cmd.Flags().Changed("niche") {
				req.BrandNiche = &niche
			}
			if cmd.Flags().Changed("active") {
				parsed, err := parseBoolFlag(active)
				if err != nil {
					return err
				}
				req.IsActive = &parsed
			}
			if req.Name == nil && req.BrandNiche == nil && req.IsActive == nil {
				return fmt.Errorf("nothing to update: pass --name, --niche, or --active")
			}
			return ctx.withClient(func(client *api.Client) error {
				channel, err := client.UpdateChannel(cmd.Context(), args[0], req)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated channel %s\n", channel.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New channel name")
	cmd.Flags().StringVar(&niche, "niche", "", "New brand niche")
	cmd.Flags().StringVar(&active, "active", "", "Set active state (yes/no)")
	return cmd
}

func newChannelRemoveCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove <channel-id>",
		Short: "Delete a channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force && !confirmPrompt(cmd, fmt.Sprintf("Delete channel %s?", args[0])) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
				return nil
			}
			return ctx.withClient(func(client *api.Client) error {
				if err := client.DeleteChannel(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted channel %s\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")
	return cmd
}

func buildChannelRows(channels []api.Channel) [][]string {
	rows := make([][]string, 0, len(channels))
	for _, ch := range channels {
		rows = append(rows, []string{
			shortID(ch.ID),
			ch.Name,
			ch.BrandNiche,
			yesNo(ch.IsActive),
			ch.CreatedAt.Local().Format("2006-01-02"),
		})
	}
	return rows
}
