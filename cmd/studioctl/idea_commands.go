package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"studioctl/internal/api"
)

func newIdeaCommand(ctx *commandContext) *cobra.Command {
	ideaCmd := &cobra.Command{
		Use:   "idea",
		Short: "Manage video idea templates",
	}

	ideaCmd.AddCommand(newIdeaListCommand(ctx))
	ideaCmd.AddCommand(newIdeaShowCommand(ctx))
	ideaCmd.AddCommand(newIdeaAddCommand(ctx))
	ideaCmd.AddCommand(newIdeaCloneCommand(ctx))
	ideaCmd.AddCommand(newIdeaArchiveCommand(ctx))
	ideaCmd.AddCommand(newIdeaPromptsCommand(ctx))

	return ideaCmd
}

func newIdeaListCommand(ctx *commandContext) *cobra.Command {
	var genreID string
	var search string
	var includeArchived bool
	var templatesOnly bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ideas",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *api.Client) error {
				ideas, err := client.ListIdeas(cmd.Context(), api.IdeaFilter{
					GenreID:         genreID,
					Search:          search,
					IncludeArchived: includeArchived,
					TemplatesOnly:   templatesOnly,
				})
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, ideas)
				}
				if len(ideas) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No ideas found")
					return nil
				}
				out := renderTable(
					[]string{"ID", "Title", "Niche", "Duration", "Tracks", "Used"},
					buildIdeaRows(ideas),
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
				)
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&genreID, "genre", "", "Filter by genre id")
	cmd.Flags().StringVar(&search, "search", "", "Search titles and niches")
	cmd.Flags().BoolVar(&includeArchived, "archived", false, "Include archived ideas")
	cmd.Flags().BoolVar(&templatesOnly, "templates", false, "Only show templates")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func newIdeaShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <idea-id>",
		Short: "Show one idea with its prompts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *api.Client) error {
				idea, err := client.GetIdea(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, idea)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s (%s)\n", idea.Title, idea.ID)
				if idea.Genre != nil {
					fmt.Fprintf(out, "  genre:     %s\n", idea.Genre.Name)
				}
				fmt.Fprintf(out, "  niche:     %s\n", idea.NicheLabel)
				if len(idea.MoodTags) > 0 {
					fmt.Fprintf(out, "  mood:      %s\n", strings.Join(idea.MoodTags, ", "))
				}
				fmt.Fprintf(out, "  duration:  %d min\n", idea.TargetDurationMinutes)
				fmt.Fprintf(out, "  tracks:    %d\n", idea.NumTracks)
				fmt.Fprintf(out, "  template:  %s\n", yesNo(idea.IsTemplate))
				fmt.Fprintf(out, "  used:      %d times\n", idea.TimesUsed)
				if idea.Prompts != nil {
					fmt.Fprintf(out, "  prompts:   %d music / %d visual (generated %s)\n",
						len(idea.Prompts.MusicPrompts), len(idea.Prompts.VisualPrompts),
						idea.Prompts.GeneratedAt.Local().Format("2006-01-02 15:04"))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func newIdeaAddCommand(ctx *commandContext) *cobra.Command {
	var genreID string
	var niche string
	var description string
	var moodTags string
	var duration int
	var tracks int
	var template bool

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create an idea",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *api.Client) error {
				idea, err := client.CreateIdea(cmd.Context(), api.CreateIdeaRequest{
					GenreID:               strings.TrimSpace(genreID),
					Title:                 strings.TrimSpace(args[0]),
					Description:           strings.TrimSpace(description),
					NicheLabel:            strings.TrimSpace(niche),
					MoodTags:              splitCommaList(moodTags),
					TargetDurationMinutes: duration,
					NumTracks:             tracks,
					IsTemplate:            template,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created idea %s (%s)\n", idea.Title, idea.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&genreID, "genre", "", "Genre id (required)")
	cmd.Flags().StringVar(&niche, "niche", "", "Niche label (required)")
	cmd.Flags().StringVar(&description, "description", "", "Longer description")
	cmd.Flags().StringVar(&moodTags, "mood", "", "Comma-separated mood tags")
	cmd.Flags().IntVar(&duration, "duration", 70, "Target duration in minutes (60-120)")
	cmd.Flags().IntVar(&tracks, "tracks", 20, "Number of tracks (10-30)")
	cmd.Flags().BoolVar(&template, "template", false, "Save as reusable template")
	_ = cmd.MarkFlagRequired("genre")
	_ = cmd.MarkFlagRequired("niche")
	return cmd
}

func newIdeaCloneCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clone <idea-id>",
		Short: "Duplicate an idea",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *api.Client) error {
				idea, err := client.CloneIdea(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cloned into %s (%s)\n", idea.Title, idea.ID)
				return nil
			})
		},
	}
}

func newIdeaArchiveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "archive <idea-id>",
		Short: "Archive an idea",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *api.Client) error {
				if err := client.ArchiveIdea(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Archived idea %s\n", args[0])
				return nil
			})
		},
	}
}

func newIdeaPromptsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "prompts <idea-id>",
		Short: "Generate music and visual prompts for an idea",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *api.Client) error {
				prompts, err := client.GenerateIdeaPrompts(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "Music prompts:")
				for i, p := range prompts.MusicPrompts {
					fmt.Fprintf(out, "  %2d. %s\n", i+1, p)
				}
				fmt.Fprintln(out, "Visual prompts:")
				for i, p := range prompts.VisualPrompts {
					fmt.Fprintf(out, "  %2d. %s\n", i+1, p)
				}
				return nil
			})
		},
	}
}

func buildIdeaRows(ideas []api.VideoIdea) [][]string {
	rows := make([][]string, 0, len(ideas))
	for _, idea := range ideas {
		rows = append(rows, []string{
			shortID(idea.ID),
			idea.Title,
			idea.NicheLabel,
			fmt.Sprintf("%d min", idea.TargetDurationMinutes),
			fmt.Sprintf("%d", idea.NumTracks),
			fmt.Sprintf("%d", idea.TimesUsed),
		})
	}
	return rows
}
