package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"studioctl/internal/api"
)

func newJobCommand(ctx *commandContext) *cobra.Command {
	jobCmd := &cobra.Command{
		Use:   "job",
		Short: "Manage video generation jobs",
	}

	jobCmd.AddCommand(newJobListCommand(ctx))
	jobCmd.AddCommand(newJobShowCommand(ctx))
	jobCmd.AddCommand(newJobCreateCommand(ctx))
	jobCmd.AddCommand(newJobCancelCommand(ctx))
	jobCmd.AddCommand(newJobRetryCommand(ctx))
	jobCmd.AddCommand(newJobRemoveCommand(ctx))

	return jobCmd
}

func newJobListCommand(ctx *commandContext) *cobra.Command {
	var channelID string
	var statusFilter string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := api.JobFilter{ChannelID: channelID}
			if statusFilter != "" {
				status, ok := api.ParseJobStatus(statusFilter)
				if !ok {
					return fmt.Errorf("unknown status %q", statusFilter)
				}
				filter.Status = status
			}
			return ctx.withClient(func(client *api.Client) error {
				jobs, err := client.ListJobs(cmd.Context(), filter)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, jobs)
				}
				if len(jobs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No jobs found")
					return nil
				}
				colorize := colorizeEnabled(cmd.OutOrStdout())
				out := renderTable(
					[]string{"ID", "Status", "Niche", "Duration", "Updated"},
					buildJobRows(jobs, colorize),
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&channelID, "channel", "", "Filter by channel id")
	cmd.Flags().StringVar(&statusFilter, "status", "", "Filter by status")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func newJobShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <job-id>",
		Short: "Show a job with its generated assets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *api.Client) error {
				job, err := client.GetJob(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, job)
				}
				printJobDetail(cmd, job)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func printJobDetail(cmd *cobra.Command, job api.VideoJobDetail) {
	out := cmd.OutOrStdout()
	colorize := colorizeEnabled(out)
	fmt.Fprintf(out, "Job %s\n", job.ID)
	fmt.Fprintf(out, "  status:    %s\n", renderJobStatus(job.Status, colorize))
	fmt.Fprintf(out, "  channel:   %s\n", job.ChannelID)
	fmt.Fprintf(out, "  niche:     %s\n", job.NicheLabel)
	if job.MoodKeywords != "" {
		fmt.Fprintf(out, "  mood:      %s\n", job.MoodKeywords)
	}
	fmt.Fprintf(out, "  duration:  %d min\n", job.TargetDurationMinutes)
	if job.OutputDirectory != "" {
		fmt.Fprintf(out, "  output:    %s\n", job.OutputDirectory)
	}
	if job.LocalVideoPath != "" {
		fmt.Fprintf(out, "  video:     %s\n", job.LocalVideoPath)
	}
	if job.ErrorMessage != "" {
		fmt.Fprintf(out, "  error:     %s\n", job.ErrorMessage)
	}
	fmt.Fprintf(out, "  updated:   %s\n", job.UpdatedAt.Local().Format(time.RFC1123))

	if len(job.AudioTracks) > 0 {
		fmt.Fprintf(out, "  tracks (%d):\n", len(job.AudioTracks))
		for _, track := range job.AudioTracks {
			fmt.Fprintf(out, "    %2d. [%s] %s\n", track.OrderIndex+1, track.Status, trimPrompt(track.PromptText))
		}
	}
	if len(job.Images) > 0 {
		selected := 0
		for _, img := range job.Images {
			if img.IsSelected {
				selected++
			}
		}
		fmt.Fprintf(out, "  images:    %d generated, %d selected\n", len(job.Images), selected)
	}
	if len(job.RenderTasks) > 0 {
		fmt.Fprintf(out, "  renders:\n")
		for _, render := range job.RenderTasks {
			fmt.Fprintf(out, "    [%s] %s\n", render.Status, render.Resolution)
		}
	}
}

func newJobCreateCommand(ctx *commandContext) *cobra.Command {
	var channelID string
	var ideaID string
	var niche string
	var mood string
	var duration int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Queue a new pipeline run",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *api.Client) error {
				job, err := client.CreateJob(cmd.Context(), api.CreateJobRequest{
					ChannelID:             strings.TrimSpace(channelID),
					IdeaID:                strings.TrimSpace(ideaID),
					NicheLabel:            strings.TrimSpace(niche),
					MoodKeywords:          strings.TrimSpace(mood),
					TargetDurationMinutes: duration,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Queued job %s (%s)\n", job.ID, job.Status)
				fmt.Fprintf(cmd.OutOrStdout(), "Follow it with: studioctl watch %s\n", job.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&channelID, "channel", "", "Destination channel id (required)")
	cmd.Flags().StringVar(&ideaID, "idea", "", "Seed the job from an idea")
	cmd.Flags().StringVar(&niche, "niche", "", "Niche label (required)")
	cmd.Flags().StringVar(&mood, "mood", "", "Mood keywords")
	cmd.Flags().IntVar(&duration, "duration", 70, "Target duration in minutes (60-90)")
	_ = cmd.MarkFlagRequired("channel")
	_ = cmd.MarkFlagRequired("niche")
	return cmd
}

func newJobCancelCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "cancel <job-id>",
		Short: "Cancel an active job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force && !confirmPrompt(cmd, fmt.Sprintf("Cancel job %s?", shortID(args[0]))) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
				return nil
			}
			return ctx.withClient(func(client *api.Client) error {
				job, err := client.CancelJob(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Job %s is now %s\n", shortID(job.ID), job.Status)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")
	return cmd
}

func newJobRetryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "retry <job-id>",
		Short: "Requeue a failed job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *api.Client) error {
				job, err := client.RetryJob(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Job %s requeued (%s)\n", shortID(job.ID), job.Status)
				return nil
			})
		},
	}
}

func newJobRemoveCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove <job-id>",
		Short: "Delete a finished job and its records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force && !confirmPrompt(cmd, fmt.Sprintf("Delete job %s?", shortID(args[0]))) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
				return nil
			}
			return ctx.withClient(func(client *api.Client) error {
				if err := client.DeleteJob(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted job %s\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")
	return cmd
}

func buildJobRows(jobs []api.VideoJob, colorize bool) [][]string {
	rows := make([][]string, 0, len(jobs))
	for _, job := range jobs {
		rows = append(rows, []string{
			shortID(job.ID),
			renderJobStatus(job.Status, colorize),
			job.NicheLabel,
			fmt.Sprintf("%d min", job.TargetDurationMinutes),
			job.UpdatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	return rows
}

func trimPrompt(prompt string) string {
	prompt = strings.TrimSpace(prompt)
	if len(prompt) > 60 {
		return prompt[:57] + "..."
	}
	return prompt
}
