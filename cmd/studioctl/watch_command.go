package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"studioctl/internal/api"
	"studioctl/internal/logging"
	"studioctl/internal/notify"
	"studioctl/internal/progress"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var noNotify bool

	cmd := &cobra.Command{
		Use:   "watch <job-id>",
		Short: "Follow a job's live progress until it finishes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := ctx.apiClient()
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			jobID := args[0]
			detail, err := client.GetJob(runCtx, jobID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := colorizeEnabled(out)
			fmt.Fprintf(out, "Watching %s (%s)\n", shortID(detail.ID), detail.NicheLabel)
			fmt.Fprintf(out, "  status: %s\n\n", renderJobStatus(detail.Status, colorize))

			if detail.Status.IsTerminal() {
				fmt.Fprintln(out, "Job already finished")
				return nil
			}

			done := make(chan api.JobStatus, 1)
			sub := progress.New(client, jobID, progress.Options{
				OnEvent: func(event api.ProgressEvent) {
					fmt.Fprintln(out, renderProgressLine(event, colorize))
				},
				OnComplete: func(status api.JobStatus) {
					done <- status
				},
				OnConnectionChange: func(connected bool) {
					if !connected {
						fmt.Fprintln(out, "  (connection lost, retrying...)")
					}
				},
				ReconnectInitial: time.Duration(cfg.Stream.ReconnectInitialSeconds) * time.Second,
				ReconnectMax:     time.Duration(cfg.Stream.ReconnectMaxSeconds) * time.Second,
				Logger:           logging.WithComponent(slog.Default(), "progress"),
			})
			if err := sub.Start(runCtx); err != nil {
				return err
			}
			defer sub.Stop()

			var final api.JobStatus
			select {
			case final = <-done:
			case <-runCtx.Done():
				return context.Canceled
			}

			fmt.Fprintf(out, "\nJob %s finished: %s\n", shortID(jobID), renderJobStatus(final, colorize))

			if !noNotify {
				service := notify.NewService(cfg)
				notifyCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				var notifyErr error
				switch final {
				case api.StatusCompleted:
					notifyErr = service.NotifyJobCompleted(notifyCtx, jobID, detail.NicheLabel)
				case api.StatusFailed:
					notifyErr = service.NotifyJobFailed(notifyCtx, jobID, detail.NicheLabel, detail.ErrorMessage)
				case api.StatusCancelled:
					notifyErr = service.NotifyJobCancelled(notifyCtx, jobID, detail.NicheLabel)
				}
				if notifyErr != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "notification failed: %v\n", notifyErr)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noNotify, "no-notify", false, "Skip the completion notification")
	return cmd
}
