package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"studioctl/internal/api"
	"studioctl/internal/notify"
	"studioctl/internal/scrapecache"
)

func newScrapeCommand(ctx *commandContext) *cobra.Command {
	scrapeCmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape reference YouTube channels and analyze them",
	}

	scrapeCmd.AddCommand(newScrapeAddCommand(ctx))
	scrapeCmd.AddCommand(newScrapeListCommand(ctx))
	scrapeCmd.AddCommand(newScrapeShowCommand(ctx))
	scrapeCmd.AddCommand(newScrapeVideosCommand(ctx))
	scrapeCmd.AddCommand(newScrapeStatsCommand(ctx))
	scrapeCmd.AddCommand(newScrapeRefreshCommand(ctx))
	scrapeCmd.AddCommand(newScrapeRemoveCommand(ctx))
	scrapeCmd.AddCommand(newScrapeCacheCommand(ctx))

	return scrapeCmd
}

func newScrapeAddCommand(ctx *commandContext) *cobra.Command {
	var maxVideos int
	var wait bool

	cmd := &cobra.Command{
		Use:   "add <channel-url>",
		Short: "Submit a channel for scraping",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *api.Client) error {
				channel, err := client.ScrapeChannel(cmd.Context(), api.ScrapeChannelRequest{
					ChannelURL: args[0],
					MaxVideos:  maxVideos,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Scraping %s (#%d, status %s)\n",
					channel.ChannelName, channel.ID, channel.ScrapeStatus)
				if !wait {
					return nil
				}
				return ctx.waitForScrape(cmd, client, channel.ID)
			})
		},
	}

	cmd.Flags().IntVar(&maxVideos, "max-videos", 0, "Limit how many videos to scrape")
	cmd.Flags().BoolVar(&wait, "wait", false, "Block until the scrape finishes and send a notification")
	return cmd
}

// waitForScrape polls the channel until its scrape reaches a terminal status,
// then sends the configured push notification.
func (c *commandContext) waitForScrape(cmd *cobra.Command, client *api.Client, id int64) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-cmd.Context().Done():
			return cmd.Context().Err()
		case <-ticker.C:
		}
		channel, err := client.GetScrapedChannel(cmd.Context(), id)
		if err != nil {
			return err
		}
		switch channel.ScrapeStatus {
		case "completed":
			fmt.Fprintf(cmd.OutOrStdout(), "Scrape finished: %d videos\n", channel.VideoCountScraped)
			service := notify.NewService(cfg)
			if err := service.NotifyScrapeCompleted(cmd.Context(), channel.ChannelName, channel.VideoCountScraped); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "notification failed: %v\n", err)
			}
			return nil
		case "failed":
			service := notify.NewService(cfg)
			if err := service.NotifyScrapeFailed(cmd.Context(), channel.ChannelName, channel.ErrorMessage); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "notification failed: %v\n", err)
			}
			if channel.ErrorMessage != "" {
				return fmt.Errorf("scrape failed: %s", channel.ErrorMessage)
			}
			return fmt.Errorf("scrape failed")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %s (%d/%d videos)\n",
			channel.ScrapeStatus, channel.VideoCountScraped, channel.VideoCount)
	}
}

func newScrapeListCommand(ctx *commandContext) *cobra.Command {
	var status string
	var search string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scraped channels",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *api.Client) error {
				channels, err := client.ListScrapedChannels(cmd.Context(), api.ScrapedChannelFilter{
					Status: status,
					Search: search,
				})
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, channels)
				}
				if len(channels) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No scraped channels")
					return nil
				}
				out := renderTable(
					[]string{"#", "Channel", "Subs", "Videos", "Status"},
					buildScrapedChannelRows(channels),
					[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by scrape status")
	cmd.Flags().StringVar(&search, "search", "", "Search channel names")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func newScrapeShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <channel-number>",
		Short: "Show one scraped channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid channel number %q", args[0])
			}
			return ctx.withClient(func(client *api.Client) error {
				channel, err := client.GetScrapedChannel(cmd.Context(), id)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, channel)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Channel #%d: %s\n", channel.ID, channel.ChannelName)
				fmt.Fprintf(out, "  url:         %s\n", channel.ChannelURL)
				fmt.Fprintf(out, "  subscribers: %s\n", formatCount(channel.SubscriberCount))
				fmt.Fprintf(out, "  videos:      %d scraped of %d\n", channel.VideoCountScraped, channel.VideoCount)
				fmt.Fprintf(out, "  status:      %s\n", channel.ScrapeStatus)
				if channel.ErrorMessage != "" {
					fmt.Fprintf(out, "  error:       %s\n", channel.ErrorMessage)
				}
				if channel.LastScrapedAt != nil {
					fmt.Fprintf(out, "  last scrape: %s\n", channel.LastScrapedAt.Local().Format("2006-01-02 15:04"))
				}
				if channel.LinkedChannelID != "" {
					fmt.Fprintf(out, "  linked to:   %s\n", shortID(channel.LinkedChannelID))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func newScrapeVideosCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "videos <channel-number>",
		Short: "List a scraped channel's videos by view count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid channel number %q", args[0])
			}
			return ctx.withClient(func(client *api.Client) error {
				videos, err := client.ListScrapedVideos(cmd.Context(), id)
				if err != nil {
					return err
				}
				if limit > 0 && len(videos) > limit {
					videos = videos[:limit]
				}
				if len(videos) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No videos scraped for this channel")
					return nil
				}
				out := renderTable(
					[]string{"Video", "Views", "Duration", "Published"},
					buildScrapedVideoRows(videos),
					[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 25, "Maximum rows to show")
	return cmd
}

func newScrapeStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <channel-number>",
		Short: "Show aggregate analytics for a scraped channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid channel number %q", args[0])
			}
			return ctx.withClient(func(client *api.Client) error {
				stats, err := client.GetScrapeStats(cmd.Context(), id)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Channel #%d\n", stats.ChannelID)
				fmt.Fprintf(out, "  videos:        %d\n", stats.VideoCount)
				fmt.Fprintf(out, "  total views:   %d\n", stats.TotalViews)
				fmt.Fprintf(out, "  avg views:     %.0f\n", stats.AverageViews)
				fmt.Fprintf(out, "  avg duration:  %.0fs\n", stats.AverageDuration)
				if stats.TopVideoTitle != "" {
					fmt.Fprintf(out, "  top video:     %s\n", stats.TopVideoTitle)
				}
				return nil
			})
		},
	}
}

func newScrapeRefreshCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh <channel-number>",
		Short: "Rescrape an existing channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid channel number %q", args[0])
			}
			return ctx.withClient(func(client *api.Client) error {
				channel, err := client.RescrapeChannel(cmd.Context(), id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Rescraping %s (status %s)\n", channel.ChannelName, channel.ScrapeStatus)
				return nil
			})
		},
	}
}

func newScrapeRemoveCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove <channel-number>",
		Short: "Delete a scraped channel and its videos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid channel number %q", args[0])
			}
			if !force && !confirmPrompt(cmd, fmt.Sprintf("Delete scraped channel #%d?", id)) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
				return nil
			}
			return ctx.withClient(func(client *api.Client) error {
				if err := client.DeleteScrapedChannel(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted scraped channel #%d\n", id)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")
	return cmd
}

func newScrapeCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local scrape mirror",
	}

	cacheCmd.AddCommand(newScrapeCacheSyncCommand(ctx))
	cacheCmd.AddCommand(newScrapeCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newScrapeCacheClearCommand(ctx))

	return cacheCmd
}

func (c *commandContext) withCache(fn func(*scrapecache.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	if !cfg.Cache.Enabled {
		return fmt.Errorf("local cache is disabled in config")
	}
	store, err := scrapecache.Open(cfg.Cache.Dir)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func newScrapeCacheSyncCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Mirror all scraped channels into the local cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *api.Client) error {
				return ctx.withCache(func(store *scrapecache.Store) error {
					channels, err := client.ListScrapedChannels(cmd.Context(), api.ScrapedChannelFilter{})
					if err != nil {
						return err
					}
					for _, channel := range channels {
						videos, err := client.ListScrapedVideos(cmd.Context(), channel.ID)
						if err != nil {
							return fmt.Errorf("fetch videos for #%d: %w", channel.ID, err)
						}
						if err := store.Sync(cmd.Context(), channel, videos); err != nil {
							return fmt.Errorf("cache #%d: %w", channel.ID, err)
						}
						fmt.Fprintf(cmd.OutOrStdout(), "Cached %s (%d videos)\n", channel.ChannelName, len(videos))
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Mirrored %d channels to %s\n", len(channels), store.Path())
					return nil
				})
			})
		},
	}
}

func newScrapeCacheStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <channel-number>",
		Short: "Show analytics from the local cache (works offline)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid channel number %q", args[0])
			}
			return ctx.withCache(func(store *scrapecache.Store) error {
				stats, err := store.Stats(cmd.Context(), id)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Channel #%d (cached)\n", stats.ChannelID)
				fmt.Fprintf(out, "  videos:        %d\n", stats.VideoCount)
				fmt.Fprintf(out, "  total views:   %d\n", stats.TotalViews)
				fmt.Fprintf(out, "  avg views:     %.0f\n", stats.AverageViews)
				fmt.Fprintf(out, "  avg duration:  %.0fs\n", stats.AverageDuration)
				if stats.TopVideoTitle != "" {
					fmt.Fprintf(out, "  top video:     %s\n", stats.TopVideoTitle)
				}
				return nil
			})
		},
	}
}

func newScrapeCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop all locally cached scrape data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCache(func(store *scrapecache.Store) error {
				if err := store.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared")
				return nil
			})
		},
	}
}

func buildScrapedChannelRows(channels []api.ScrapedChannel) [][]string {
	rows := make([][]string, 0, len(channels))
	for _, ch := range channels {
		rows = append(rows, []string{
			strconv.FormatInt(ch.ID, 10),
			ch.ChannelName,
			formatCount(ch.SubscriberCount),
			fmt.Sprintf("%d/%d", ch.VideoCountScraped, ch.VideoCount),
			ch.ScrapeStatus,
		})
	}
	return rows
}

func buildScrapedVideoRows(videos []api.ScrapedVideo) [][]string {
	rows := make([][]string, 0, len(videos))
	for _, v := range videos {
		published := ""
		if v.PublishedAt != nil {
			published = v.PublishedAt.Local().Format("2006-01-02")
		}
		rows = append(rows, []string{
			v.Title,
			formatCount(v.ViewCount),
			formatDuration(v.DurationSeconds),
			published,
		})
	}
	return rows
}

func formatCount(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.FormatInt(n, 10)
	}
}

func formatDuration(seconds int64) string {
	if seconds <= 0 {
		return ""
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
