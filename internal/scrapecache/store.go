// Package scrapecache keeps a local SQLite mirror of scraped channel data so
// analytics queries work offline and repeat lookups skip the backend.
package scrapecache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"studioctl/internal/api"
)

// Store is the local scrape mirror backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the cache database under dir. A file lock
// serializes writers across concurrent studioctl processes.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	dbPath := filepath.Join(dir, "scrape.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{
		db:   db,
		path: dbPath,
		lock: flock.New(filepath.Join(dir, "scrape.lock")),
	}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Sync replaces the cached rows for one channel with fresh backend data.
func (s *Store) Sync(ctx context.Context, channel api.ScrapedChannel, videos []api.ScrapedVideo) error {
	locked, err := s.lock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("acquire cache lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("cache lock held by another process")
	}
	defer func() { _ = s.lock.Unlock() }()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin sync tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO scraped_channels (
            id, youtube_channel_id, channel_name, channel_url, description,
            subscriber_count, video_count, video_count_scraped,
            scrape_status, error_message, last_scraped_at, synced_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            channel_name = excluded.channel_name,
            channel_url = excluded.channel_url,
            description = excluded.description,
            subscriber_count = excluded.subscriber_count,
            video_count = excluded.video_count,
            video_count_scraped = excluded.video_count_scraped,
            scrape_status = excluded.scrape_status,
            error_message = excluded.error_message,
            last_scraped_at = excluded.last_scraped_at,
            synced_at = excluded.synced_at`,
		channel.ID,
		channel.YouTubeChannelID,
		channel.ChannelName,
		channel.ChannelURL,
		nullableString(channel.Description),
		channel.SubscriberCount,
		channel.VideoCount,
		channel.VideoCountScraped,
		channel.ScrapeStatus,
		nullableString(channel.ErrorMessage),
		nullableTime(channel.LastScrapedAt),
		now,
	)
	if err != nil {
		return fmt.Errorf("upsert channel: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM scraped_videos WHERE scraped_channel_id = ?", channel.ID); err != nil {
		return fmt.Errorf("clear channel videos: %w", err)
	}
	for _, video := range videos {
		var tagsJSON any
		if len(video.Tags) > 0 {
			encoded, err := json.Marshal(video.Tags)
			if err != nil {
				return fmt.Errorf("encode tags: %w", err)
			}
			tagsJSON = string(encoded)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO scraped_videos (
                id, scraped_channel_id, youtube_video_id, title, video_url,
                thumbnail_url, published_at, duration_seconds,
                view_count, like_count, comment_count, tags_json
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			video.ID,
			channel.ID,
			video.YouTubeVideoID,
			video.Title,
			video.VideoURL,
			nullableString(video.ThumbnailURL),
			nullableTime(video.PublishedAt),
			video.DurationSeconds,
			video.ViewCount,
			video.LikeCount,
			video.CommentCount,
			tagsJSON,
		)
		if err != nil {
			return fmt.Errorf("insert video %s: %w", video.YouTubeVideoID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit sync: %w", err)
	}
	return nil
}

// ListChannels returns cached channels, optionally filtered by scrape status.
func (s *Store) ListChannels(ctx context.Context, status string) ([]api.ScrapedChannel, error) {
	query := `SELECT id, youtube_channel_id, channel_name, channel_url,
        COALESCE(description, ''), subscriber_count, video_count,
        video_count_scraped, scrape_status, COALESCE(error_message, ''),
        last_scraped_at
        FROM scraped_channels`
	args := []any{}
	if status != "" {
		query += " WHERE scrape_status = ?"
		args = append(args, status)
	}
	query += " ORDER BY subscriber_count DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cached channels: %w", err)
	}
	defer rows.Close()

	var channels []api.ScrapedChannel
	for rows.Next() {
		var ch api.ScrapedChannel
		var lastScraped sql.NullString
		if err := rows.Scan(
			&ch.ID, &ch.YouTubeChannelID, &ch.ChannelName, &ch.ChannelURL,
			&ch.Description, &ch.SubscriberCount, &ch.VideoCount,
			&ch.VideoCountScraped, &ch.ScrapeStatus, &ch.ErrorMessage,
			&lastScraped,
		); err != nil {
			return nil, fmt.Errorf("scan cached channel: %w", err)
		}
		ch.LastScrapedAt = parseNullableTime(lastScraped)
		channels = append(channels, ch)
	}
	return channels, rows.Err()
}

// ListVideos returns the cached videos of one channel, most viewed first.
func (s *Store) ListVideos(ctx context.Context, channelID int64) ([]api.ScrapedVideo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, scraped_channel_id, youtube_video_id, title, video_url,
            COALESCE(thumbnail_url, ''), published_at,
            COALESCE(duration_seconds, 0), COALESCE(view_count, 0),
            COALESCE(like_count, 0), COALESCE(comment_count, 0), tags_json
        FROM scraped_videos WHERE scraped_channel_id = ?
        ORDER BY view_count DESC`,
		channelID,
	)
	if err != nil {
		return nil, fmt.Errorf("list cached videos: %w", err)
	}
	defer rows.Close()

	var videos []api.ScrapedVideo
	for rows.Next() {
		var v api.ScrapedVideo
		var published, tagsJSON sql.NullString
		if err := rows.Scan(
			&v.ID, &v.ScrapedChannelID, &v.YouTubeVideoID, &v.Title, &v.VideoURL,
			&v.ThumbnailURL, &published, &v.DurationSeconds,
			&v.ViewCount, &v.LikeCount, &v.CommentCount, &tagsJSON,
		); err != nil {
			return nil, fmt.Errorf("scan cached video: %w", err)
		}
		v.PublishedAt = parseNullableTime(published)
		if tagsJSON.Valid && tagsJSON.String != "" {
			if err := json.Unmarshal([]byte(tagsJSON.String), &v.Tags); err != nil {
				return nil, fmt.Errorf("decode tags: %w", err)
			}
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

// Stats aggregates analytics over one channel's cached videos.
func (s *Store) Stats(ctx context.Context, channelID int64) (api.ScrapeStats, error) {
	stats := api.ScrapeStats{ChannelID: channelID}
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1), COALESCE(SUM(view_count), 0),
            COALESCE(AVG(view_count), 0), COALESCE(AVG(duration_seconds), 0)
        FROM scraped_videos WHERE scraped_channel_id = ?`,
		channelID,
	).Scan(&stats.VideoCount, &stats.TotalViews, &stats.AverageViews, &stats.AverageDuration)
	if err != nil {
		return api.ScrapeStats{}, fmt.Errorf("aggregate stats: %w", err)
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT youtube_video_id, title FROM scraped_videos
        WHERE scraped_channel_id = ? ORDER BY view_count DESC LIMIT 1`,
		channelID,
	)
	var topID, topTitle string
	switch err := row.Scan(&topID, &topTitle); err {
	case nil:
		stats.TopVideoID = topID
		stats.TopVideoTitle = topTitle
	case sql.ErrNoRows:
	default:
		return api.ScrapeStats{}, fmt.Errorf("top video: %w", err)
	}
	return stats, nil
}

// Clear drops all cached rows.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM scraped_videos"); err != nil {
		return fmt.Errorf("clear videos: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM scraped_channels"); err != nil {
		return fmt.Errorf("clear channels: %w", err)
	}
	return nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return value.UTC().Format(time.RFC3339Nano)
}

func parseNullableTime(value sql.NullString) *time.Time {
	if !value.Valid || value.String == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, value.String)
	if err != nil {
		return nil
	}
	return &parsed
}
