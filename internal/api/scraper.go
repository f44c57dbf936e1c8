package api

import (
	"context"
	"net/url"
	"strconv"
)

// ScrapeChannelRequest asks the backend to scrape one YouTube channel.
type ScrapeChannelRequest struct {
	ChannelURL string `json:"channel_url" validate:"required,url"`
	MaxVideos  int    `json:"max_videos,omitempty" validate:"omitempty,gte=1,lte=500"`
}

// ScrapedChannelFilter narrows ListScrapedChannels results.
type ScrapedChannelFilter struct {
	Status string
	Search string
}

// ListScrapedChannels returns scraped channel records.
func (c *Client) ListScrapedChannels(ctx context.Context, filter ScrapedChannelFilter) ([]ScrapedChannel, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	var channels []ScrapedChannel
	if err := c.getJSON(ctx, "/api/scraper/channels", query, &channels); err != nil {
		return nil, err
	}
	return channels, nil
}

// GetScrapedChannel fetches one scraped channel record.
func (c *Client) GetScrapedChannel(ctx context.Context, id int64) (ScrapedChannel, error) {
	var channel ScrapedChannel
	if err := c.getJSON(ctx, "/api/scraper/channels/"+strconv.FormatInt(id, 10), nil, &channel); err != nil {
		return ScrapedChannel{}, err
	}
	return channel, nil
}

// ListScrapedVideos returns the videos captured for a scraped channel.
func (c *Client) ListScrapedVideos(ctx context.Context, channelID int64) ([]ScrapedVideo, error) {
	var videos []ScrapedVideo
	path := "/api/scraper/channels/" + strconv.FormatInt(channelID, 10) + "/videos"
	if err := c.getJSON(ctx, path, nil, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// ScrapeChannel submits a channel URL for scraping.
func (c *Client) ScrapeChannel(ctx context.Context, req ScrapeChannelRequest) (ScrapedChannel, error) {
	if err := ValidateRequest(req); err != nil {
		return ScrapedChannel{}, err
	}
	var channel ScrapedChannel
	if err := c.postJSON(ctx, "/api/scraper/channels", req, &channel); err != nil {
		return ScrapedChannel{}, err
	}
	return channel, nil
}

// RescrapeChannel refreshes an existing scraped channel.
func (c *Client) RescrapeChannel(ctx context.Context, id int64) (ScrapedChannel, error) {
	var channel ScrapedChannel
	path := "/api/scraper/channels/" + strconv.FormatInt(id, 10) + "/rescrape"
	if err := c.postJSON(ctx, path, nil, &channel); err != nil {
		return ScrapedChannel{}, err
	}
	return channel, nil
}

// DeleteScrapedChannel removes a scraped channel and its videos.
func (c *Client) DeleteScrapedChannel(ctx context.Context, id int64) error {
	return c.deleteJSON(ctx, "/api/scraper/channels/"+strconv.FormatInt(id, 10))
}

// GetScrapeStats returns aggregate analytics for a scraped channel.
func (c *Client) GetScrapeStats(ctx context.Context, id int64) (ScrapeStats, error) {
	var stats ScrapeStats
	path := "/api/scraper/channels/" + strconv.FormatInt(id, 10) + "/stats"
	if err := c.getJSON(ctx, path, nil, &stats); err != nil {
		return ScrapeStats{}, err
	}
	return stats, nil
}
