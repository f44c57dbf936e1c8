package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// CreateChannelRequest is the payload for registering a channel.
type CreateChannelRequest struct {
	Name             string `json:"name" validate:"required,max=255"`
	YouTubeChannelID string `json:"youtube_channel_id,omitempty"`
	BrandNiche       string `json:"brand_niche" validate:"required,max=255"`
}

// UpdateChannelRequest carries optional fields for a channel update.
type UpdateChannelRequest struct {
	Name             *string `json:"name,omitempty" validate:"omitempty,max=255"`
	YouTubeChannelID *string `json:"youtube_channel_id,omitempty"`
	BrandNiche       *string `json:"brand_niche,omitempty" validate:"omitempty,max=255"`
	IsActive         *bool   `json:"is_active,omitempty"`
}

// ListChannels returns all channels, optionally filtered to active ones.
func (c *Client) ListChannels(ctx context.Context, activeOnly bool) ([]Channel, error) {
	query := url.Values{}
	if activeOnly {
		query.Set("active", strconv.FormatBool(true))
	}
	var channels []Channel
	if err := c.getJSON(ctx, "/api/channels", query, &channels); err != nil {
		return nil, err
	}
	return channels, nil
}

// GetChannel fetches a single channel by id.
func (c *Client) GetChannel(ctx context.Context, id string) (Channel, error) {
	var channel Channel
	if err := c.getJSON(ctx, "/api/channels/"+url.PathEscape(id), nil, &channel); err != nil {
		return Channel{}, err
	}
	return channel, nil
}

// CreateChannel registers a channel.
func (c *Client) CreateChannel(ctx context.Context, req CreateChannelRequest) (Channel, error) {
	if err := ValidateRequest(req); err != nil {
		return Channel{}, err
	}
	var channel Channel
	if err := c.postJSON(ctx, "/api/channels", req, &channel); err != nil {
		return Channel{}, err
	}
	return channel, nil
}

// UpdateChannel applies a partial update.
func (c *Client) UpdateChannel(ctx context.Context, id string, req UpdateChannelRequest) (Channel, error) {
	if err := ValidateRequest(req); err != nil {
		return Channel{}, err
	}
	var channel Channel
	if err := c.putJSON(ctx, "/api/channels/"+url.PathEscape(id), req, &channel); err != nil {
		return Channel{}, err
	}
	return channel, nil
}

// DeleteChannel removes a channel.
func (c *Client) DeleteChannel(ctx context.Context, id string) error {
	if err := c.deleteJSON(ctx, "/api/channels/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("delete channel %s: %w", id, err)
	}
	return nil
}
