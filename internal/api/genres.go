package api

import (
	"context"
	"net/url"
	"strconv"
)

// ListGenres returns genres ordered by sort order.
func (c *Client) ListGenres(ctx context.Context, includeInactive bool) ([]Genre, error) {
	query := url.Values{}
	if includeInactive {
		query.Set("include_inactive", strconv.FormatBool(true))
	}
	var genres []Genre
	if err := c.getJSON(ctx, "/api/genres", query, &genres); err != nil {
		return nil, err
	}
	return genres, nil
}

// GetGenre fetches a single genre with idea counts.
func (c *Client) GetGenre(ctx context.Context, id string) (Genre, error) {
	var genre Genre
	if err := c.getJSON(ctx, "/api/genres/"+url.PathEscape(id), nil, &genre); err != nil {
		return Genre{}, err
	}
	return genre, nil
}
