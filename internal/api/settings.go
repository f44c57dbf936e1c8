package api

import "context"

// UpdateSettingsRequest selects generation providers.
type UpdateSettingsRequest struct {
	MusicProvider  *string `json:"music_provider,omitempty"`
	VisualProvider *string `json:"visual_provider,omitempty"`
}

// GetSettings fetches the provider configuration.
func (c *Client) GetSettings(ctx context.Context) (Settings, error) {
	var settings Settings
	if err := c.getJSON(ctx, "/api/settings", nil, &settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// UpdateSettings changes the selected providers.
func (c *Client) UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (Settings, error) {
	var settings Settings
	if err := c.putJSON(ctx, "/api/settings", req, &settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}
