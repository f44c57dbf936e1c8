package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeAPI(); err != nil {
		return err
	}
	if err := c.normalizeCache(); err != nil {
		return err
	}
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	c.normalizeStream()
	c.normalizeDashboard()
	c.normalizeNotifications()
	return nil
}

func (c *Config) normalizeAPI() error {
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaultAPIBaseURL
	}
	if token, ok := os.LookupEnv("STUDIOCTL_API_TOKEN"); ok && strings.TrimSpace(token) != "" {
		c.API.Token = strings.TrimSpace(token)
	}
	if c.API.RequestTimeout <= 0 {
		c.API.RequestTimeout = defaultAPIRequestTimeout
	}
	return nil
}

func (c *Config) normalizeCache() error {
	if strings.TrimSpace(c.Cache.Dir) == "" {
		c.Cache.Dir = defaultCacheDir
	}
	var err error
	if c.Cache.Dir, err = expandPath(c.Cache.Dir); err != nil {
		return fmt.Errorf("cache.dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Dir) == "" {
		c.Logging.Dir = defaultLogDir
	}
	var err error
	if c.Logging.Dir, err = expandPath(c.Logging.Dir); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeStream() {
	if c.Stream.ReconnectInitialSeconds <= 0 {
		c.Stream.ReconnectInitialSeconds = defaultReconnectInitialSeconds
	}
	if c.Stream.ReconnectMaxSeconds <= 0 {
		c.Stream.ReconnectMaxSeconds = defaultReconnectMaxSeconds
	}
}

func (c *Config) normalizeDashboard() {
	if c.Dashboard.PollIntervalSeconds <= 0 {
		c.Dashboard.PollIntervalSeconds = defaultPollIntervalSeconds
	}
	if c.Dashboard.PanelCloseDelayMS <= 0 {
		c.Dashboard.PanelCloseDelayMS = defaultPanelCloseDelayMS
	}
	if c.Dashboard.ToastTTLSeconds <= 0 {
		c.Dashboard.ToastTTLSeconds = defaultToastTTLSeconds
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyRequestTimeout
	}
}
