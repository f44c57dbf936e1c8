package main

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"studioctl/internal/api"
	"studioctl/internal/config"
	"studioctl/internal/logging"
)

type commandContext struct {
	configFlag *string
	serverFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	clientOnce sync.Once
	client     *api.Client
	clientErr  error
}

func newCommandContext(configFlag, serverFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		serverFlag: serverFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.configErr = err
			return
		}
		slog.SetDefault(logger)
		c.config = cfg
	})
	return c.config, c.configErr
}

// apiClient builds the backend client once, preferring the --server flag over
// the configured base URL.
func (c *commandContext) apiClient() (*api.Client, error) {
	c.clientOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.clientErr = err
			return
		}
		baseURL := cfg.API.BaseURL
		if c.serverFlag != nil && strings.TrimSpace(*c.serverFlag) != "" {
			baseURL = strings.TrimSpace(*c.serverFlag)
		}
		c.client, c.clientErr = api.NewClient(baseURL,
			api.WithToken(cfg.API.Token),
			api.WithTimeout(time.Duration(cfg.API.RequestTimeout)*time.Second),
		)
	})
	return c.client, c.clientErr
}

func (c *commandContext) withClient(fn func(*api.Client) error) error {
	client, err := c.apiClient()
	if err != nil {
		return err
	}
	return fn(client)
}
