package config

const (
	defaultAPIBaseURL              = "http://127.0.0.1:8000"
	defaultAPIRequestTimeout       = 30
	defaultReconnectInitialSeconds = 1
	defaultReconnectMaxSeconds     = 30
	defaultPollIntervalSeconds     = 10
	defaultPanelCloseDelayMS       = 250
	defaultToastTTLSeconds         = 5
	defaultCacheDir                = "~/.cache/studioctl"
	defaultNotifyRequestTimeout    = 10
	defaultLogFormat               = "console"
	defaultLogLevel                = "info"
	defaultLogDir                  = "~/.local/share/studioctl/logs"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		API: API{
			BaseURL:        defaultAPIBaseURL,
			RequestTimeout: defaultAPIRequestTimeout,
		},
		Stream: Stream{
			ReconnectInitialSeconds: defaultReconnectInitialSeconds,
			ReconnectMaxSeconds:     defaultReconnectMaxSeconds,
		},
		Dashboard: Dashboard{
			PollIntervalSeconds: defaultPollIntervalSeconds,
			PanelCloseDelayMS:   defaultPanelCloseDelayMS,
			ToastTTLSeconds:     defaultToastTTLSeconds,
		},
		Cache: Cache{
			Enabled: true,
			Dir:     defaultCacheDir,
		},
		Notifications: Notifications{
			RequestTimeout:  defaultNotifyRequestTimeout,
			JobCompleted:    true,
			JobFailed:       true,
			ScrapeCompleted: false,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			Dir:    defaultLogDir,
		},
	}
}
