package config

const (
	// DefaultServer is the Trint upload endpoint used when none is configured.
	DefaultServer               = "https://upload.trint.com/"
	defaultConcurrency          = 1
	defaultLogFormat            = "console"
	defaultLogLevel             = "warn"
	defaultNotifyRequestTimeout = 10
	defaultConfigPath           = "~/.config/batch-upload/config.toml"
	projectConfigName           = "batch-upload.toml"
	envAPIKeyID                 = "TRINT_API_KEY_ID"
	envAPIKeySecret             = "TRINT_API_KEY_SECRET"
	envNtfyTopic                = "BATCH_UPLOAD_NTFY_TOPIC"
	MinConcurrency              = 1
	MaxConcurrency              = 6
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Upload: Upload{
			Server:      DefaultServer,
			Concurrency: defaultConcurrency,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
		},
	}
}
