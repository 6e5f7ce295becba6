package testsupport

import (
	"testing"

	"batchupload/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	cfg *config.Config
}

// NewConfig produces a config with placeholder credentials and the default
// upload server. It applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfgVal := config.Default()
	cfgVal.Credentials.APIKeyID = "test-key-id"
	cfgVal.Credentials.APIKeySecret = "test-key-secret"

	builder := &configBuilder{cfg: &cfgVal}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithServer points uploads at the given URL, typically an httptest server.
func WithServer(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Upload.Server = url
	}
}

// WithCredentials overrides the API key pair. Empty values clear it.
func WithCredentials(id, secret string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Credentials.APIKeyID = id
		b.cfg.Credentials.APIKeySecret = secret
	}
}

// WithNtfyTopic enables notifications against the given topic URL.
func WithNtfyTopic(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notifications.NtfyTopic = url
	}
}
