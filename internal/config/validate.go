package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable. Credentials are not checked
// here so that configuration utilities work before keys are provisioned; the
// batch runner rejects a run without them.
func (c *Config) Validate() error {
	if err := c.validateUpload(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateUpload() error {
	if err := ValidateConcurrency(c.Upload.Concurrency); err != nil {
		return fmt.Errorf("upload.concurrency: %w", err)
	}
	if err := ValidateServer(c.Upload.Server); err != nil {
		return fmt.Errorf("upload.server: %w", err)
	}
	if c.Upload.TimeoutSeconds < 0 {
		return errors.New("upload.timeout_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive")
	}
	if topic := c.Notifications.NtfyTopic; topic != "" {
		if err := ValidateServer(topic); err != nil {
			return fmt.Errorf("notifications.ntfy_topic: %w", err)
		}
	}
	return nil
}

// ValidateConcurrency checks the concurrent upload bound.
func ValidateConcurrency(n int) error {
	if n < MinConcurrency || n > MaxConcurrency {
		return fmt.Errorf("concurrent uploads must be between %d and %d, got %d", MinConcurrency, MaxConcurrency, n)
	}
	return nil
}

// ValidateServer checks that value is an absolute http or https URL.
func ValidateServer(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errors.New("url must be set")
	}
	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", value, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url %q must use http or https", value)
	}
	if u.Host == "" {
		return fmt.Errorf("url %q has no host", value)
	}
	return nil
}
