package config

import (
	"fmt"
	"os"
	"strings"

	"batchupload/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizeUpload(); err != nil {
		return err
	}
	c.normalizeCredentials()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	c.normalizeNotifications()
	return nil
}

func (c *Config) normalizeUpload() error {
	c.Upload.Server = strings.TrimSpace(c.Upload.Server)
	if c.Upload.Server == "" {
		c.Upload.Server = DefaultServer
	}
	if c.Upload.Concurrency == 0 {
		c.Upload.Concurrency = defaultConcurrency
	}
	code, err := language.Normalize(c.Upload.Language)
	if err != nil {
		return fmt.Errorf("upload.language: %w", err)
	}
	c.Upload.Language = code
	return nil
}

func (c *Config) normalizeCredentials() {
	c.Credentials.APIKeyID = strings.TrimSpace(c.Credentials.APIKeyID)
	if c.Credentials.APIKeyID == "" {
		if value, ok := os.LookupEnv(envAPIKeyID); ok {
			c.Credentials.APIKeyID = strings.TrimSpace(value)
		}
	}
	c.Credentials.APIKeySecret = strings.TrimSpace(c.Credentials.APIKeySecret)
	if c.Credentials.APIKeySecret == "" {
		if value, ok := os.LookupEnv(envAPIKeySecret); ok {
			c.Credentials.APIKeySecret = strings.TrimSpace(value)
		}
	}
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
	if strings.TrimSpace(c.Logging.File) != "" {
		path, err := expandPath(strings.TrimSpace(c.Logging.File))
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = path
	}
	return nil
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.NtfyTopic == "" {
		if value, ok := os.LookupEnv(envNtfyTopic); ok {
			c.Notifications.NtfyTopic = strings.TrimSpace(value)
		}
	}
	if c.Notifications.RequestTimeout == 0 {
		c.Notifications.RequestTimeout = defaultNotifyRequestTimeout
	}
}
