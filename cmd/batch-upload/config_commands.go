package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"batchupload/internal/config"
	"batchupload/internal/language"
	"batchupload/internal/logging"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to set api_key_id and api_key_secret (or export TRINT_API_KEY_ID and TRINT_API_KEY_SECRET) before uploading.")
			return nil
		},
	}

	cmd.Flags().StringVar(&targetPath, "path", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration and show effective settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", describeSource(ctx.configExists, ctx.configPath))

			rows := [][]string{
				{"upload.server", cfg.Upload.Server},
				{"upload.concurrency", strconv.Itoa(cfg.Upload.Concurrency)},
				{"upload.language", describeLanguage(cfg.Upload.Language)},
				{"upload.timeout_seconds", strconv.Itoa(cfg.Upload.TimeoutSeconds)},
				{"credentials.api_key_id", valueOrDash(cfg.Credentials.APIKeyID)},
				{"credentials.api_key_secret", valueOrDash(logging.MaskSecret(cfg.Credentials.APIKeySecret))},
				{"logging.format", cfg.Logging.Format},
				{"logging.level", cfg.Logging.Level},
				{"logging.file", valueOrDash(cfg.Logging.File)},
				{"notifications.ntfy_topic", valueOrDash(cfg.Notifications.NtfyTopic)},
			}
			fmt.Fprintln(out, renderTable([]string{"Setting", "Value"}, rows))

			if !cfg.HasCredentials() {
				fmt.Fprintln(out, "Warning: credentials are incomplete; uploads will be refused until both are set")
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func describeLanguage(code string) string {
	if code == "" {
		return "-"
	}
	if name := language.DisplayName(code); name != code {
		return fmt.Sprintf("%s (%s)", code, name)
	}
	return code
}

func valueOrDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
