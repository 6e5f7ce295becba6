package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"batchupload/internal/batch"
	"batchupload/internal/config"
	"batchupload/internal/language"
	"batchupload/internal/logging"
	"batchupload/internal/notifications"
	"batchupload/internal/services"
	"batchupload/internal/services/trint"
)

const rootExamples = `  batch-upload -k KEY_ID -s SECRET -f audio.mp3
  batch-upload -k KEY_ID -s SECRET -p "./recordings/**/*.mp3" -c 5
  batch-upload -k KEY_ID -s SECRET -p "~/Videos/*.mp3" -p "~/Music/**/*.wav"
  batch-upload -k KEY_ID -s SECRET -P patterns.txt -c 3`

const rootHelpFooter = `
Pattern File Format (-P option):
  One glob pattern per line
  # starts a comment, on its own line or after a pattern
  Blank lines are ignored
  Leading/trailing whitespace is ignored

Environment Variables:
  TRINT_API_KEY_ID      Default API key ID (overridden by config file and -k/--api-key-id)
  TRINT_API_KEY_SECRET  Default API key secret (overridden by config file and -s/--api-key-secret)

Run "batch-upload languages" to list supported language codes.
`

type uploadFlags struct {
	apiKeyID     string
	apiKeySecret string
	server       string
	language     string
	files        []string
	patterns     []string
	patternFiles []string
	concurrent   int
	debug        bool
	dryRun       bool
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var flags uploadFlags

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "batch-upload",
		Short:         "Cross-platform batch upload utility for Trint",
		Example:       rootExamples,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			if _, err := ctx.ensureConfig(); err != nil {
				return services.Wrap(services.ErrConfiguration, "", "", "load config", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpload(cmd, ctx, &flags)
		},
	}
	rootCmd.SetHelpTemplate(rootCmd.HelpTemplate() + rootHelpFooter)

	f := rootCmd.Flags()
	f.StringVarP(&flags.apiKeyID, "api-key-id", "k", "", "API key ID (required)")
	f.StringVarP(&flags.apiKeySecret, "api-key-secret", "s", "", "API key secret (required)")
	f.StringVarP(&flags.server, "server", "u", "", "server URL to upload to")
	f.StringArrayVarP(&flags.files, "file", "f", nil, "file to upload (repeatable)")
	f.StringArrayVarP(&flags.patterns, "pattern", "p", nil, `glob pattern for files (e.g., "~/Videos/*.mp3", "./audio/**/*.wav") (repeatable)`)
	f.StringArrayVarP(&flags.patternFiles, "pattern-file", "P", nil, "file containing glob patterns (one per line, # for comments) (repeatable)")
	f.StringVarP(&flags.language, "language", "l", "", "language code for transcription (e.g., en, en-GB, fr)")
	f.IntVarP(&flags.concurrent, "concurrent", "c", 1, "number of concurrent uploads (1-6)")
	f.BoolVarP(&flags.debug, "debug", "D", false, "enable debug output")
	f.BoolVar(&flags.dryRun, "dry-run", false, "list files that would be uploaded without uploading")

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Configuration file path")

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newLanguagesCommand())
	rootCmd.AddCommand(newTestNotifyCommand(ctx))

	return rootCmd
}

func runUpload(cmd *cobra.Command, ctx *commandContext, flags *uploadFlags) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	sel, err := buildSelection(cmd, cfg, flags)
	if err != nil {
		return err
	}

	logger, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr(), flags.debug)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "", "", "logging", err)
	}
	defer func() { _ = logging.Close(logger) }()
	if ctx.configExists {
		logger.Debug("configuration loaded", logging.String("path", ctx.configPath))
	}

	client := trint.NewClient(
		trint.WithLogger(logger),
		trint.WithTimeout(time.Duration(cfg.Upload.TimeoutSeconds)*time.Second),
		trint.WithUserAgent("batch-upload/"+version),
	)

	opts := []batch.Option{
		batch.WithLogger(logger),
		batch.WithReporter(batch.NewConsoleReporter(cmd.OutOrStdout(), cmd.ErrOrStderr())),
	}
	if notifier := notifications.NewService(cfg); notifications.Enabled(notifier) {
		opts = append(opts, batch.WithNotifier(notifier))
	}

	_, err = batch.NewRunner(client, opts...).Run(cmd.Context(), sel)
	return err
}

// buildSelection merges flags over the loaded configuration. Only flags the
// user actually set take precedence; the configuration already carries the
// environment fallbacks and defaults.
// overriddenServer returns server unless it is the built-in default, which
// the runner applies on its own.
func overriddenServer(server string) string {
	if server == config.DefaultServer {
		return ""
	}
	return server
}

func buildSelection(cmd *cobra.Command, cfg *config.Config, flags *uploadFlags) (batch.Selection, error) {
	changed := cmd.Flags().Changed

	sel := batch.Selection{
		Files:        flags.files,
		Patterns:     flags.patterns,
		PatternFiles: flags.patternFiles,
		Concurrency:  cfg.Upload.Concurrency,
		Language:     cfg.Upload.Language,
		Server:       overriddenServer(cfg.Upload.Server),
		Debug:        flags.debug,
		DryRun:       flags.dryRun,
		Credentials: trint.Credentials{
			APIKeyID:     cfg.Credentials.APIKeyID,
			APIKeySecret: cfg.Credentials.APIKeySecret,
		},
	}

	if changed("api-key-id") {
		sel.Credentials.APIKeyID = strings.TrimSpace(flags.apiKeyID)
	}
	if changed("api-key-secret") {
		sel.Credentials.APIKeySecret = strings.TrimSpace(flags.apiKeySecret)
	}
	if changed("server") {
		sel.Server = strings.TrimSpace(flags.server)
		if err := config.ValidateServer(sel.Server); err != nil {
			return batch.Selection{}, services.Wrap(services.ErrConfiguration, "", "", "--server", err)
		}
	}
	if changed("concurrent") {
		if err := config.ValidateConcurrency(flags.concurrent); err != nil {
			return batch.Selection{}, services.Wrap(services.ErrConfiguration, "", "", "", err)
		}
		sel.Concurrency = flags.concurrent
	}
	if changed("language") {
		code, err := language.Normalize(flags.language)
		if err != nil {
			return batch.Selection{}, services.Wrap(services.ErrConfiguration, "", "", "--language", err)
		}
		sel.Language = code
	}
	return sel, nil
}

func describeSource(exists bool, path string) string {
	if !exists {
		return fmt.Sprintf("%s (not found, defaults used)", path)
	}
	return path
}
