package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"batchupload/internal/notifications"
)

func newTestNotifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			svc := notifications.NewService(cfg)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Notifications enabled: %s\n", yesNo(notifications.Enabled(svc)))
			if !notifications.Enabled(svc) {
				fmt.Fprintln(out, "Notification not sent (set notifications.ntfy_topic to enable)")
				return nil
			}
			if err := svc.TestNotification(cmd.Context()); err != nil {
				return fmt.Errorf("send test notification: %w", err)
			}
			fmt.Fprintln(out, "Test notification sent")
			return nil
		},
	}
}
