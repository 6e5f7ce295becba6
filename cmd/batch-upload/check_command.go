package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"batchupload/internal/logging"
	"batchupload/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var files []string
	var patternFiles []string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run preflight checks against the configuration and upload server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(cmd.Context(), cfg, preflight.Targets{
				Files:        files,
				PatternFiles: patternFiles,
			})

			out := cmd.OutOrStdout()
			colorize := logging.IsTerminal(out)
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{r.Name, statusLabel(r.Passed, colorize), r.Detail})
			}
			fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Detail"}, rows))

			if failed := preflight.Failed(results); failed > 0 {
				return fmt.Errorf("%d preflight check(s) failed", failed)
			}
			fmt.Fprintln(out, "All checks passed")
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&files, "file", "f", nil, "media file to verify (repeatable)")
	cmd.Flags().StringArrayVarP(&patternFiles, "pattern-file", "P", nil, "pattern file to verify (repeatable)")
	return cmd
}

func statusLabel(passed, colorize bool) string {
	label, c := "FAIL", color.New(color.FgRed)
	if passed {
		label, c = "OK", color.New(color.FgGreen)
	}
	if !colorize {
		return label
	}
	c.EnableColor()
	return c.Sprint(label)
}
