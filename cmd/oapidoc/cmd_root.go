package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

const appName = "oapidoc"

type rootFlags struct {
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Render OpenAPI documents from YAML templates",
		Long:          appName + " substitutes {{name}} placeholders in YAML templates, keeping their indentation,\nand emits static documentation viewers.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "text", "log format: text or json")
	cmd.AddCommand(
		newRenderCmd(flags),
		newViewerCmd(flags),
	)
	return cmd
}

// logger writes to the command's error stream, so that rendered output stays clean.
func (f *rootFlags) logger(cmd *cobra.Command) *slog.Logger {
	return setupLogger(cmd.ErrOrStderr(), f.logLevel, f.logFormat)
}
