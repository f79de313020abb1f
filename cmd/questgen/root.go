package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "questgen",
		Short:        "Generate study questions from documents",
		Long:         "questgen extracts text from a document, finds its key points and turns them into review questions.",
		SilenceUsage: true,
	}
	root.PersistentFlags().Bool("verbose", false, "Log progress to stderr")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newLanguagesCmd())
	return root
}

// logger writes text logs to stderr so stdout stays machine readable.
func logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}
