package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "userapi",
		Short:         "User records API with a Gemini passthrough",
		Version:       fmt.Sprintf("%s (%s)", buildVersion, buildCommit),
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	serve := newServeCmd()
	root.AddCommand(serve, newMigrateCmd(), newPreviewEmailCmd())

	// Running the binary without a subcommand serves the API.
	root.RunE = serve.RunE

	return root
}
