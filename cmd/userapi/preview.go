package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deppfellow/userapi/internal/lib/email"
)

func newPreviewEmailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview-email [template]",
		Short: "Render an email template with sample data to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := email.Template(args[0])

			data, ok := email.PreviewData[name]
			if !ok {
				return fmt.Errorf("unknown template %q", name)
			}

			html, err := email.Render(name, data)
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), html)
			return err
		},
	}
}
