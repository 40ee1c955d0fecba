package cmd

import (
	"github.com/spf13/cobra"

	"github.com/philipparndt/tokenviz/internal/app"
)

func newViewCommand(opts *rootOptions) *cobra.Command {
	var noWatch bool

	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "Open the records in a window",
		Long:  "Open a native window showing the records. The file is reloaded when it changes.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			display, err := opts.cfg.Settings()
			if err != nil {
				return err
			}
			return app.Run(app.Options{
				File:     args[0],
				Config:   opts.cfg,
				Settings: display,
				Logger:   opts.logger,
				Watch:    !noWatch,
			})
		},
	}

	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload the file on changes")
	return cmd
}
