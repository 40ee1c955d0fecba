// Package cmd implements the tokenviz command line
package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/philipparndt/tokenviz/internal/config"
	"github.com/philipparndt/tokenviz/internal/logging"
	"github.com/philipparndt/tokenviz/version"
)

// rootOptions is shared by all subcommands; it is filled before any of
// them runs
type rootOptions struct {
	configFile string
	logLevel   string

	cfg    *config.Config
	logger zerolog.Logger
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "tokenviz",
		Short: "Interactive 3D viewer for token embeddings",
		Long: `tokenviz shows token embeddings as a rotating 3D point cloud.
Each token is a colored particle with a label; hovering shows its text and
a token can be highlighted from the command line or the GUI list.`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = opts.logLevel
			}
			opts.cfg = cfg
			opts.logger = logging.New(cmd.ErrOrStderr(), cfg.LogLevel, os.Getenv("NO_COLOR") == "")
			if cfg.File != "" {
				opts.logger.Debug().Str("file", cfg.File).Msg("config loaded")
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default ./tokenviz.yaml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")

	root.AddCommand(
		newViewCommand(opts),
		newRenderCommand(opts),
		newInfoCommand(opts),
		newTableCommand(opts),
		newVersionCommand(),
	)
	return root
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
