// Package root provides the root command for the galup CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-gallery-collective/galup/internal/cmd/completion"
	"github.com/open-gallery-collective/galup/internal/cmd/generate"
	"github.com/open-gallery-collective/galup/internal/cmd/importcmd"
	initcmd "github.com/open-gallery-collective/galup/internal/cmd/init"
	"github.com/open-gallery-collective/galup/internal/cmd/preview"
	"github.com/open-gallery-collective/galup/internal/cmd/sites"
	"github.com/open-gallery-collective/galup/internal/cmd/watch"
	"github.com/open-gallery-collective/galup/internal/logging"
	"github.com/open-gallery-collective/galup/internal/version"
)

// NewCmdRoot creates the root command for galup.
func NewCmdRoot() *cobra.Command {
	var verbosity int

	cmd := &cobra.Command{
		Use:   "galup",
		Short: "Generate upload files for furry art websites",
		Long: `galup turns one description source and one story document into the
upload files every configured website expects: the right markup, the right
user links and the right story format per site.

Get started by running: galup init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logging.Setup(verbosity)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ./config.json, then the user config directory)")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (repeatable)")

	// Set version template
	cmd.SetVersionTemplate("galup version {{.Version}} (commit: " + version.Commit + ", built: " + version.Date + ")\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(generate.NewCmdGenerate())
	cmd.AddCommand(preview.NewCmdPreview())
	cmd.AddCommand(watch.NewCmdWatch())
	cmd.AddCommand(importcmd.NewCmdImport())
	cmd.AddCommand(sites.NewCmdSites())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
