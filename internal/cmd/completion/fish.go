package completion

import (
	"github.com/spf13/cobra"
)

// NewCmdFish creates the fish completion command.
func NewCmdFish() *cobra.Command {
	return &cobra.Command{
		Use:   "fish",
		Short: "Generate fish completion script",
		Long: `Generate fish completion script for galup.

To load completions in your current shell session:

  galup completion fish | source

To load completions for every new session:

  galup completion fish > ~/.config/fish/completions/galup.fish`,
		Example: `  # Load in current session
  galup completion fish | source

  # Install permanently
  galup completion fish > ~/.config/fish/completions/galup.fish`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
		},
	}
}
