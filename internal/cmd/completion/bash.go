package completion

import (
	"github.com/spf13/cobra"
)

// NewCmdBash creates the bash completion command.
func NewCmdBash() *cobra.Command {
	return &cobra.Command{
		Use:   "bash",
		Short: "Generate bash completion script",
		Long: `Generate bash completion script for galup.

To load completions in your current shell session:

  source <(galup completion bash)

To load completions for every new session:

  # Linux
  galup completion bash > /etc/bash_completion.d/galup

  # macOS (requires bash-completion)
  galup completion bash > $(brew --prefix)/etc/bash_completion.d/galup`,
		Example: `  # Load in current session
  source <(galup completion bash)

  # Install permanently (Linux)
  galup completion bash | sudo tee /etc/bash_completion.d/galup > /dev/null

  # Install permanently (macOS with Homebrew)
  galup completion bash > $(brew --prefix)/etc/bash_completion.d/galup`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
		},
	}
}
