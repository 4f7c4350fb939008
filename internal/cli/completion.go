package cli

import (
	"github.com/spf13/cobra"
)

// dataFormats are the formats of commands that print reports rather than trees.
var dataFormats = []string{"text", "json", "yaml"}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for gavtree.

Besides command names, the scripts complete the values of --format on every
command (tree formats for resolve, analyze and render, report formats for
vulns, intel, info and search) and the build tools accepted by info --snippet.
Coordinates are not completed; they come from the registry.

Load completions for the current shell session:

  $ source <(gavtree completion bash)
  $ gavtree completion zsh > "${fpath[1]}/_gavtree"
  $ gavtree completion fish | source
  PS> gavtree completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		// Generating scripts does not need a readable config file.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		ValidArgs:         []string{"bash", "zsh", "fish", "powershell"},
		Args:              cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// completeValues registers a fixed set of completions for a flag.
func completeValues(cmd *cobra.Command, flag string, values []string) {
	_ = cmd.RegisterFlagCompletionFunc(flag, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
}
