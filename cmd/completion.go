package cmd

import (
	"fmt"

	"github.com/findy-network/findy-mediator/completionhelp"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generates shell completion scripts",
	Long: `
Generates the completion script of findy-mediator. The storage flags are
completed too: --storage-type with the storage types and --storage-path with
the usual storage directories.

bash:
	source <(findy-mediator completion bash)

zsh:
	source <(findy-mediator completion zsh)

fish:
	findy-mediator completion fish | source

Add the line to your shell configuration (e.g. .bashrc/.zshrc) to load the
completions for each session.
`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(c *cobra.Command, args []string) error {
		out := c.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(out, true)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		}
		return fmt.Errorf("unknown shell: %s", args[0])
	},
}

func completeStorageType(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return completionhelp.StorageTypes(), cobra.ShellCompDirectiveNoFileComp
}

func completeStoragePath(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return completionhelp.StorageLocations(), cobra.ShellCompDirectiveFilterDirs
}

// registerFlagCompletions must be called after the persistent flags of the
// root command are defined.
func registerFlagCompletions() {
	try.To(rootCmd.RegisterFlagCompletionFunc("storage-type", completeStorageType))
	try.To(rootCmd.RegisterFlagCompletionFunc("storage-path", completeStoragePath))
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
