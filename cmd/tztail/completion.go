package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate a shell completion script for tztail and write it to stdout.

Bash:
  $ source <(tztail completion bash)

Zsh:
  $ tztail completion zsh > "${fpath[1]}/_tztail"

Fish:
  $ tztail completion fish > ~/.config/fish/completions/tztail.fish

PowerShell:
  PS> tztail completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := cmd.Root()
		out := cmd.OutOrStdout()

		switch args[0] {
		case "bash":
			return root.GenBashCompletionV2(out, true)
		case "zsh":
			return root.GenZshCompletion(out)
		case "fish":
			return root.GenFishCompletion(out, true)
		case "powershell":
			return root.GenPowerShellCompletionWithDesc(out)
		}
		return fmt.Errorf("unsupported shell %q", args[0])
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// completeColor offers the values of --color.
func completeColor(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{"auto", "always", "never"}, cobra.ShellCompDirectiveNoFileComp
}

// completeFormatsFile restricts --formats-file to YAML files.
func completeFormatsFile(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
}
