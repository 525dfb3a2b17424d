package main

import (
	"io"

	"github.com/spf13/cobra"
)

var completionNoDesc bool

var completionShells = map[string]func(cmd *cobra.Command, w io.Writer, desc bool) error{
	"bash": func(cmd *cobra.Command, w io.Writer, desc bool) error {
		return cmd.GenBashCompletionV2(w, desc)
	},
	"zsh": func(cmd *cobra.Command, w io.Writer, desc bool) error {
		if desc {
			return cmd.GenZshCompletion(w)
		}
		return cmd.GenZshCompletionNoDesc(w)
	},
	"fish": func(cmd *cobra.Command, w io.Writer, desc bool) error {
		return cmd.GenFishCompletion(w, desc)
	},
	"powershell": func(cmd *cobra.Command, w io.Writer, desc bool) error {
		if desc {
			return cmd.GenPowerShellCompletionWithDesc(w)
		}
		return cmd.GenPowerShellCompletion(w)
	},
}

var completionCmd = &cobra.Command{
	Use:       "completion [bash|zsh|fish|powershell]",
	Short:     "Write a shell completion script to stdout",
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		return completionShells[args[0]](cmd.Root(), cmd.OutOrStdout(), !completionNoDesc)
	},
}

func init() {
	completionCmd.Flags().BoolVar(&completionNoDesc, "no-descriptions", false, "omit flag and command descriptions")
}
