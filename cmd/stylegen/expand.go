package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/stylegen"
)

var expandCmd = &cobra.Command{
	Use:   "expand",
	Short: "Print every permutation of the static CSS rules as JSON",
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		res, err := stylegen.Expand(buildGenerateConfig())
		if err != nil {
			return fmt.Errorf("expansion failed: %w", err)
		}
		data, err := res.JSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	f := expandCmd.Flags()
	f.String("theme", "theme.yaml", "Theme file (YAML or JSON)")
	f.String("static", "", "Static CSS rules file")
}
