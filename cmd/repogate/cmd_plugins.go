package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/repogate/repogate/pkg/hooks"
)

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List the registered check types",
	Run: func(cmd *cobra.Command, args []string) {
		types := hooks.RegisteredTypes()
		sort.Strings(types)
		for _, t := range types {
			fmt.Fprintln(cmd.OutOrStdout(), t)
		}
	},
}

func init() {
	rootCmd.AddCommand(pluginsCmd)
}
