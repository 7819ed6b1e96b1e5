package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/repogate/repogate/pkg/structure"
)

var checkCmd = &cobra.Command{
	Use:   "check <path>...",
	Short: "Check paths against the configured structure spec",
	Long: `Validates one or more repository paths against the structure spec
from the gate config, without running any other checks. Paths ending in a
slash are treated as directories. Useful for testing a spec before
deploying it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadGateConfig()
	if err != nil {
		return err
	}
	if cfg.Structure == nil {
		return ErrNoStructure
	}

	node, err := structure.Compile(cfg.Structure)
	if err != nil {
		return err
	}

	failed := 0
	for _, path := range args {
		if err := structure.Check(node, path); err != nil {
			failed++
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %s\n", path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d path(s) rejected", failed, len(args))
	}
	return nil
}
