package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/repogate/repogate/pkg/structure"
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate the gate config without running any checks",
	Long: `Loads the gate config, compiles the structure spec, and constructs
every configured check. Any syntax error surfaces here instead of at the
first unlucky commit.`,
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	cfg, err := loadGateConfig()
	if err != nil {
		return err
	}

	if cfg.Structure != nil {
		if _, err := structure.Compile(cfg.Structure); err != nil {
			return err
		}
	}

	engine, emitter, err := newEngine(cfg)
	if err != nil {
		return err
	}
	if emitter != nil {
		defer emitter.Close()
	}

	fmt.Fprintf(cmd.OutOrStdout(), "config ok: %d pre-commit check(s), %d post-commit hook(s)\n",
		len(engine.PreCommitChecks()), len(engine.PostCommitHooks()))
	return nil
}
