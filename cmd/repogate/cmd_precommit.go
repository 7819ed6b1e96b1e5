package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/repogate/repogate/pkg/state"
)

var preCommitCmd = &cobra.Command{
	Use:   "pre-commit [changeset.json]",
	Short: "Run pre-commit checks against a changeset",
	Long: `Runs every configured pre-commit check against the changeset and
prints the violations. Exits non-zero when the commit must be rejected;
the server-side hook script forwards stderr to the committer.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreCommit,
}

func init() {
	preCommitCmd.Flags().String("changeset", "", "Changeset file (default stdin)")
	viper.BindPFlag("pre-commit.changeset", preCommitCmd.Flags().Lookup("changeset"))

	rootCmd.AddCommand(preCommitCmd)
}

func runPreCommit(cmd *cobra.Command, args []string) error {
	csPath, _ := cmd.Flags().GetString("changeset")
	if len(args) > 0 {
		csPath = args[0]
	}

	cfg, err := loadGateConfig()
	if err != nil {
		return err
	}
	change, err := loadChangeset(csPath)
	if err != nil {
		return err
	}

	engine, emitter, err := newEngine(cfg)
	if err != nil {
		return err
	}
	if emitter != nil {
		defer emitter.Close()
	}

	rep := engine.PreCommit(change)

	if store, serr := openRunStore(); serr != nil {
		return serr
	} else if store != nil {
		defer store.Close()
		verdict := "accepted"
		if !rep.Ok() {
			verdict = "rejected"
		}
		run := state.Run{
			ID:         rep.RunID,
			Phase:      state.PhasePreCommit,
			Txn:        change.Txn,
			Author:     change.Author,
			Verdict:    verdict,
			Violations: len(rep.Violations),
			Report:     rep.String(),
		}
		if err := store.Record(run); err != nil {
			// History is best effort; the verdict still stands.
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		}
	}

	if !rep.Ok() {
		fmt.Fprintln(cmd.ErrOrStderr(), rep.String())
		return ErrCommitDenied
	}
	fmt.Fprintln(cmd.OutOrStdout(), "ok")
	return nil
}
